package parser

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

type lexer struct {
	src     string
	start   int // byte offset of the token being scanned
	current int // byte offset of the next unread rune
	line    int

	tokens []Token
	errs   ErrorList
}

func newLexer(src string) *lexer {
	return &lexer{
		src:  src,
		line: 1,
	}
}

// Scan splits source text into tokens. The token slice always ends with
// an EOF token; lexical errors are collected and scanning continues.
func Scan(src string) ([]Token, ErrorList) {
	lx := newLexer(src)
	lx.scanTokens()
	return lx.tokens, lx.errs
}

func (lx *lexer) scanTokens() {
	for !lx.atEnd() {
		lx.start = lx.current
		lx.scanToken()
	}
	lx.tokens = append(lx.tokens, Token{
		Type: TokenEOF,
		Line: lx.line,
	})
}

func (lx *lexer) atEnd() bool {
	return lx.current >= len(lx.src)
}

func (lx *lexer) advance() rune {
	r, w := utf8.DecodeRuneInString(lx.src[lx.current:])
	lx.current += w
	if r == '\n' {
		lx.line++
	}
	return r
}

func (lx *lexer) peek() rune {
	if lx.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.current:])
	return r
}

func (lx *lexer) peekNext() rune {
	if lx.atEnd() {
		return 0
	}
	_, w := utf8.DecodeRuneInString(lx.src[lx.current:])
	if lx.current+w >= len(lx.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.current+w:])
	return r
}

func (lx *lexer) match(expected rune) bool {
	if lx.peek() != expected || lx.atEnd() {
		return false
	}
	lx.advance()
	return true
}

func (lx *lexer) scanToken() {
	r := lx.advance()
	switch r {
	case '(':
		lx.addToken(TokenLeftParen)
	case ')':
		lx.addToken(TokenRightParen)
	case '{':
		lx.addToken(TokenLeftBrace)
	case '}':
		lx.addToken(TokenRightBrace)
	case ',':
		lx.addToken(TokenComma)
	case '.':
		lx.addToken(TokenDot)
	case '-':
		lx.addToken(TokenMinus)
	case '+':
		lx.addToken(TokenPlus)
	case ';':
		lx.addToken(TokenSemicolon)
	case '*':
		lx.addToken(TokenStar)
	case '?':
		lx.addToken(TokenQuestion)
	case ':':
		lx.addToken(TokenColon)
	case '!':
		lx.addTwoCharToken('=', TokenBangEqual, TokenBang)
	case '=':
		lx.addTwoCharToken('=', TokenEqualEqual, TokenEqual)
	case '<':
		lx.addTwoCharToken('=', TokenLessEqual, TokenLess)
	case '>':
		lx.addTwoCharToken('=', TokenGreaterEqual, TokenGreater)
	case '/':
		switch {
		case lx.match('/'):
			lx.skipLine()
		case lx.match('*'):
			lx.skipBlockComment()
		default:
			lx.addToken(TokenSlash)
		}
	case ' ', '\r', '\t', '\n':
	case '"':
		lx.scanString()
	default:
		switch {
		case isDigit(r):
			lx.scanNumber()
		case isIdentifierStart(r):
			lx.scanIdentifier()
		case r == utf8.RuneError:
			lx.errorf("Invalid UTF-8 encoding.")
		default:
			lx.errorf("Unexpected character %q.", r)
		}
	}
}

func (lx *lexer) addTwoCharToken(next rune, two, one TokenType) {
	if lx.match(next) {
		lx.addToken(two)
		return
	}
	lx.addToken(one)
}

func (lx *lexer) skipLine() {
	for lx.peek() != '\n' && !lx.atEnd() {
		lx.advance()
	}
}

func (lx *lexer) skipBlockComment() {
	for !lx.atEnd() {
		if lx.peek() == '*' && lx.peekNext() == '/' {
			lx.advance()
			lx.advance()
			return
		}
		lx.advance()
	}
	lx.errs = append(lx.errs, &Error{
		Line:       lx.line,
		Message:    "Unterminated block comment.",
		Incomplete: true,
	})
}

func (lx *lexer) scanString() {
	for lx.peek() != '"' && !lx.atEnd() {
		lx.advance()
	}
	if lx.atEnd() {
		lx.errs = append(lx.errs, &Error{
			Line:       lx.line,
			Message:    "Unterminated string.",
			Incomplete: true,
		})
		return
	}
	lx.advance() // closing quote
	value := lx.src[lx.start+1 : lx.current-1]
	lx.addLiteralToken(TokenString, value)
}

func (lx *lexer) scanNumber() {
	for isDigit(lx.peek()) {
		lx.advance()
	}
	if lx.peek() == '.' && isDigit(lx.peekNext()) {
		lx.advance()
		for isDigit(lx.peek()) {
			lx.advance()
		}
	}
	lexeme := lx.src[lx.start:lx.current]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		lx.errorf("Invalid number %s.", lexeme)
		return
	}
	lx.addLiteralToken(TokenNumber, value)
}

func (lx *lexer) scanIdentifier() {
	for isIdentifierPart(lx.peek()) {
		lx.advance()
	}
	lexeme := lx.src[lx.start:lx.current]
	if tt, ok := LookupKeyword(lexeme); ok {
		lx.addToken(tt)
		return
	}
	lx.addToken(TokenIdentifier)
}

func (lx *lexer) addToken(tt TokenType) {
	lx.addLiteralToken(tt, nil)
}

func (lx *lexer) addLiteralToken(tt TokenType, literal interface{}) {
	lx.tokens = append(lx.tokens, Token{
		Type:    tt,
		Lexeme:  lx.src[lx.start:lx.current],
		Literal: literal,
		Line:    lx.line,
	})
}

func (lx *lexer) errorf(format string, args ...interface{}) {
	lx.errs = append(lx.errs, newLexError(lx.line, fmt.Sprintf(format, args...)))
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}
