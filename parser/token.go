package parser

import "fmt"

// TokenType enumerates lexical categories recognised by the lexer.
type TokenType int

const (
	TokenEOF TokenType = iota

	// Single-character tokens
	TokenLeftParen  // (
	TokenRightParen // )
	TokenLeftBrace  // {
	TokenRightBrace // }
	TokenComma      // ,
	TokenDot        // .
	TokenMinus      // -
	TokenPlus       // +
	TokenSemicolon  // ;
	TokenSlash      // /
	TokenStar       // *
	TokenQuestion   // ?
	TokenColon      // :

	// One or two character tokens
	TokenBang         // !
	TokenBangEqual    // !=
	TokenEqual        // =
	TokenEqualEqual   // ==
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenLess         // <
	TokenLessEqual    // <=

	// Literals
	TokenIdentifier
	TokenString
	TokenNumber

	// Keywords
	TokenKirasi   // class
	TokenKana     // or
	TokenNe       // and
	TokenKunyepa  // false
	TokenBasa     // function
	TokenChin     // for
	TokenDai      // if
	TokenPamwe    // else
	TokenHapana   // nil
	TokenDhinda   // print
	TokenDzoka    // return
	TokenMubereki // super
	TokenIno      // this
	TokenChokwadi // true
	TokenCheng    // var
	TokenApo      // while
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "EOF",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenMinus:        "-",
	TokenPlus:         "+",
	TokenSemicolon:    ";",
	TokenSlash:        "/",
	TokenStar:         "*",
	TokenQuestion:     "?",
	TokenColon:        ":",
	TokenBang:         "!",
	TokenBangEqual:    "!=",
	TokenEqual:        "=",
	TokenEqualEqual:   "==",
	TokenGreater:      ">",
	TokenGreaterEqual: ">=",
	TokenLess:         "<",
	TokenLessEqual:    "<=",
	TokenIdentifier:   "IDENTIFIER",
	TokenString:       "STRING",
	TokenNumber:       "NUMBER",
	TokenKirasi:       "KIRASI",
	TokenKana:         "KANA",
	TokenNe:           "NE",
	TokenKunyepa:      "KUNYEPA",
	TokenBasa:         "BASA",
	TokenChin:         "CHIN",
	TokenDai:          "DAI",
	TokenPamwe:        "PAMWE",
	TokenHapana:       "HAPANA",
	TokenDhinda:       "DHINDA",
	TokenDzoka:        "DZOKA",
	TokenMubereki:     "MUBEREKI",
	TokenIno:          "INO",
	TokenChokwadi:     "CHOKWADI",
	TokenCheng:        "CHENG",
	TokenApo:          "APO",
}

func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return "unknown"
}

var keywords = map[string]TokenType{
	"kirasi":   TokenKirasi,
	"kana":     TokenKana,
	"ne":       TokenNe,
	"kunyepa":  TokenKunyepa,
	"basa":     TokenBasa,
	"chin":     TokenChin,
	"dai":      TokenDai,
	"pamwe":    TokenPamwe,
	"hapana":   TokenHapana,
	"dhinda":   TokenDhinda,
	"dzoka":    TokenDzoka,
	"mubereki": TokenMubereki,
	"ino":      TokenIno,
	"chokwadi": TokenChokwadi,
	"cheng":    TokenCheng,
	"apo":      TokenApo,
}

// LookupKeyword reports the keyword token type for an identifier lexeme.
func LookupKeyword(lexeme string) (TokenType, bool) {
	tt, ok := keywords[lexeme]
	return tt, ok
}

// Token is a single lexical unit produced by the lexer.
type Token struct {
	Type    TokenType
	Lexeme  string      // source text of the token
	Literal interface{} // float64 for numbers, string for strings, otherwise nil
	Line    int         // one-based line number
}

func (t Token) String() string {
	switch {
	case t.Lexeme == "":
		return t.Type.String()
	case t.Literal == nil:
		return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
	}
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}
