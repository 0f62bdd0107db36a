package parser

import (
	"cmp"
	"errors"
	"slices"
)

// Parse scans and parses source text. The returned Program always holds
// every statement that parsed successfully; the error, when non-nil, is an
// ErrorList with every lexical and syntax error ordered by line.
func Parse(src string) (*Program, error) {
	return ParseScanned(Scan(src))
}

// ParseScanned parses the output of Scan, folding the lexical errors into
// the syntax errors of the parse.
func ParseScanned(tokens []Token, lexErrs ErrorList) (*Program, error) {
	prog, err := ParseTokens(tokens)
	if len(lexErrs) == 0 {
		return prog, err
	}
	var errs ErrorList
	errs = append(errs, lexErrs...)
	var perrs ErrorList
	if errors.As(err, &perrs) {
		errs = append(errs, perrs...)
	}
	slices.SortStableFunc(errs, func(a, b *Error) int {
		return cmp.Compare(a.Line, b.Line)
	})
	return prog, errs
}

// ParseTokens parses a token sequence terminated by EOF.
func ParseTokens(tokens []Token) (*Program, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, Token{Type: TokenEOF, Line: line})
	}
	p := &parser{tokens: tokens}
	prog := p.parseProgram()
	return prog, p.errs.Err()
}

type parser struct {
	tokens  []Token
	current int
	errs    ErrorList
	depth   int // open blocks
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *parser) atEnd() bool {
	return p.peek().Type == TokenEOF
}

func (p *parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) expect(tt TokenType, msg string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, newTokenError(p.peek(), msg)
}

func (p *parser) parseProgram() *Program {
	var stmts []Stmt
	for !p.atEnd() {
		if stmt := p.parseDeclarationOrRecover(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return &Program{Stmts: stmts}
}

// parseDeclarationOrRecover records a failed declaration and skips to the
// next statement boundary, returning nil.
func (p *parser) parseDeclarationOrRecover() Stmt {
	stmt, err := p.parseDeclaration()
	if err != nil {
		p.report(err)
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *parser) report(err error) {
	var perr *Error
	if errors.As(err, &perr) {
		p.errs = append(p.errs, perr)
		return
	}
	p.errs = append(p.errs, &Error{Line: p.peek().Line, Message: err.Error()})
}

// synchronize skips to the next statement boundary. Inside a block it
// stops before the closing brace so the block keeps its end.
func (p *parser) synchronize() {
	if p.depth > 0 && p.check(TokenRightBrace) {
		return
	}
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == TokenSemicolon {
			return
		}
		switch p.peek().Type {
		case TokenKirasi, TokenBasa, TokenCheng, TokenChin, TokenDai,
			TokenApo, TokenDhinda, TokenDzoka:
			return
		case TokenRightBrace:
			if p.depth > 0 {
				return
			}
		}
		p.advance()
	}
}

func (p *parser) parseDeclaration() (Stmt, error) {
	if p.match(TokenCheng) {
		return p.parseVarDecl()
	}
	return p.parseStatement()
}

func (p *parser) parseVarDecl() (Stmt, error) {
	name, err := p.expect(TokenIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(TokenEqual) {
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{
		Name: name,
		Init: init,
	}, nil
}

func (p *parser) parseStatement() (Stmt, error) {
	switch {
	case p.match(TokenDhinda):
		return p.parsePrintStmt()
	case p.match(TokenLeftBrace):
		brace := p.previous()
		stmts, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{
			Stmts: stmts,
			Brace: brace,
		}, nil
	case p.match(TokenDai):
		return p.parseIfStmt()
	case p.match(TokenApo):
		return p.parseWhileStmt()
	case p.match(TokenChin):
		return p.parseForStmt()
	default:
		return p.parseExpressionStmt()
	}
}

func (p *parser) parsePrintStmt() (Stmt, error) {
	keyword := p.previous()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{
		Expr:    value,
		Keyword: keyword,
	}, nil
}

func (p *parser) parseExpressionStmt() (Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expr: expr}, nil
}

func (p *parser) parseBlock() ([]Stmt, error) {
	p.depth++
	defer func() { p.depth-- }()
	var stmts []Stmt
	for !p.check(TokenRightBrace) && !p.atEnd() {
		if stmt := p.parseDeclarationOrRecover(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.expect(TokenRightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) parseCondition(keyword string) (Expr, error) {
	if _, err := p.expect(TokenLeftParen, "Expect '(' after '"+keyword+"'."); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *parser) parseIfStmt() (Stmt, error) {
	keyword := p.previous()
	cond, err := p.parseCondition(keyword.Lexeme)
	if err != nil {
		return nil, err
	}
	thenBranch, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if p.match(TokenPamwe) {
		elseBranch, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{
		Cond:    cond,
		Then:    thenBranch,
		Else:    elseBranch,
		Keyword: keyword,
	}, nil
}

func (p *parser) parseWhileStmt() (Stmt, error) {
	keyword := p.previous()
	cond, err := p.parseCondition(keyword.Lexeme)
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{
		Cond:    cond,
		Body:    body,
		Keyword: keyword,
	}, nil
}

// parseForStmt desugars chin (init; cond; incr) body into
// { init; apo (cond) { body; incr; } }.
func (p *parser) parseForStmt() (Stmt, error) {
	keyword := p.previous()
	if _, err := p.expect(TokenLeftParen, "Expect '(' after '"+keyword.Lexeme+"'."); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(TokenSemicolon):
	case p.match(TokenCheng):
		init, err = p.parseVarDecl()
	default:
		init, err = p.parseExpressionStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(TokenSemicolon) {
		if cond, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(TokenRightParen) {
		if incr, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenRightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	brace := Token{Type: TokenLeftBrace, Lexeme: "{", Line: keyword.Line}
	if incr != nil {
		body = &BlockStmt{
			Stmts: []Stmt{body, &ExpressionStmt{Expr: incr}},
			Brace: brace,
		}
	}
	if cond == nil {
		cond = &LiteralExpr{
			Value: true,
			Token: Token{Type: TokenChokwadi, Lexeme: "chokwadi", Line: keyword.Line},
		}
	}
	loop := &WhileStmt{
		Cond:    cond,
		Body:    body,
		Keyword: keyword,
	}
	stmts := []Stmt{loop}
	if init != nil {
		stmts = []Stmt{init, loop}
	}
	return &BlockStmt{
		Stmts: stmts,
		Brace: brace,
	}, nil
}

func (p *parser) parseExpression() (Expr, error) {
	return p.parseComma()
}

func (p *parser) parseComma() (Expr, error) {
	left, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	for p.match(TokenComma) {
		op := p.previous()
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
	return left, nil
}

func (p *parser) parseAssignment() (Expr, error) {
	expr, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if !p.match(TokenEqual) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if v, ok := expr.(*VariableExpr); ok {
		return &AssignExpr{
			Name:  v.Name,
			Value: value,
		}, nil
	}
	// Reported without unwinding: the surrounding statement is still valid.
	p.errs = append(p.errs, newTokenError(equals, "Invalid assignment target."))
	return expr, nil
}

func (p *parser) parseConditional() (Expr, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.match(TokenQuestion) {
		return cond, nil
	}
	question := p.previous()
	thenExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon, "Expect ':' after then branch of conditional expression."); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	return &ConditionalExpr{
		Cond:     cond,
		Then:     thenExpr,
		Else:     elseExpr,
		Question: question,
	}, nil
}

func (p *parser) parseLogicalOr() (Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(TokenKana) {
		op := p.previous()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
	return left, nil
}

func (p *parser) parseLogicalAnd() (Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(TokenNe) {
		op := p.previous()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
	return left, nil
}

// parseBinary left-folds operand (op operand)* for the given operators.
func (p *parser) parseBinary(operand func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
	return left, nil
}

func (p *parser) parseEquality() (Expr, error) {
	return p.parseBinary(p.parseComparison, TokenBangEqual, TokenEqualEqual)
}

func (p *parser) parseComparison() (Expr, error) {
	return p.parseBinary(p.parseTerm, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

func (p *parser) parseTerm() (Expr, error) {
	return p.parseBinary(p.parseFactor, TokenMinus, TokenPlus)
}

func (p *parser) parseFactor() (Expr, error) {
	return p.parseBinary(p.parseUnary, TokenSlash, TokenStar)
}

func (p *parser) parseUnary() (Expr, error) {
	if p.match(TokenBang, TokenMinus) {
		op := p.previous()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{
			Op:    op,
			Right: right,
		}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenKunyepa:
		p.advance()
		return &LiteralExpr{Value: false, Token: tok}, nil
	case TokenChokwadi:
		p.advance()
		return &LiteralExpr{Value: true, Token: tok}, nil
	case TokenHapana:
		p.advance()
		return &LiteralExpr{Value: nil, Token: tok}, nil
	case TokenNumber, TokenString:
		p.advance()
		return &LiteralExpr{Value: tok.Literal, Token: tok}, nil
	case TokenIdentifier:
		p.advance()
		return &VariableExpr{Name: tok}, nil
	case TokenLeftParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{
			Inner: inner,
			Paren: tok,
		}, nil
	default:
		return nil, newTokenError(tok, "Expect expression.")
	}
}
