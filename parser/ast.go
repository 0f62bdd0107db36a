package parser

// Node represents any AST node tied to a source line.
type Node interface {
	Line() int
}

// Program is the root of a parsed source text.
type Program struct {
	Stmts []Stmt
}

// Stmt represents a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression.
type Expr interface {
	Node
	exprNode()
}

// LiteralExpr is a number, string, boolean or nil literal. Value holds a
// float64, string, bool or nil.
type LiteralExpr struct {
	Value interface{}
	Token Token
}

func (e *LiteralExpr) Line() int { return e.Token.Line }
func (*LiteralExpr) exprNode()   {}

// VariableExpr refers to a binding by name.
type VariableExpr struct {
	Name Token
}

func (e *VariableExpr) Line() int { return e.Name.Line }
func (*VariableExpr) exprNode()   {}

// AssignExpr overwrites an existing binding.
type AssignExpr struct {
	Name  Token
	Value Expr
}

func (e *AssignExpr) Line() int { return e.Name.Line }
func (*AssignExpr) exprNode()   {}

// LogicalExpr is a short-circuiting kana/ne operation.
type LogicalExpr struct {
	Op          Token
	Left, Right Expr
}

func (e *LogicalExpr) Line() int { return e.Op.Line }
func (*LogicalExpr) exprNode()   {}

// BinaryExpr represents infix operator application, including the comma
// operator.
type BinaryExpr struct {
	Op          Token
	Left, Right Expr
}

func (e *BinaryExpr) Line() int { return e.Op.Line }
func (*BinaryExpr) exprNode()   {}

// UnaryExpr represents prefix operator application.
type UnaryExpr struct {
	Op    Token
	Right Expr
}

func (e *UnaryExpr) Line() int { return e.Op.Line }
func (*UnaryExpr) exprNode()   {}

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Inner Expr
	Paren Token
}

func (e *GroupingExpr) Line() int { return e.Paren.Line }
func (*GroupingExpr) exprNode()   {}

// ConditionalExpr is cond ? then : else.
type ConditionalExpr struct {
	Cond, Then, Else Expr
	Question         Token
}

func (e *ConditionalExpr) Line() int { return e.Question.Line }
func (*ConditionalExpr) exprNode()   {}

// ExpressionStmt evaluates an expression for side-effects.
type ExpressionStmt struct {
	Expr Expr
}

func (s *ExpressionStmt) Line() int { return s.Expr.Line() }
func (*ExpressionStmt) stmtNode()   {}

// PrintStmt writes the textual form of a value to the output sink.
type PrintStmt struct {
	Expr    Expr
	Keyword Token
}

func (s *PrintStmt) Line() int { return s.Keyword.Line }
func (*PrintStmt) stmtNode()   {}

// VarStmt declares a binding in the current scope.
type VarStmt struct {
	Name Token
	Init Expr // may be nil
}

func (s *VarStmt) Line() int { return s.Name.Line }
func (*VarStmt) stmtNode()   {}

// BlockStmt is a braced block executed in its own scope.
type BlockStmt struct {
	Stmts []Stmt
	Brace Token
}

func (s *BlockStmt) Line() int { return s.Brace.Line }
func (*BlockStmt) stmtNode()   {}

// IfStmt conditionally executes branches.
type IfStmt struct {
	Cond    Expr
	Then    Stmt
	Else    Stmt // may be nil
	Keyword Token
}

func (s *IfStmt) Line() int { return s.Keyword.Line }
func (*IfStmt) stmtNode()   {}

// WhileStmt repeats while condition is truthy.
type WhileStmt struct {
	Cond    Expr
	Body    Stmt
	Keyword Token
}

func (s *WhileStmt) Line() int { return s.Keyword.Line }
func (*WhileStmt) stmtNode()   {}
