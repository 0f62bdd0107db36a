package lang

import (
	"fmt"
	"io"

	"github.com/sergev/shona/parser"
)

// Evaluator executes parsed programs by walking the AST.
type Evaluator struct {
	Global *Env
	out    io.Writer
}

// NewEvaluator constructs an evaluator rooted at a new global environment.
// Printed values are written to out, one per line.
func NewEvaluator(out io.Writer) *Evaluator {
	if out == nil {
		out = io.Discard
	}
	return &Evaluator{
		Global: NewEnv(nil),
		out:    out,
	}
}

// Run executes a program in the global environment.
func (ev *Evaluator) Run(prog *parser.Program) error {
	if prog == nil {
		return nil
	}
	return ev.Execute(prog.Stmts, ev.Global)
}

// Execute runs statements in order within env. The first runtime error
// stops execution and is returned.
func (ev *Evaluator) Execute(stmts []parser.Stmt, env *Env) error {
	if env == nil {
		env = ev.Global
	}
	for _, stmt := range stmts {
		if err := ev.exec(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaluator) exec(stmt parser.Stmt, env *Env) error {
	switch s := stmt.(type) {
	case *parser.ExpressionStmt:
		_, err := ev.Evaluate(s.Expr, env)
		return err
	case *parser.PrintStmt:
		val, err := ev.Evaluate(s.Expr, env)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(ev.out, val.String()); err != nil {
			return fmt.Errorf("print: %w", err)
		}
		return nil
	case *parser.VarStmt:
		val := Nil
		if s.Init != nil {
			v, err := ev.Evaluate(s.Init, env)
			if err != nil {
				return err
			}
			val = v
		}
		if err := env.Define(s.Name.Lexeme, val); err != nil {
			return bindingError(s.Name, err)
		}
		return nil
	case *parser.BlockStmt:
		return ev.Execute(s.Stmts, NewEnv(env))
	case *parser.IfStmt:
		cond, err := ev.Evaluate(s.Cond, env)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return ev.exec(s.Then, env)
		}
		if s.Else != nil {
			return ev.exec(s.Else, env)
		}
		return nil
	case *parser.WhileStmt:
		for {
			cond, err := ev.Evaluate(s.Cond, env)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := ev.exec(s.Body, env); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported statement %T", stmt)
	}
}

// Evaluate computes the value of expr within env.
func (ev *Evaluator) Evaluate(expr parser.Expr, env *Env) (Value, error) {
	if env == nil {
		env = ev.Global
	}
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		return FromLiteral(e.Value)
	case *parser.GroupingExpr:
		return ev.Evaluate(e.Inner, env)
	case *parser.VariableExpr:
		val, err := env.Get(e.Name.Lexeme)
		if err != nil {
			return Nil, bindingError(e.Name, err)
		}
		return val, nil
	case *parser.AssignExpr:
		val, err := ev.Evaluate(e.Value, env)
		if err != nil {
			return Nil, err
		}
		if err := env.Assign(e.Name.Lexeme, val); err != nil {
			return Nil, bindingError(e.Name, err)
		}
		return val, nil
	case *parser.LogicalExpr:
		left, err := ev.Evaluate(e.Left, env)
		if err != nil {
			return Nil, err
		}
		if e.Op.Type == parser.TokenKana {
			if IsTruthy(left) {
				return left, nil
			}
		} else if !IsTruthy(left) {
			return left, nil
		}
		return ev.Evaluate(e.Right, env)
	case *parser.ConditionalExpr:
		cond, err := ev.Evaluate(e.Cond, env)
		if err != nil {
			return Nil, err
		}
		if IsTruthy(cond) {
			return ev.Evaluate(e.Then, env)
		}
		return ev.Evaluate(e.Else, env)
	case *parser.UnaryExpr:
		return ev.evalUnary(e, env)
	case *parser.BinaryExpr:
		return ev.evalBinary(e, env)
	default:
		return Nil, fmt.Errorf("unsupported expression %T", expr)
	}
}

func (ev *Evaluator) evalUnary(e *parser.UnaryExpr, env *Env) (Value, error) {
	right, err := ev.Evaluate(e.Right, env)
	if err != nil {
		return Nil, err
	}
	switch e.Op.Type {
	case parser.TokenBang:
		return BoolValue(!IsTruthy(right)), nil
	case parser.TokenMinus:
		if right.Type != TypeNumber {
			return Nil, newRuntimeError(e.Op, ErrType, "Operand must be a number.")
		}
		return NumberValue(-right.Number()), nil
	default:
		return Nil, newRuntimeError(e.Op, ErrType, "Unknown unary operator '%s'.", e.Op.Lexeme)
	}
}

func (ev *Evaluator) evalBinary(e *parser.BinaryExpr, env *Env) (Value, error) {
	left, err := ev.Evaluate(e.Left, env)
	if err != nil {
		return Nil, err
	}
	right, err := ev.Evaluate(e.Right, env)
	if err != nil {
		return Nil, err
	}

	switch e.Op.Type {
	case parser.TokenComma:
		return right, nil
	case parser.TokenEqualEqual:
		return BoolValue(Equal(left, right)), nil
	case parser.TokenBangEqual:
		return BoolValue(!Equal(left, right)), nil
	case parser.TokenPlus:
		return add(left, right), nil
	}

	if left.Type != TypeNumber || right.Type != TypeNumber {
		return Nil, newRuntimeError(e.Op, ErrType, "Operands must be numbers.")
	}
	a, b := left.Number(), right.Number()
	switch e.Op.Type {
	case parser.TokenMinus:
		return NumberValue(a - b), nil
	case parser.TokenStar:
		return NumberValue(a * b), nil
	case parser.TokenSlash:
		if b == 0 {
			return Nil, newRuntimeError(e.Op, ErrDivisionByZero, "Division by zero.")
		}
		return NumberValue(a / b), nil
	case parser.TokenGreater:
		return BoolValue(a > b), nil
	case parser.TokenGreaterEqual:
		return BoolValue(a >= b), nil
	case parser.TokenLess:
		return BoolValue(a < b), nil
	case parser.TokenLessEqual:
		return BoolValue(a <= b), nil
	default:
		return Nil, newRuntimeError(e.Op, ErrType, "Unknown binary operator '%s'.", e.Op.Lexeme)
	}
}

// add implements '+': numbers add, and text concatenates with text,
// numbers or booleans on either side. Every other pairing has no rule and
// yields Nil.
func add(left, right Value) Value {
	switch {
	case left.Type == TypeNumber && right.Type == TypeNumber:
		return NumberValue(left.Number() + right.Number())
	case left.Type == TypeString && concatenable(right):
		return StringValue(left.Str() + right.String())
	case right.Type == TypeString && concatenable(left):
		return StringValue(left.String() + right.Str())
	default:
		return Nil
	}
}

func concatenable(v Value) bool {
	switch v.Type {
	case TypeString, TypeNumber, TypeBool:
		return true
	default:
		return false
	}
}
