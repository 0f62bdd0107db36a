package lang

import (
	"errors"
	"fmt"

	"github.com/sergev/shona/parser"
)

var (
	// ErrUndefinedVariable reports a lookup or assignment of an unbound name.
	ErrUndefinedVariable = errors.New("undefined variable")
	// ErrRedefinition reports a second definition of a name in one scope.
	ErrRedefinition = errors.New("variable already defined in this scope")
	// ErrType reports an operand of the wrong runtime type.
	ErrType = errors.New("type error")
	// ErrDivisionByZero reports a numeric division with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// RuntimeError is a failure raised while executing a program, tied to the
// token of the failing operation.
type RuntimeError struct {
	Token   parser.Token
	Message string
	Err     error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s [line %d]", e.Message, e.Token.Line)
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newRuntimeError(tok parser.Token, kind error, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
		Err:     kind,
	}
}

// bindingError converts an Env failure into a RuntimeError at name.
func bindingError(name parser.Token, err error) error {
	switch {
	case errors.Is(err, ErrUndefinedVariable):
		return newRuntimeError(name, err, "Undefined variable '%s'.", name.Lexeme)
	case errors.Is(err, ErrRedefinition):
		return newRuntimeError(name, err, "Variable '%s' is already defined in this scope.", name.Lexeme)
	default:
		return &RuntimeError{Token: name, Message: err.Error(), Err: err}
	}
}
