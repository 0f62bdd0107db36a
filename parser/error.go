package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a lexical or syntax error tied to a source line.
type Error struct {
	Line    int
	Where   string // "", " at end" or " at 'lexeme'"
	Message string

	// Incomplete marks errors caused by input ending mid-construct.
	Incomplete bool
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Where == "" {
		return fmt.Sprintf("[Line %d] Error : %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[Line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

func newLexError(line int, msg string) *Error {
	return &Error{Line: line, Message: msg}
}

func newTokenError(tok Token, msg string) *Error {
	if tok.Type == TokenEOF {
		return &Error{
			Line:       tok.Line,
			Where:      " at end",
			Message:    msg,
			Incomplete: true,
		}
	}
	return &Error{
		Line:    tok.Line,
		Where:   fmt.Sprintf(" at '%s'", tok.Lexeme),
		Message: msg,
	}
}

// ErrorList collects the errors found while scanning and parsing one source.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns nil for an empty list, otherwise the list itself.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// IsIncomplete reports whether the supplied error represents incomplete input.
func IsIncomplete(err error) bool {
	var list ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			if e.Incomplete {
				return true
			}
		}
		return false
	}
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Incomplete
	}
	return false
}
