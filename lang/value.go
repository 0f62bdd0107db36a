package lang

import (
	"fmt"
	"math"
	"strconv"
)

// ValueType enumerates the runtime value categories.
type ValueType int

const (
	TypeNil ValueType = iota
	TypeBool
	TypeNumber
	TypeString
)

func (t ValueType) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Value represents any runtime object in the interpreter. The zero Value
// is nil.
type Value struct {
	Type    ValueType
	payload interface{}
}

// Nil is the singleton nil value.
var Nil = Value{Type: TypeNil}

// BoolValue returns the boolean Value equivalent.
func BoolValue(b bool) Value {
	return Value{Type: TypeBool, payload: b}
}

// NumberValue constructs a number Value.
func NumberValue(f float64) Value {
	return Value{Type: TypeNumber, payload: f}
}

// StringValue constructs a string Value.
func StringValue(s string) Value {
	return Value{Type: TypeString, payload: s}
}

// FromLiteral converts a literal carried by the AST into a Value.
func FromLiteral(lit interface{}) (Value, error) {
	switch v := lit.(type) {
	case nil:
		return Nil, nil
	case bool:
		return BoolValue(v), nil
	case float64:
		return NumberValue(v), nil
	case string:
		return StringValue(v), nil
	default:
		return Nil, fmt.Errorf("unsupported literal %T", lit)
	}
}

func (v Value) Bool() bool {
	if b, ok := v.payload.(bool); ok {
		return b
	}
	return false
}

func (v Value) Number() float64 {
	if f, ok := v.payload.(float64); ok {
		return f
	}
	return 0
}

func (v Value) Str() string {
	if s, ok := v.payload.(string); ok {
		return s
	}
	return ""
}

// IsTruthy reports whether v counts as true: only nil and kunyepa are false.
func IsTruthy(v Value) bool {
	switch v.Type {
	case TypeNil:
		return false
	case TypeBool:
		return v.Bool()
	default:
		return true
	}
}

// Equal compares values of the same type; values of different types are
// never equal.
func Equal(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeNil:
		return true
	case TypeBool:
		return a.Bool() == b.Bool()
	case TypeNumber:
		return a.Number() == b.Number()
	case TypeString:
		return a.Str() == b.Str()
	default:
		return false
	}
}

// String returns the textual form used by dhinda and by text concatenation.
func (v Value) String() string {
	switch v.Type {
	case TypeNil:
		return "hapana"
	case TypeBool:
		if v.Bool() {
			return "chokwadi"
		}
		return "kunyepa"
	case TypeNumber:
		return formatNumber(v.Number())
	case TypeString:
		return v.Str()
	default:
		return "<unknown>"
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
