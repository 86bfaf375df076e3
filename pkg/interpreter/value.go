package interpreter

import (
	"encoding/json"
	"strconv"
)

type ValueKind int

const (
	KindUnset ValueKind = iota // declared but never assigned
	KindInt
	KindBool
	KindString
	KindNil
)

// String returns the type name as produced by the TYPE instruction.
func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNil:
		return "nil"
	default:
		return ""
	}
}

// Value represents a typed scalar held in a variable, on the data stack or in a literal.
type Value struct {
	Kind ValueKind
	I64  int64
	Bool bool
	Str  string
}

// String renders the value the way WRITE prints it.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return v.Str
	default:
		return ""
	}
}

// IsSet reports whether the value has ever been assigned.
func (v Value) IsSet() bool {
	return v.Kind != KindUnset
}

// MarshalJSON encodes the value for debugging snapshots.
func (v Value) MarshalJSON() ([]byte, error) {
	out := map[string]any{"type": v.Kind.String()}
	switch v.Kind {
	case KindInt:
		out["value"] = v.I64
	case KindBool:
		out["value"] = v.Bool
	case KindString:
		out["value"] = v.Str
	case KindNil:
		out["value"] = nil
	}
	return json.Marshal(out)
}

func newInt(i int64) Value {
	return Value{Kind: KindInt, I64: i}
}

func newBool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

func newString(s string) Value {
	return Value{Kind: KindString, Str: s}
}

var nilValue = Value{Kind: KindNil}

// equalTypes reports whether EQ and the conditional jumps accept a and b together.
func equalTypes(a, b Value) bool {
	return a.Kind == b.Kind || a.Kind == KindNil || b.Kind == KindNil
}

// equal compares two values accepted by equalTypes. nil is equal only to nil.
func equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindInt:
		return a.I64 == b.I64
	case KindBool:
		return a.Bool == b.Bool
	case KindString:
		return a.Str == b.Str
	default:
		return true
	}
}

// less orders two values of the same non-nil kind.
func less(a, b Value) bool {
	switch a.Kind {
	case KindInt:
		return a.I64 < b.I64
	case KindBool:
		return !a.Bool && b.Bool
	case KindString:
		return a.Str < b.Str
	default:
		return false
	}
}
