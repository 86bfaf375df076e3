package interpreter

import (
	"strconv"
	"strings"

	"ippvm/pkg/program"
)

// resolve turns an operand into its concrete value. Variable operands may yield an unset value.
func (i *Interpreter) resolve(a program.Arg) (Value, error) {
	switch a.Kind {
	case program.KindVar:
		ref, err := varRef(a)
		if err != nil {
			return Value{}, err
		}
		return i.frames.Get(ref)

	case program.KindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(a.Text), 10, 64)
		if err != nil {
			return Value{}, fail(StructureError, "invalid int literal %q", a.Text)
		}
		return newInt(n), nil

	case program.KindBool:
		switch a.Text {
		case "true":
			return newBool(true), nil
		case "false":
			return newBool(false), nil
		default:
			return Value{}, fail(StructureError, "invalid bool literal %q", a.Text)
		}

	case program.KindString:
		return newString(decodeEscapes(a.Text)), nil

	case program.KindNil:
		return nilValue, nil

	default:
		return Value{}, fail(StructureError, "operand %s is not a symbol", a)
	}
}

// operands resolves every argument, then rejects unset values. Frame and
// existence errors take precedence over uninitialized ones.
func (i *Interpreter) operands(args ...program.Arg) ([]Value, error) {
	vals := make([]Value, len(args))
	for n, a := range args {
		v, err := i.resolve(a)
		if err != nil {
			return nil, err
		}
		vals[n] = v
	}

	for n, v := range vals {
		if !v.IsSet() {
			return nil, fail(MissingValueError, "variable %s is not initialized", args[n].Text)
		}
	}

	return vals, nil
}

// store writes v into the variable named by a
func (i *Interpreter) store(a program.Arg, v Value) error {
	ref, err := varRef(a)
	if err != nil {
		return err
	}
	return i.frames.Set(ref, v)
}

func varRef(a program.Arg) (program.VarRef, error) {
	if a.Kind != program.KindVar {
		return program.VarRef{}, fail(StructureError, "operand %s is not a variable", a)
	}
	ref, err := program.ParseVar(a.Text)
	if err != nil {
		return program.VarRef{}, &Error{Kind: StructureError, Msg: err.Error(), Err: err}
	}
	return ref, nil
}
