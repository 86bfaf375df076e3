package program

import (
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Validate checks every instruction against its opcode signature and literal syntax.
// All problems are collected; the returned error is a *multierror.Error of *LoadError.
func Validate(prog Program) error {
	var result *multierror.Error

	for _, ins := range prog {
		if err := validateInstruction(ins); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func validateInstruction(ins Instruction) error {
	slots, ok := ins.Op.Signature()
	if !ok {
		return Errorf(ExitBadStructure, ins.Order, "unknown opcode %q", ins.Op)
	}

	if len(ins.Args) != len(slots) {
		return Errorf(ExitBadStructure, ins.Order, "%s expects %d operands, got %d", ins.Op, len(slots), len(ins.Args))
	}

	for n, slot := range slots {
		arg := ins.Args[n]
		if !slot.Accepts(arg.Kind) {
			return Errorf(ExitBadStructure, ins.Order, "%s operand %d: %s not allowed where %s is expected", ins.Op, n+1, arg.Kind, slot)
		}
		if err := validateArg(arg); err != nil {
			return Errorf(ExitBadStructure, ins.Order, "%s operand %d: %v", ins.Op, n+1, err)
		}
	}

	return nil
}

func validateArg(a Arg) error {
	switch a.Kind {
	case KindVar:
		_, err := ParseVar(a.Text)
		return err
	case KindInt:
		_, err := ParseInt(a.Text)
		return err
	case KindBool:
		if a.Text != "true" && a.Text != "false" {
			return Errorf(ExitBadStructure, 0, "invalid bool literal %q", a.Text)
		}
	case KindLabel:
		if !IsIdentifier(a.Text) {
			return Errorf(ExitBadStructure, 0, "invalid label %q", a.Text)
		}
	case KindType:
		if !TypeNames[a.Text] {
			return Errorf(ExitBadStructure, 0, "invalid type %q", a.Text)
		}
	case KindString, KindNil:
	default:
		return Errorf(ExitBadStructure, 0, "unknown operand type %q", a.Kind)
	}
	return nil
}

// ParseInt parses a base-10 int literal with an optional sign
func ParseInt(text string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, Errorf(ExitBadStructure, 0, "invalid int literal %q", text)
	}
	return n, nil
}
