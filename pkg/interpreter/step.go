package interpreter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"ippvm/pkg/program"
)

// Exec runs a program with the default step function, stdin/stdout/stderr
// and returns the code requested by EXIT.
func Exec(pb program.Program, opts ...Option) (int, error) {
	it, err := NewInterpreter(pb, opts...)
	if err != nil {
		return 0, err
	}
	if err := it.Run(); err != nil {
		return 0, err
	}
	return it.ExitCode(), nil
}

// coreStep is the main single-step execution function
// it returns (halted, error).
func coreStep(i *Interpreter) (bool, error) {
	pc := i.PC()
	if pc < 0 || pc >= len(i.pb) {
		// halt when PC runs past the last instruction
		return true, nil
	}

	in := i.pb[pc]
	args := in.Args
	if slots, ok := in.Op.Signature(); ok && len(args) != len(slots) {
		return false, fail(StructureError, "%s expects %d operands, got %d", in.Op, len(slots), len(args))
	}

	switch in.Op {
	case program.OpLabel:
		// registered by buildLabels

	case program.OpMove:
		vals, err := i.operands(args[1])
		if err != nil {
			return false, err
		}
		if err := i.store(args[0], vals[0]); err != nil {
			return false, err
		}

	case program.OpCreateFrame:
		i.frames.CreateTemp()

	case program.OpPushFrame:
		if err := i.frames.PushTemp(); err != nil {
			return false, err
		}

	case program.OpPopFrame:
		if err := i.frames.PopLocal(); err != nil {
			return false, err
		}

	case program.OpDefVar:
		ref, err := varRef(args[0])
		if err != nil {
			return false, err
		}
		if err := i.frames.Declare(ref); err != nil {
			return false, err
		}

	case program.OpCall:
		target, err := i.label(args[0].Text)
		if err != nil {
			return false, err
		}
		i.calls.Push(pc)
		i.SetPC(target)
		return false, nil

	case program.OpReturn:
		addr, err := i.calls.Pop()
		if err != nil {
			return false, fail(MissingValueError, "no function to return from")
		}
		i.SetPC(addr + 1)
		return false, nil

	case program.OpPushS:
		vals, err := i.operands(args[0])
		if err != nil {
			return false, err
		}
		i.data.Push(vals[0])

	case program.OpPopS:
		v, err := i.data.Pop()
		if err != nil {
			return false, fail(MissingValueError, "no data to pop")
		}
		if err := i.store(args[0], v); err != nil {
			return false, err
		}

	case program.OpAdd, program.OpSub, program.OpMul, program.OpIDiv:
		vals, err := i.operands(args[1], args[2])
		if err != nil {
			return false, err
		}
		res, err := evalArithmetic(in.Op, vals[0], vals[1])
		if err != nil {
			return false, err
		}
		if err := i.store(args[0], res); err != nil {
			return false, err
		}

	case program.OpLt, program.OpGt, program.OpEq, program.OpAnd, program.OpOr:
		vals, err := i.operands(args[1], args[2])
		if err != nil {
			return false, err
		}
		res, err := evalLogic(in.Op, vals[0], vals[1])
		if err != nil {
			return false, err
		}
		if err := i.store(args[0], res); err != nil {
			return false, err
		}

	case program.OpNot:
		vals, err := i.operands(args[1])
		if err != nil {
			return false, err
		}
		if vals[0].Kind != KindBool {
			return false, fail(OperandTypeError, "NOT expects bool, got %s", vals[0].Kind)
		}
		if err := i.store(args[0], newBool(!vals[0].Bool)); err != nil {
			return false, err
		}

	case program.OpInt2Char:
		vals, err := i.operands(args[1])
		if err != nil {
			return false, err
		}
		res, err := int2char(vals[0])
		if err != nil {
			return false, err
		}
		if err := i.store(args[0], res); err != nil {
			return false, err
		}

	case program.OpStri2Int, program.OpGetChar:
		vals, err := i.operands(args[1], args[2])
		if err != nil {
			return false, err
		}
		r, err := runeAt(vals[0], vals[1])
		if err != nil {
			return false, err
		}
		res := newInt(int64(r))
		if in.Op == program.OpGetChar {
			res = newString(string(r))
		}
		if err := i.store(args[0], res); err != nil {
			return false, err
		}

	case program.OpSetChar:
		vals, err := i.operands(args[0], args[1], args[2])
		if err != nil {
			return false, err
		}
		res, err := setChar(vals[0], vals[1], vals[2])
		if err != nil {
			return false, err
		}
		if err := i.store(args[0], res); err != nil {
			return false, err
		}

	case program.OpConcat:
		vals, err := i.operands(args[1], args[2])
		if err != nil {
			return false, err
		}
		if vals[0].Kind != KindString || vals[1].Kind != KindString {
			return false, fail(OperandTypeError, "CONCAT expects string and string, got %s and %s", vals[0].Kind, vals[1].Kind)
		}
		if err := i.store(args[0], newString(vals[0].Str+vals[1].Str)); err != nil {
			return false, err
		}

	case program.OpStrLen:
		vals, err := i.operands(args[1])
		if err != nil {
			return false, err
		}
		if vals[0].Kind != KindString {
			return false, fail(OperandTypeError, "STRLEN expects string, got %s", vals[0].Kind)
		}
		if err := i.store(args[0], newInt(int64(utf8.RuneCountInString(vals[0].Str)))); err != nil {
			return false, err
		}

	case program.OpType:
		v, err := i.resolve(args[1])
		if err != nil {
			return false, err
		}
		if err := i.store(args[0], newString(v.Kind.String())); err != nil {
			return false, err
		}

	case program.OpRead:
		res, err := i.read(args[1])
		if err != nil {
			return false, err
		}
		if err := i.store(args[0], res); err != nil {
			return false, err
		}

	case program.OpWrite:
		vals, err := i.operands(args[0])
		if err != nil {
			return false, err
		}
		if _, err := io.WriteString(i.out, vals[0].String()); err != nil {
			return false, &Error{Kind: InternalError, Msg: "write failed", Err: err}
		}

	case program.OpDPrint:
		vals, err := i.operands(args[0])
		if err != nil {
			return false, err
		}
		fmt.Fprintln(i.errOut, vals[0].String())

	case program.OpBreak:
		if err := i.writeSnapshot(); err != nil {
			return false, &Error{Kind: InternalError, Msg: "break snapshot failed", Err: err}
		}

	case program.OpJump:
		target, err := i.label(args[0].Text)
		if err != nil {
			return false, err
		}
		i.SetPC(target)
		return false, nil

	case program.OpJumpIfEq, program.OpJumpIfNeq:
		vals, err := i.operands(args[1], args[2])
		if err != nil {
			return false, err
		}
		if !equalTypes(vals[0], vals[1]) {
			return false, fail(OperandTypeError, "%s cannot compare %s with %s", in.Op, vals[0].Kind, vals[1].Kind)
		}
		target, err := i.label(args[0].Text)
		if err != nil {
			return false, err
		}
		if equal(vals[0], vals[1]) == (in.Op == program.OpJumpIfEq) {
			i.SetPC(target)
			return false, nil
		}

	case program.OpExit:
		vals, err := i.operands(args[0])
		if err != nil {
			return false, err
		}
		if vals[0].Kind != KindInt {
			return false, fail(OperandTypeError, "EXIT expects int, got %s", vals[0].Kind)
		}
		if vals[0].I64 < 0 || vals[0].I64 > 49 {
			return false, fail(OperandValueError, "exit code %d out of range 0-49", vals[0].I64)
		}
		i.exitCode = int(vals[0].I64)
		return true, nil

	default:
		return false, fail(StructureError, "unknown opcode %q", in.Op)
	}

	i.SetPC(pc + 1)
	return false, nil
}

// evalArithmetic evaluates ADD, SUB, MUL and IDIV on two ints
func evalArithmetic(op program.Opcode, a, b Value) (Value, error) {
	if a.Kind != KindInt || b.Kind != KindInt {
		return Value{}, fail(OperandTypeError, "%s expects int and int, got %s and %s", op, a.Kind, b.Kind)
	}

	switch op {
	case program.OpAdd:
		return newInt(a.I64 + b.I64), nil
	case program.OpSub:
		return newInt(a.I64 - b.I64), nil
	case program.OpMul:
		return newInt(a.I64 * b.I64), nil
	case program.OpIDiv:
		if b.I64 == 0 {
			return Value{}, fail(OperandValueError, "division by zero")
		}
		return newInt(floorDiv(a.I64, b.I64)), nil
	}

	return Value{}, fmt.Errorf("unreachable for op: %s", op)
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// evalLogic evaluates the relational and boolean instructions
func evalLogic(op program.Opcode, a, b Value) (Value, error) {
	switch op {
	case program.OpLt, program.OpGt:
		if a.Kind != b.Kind || a.Kind == KindNil {
			return Value{}, fail(OperandTypeError, "%s cannot order %s and %s", op, a.Kind, b.Kind)
		}
		if op == program.OpLt {
			return newBool(less(a, b)), nil
		}
		return newBool(less(b, a)), nil

	case program.OpEq:
		if !equalTypes(a, b) {
			return Value{}, fail(OperandTypeError, "EQ cannot compare %s with %s", a.Kind, b.Kind)
		}
		return newBool(equal(a, b)), nil

	case program.OpAnd, program.OpOr:
		if a.Kind != KindBool || b.Kind != KindBool {
			return Value{}, fail(OperandTypeError, "%s expects bool and bool, got %s and %s", op, a.Kind, b.Kind)
		}
		if op == program.OpAnd {
			return newBool(a.Bool && b.Bool), nil
		}
		return newBool(a.Bool || b.Bool), nil
	}

	return Value{}, fmt.Errorf("unreachable for op: %s", op)
}

func int2char(v Value) (Value, error) {
	if v.Kind != KindInt {
		return Value{}, fail(OperandTypeError, "INT2CHAR expects int, got %s", v.Kind)
	}
	if v.I64 < 0 || v.I64 > unicode.MaxRune || !utf8.ValidRune(rune(v.I64)) {
		return Value{}, fail(StringError, "%d is not a valid code point", v.I64)
	}
	return newString(string(rune(v.I64))), nil
}

// runeAt returns the character of s at position idx, shared by GETCHAR and STRI2INT
func runeAt(s, idx Value) (rune, error) {
	if s.Kind != KindString || idx.Kind != KindInt {
		return 0, fail(OperandTypeError, "expected string and int, got %s and %s", s.Kind, idx.Kind)
	}
	runes := []rune(s.Str)
	if idx.I64 < 0 || idx.I64 >= int64(len(runes)) {
		return 0, fail(StringError, "index %d out of range for string of length %d", idx.I64, len(runes))
	}
	return runes[idx.I64], nil
}

// setChar replaces the character of dst at idx with the first character of src
func setChar(dst, idx, src Value) (Value, error) {
	if dst.Kind != KindString || idx.Kind != KindInt || src.Kind != KindString {
		return Value{}, fail(OperandTypeError, "SETCHAR expects string, int and string, got %s, %s and %s", dst.Kind, idx.Kind, src.Kind)
	}
	runes := []rune(dst.Str)
	if idx.I64 < 0 || idx.I64 >= int64(len(runes)) {
		return Value{}, fail(StringError, "index %d out of range for string of length %d", idx.I64, len(runes))
	}
	if src.Str == "" {
		return Value{}, fail(StringError, "empty replacement string")
	}
	r, _ := utf8.DecodeRuneInString(src.Str)
	runes[idx.I64] = r
	return newString(string(runes)), nil
}

// read consumes one input line and converts it to the requested type.
// Exhausted input and unparsable ints yield nil.
func (i *Interpreter) read(typ program.Arg) (Value, error) {
	if typ.Kind != program.KindType || !program.TypeNames[typ.Text] {
		return Value{}, fail(StructureError, "READ cannot read type %q", typ.Text)
	}

	line, err := i.in.ReadLine()
	if errors.Is(err, io.EOF) {
		return nilValue, nil
	}
	if err != nil {
		return Value{}, &Error{Kind: InternalError, Msg: "reading input failed", Err: err}
	}

	switch typ.Text {
	case "int":
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return nilValue, nil
		}
		return newInt(n), nil
	case "bool":
		return newBool(strings.EqualFold(line, "true")), nil
	case "string":
		return newString(line), nil
	default:
		return nilValue, nil
	}
}
