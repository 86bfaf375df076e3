package program

import (
	"fmt"
	"strings"
)

type Opcode string

// List of IPPcode23 operations
const (
	OpMove        Opcode = "MOVE"
	OpCreateFrame Opcode = "CREATEFRAME"
	OpPushFrame   Opcode = "PUSHFRAME"
	OpPopFrame    Opcode = "POPFRAME"
	OpDefVar      Opcode = "DEFVAR"
	OpCall        Opcode = "CALL"
	OpReturn      Opcode = "RETURN"
	OpPushS       Opcode = "PUSHS"
	OpPopS        Opcode = "POPS"
	OpAdd         Opcode = "ADD"
	OpSub         Opcode = "SUB"
	OpMul         Opcode = "MUL"
	OpIDiv        Opcode = "IDIV"
	OpLt          Opcode = "LT"
	OpGt          Opcode = "GT"
	OpEq          Opcode = "EQ"
	OpAnd         Opcode = "AND"
	OpOr          Opcode = "OR"
	OpNot         Opcode = "NOT"
	OpInt2Char    Opcode = "INT2CHAR"
	OpStri2Int    Opcode = "STRI2INT"
	OpRead        Opcode = "READ"
	OpWrite       Opcode = "WRITE"
	OpConcat      Opcode = "CONCAT"
	OpStrLen      Opcode = "STRLEN"
	OpGetChar     Opcode = "GETCHAR"
	OpSetChar     Opcode = "SETCHAR"
	OpType        Opcode = "TYPE"
	OpLabel       Opcode = "LABEL"
	OpJump        Opcode = "JUMP"
	OpJumpIfEq    Opcode = "JUMPIFEQ"
	OpJumpIfNeq   Opcode = "JUMPIFNEQ"
	OpExit        Opcode = "EXIT"
	OpDPrint      Opcode = "DPRINT"
	OpBreak       Opcode = "BREAK"
)

type ArgKind string

// Operand kinds as they appear in the type attribute of an argument
const (
	KindVar    ArgKind = "var"
	KindInt    ArgKind = "int"
	KindBool   ArgKind = "bool"
	KindString ArgKind = "string"
	KindNil    ArgKind = "nil"
	KindLabel  ArgKind = "label"
	KindType   ArgKind = "type"
)

// Arg is a single operand: a variable reference, a typed literal, a label or a type name.
type Arg struct {
	Kind ArgKind `yaml:"type" json:"type"`
	Text string  `yaml:"value" json:"value"`
}

// IsLiteral reports whether the argument is a typed constant
func (a Arg) IsLiteral() bool {
	switch a.Kind {
	case KindInt, KindBool, KindString, KindNil:
		return true
	default:
		return false
	}
}

// String returns the operand in source form, e.g. GF@x or int@5
func (a Arg) String() string {
	switch a.Kind {
	case KindVar, KindLabel, KindType:
		return a.Text
	default:
		return string(a.Kind) + "@" + a.Text
	}
}

type Instruction struct {
	Order int    `yaml:"order" json:"order"` // order attribute of the source document
	Op    Opcode `yaml:"opcode" json:"opcode"`
	Args  []Arg  `yaml:"args,omitempty" json:"args,omitempty"`
}

// Arg returns the n-th operand (0-based) or the zero Arg if it is missing
func (i Instruction) Arg(n int) Arg {
	if n < 0 || n >= len(i.Args) {
		return Arg{}
	}
	return i.Args[n]
}

// String returns the instruction in source form
func (i Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(string(i.Op))
	for _, a := range i.Args {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	return sb.String()
}

// Program is an ordered, immutable list of instructions addressed by a 0-based index.
type Program []Instruction

// Labels returns the names of all LABEL instructions in program order
func (p Program) Labels() []string {
	var out []string
	for _, ins := range p {
		if ins.Op == OpLabel {
			out = append(out, ins.Arg(0).Text)
		}
	}
	return out
}

// New builds an instruction from an opcode and its operands
func New(op Opcode, args ...Arg) Instruction {
	return Instruction{Op: op, Args: args}
}

// Var, Int, Bool, Str, Nil, Label and Type build operands for hand-written programs.
func Var(ref string) Arg    { return Arg{Kind: KindVar, Text: ref} }
func Int(n int64) Arg       { return Arg{Kind: KindInt, Text: fmt.Sprintf("%d", n)} }
func Str(s string) Arg      { return Arg{Kind: KindString, Text: s} }
func Nil() Arg              { return Arg{Kind: KindNil, Text: "nil"} }
func Label(name string) Arg { return Arg{Kind: KindLabel, Text: name} }
func Type(name string) Arg  { return Arg{Kind: KindType, Text: name} }

func Bool(b bool) Arg {
	if b {
		return Arg{Kind: KindBool, Text: "true"}
	}
	return Arg{Kind: KindBool, Text: "false"}
}

// Number assigns 1-based order attributes to a hand-written program
func Number(ins ...Instruction) Program {
	prog := make(Program, len(ins))
	for n, in := range ins {
		in.Order = n + 1
		prog[n] = in
	}
	return prog
}
