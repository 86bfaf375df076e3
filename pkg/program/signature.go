package program

import (
	"regexp"
	"strings"
)

// Slot is the class of operand an instruction accepts at a given position.
type Slot int

const (
	SlotVar   Slot = iota // variable reference
	SlotSymb              // variable reference or typed literal
	SlotLabel             // label name
	SlotType              // type name for READ
)

func (s Slot) String() string {
	switch s {
	case SlotVar:
		return "var"
	case SlotSymb:
		return "symb"
	case SlotLabel:
		return "label"
	case SlotType:
		return "type"
	default:
		return "?"
	}
}

// Accepts reports whether an operand of kind k may occupy the slot
func (s Slot) Accepts(k ArgKind) bool {
	switch s {
	case SlotVar:
		return k == KindVar
	case SlotSymb:
		return k == KindVar || k == KindInt || k == KindBool || k == KindString || k == KindNil
	case SlotLabel:
		return k == KindLabel
	case SlotType:
		return k == KindType
	default:
		return false
	}
}

var signatures = map[Opcode][]Slot{
	OpCreateFrame: {},
	OpPushFrame:   {},
	OpPopFrame:    {},
	OpReturn:      {},
	OpBreak:       {},

	OpDefVar: {SlotVar},
	OpPopS:   {SlotVar},

	OpPushS:  {SlotSymb},
	OpWrite:  {SlotSymb},
	OpExit:   {SlotSymb},
	OpDPrint: {SlotSymb},

	OpCall:  {SlotLabel},
	OpLabel: {SlotLabel},
	OpJump:  {SlotLabel},

	OpMove:     {SlotVar, SlotSymb},
	OpInt2Char: {SlotVar, SlotSymb},
	OpStrLen:   {SlotVar, SlotSymb},
	OpType:     {SlotVar, SlotSymb},
	OpNot:      {SlotVar, SlotSymb},

	OpRead: {SlotVar, SlotType},

	OpAdd:      {SlotVar, SlotSymb, SlotSymb},
	OpSub:      {SlotVar, SlotSymb, SlotSymb},
	OpMul:      {SlotVar, SlotSymb, SlotSymb},
	OpIDiv:     {SlotVar, SlotSymb, SlotSymb},
	OpLt:       {SlotVar, SlotSymb, SlotSymb},
	OpGt:       {SlotVar, SlotSymb, SlotSymb},
	OpEq:       {SlotVar, SlotSymb, SlotSymb},
	OpAnd:      {SlotVar, SlotSymb, SlotSymb},
	OpOr:       {SlotVar, SlotSymb, SlotSymb},
	OpStri2Int: {SlotVar, SlotSymb, SlotSymb},
	OpConcat:   {SlotVar, SlotSymb, SlotSymb},
	OpGetChar:  {SlotVar, SlotSymb, SlotSymb},
	OpSetChar:  {SlotVar, SlotSymb, SlotSymb},

	OpJumpIfEq:  {SlotLabel, SlotSymb, SlotSymb},
	OpJumpIfNeq: {SlotLabel, SlotSymb, SlotSymb},
}

// Signature returns the operand slots of op
func (op Opcode) Signature() ([]Slot, bool) {
	s, ok := signatures[op]
	return s, ok
}

// Lookup maps an opcode name, case-insensitively, to its Opcode
func Lookup(name string) (Opcode, bool) {
	op := Opcode(strings.ToUpper(strings.TrimSpace(name)))
	_, ok := signatures[op]
	return op, ok
}

// Opcodes returns every known opcode
func Opcodes() []Opcode {
	out := make([]Opcode, 0, len(signatures))
	for op := range signatures {
		out = append(out, op)
	}
	return out
}

// TypeNames lists the operands READ accepts as its type argument
var TypeNames = map[string]bool{
	"int":    true,
	"bool":   true,
	"string": true,
	"nil":    true,
}

var identRegex = regexp.MustCompile(`^[A-Za-z_\-$&%*!?][A-Za-z0-9_\-$&%*!?]*$`)

// IsIdentifier reports whether s is a valid variable or label name
func IsIdentifier(s string) bool {
	return identRegex.MatchString(s)
}
