package program_test

import (
	"errors"
	"testing"

	"ippvm/pkg/program"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		input    string
		expected program.Opcode
		ok       bool
	}{
		{"MOVE", program.OpMove, true},
		{"move", program.OpMove, true},
		{" JumpIfNeq ", program.OpJumpIfNeq, true},
		{"STR2INT", "STR2INT", false},
		{"", "", false},
	}

	for _, test := range tests {
		op, ok := program.Lookup(test.input)
		require.Equal(t, test.ok, ok, test.input)
		require.Equal(t, test.expected, op, test.input)
	}
}

func TestEveryOpcodeHasSignature(t *testing.T) {
	require.Len(t, program.Opcodes(), 35)
	for _, op := range program.Opcodes() {
		slots, ok := op.Signature()
		require.True(t, ok, op)
		require.LessOrEqual(t, len(slots), 3, op)
	}
}

func TestParseVar(t *testing.T) {
	ref, err := program.ParseVar("LF@counter")
	require.NoError(t, err)
	require.Equal(t, program.VarRef{Frame: program.LF, Name: "counter"}, ref)
	require.Equal(t, "LF@counter", ref.String())

	for _, bad := range []string{"counter", "XF@a", "GF@", "GF@1abc"} {
		_, err := program.ParseVar(bad)
		require.Error(t, err, bad)
	}
}

func TestInstructionString(t *testing.T) {
	ins := program.New(program.OpAdd, program.Var("GF@x"), program.Int(1), program.Str("a b"))
	require.Equal(t, "ADD GF@x int@1 string@a b", ins.String())
}

func TestValidateCollectsAllErrors(t *testing.T) {
	prog := program.Number(
		program.New(program.OpDefVar, program.Var("GF@x")),
		program.New(program.OpAdd, program.Var("GF@x"), program.Int(1)),
		program.New(program.OpWrite, program.Label("x")),
		program.New("FOO"),
		program.New(program.OpRead, program.Var("GF@x"), program.Type("float")),
		program.New(program.OpMove, program.Var("GF@x"), program.Arg{Kind: program.KindInt, Text: "12a"}),
	)

	err := program.Validate(prog)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 5)

	var lerr *program.LoadError
	require.True(t, errors.As(err, &lerr))
	require.Equal(t, program.ExitBadStructure, lerr.ExitCode())
	require.Equal(t, 2, lerr.Order)
}

func TestValidateAcceptsWellFormedProgram(t *testing.T) {
	prog := program.Number(
		program.New(program.OpDefVar, program.Var("GF@x")),
		program.New(program.OpRead, program.Var("GF@x"), program.Type("int")),
		program.New(program.OpJumpIfEq, program.Label("end"), program.Var("GF@x"), program.Nil()),
		program.New(program.OpWrite, program.Bool(true)),
		program.New(program.OpLabel, program.Label("end")),
	)

	require.NoError(t, program.Validate(prog))
	require.Equal(t, []string{"end"}, prog.Labels())
}

func TestIsLiteral(t *testing.T) {
	require.True(t, program.Int(1).IsLiteral())
	require.True(t, program.Str("").IsLiteral())
	require.True(t, program.Bool(false).IsLiteral())
	require.True(t, program.Nil().IsLiteral())
	require.False(t, program.Var("GF@a").IsLiteral())
	require.False(t, program.Label("a").IsLiteral())
	require.False(t, program.Type("int").IsLiteral())
}
