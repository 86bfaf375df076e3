package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"ippvm/pkg/parser"
	"ippvm/pkg/program"
)

func TestParse(t *testing.T) {
	src := `# factorial fragment
.IPPcode23
defvar GF@n   # counter
MOVE GF@n int@5
LABEL $loop
JUMPIFEQ end GF@n int@0
WRITE string@n\032=\032
READ GF@line string
PUSHS nil@nil
CREATEFRAME
LABEL end
`

	prog, err := parser.Parse(src)
	require.NoError(t, err)
	require.NoError(t, program.Validate(prog))

	expected := program.Number(
		program.New(program.OpDefVar, program.Var("GF@n")),
		program.New(program.OpMove, program.Var("GF@n"), program.Int(5)),
		program.New(program.OpLabel, program.Label("$loop")),
		program.New(program.OpJumpIfEq, program.Label("end"), program.Var("GF@n"), program.Int(0)),
		program.New(program.OpWrite, program.Str(`n\032=\032`)),
		program.New(program.OpRead, program.Var("GF@line"), program.Type("string")),
		program.New(program.OpPushS, program.Nil()),
		program.New(program.OpCreateFrame),
		program.New(program.OpLabel, program.Label("end")),
	)
	require.Equal(t, expected, prog)
}

func TestParseEmptyProgram(t *testing.T) {
	prog, err := parser.Parse("\n\n.ippcode23\n# nothing here\n")
	require.NoError(t, err)
	require.Empty(t, prog)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code int
	}{
		{"empty input", "", program.ExitBadHeader},
		{"missing header", "WRITE int@1\n", program.ExitBadHeader},
		{"misspelled header", ".IPPcode22\n", program.ExitBadHeader},
		{"header with operand", ".IPPcode23 WRITE\n", program.ExitBadHeader},
		{"unknown opcode", ".IPPcode23\nFOO GF@x\n", program.ExitBadOpcode},
		{"operand as opcode", ".IPPcode23\nGF@x\n", program.ExitBadOpcode},
		{"second header", ".IPPcode23\n.IPPcode23\n", program.ExitBadOpcode},
		{"too few operands", ".IPPcode23\nMOVE GF@x\n", program.ExitLexical},
		{"too many operands", ".IPPcode23\nBREAK int@1\n", program.ExitLexical},
		{"constant as var", ".IPPcode23\nDEFVAR int@1\n", program.ExitLexical},
		{"var as label", ".IPPcode23\nJUMP GF@x\n", program.ExitLexical},
		{"bad type", ".IPPcode23\nREAD GF@x float\n", program.ExitLexical},
		{"bad escape", ".IPPcode23\nWRITE string@a\\1\n", program.ExitLexical},
		{"bad bool", ".IPPcode23\nWRITE bool@TRUE\n", program.ExitLexical},
		{"int overflow", ".IPPcode23\nWRITE int@99999999999999999999\n", program.ExitLexical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.src)
			require.Error(t, err)

			var le *program.LoadError
			require.True(t, errors.As(err, &le))
			require.Equal(t, tt.code, le.ExitCode())
		})
	}
}

func TestParseErrorLocation(t *testing.T) {
	_, err := parser.Parse(".IPPcode23\nWRITE int@1\n  JUMP int@2\n")
	require.EqualError(t, err, `line 3, column 8: "int@2" is not a valid label operand`)
}

func TestHasHeader(t *testing.T) {
	require.True(t, parser.HasHeader("# comment\n\n  .IPPcode23\nBREAK\n"))
	require.True(t, parser.HasHeader(".ippcode23"))
	require.False(t, parser.HasHeader(`<?xml version="1.0"?><program language="IPPcode23"/>`))
	require.False(t, parser.HasHeader("WRITE int@1\n"))
	require.False(t, parser.HasHeader(""))
}
