package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ippvm/pkg/lexer"
)

func collect(input string) []lexer.Token {
	l := lexer.NewLexer(input)

	var toks []lexer.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == lexer.EOF {
			return toks
		}
	}
}

func types(toks []lexer.Token) []lexer.TokenType {
	out := make([]lexer.TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestTokens(t *testing.T) {
	input := ".IPPcode23\n" +
		"DEFVAR GF@counter\n" +
		"MOVE GF@counter int@-10\n" +
		"JUMPIFEQ end GF@counter nil@nil\n" +
		"WRITE string@ahoj\\032světe\n" +
		"READ LF@x bool\n" +
		"PUSHS bool@true"

	expected := []lexer.TokenType{
		lexer.HEADER, lexer.NEWLINE,
		lexer.WORD, lexer.VAR, lexer.NEWLINE,
		lexer.WORD, lexer.VAR, lexer.INT, lexer.NEWLINE,
		lexer.WORD, lexer.WORD, lexer.VAR, lexer.NIL, lexer.NEWLINE,
		lexer.WORD, lexer.STRING, lexer.NEWLINE,
		lexer.WORD, lexer.VAR, lexer.WORD, lexer.NEWLINE,
		lexer.WORD, lexer.BOOL,
		lexer.EOF,
	}

	require.Equal(t, expected, types(collect(input)))
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input   string
		typ     lexer.TokenType
		literal string
	}{
		{"int@42", lexer.INT, "42"},
		{"int@+7", lexer.INT, "+7"},
		{"bool@false", lexer.BOOL, "false"},
		{"nil@nil", lexer.NIL, "nil"},
		{"string@", lexer.STRING, ""},
		{`string@a\035b`, lexer.STRING, `a\035b`},
		{"string@žluťoučký", lexer.STRING, "žluťoučký"},
		{"TF@_tmp-1", lexer.VAR, "TF@_tmp-1"},
		{"$label&*", lexer.WORD, "$label&*"},
		{".ippCODE23", lexer.HEADER, ".ippCODE23"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := lexer.NewLexer(tt.input).NextToken()
			require.Equal(t, tt.typ, tok.Type)
			require.Equal(t, tt.literal, tok.Literal)
			require.Equal(t, tt.input, tok.Lexeme)
		})
	}
}

func TestIllegal(t *testing.T) {
	tests := []string{
		"int@12abc",
		"int@",
		"bool@yes",
		"nil@null",
		`string@a\1b`,
		`string@back\slash`,
		"GF@",
		"XF@x",
		"GF@1x",
		"1abc",
		".IPPcode23x",
		"float@1.5",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			toks := collect(input + " WRITE")
			require.Equal(t, lexer.ILLEGAL, toks[0].Type)
			require.Equal(t, input, toks[0].Lexeme)
			require.Equal(t, lexer.WORD, toks[1].Type)
		})
	}
}

func TestComments(t *testing.T) {
	input := `# leading comment
.IPPcode23 # header comment
   # indented comment
CREATEFRAME#glued comment
`
	expected := []lexer.TokenType{
		lexer.NEWLINE,
		lexer.HEADER, lexer.NEWLINE,
		lexer.NEWLINE,
		lexer.WORD, lexer.NEWLINE,
		lexer.EOF,
	}

	require.Equal(t, expected, types(collect(input)))
}

func TestPositions(t *testing.T) {
	l := lexer.NewLexer(".IPPcode23\n  MOVE GF@a int@1")

	require.Equal(t, lexer.Position{Line: 1, Column: 1, Offset: 0}, l.NextToken().Pos)
	l.NextToken()

	move := l.NextToken()
	require.Equal(t, lexer.WORD, move.Type)
	require.Equal(t, 2, move.Pos.Line)
	require.Equal(t, 3, move.Pos.Column)

	require.Equal(t, 8, l.NextToken().Pos.Column)
}
