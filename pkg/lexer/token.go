package lexer

import (
	"fmt"
)

type TokenType int

type Token struct {
	Type    TokenType // Type of the token
	Lexeme  string    // Actual string from source code
	Literal string    // Value part of a constant (after '@'), lexeme otherwise
	Pos     Position  // Position in source code
}

type Position struct {
	Line   int
	Column int
	Offset int
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, literal string, pos Position) Token {
	return Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Pos:     pos,
	}
}

const (
	EOF     TokenType = iota // end of input
	NEWLINE                  // end of line

	HEADER // .IPPcode23
	VAR    // GF@x, LF@x, TF@x
	INT    // int@42
	BOOL   // bool@true
	STRING // string@text
	NIL    // nil@nil
	WORD   // opcode, label or type name

	ILLEGAL // illegal token
)

var tokenNames = map[TokenType]string{
	EOF:     "$",
	NEWLINE: "newline",
	HEADER:  "header",
	VAR:     "var",
	INT:     "int",
	BOOL:    "bool",
	STRING:  "string",
	NIL:     "nil",
	WORD:    "word",
	ILLEGAL: "illegal",
}

// String returns a string representation of the Token
func (t Token) String() string {
	return fmt.Sprintf("T_{%s, %q, %s}", t.Type, t.Lexeme, t.Pos)
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := tokenNames[t]; ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// IsConstant reports whether the token is a typed constant
func (t TokenType) IsConstant() bool {
	switch t {
	case INT, BOOL, STRING, NIL:
		return true
	default:
		return false
	}
}

// String returns a string representation of the Position
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
