package parser

import (
	"fmt"

	"ippvm/pkg/lexer"
	"ippvm/pkg/program"
)

// errorf reports an error at the current token
func (p *Parser) errorf(code int, format string, args ...any) *program.LoadError {
	return errorAt(p.currentToken.Pos, code, format, args...)
}

// errorAt records a parsing error with location
func errorAt(pos lexer.Position, code int, format string, args ...any) *program.LoadError {
	msg := fmt.Sprintf(format, args...)
	return program.Errorf(code, 0, "line %d, column %d: %s", pos.Line, pos.Column, msg)
}
