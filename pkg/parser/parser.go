// Package parser assembles IPPcode23 source text into a program.
package parser

import (
	"ippvm/pkg/lexer"
	"ippvm/pkg/program"
)

// Header is the mandatory first line of a source file
const Header = ".IPPcode23"

type Parser struct {
	lexer        *lexer.Lexer    // lexer instance
	currentToken lexer.Token     // current token
	order        int             // order of the last emitted instruction
	prog         program.Program // assembled instructions
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{lexer: l}

	// Initialize current token
	p.nextToken()

	return p
}

// Parse assembles source text into a numbered program
func Parse(src string) (program.Program, error) {
	return NewParser(lexer.NewLexer(src)).Parse()
}

// Parse reads the header and every instruction line. It stops at the first error.
func (p *Parser) Parse() (program.Program, error) {
	p.skipNewlines()

	if p.currentToken.Type != lexer.HEADER {
		return nil, p.errorf(program.ExitBadHeader, "missing or invalid header %s", Header)
	}
	p.nextToken()
	if !p.atLineEnd() {
		return nil, p.errorf(program.ExitBadHeader, "unexpected %q after header", p.currentToken.Lexeme)
	}

	for {
		p.skipNewlines()
		if p.currentToken.Type == lexer.EOF {
			break
		}

		ins, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		p.prog = append(p.prog, ins)
	}

	return p.prog, nil
}

// parseInstruction consumes one line: an opcode followed by its operands
func (p *Parser) parseInstruction() (program.Instruction, error) {
	opTok := p.currentToken
	if opTok.Type != lexer.WORD {
		return program.Instruction{}, p.errorf(program.ExitBadOpcode, "invalid operation code %q", opTok.Lexeme)
	}

	op, ok := program.Lookup(opTok.Lexeme)
	if !ok {
		return program.Instruction{}, p.errorf(program.ExitBadOpcode, "invalid operation code %q", opTok.Lexeme)
	}
	p.nextToken()

	var operands []lexer.Token
	for !p.atLineEnd() {
		operands = append(operands, p.currentToken)
		p.nextToken()
	}

	slots, _ := op.Signature()
	if len(operands) != len(slots) {
		return program.Instruction{}, errorAt(opTok.Pos, program.ExitLexical, "%s expects %d operands, got %d", op, len(slots), len(operands))
	}

	p.order++
	ins := program.Instruction{Order: p.order, Op: op}

	for n, slot := range slots {
		arg, err := operand(slot, operands[n])
		if err != nil {
			return program.Instruction{}, err
		}
		ins.Args = append(ins.Args, arg)
	}

	return ins, nil
}

var constantKinds = map[lexer.TokenType]program.ArgKind{
	lexer.INT:    program.KindInt,
	lexer.BOOL:   program.KindBool,
	lexer.STRING: program.KindString,
	lexer.NIL:    program.KindNil,
}

// operand converts a token into an argument for the given slot
func operand(slot program.Slot, tok lexer.Token) (program.Arg, error) {
	if tok.Type == lexer.ILLEGAL {
		return program.Arg{}, errorAt(tok.Pos, program.ExitLexical, "invalid token %q", tok.Lexeme)
	}

	switch slot {
	case program.SlotVar:
		if tok.Type == lexer.VAR {
			return program.Var(tok.Lexeme), nil
		}
	case program.SlotSymb:
		if tok.Type == lexer.VAR {
			return program.Var(tok.Lexeme), nil
		}
		if kind, ok := constantKinds[tok.Type]; ok {
			if kind == program.KindInt {
				if _, err := program.ParseInt(tok.Literal); err != nil {
					return program.Arg{}, errorAt(tok.Pos, program.ExitLexical, "int literal %q out of range", tok.Literal)
				}
			}
			return program.Arg{Kind: kind, Text: tok.Literal}, nil
		}
	case program.SlotLabel:
		if tok.Type == lexer.WORD {
			return program.Label(tok.Lexeme), nil
		}
	case program.SlotType:
		if tok.Type == lexer.WORD && program.TypeNames[tok.Lexeme] {
			return program.Type(tok.Lexeme), nil
		}
	}

	return program.Arg{}, errorAt(tok.Pos, program.ExitLexical, "%q is not a valid %s operand", tok.Lexeme, slot)
}

// nextToken advances to the next token from the lexer
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

func (p *Parser) skipNewlines() {
	for p.currentToken.Type == lexer.NEWLINE {
		p.nextToken()
	}
}

func (p *Parser) atLineEnd() bool {
	return p.currentToken.Type == lexer.NEWLINE || p.currentToken.Type == lexer.EOF
}

// HasHeader reports whether src is IPPcode23 source text rather than XML
func HasHeader(src string) bool {
	p := NewParser(lexer.NewLexer(src))
	p.skipNewlines()
	return p.currentToken.Type == lexer.HEADER
}
