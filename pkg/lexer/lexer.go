// Package lexer splits IPPcode23 source text into tokens.
package lexer

import "strings"

type Lexer struct {
	input    string // input string to be tokenized
	length   int    // length of the input string
	position int    // current position in the input string
	line     int    // current line number for error reporting
	column   int    // current column number for error reporting
}

// Create a new lexer instance
func NewLexer(s string) *Lexer {
	return &Lexer{
		input:    s,
		length:   len(s),
		position: 0,
		line:     1,
		column:   1,
	}
}

// Get the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	// End of input
	if l.position >= l.length {
		return NewToken(EOF, "", "", l.currentPosition())
	}

	if l.input[l.position] == '\n' {
		tok := NewToken(NEWLINE, "\n", "", l.currentPosition())
		l.advance(1)
		return tok
	}

	// Regex match the first token it sees from the remaining input from current position to the end
	remaining := l.input[l.position:]
	tokenType, lexeme, matched := MatchToken(remaining)
	pos := l.currentPosition()

	if !matched {
		l.advance(len(lexeme))
		return NewToken(ILLEGAL, lexeme, "", pos)
	}

	literal := lexeme
	if tokenType.IsConstant() {
		literal = lexeme[strings.IndexByte(lexeme, '@')+1:]
	}

	l.advance(len(lexeme))

	return NewToken(tokenType, lexeme, literal, pos)
}

// Skip whitespace and comments, but not newlines
func (l *Lexer) skipWhitespace() {
	for l.position < l.length {
		tokenType, lexeme, matched := MatchToken(l.input[l.position:])
		if !matched || tokenType != EOF || lexeme == "" {
			return
		}
		l.advance(len(lexeme))
	}
}

// Advance the lexer position by n bytes
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.position >= l.length {
			break
		}

		if l.input[l.position] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}

		l.position++
	}
}

// Get the current position of the lexer
func (l *Lexer) currentPosition() Position {
	return Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}
