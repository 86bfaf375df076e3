package program

import "fmt"

// Exit codes reported by the program loaders before execution starts
const (
	ExitBadParams    = 10 // bad or missing command-line parameters
	ExitOpenInput    = 11 // source or input file cannot be opened
	ExitBadHeader    = 21 // textual source lacks the .IPPcode23 header
	ExitBadOpcode    = 22 // textual source names an unknown opcode
	ExitLexical      = 23 // textual source has a lexical or syntax error
	ExitMalformed    = 31 // XML is not well-formed
	ExitBadStructure = 32 // XML structure or instruction shape is wrong
)

// LoadError is a failure detected while reading or validating a program.
type LoadError struct {
	Code  int    // process exit code
	Order int    // order attribute or source line, 0 when unknown
	Msg   string // human readable description
}

func (e *LoadError) Error() string {
	if e.Order > 0 {
		return fmt.Sprintf("instruction %d: %s", e.Order, e.Msg)
	}
	return e.Msg
}

// ExitCode returns the process exit code for the error
func (e *LoadError) ExitCode() int {
	return e.Code
}

// Errorf creates a LoadError with a formatted message
func Errorf(code, order int, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Order: order, Msg: fmt.Sprintf(format, args...)}
}
