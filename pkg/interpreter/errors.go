package interpreter

import (
	"errors"
	"fmt"

	"ippvm/pkg/program"
)

// ErrorKind classifies a fatal runtime error and fixes its exit code.
type ErrorKind int

const (
	StructureError    ErrorKind = iota + 1 // malformed operand text or READ type
	SemanticError                          // undefined label, variable redefinition
	OperandTypeError                       // operand types do not fit the instruction
	VariableError                          // variable not declared in its frame
	FrameError                             // frame does not exist
	MissingValueError                      // uninitialized variable or empty stack
	OperandValueError                      // division by zero, bad EXIT code
	StringError                            // bad string index or code point
	InternalError                          // interpreter limit or I/O failure
)

var kindCodes = map[ErrorKind]int{
	StructureError:    32,
	SemanticError:     52,
	OperandTypeError:  53,
	VariableError:     54,
	FrameError:        55,
	MissingValueError: 56,
	OperandValueError: 57,
	StringError:       58,
	InternalError:     99,
}

// ExitCode returns the process exit code bound to the kind.
func (k ErrorKind) ExitCode() int {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return 99
}

func (k ErrorKind) String() string {
	switch k {
	case StructureError:
		return "structure error"
	case SemanticError:
		return "semantic error"
	case OperandTypeError:
		return "operand type error"
	case VariableError:
		return "undefined variable"
	case FrameError:
		return "missing frame"
	case MissingValueError:
		return "missing value"
	case OperandValueError:
		return "invalid operand value"
	case StringError:
		return "invalid string operation"
	case InternalError:
		return "internal error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a fatal runtime error. Op, IP and Order are filled in by Step.
type Error struct {
	Kind  ErrorKind
	Op    program.Opcode
	IP    int
	Order int
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s at %s (order %d): %s", e.Kind, e.Op, e.Order, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for the error.
func (e *Error) ExitCode() int {
	return e.Kind.ExitCode()
}

func fail(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err, or 0 if err is not a runtime error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

var (
	ErrNotImplemented   = errors.New("interpreter step function not linked")
	ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
)
