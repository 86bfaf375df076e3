package interpreter

import (
	"errors"
	"io"
	"os"

	"ippvm/pkg/program"
	"ippvm/pkg/stack"
)

// Interpreter executes an IPPcode23 program
type Interpreter struct {
	pb program.Program // program block (list of instructions)
	ip int             // instruction pointer (index into pb)

	frames *Frames             // GF, LF stack and TF
	data   *stack.Stack[Value] // data stack for PUSHS/POPS
	calls  *stack.Stack[int]   // return addresses for CALL/RETURN
	labels map[string]int      // label name -> PB index

	in     LineReader // input for READ
	out    io.Writer  // output writer for WRITE
	errOut io.Writer  // diagnostic writer for DPRINT and BREAK
	color  bool       // colourise BREAK snapshots

	// Exec hook, defaults to coreStep
	execStep func(*Interpreter) (halted bool, err error)

	maxSteps int // maximum steps (0 = unlimited)
	steps    int // steps executed
	exitCode int // code requested by EXIT, 0 otherwise
}

type Option func(*Interpreter)

// WithWriter sets the output writer for WRITE
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithErrWriter sets the diagnostic writer for DPRINT and BREAK
func WithErrWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.errOut = w }
}

// WithInput sets the line source consumed by READ
func WithInput(r LineReader) Option {
	return func(i *Interpreter) { i.in = r }
}

// WithInputLines feeds READ from pre-loaded lines
func WithInputLines(lines []string) Option {
	return func(i *Interpreter) { i.in = NewLineSlice(lines) }
}

// WithMaxSteps sets a maximum number of interpreter steps before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithColor enables coloured BREAK snapshots
func WithColor(enabled bool) Option {
	return func(i *Interpreter) { i.color = enabled }
}

// NewInterpreter creates a new Interpreter instance. It fails if the program
// defines a label twice.
func NewInterpreter(pb program.Program, opts ...Option) (*Interpreter, error) {
	it := &Interpreter{}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}
	if it.errOut == nil {
		it.errOut = os.Stderr
	}
	if it.in == nil {
		it.in = NewScannerReader(os.Stdin)
	}
	if it.execStep == nil {
		it.execStep = coreStep
	}

	if err := it.Load(pb); err != nil {
		return nil, err
	}

	return it, nil
}

// Load replaces the current program block with a new one, resetting state
func (i *Interpreter) Load(pb program.Program) error {
	labels, err := buildLabels(pb)
	if err != nil {
		return err
	}

	i.pb = append(program.Program(nil), pb...)
	i.labels = labels
	i.Reset()

	return nil
}

// Reset clears runtime state (frames, stacks, IP, counters)
func (i *Interpreter) Reset() {
	i.ip = 0
	i.frames = NewFrames()
	i.data = stack.New[Value]()
	i.calls = stack.New[int]()
	i.steps = 0
	i.exitCode = 0
}

// Program returns the active PB
func (i *Interpreter) Program() program.Program {
	return i.pb
}

// Output returns the output writer used for WRITE
func (i *Interpreter) Output() io.Writer {
	return i.out
}

// Frames returns the frame state
func (i *Interpreter) Frames() *Frames {
	return i.frames
}

// DataStack returns a copy of the data stack, bottom first
func (i *Interpreter) DataStack() []Value {
	return i.data.Array()
}

// CallStack returns a copy of the call stack, bottom first
func (i *Interpreter) CallStack() []int {
	return i.calls.Array()
}

// Labels returns the number of registered labels
func (i *Interpreter) Labels() int {
	return len(i.labels)
}

// Steps returns the number of executed instructions
func (i *Interpreter) Steps() int {
	return i.steps
}

// ExitCode returns the code requested by EXIT, or 0
func (i *Interpreter) ExitCode() int {
	return i.exitCode
}

// SetExecStep installs the core step function
func (i *Interpreter) SetExecStep(fn func(*Interpreter) (bool, error)) {
	i.execStep = fn
}

// Step executes a single instruction, returning (halted, error)
func (i *Interpreter) Step() (bool, error) {
	if i.execStep == nil {
		return false, ErrNotImplemented
	}

	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return false, &Error{Kind: InternalError, IP: i.ip, Msg: ErrMaxStepsExceeded.Error(), Err: ErrMaxStepsExceeded}
	}

	pc := i.ip
	halted, err := i.execStep(i)
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Op == "" && pc < len(i.pb) {
			e.Op = i.pb[pc].Op
			e.IP = pc
			e.Order = i.pb[pc].Order
		}
		return false, err
	}

	if pc < len(i.pb) {
		i.steps++
	}

	return halted, nil
}

// Run executes until halt or error
func (i *Interpreter) Run() error {
	for {
		halted, err := i.Step()
		if err != nil {
			return err
		}

		if halted {
			return nil
		}
	}
}

// PC returns the current instruction pointer
func (i *Interpreter) PC() int {
	return i.ip
}

// SetPC sets the current instruction pointer
func (i *Interpreter) SetPC(pc int) {
	i.ip = pc
}
