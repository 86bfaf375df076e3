package interpreter

import (
	"ippvm/pkg/program"
	"ippvm/pkg/stack"
)

// Frame is a variable scope mapping names to values.
type Frame struct {
	vars  map[string]Value
	order []string // declaration order, for snapshots
}

// NewFrame creates an empty frame
func NewFrame() *Frame {
	return &Frame{vars: make(map[string]Value)}
}

// Declare adds name with an unset value; it reports false if name already exists
func (f *Frame) Declare(name string) bool {
	if _, ok := f.vars[name]; ok {
		return false
	}
	f.vars[name] = Value{}
	f.order = append(f.order, name)
	return true
}

// Get returns the value of name and whether it is declared
func (f *Frame) Get(name string) (Value, bool) {
	v, ok := f.vars[name]
	return v, ok
}

// Set overwrites a declared variable; it reports false if name is not declared
func (f *Frame) Set(name string, v Value) bool {
	if _, ok := f.vars[name]; !ok {
		return false
	}
	f.vars[name] = v
	return true
}

// Names returns the declared names in declaration order
func (f *Frame) Names() []string {
	return append([]string(nil), f.order...)
}

// Len returns the number of declared variables
func (f *Frame) Len() int {
	return len(f.order)
}

// Vars returns a copy of the frame contents
func (f *Frame) Vars() map[string]Value {
	out := make(map[string]Value, len(f.vars))
	for k, v := range f.vars {
		out[k] = v
	}
	return out
}

// Frames owns the global frame, the local frame stack and the optional temporary frame.
type Frames struct {
	global *Frame
	locals *stack.Stack[*Frame]
	temp   *Frame // nil when no temporary frame exists
}

// NewFrames creates the initial frame state: empty global frame, no local or temporary frame
func NewFrames() *Frames {
	return &Frames{
		global: NewFrame(),
		locals: stack.New[*Frame](),
	}
}

// Global returns the global frame
func (fs *Frames) Global() *Frame {
	return fs.global
}

// Local returns the top local frame, or nil if the local stack is empty
func (fs *Frames) Local() *Frame {
	f, err := fs.locals.Peek()
	if err != nil {
		return nil
	}
	return f
}

// LocalDepth returns the number of frames on the local stack
func (fs *Frames) LocalDepth() int {
	return fs.locals.Size()
}

// Temp returns the temporary frame, or nil if it does not exist
func (fs *Frames) Temp() *Frame {
	return fs.temp
}

func (fs *Frames) frame(kind program.FrameKind) (*Frame, error) {
	switch kind {
	case program.GF:
		return fs.global, nil
	case program.LF:
		if f := fs.Local(); f != nil {
			return f, nil
		}
		return nil, fail(FrameError, "no local frame")
	case program.TF:
		if fs.temp != nil {
			return fs.temp, nil
		}
		return nil, fail(FrameError, "no temporary frame")
	default:
		return nil, fail(FrameError, "unknown frame %s", kind)
	}
}

// Declare creates an unset variable in its frame
func (fs *Frames) Declare(ref program.VarRef) error {
	f, err := fs.frame(ref.Frame)
	if err != nil {
		return err
	}
	if !f.Declare(ref.Name) {
		return fail(SemanticError, "variable %s already defined", ref)
	}
	return nil
}

// Get reads a variable; the returned value may be unset
func (fs *Frames) Get(ref program.VarRef) (Value, error) {
	f, err := fs.frame(ref.Frame)
	if err != nil {
		return Value{}, err
	}
	v, ok := f.Get(ref.Name)
	if !ok {
		return Value{}, fail(VariableError, "variable %s does not exist", ref)
	}
	return v, nil
}

// Set overwrites a declared variable
func (fs *Frames) Set(ref program.VarRef, v Value) error {
	f, err := fs.frame(ref.Frame)
	if err != nil {
		return err
	}
	if !f.Set(ref.Name, v) {
		return fail(VariableError, "variable %s does not exist", ref)
	}
	return nil
}

// CreateTemp replaces the temporary frame with a fresh empty one
func (fs *Frames) CreateTemp() {
	fs.temp = NewFrame()
}

// PushTemp moves the temporary frame onto the local stack
func (fs *Frames) PushTemp() error {
	if fs.temp == nil {
		return fail(FrameError, "no temporary frame to push")
	}
	fs.locals.Push(fs.temp)
	fs.temp = nil
	return nil
}

// PopLocal moves the top local frame into the temporary frame slot
func (fs *Frames) PopLocal() error {
	f, err := fs.locals.Pop()
	if err != nil {
		return fail(FrameError, "no local frame to pop")
	}
	fs.temp = f
	return nil
}
