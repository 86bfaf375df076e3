package program

import (
	"fmt"
	"strings"
)

// FrameKind identifies which frame a variable reference addresses.
type FrameKind int

const (
	GF FrameKind = iota // global frame
	LF                  // top local frame
	TF                  // temporary frame
)

func (f FrameKind) String() string {
	switch f {
	case GF:
		return "GF"
	case LF:
		return "LF"
	case TF:
		return "TF"
	default:
		return fmt.Sprintf("FRAME(%d)", int(f))
	}
}

// VarRef is a parsed variable operand such as GF@counter.
type VarRef struct {
	Frame FrameKind
	Name  string
}

func (v VarRef) String() string {
	return v.Frame.String() + "@" + v.Name
}

// ParseVar splits a variable operand into its frame and name
func ParseVar(text string) (VarRef, error) {
	prefix, name, ok := strings.Cut(strings.TrimSpace(text), "@")
	if !ok {
		return VarRef{}, fmt.Errorf("variable %q has no frame prefix", text)
	}

	var frame FrameKind
	switch prefix {
	case "GF":
		frame = GF
	case "LF":
		frame = LF
	case "TF":
		frame = TF
	default:
		return VarRef{}, fmt.Errorf("variable %q has unknown frame %q", text, prefix)
	}

	if !IsIdentifier(name) {
		return VarRef{}, fmt.Errorf("variable %q has invalid name", text)
	}

	return VarRef{Frame: frame, Name: name}, nil
}
