// Package loader reads IPPcode23 programs from their XML representation and
// input files for the READ instruction.
package loader

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"ippvm/pkg/program"
)

// Language is the value the root element's language attribute must carry.
const Language = "IPPcode23"

type xmlProgram struct {
	XMLName      xml.Name
	Attrs        []xml.Attr       `xml:",any,attr"`
	Instructions []xmlInstruction `xml:",any"`
}

type xmlInstruction struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Args    []xmlArg   `xml:",any"`
}

type xmlArg struct {
	XMLName  xml.Name
	Attrs    []xml.Attr  `xml:",any,attr"`
	Text     string      `xml:",chardata"`
	Children []xmlNested `xml:",any"`
}

type xmlNested struct {
	XMLName xml.Name
}

var argTagRegex = regexp.MustCompile(`^arg([1-3])$`)

// LoadFile reads and validates a program from the XML file at path
func LoadFile(path string) (program.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, program.Errorf(program.ExitOpenInput, 0, "cannot read source %s: %v", path, err)
	}
	return Load(bytes.NewReader(data))
}

// Load reads and validates a program from an XML document
func Load(r io.Reader) (program.Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, program.Errorf(program.ExitOpenInput, 0, "cannot read source: %v", err)
	}

	if err := checkWellFormed(data); err != nil {
		return nil, err
	}

	var doc xmlProgram
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, program.Errorf(program.ExitMalformed, 0, "XML is not well-formed: %v", err)
	}

	prog, err := convert(doc)
	if err != nil {
		return nil, err
	}

	if err := program.Validate(prog); err != nil {
		return nil, err
	}

	return prog, nil
}

// checkWellFormed walks every token so that trailing garbage and second roots are rejected
func checkWellFormed(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	depth, roots := 0, 0

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return program.Errorf(program.ExitMalformed, 0, "XML is not well-formed: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return program.Errorf(program.ExitMalformed, 0, "XML is not well-formed: text outside the root element")
			}
		}
	}

	if roots != 1 {
		return program.Errorf(program.ExitMalformed, 0, "XML is not well-formed: expected one root element, found %d", roots)
	}
	return nil
}

func convert(doc xmlProgram) (program.Program, error) {
	if doc.XMLName.Local != "program" {
		return nil, program.Errorf(program.ExitBadStructure, 0, "root element is %q, expected \"program\"", doc.XMLName.Local)
	}
	lang, ok := attr(doc.Attrs, "language")
	if !ok || !strings.EqualFold(strings.TrimSpace(lang), Language) {
		return nil, program.Errorf(program.ExitBadStructure, 0, "program language must be %s", Language)
	}

	prog := make(program.Program, 0, len(doc.Instructions))
	seen := make(map[int]bool)

	for _, xi := range doc.Instructions {
		ins, err := convertInstruction(xi)
		if err != nil {
			return nil, err
		}
		if seen[ins.Order] {
			return nil, program.Errorf(program.ExitBadStructure, ins.Order, "duplicate order")
		}
		seen[ins.Order] = true
		prog = append(prog, ins)
	}

	slices.SortFunc(prog, func(a, b program.Instruction) int {
		return a.Order - b.Order
	})

	return prog, nil
}

func convertInstruction(xi xmlInstruction) (program.Instruction, error) {
	if xi.XMLName.Local != "instruction" {
		return program.Instruction{}, program.Errorf(program.ExitBadStructure, 0, "unexpected element %q", xi.XMLName.Local)
	}

	rawOrder, ok := attr(xi.Attrs, "order")
	if !ok {
		return program.Instruction{}, program.Errorf(program.ExitBadStructure, 0, "instruction without order")
	}
	order, err := strconv.Atoi(strings.TrimSpace(rawOrder))
	if err != nil || order <= 0 || strings.ContainsAny(strings.TrimSpace(rawOrder), "+-") {
		return program.Instruction{}, program.Errorf(program.ExitBadStructure, 0, "invalid order %q", rawOrder)
	}

	opcode, ok := attr(xi.Attrs, "opcode")
	if !ok {
		return program.Instruction{}, program.Errorf(program.ExitBadStructure, order, "instruction without opcode")
	}
	op, _ := program.Lookup(opcode)

	slots := [3]*program.Arg{}
	for _, xa := range xi.Args {
		m := argTagRegex.FindStringSubmatch(xa.XMLName.Local)
		if m == nil {
			return program.Instruction{}, program.Errorf(program.ExitBadStructure, order, "unexpected element %q", xa.XMLName.Local)
		}
		n := int(m[1][0] - '1')
		if slots[n] != nil {
			return program.Instruction{}, program.Errorf(program.ExitBadStructure, order, "duplicate %s", xa.XMLName.Local)
		}
		if len(xa.Children) > 0 {
			return program.Instruction{}, program.Errorf(program.ExitBadStructure, order, "%s has nested elements", xa.XMLName.Local)
		}

		typ, ok := attr(xa.Attrs, "type")
		if !ok {
			return program.Instruction{}, program.Errorf(program.ExitBadStructure, order, "%s without type", xa.XMLName.Local)
		}

		arg := program.Arg{Kind: program.ArgKind(strings.TrimSpace(typ)), Text: xa.Text}
		if arg.Kind != program.KindString {
			arg.Text = strings.TrimSpace(arg.Text)
		}
		slots[n] = &arg
	}

	ins := program.Instruction{Order: order, Op: op}
	for n, a := range slots {
		if a == nil {
			for _, rest := range slots[n:] {
				if rest != nil {
					return program.Instruction{}, program.Errorf(program.ExitBadStructure, order, "arg%d missing", n+1)
				}
			}
			break
		}
		ins.Args = append(ins.Args, *a)
	}

	return ins, nil
}

func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
