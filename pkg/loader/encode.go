package loader

import (
	"encoding/xml"
	"fmt"
	"io"

	"ippvm/pkg/program"
)

type encodedProgram struct {
	XMLName      xml.Name             `xml:"program"`
	Language     string               `xml:"language,attr"`
	Instructions []encodedInstruction `xml:"instruction"`
}

type encodedInstruction struct {
	Order  int          `xml:"order,attr"`
	Opcode string       `xml:"opcode,attr"`
	Args   []encodedArg `xml:",any"`
}

type encodedArg struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}

// Encode writes prog as an indented IPPcode23 XML document
func Encode(w io.Writer, prog program.Program) error {
	doc := encodedProgram{Language: Language}

	for _, ins := range prog {
		ei := encodedInstruction{Order: ins.Order, Opcode: string(ins.Op)}
		for n, a := range ins.Args {
			ei.Args = append(ei.Args, encodedArg{
				XMLName: xml.Name{Local: fmt.Sprintf("arg%d", n+1)},
				Type:    string(a.Kind),
				Text:    a.Text,
			})
		}
		doc.Instructions = append(doc.Instructions, ei)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}
