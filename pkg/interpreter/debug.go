package interpreter

import (
	"encoding/json"
	"fmt"

	"github.com/hokaccha/go-prettyjson"
)

// Snapshot is the machine state reported by BREAK.
type Snapshot struct {
	InstructionCounter int              `json:"instruction_counter"`
	Order              int              `json:"order"`
	Steps              int              `json:"steps"`
	DataStack          []Value          `json:"data_stack"`
	CallStack          []int            `json:"call_stack"`
	GlobalFrame        map[string]Value `json:"global_frame"`
	LocalFrame         map[string]Value `json:"local_frame"`
	LocalDepth         int              `json:"local_frames"`
	TemporaryFrame     map[string]Value `json:"temporary_frame"`
}

// Snapshot captures the current machine state
func (i *Interpreter) Snapshot() Snapshot {
	s := Snapshot{
		InstructionCounter: i.ip,
		Steps:              i.steps,
		DataStack:          i.data.Array(),
		CallStack:          i.calls.Array(),
		GlobalFrame:        i.frames.Global().Vars(),
		LocalDepth:         i.frames.LocalDepth(),
	}
	if i.ip >= 0 && i.ip < len(i.pb) {
		s.Order = i.pb[i.ip].Order
	}
	if f := i.frames.Local(); f != nil {
		s.LocalFrame = f.Vars()
	}
	if f := i.frames.Temp(); f != nil {
		s.TemporaryFrame = f.Vars()
	}
	return s
}

// writeSnapshot renders the snapshot as JSON to the diagnostic writer
func (i *Interpreter) writeSnapshot() error {
	var (
		data []byte
		err  error
	)
	if i.color {
		data, err = prettyjson.Marshal(i.Snapshot())
	} else {
		data, err = json.MarshalIndent(i.Snapshot(), "", "  ")
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(i.errOut, string(data))
	return err
}
