package interpreter

import "ippvm/pkg/program"

// buildLabels maps every LABEL name to its instruction index.
func buildLabels(pb program.Program) (map[string]int, error) {
	labels := make(map[string]int)
	for idx, ins := range pb {
		if ins.Op != program.OpLabel {
			continue
		}
		name := ins.Arg(0).Text
		if _, ok := labels[name]; ok {
			return nil, &Error{Kind: SemanticError, Op: ins.Op, IP: idx, Order: ins.Order, Msg: "label " + name + " already defined"}
		}
		labels[name] = idx
	}
	return labels, nil
}

// label returns the instruction index of name
func (i *Interpreter) label(name string) (int, error) {
	idx, ok := i.labels[name]
	if !ok {
		return 0, fail(SemanticError, "label %s does not exist", name)
	}
	return idx, nil
}
