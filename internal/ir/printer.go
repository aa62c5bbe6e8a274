package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders f's finished CFG in the textual format used by tests and
// the CLI driver: one `Function <name>:` header, then each basic block
// with its predecessor/successor lists and its instructions in layout
// order.
func Dump(f *Function) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Function %s:\n\n", f.Name)

	for i, block := range f.Blocks {
		fmt.Fprintf(&sb, "BB %d: preds: [%s] succs: [%s]\n",
			block.ID, joinBlockIds(block.Preds), joinBlockIds(block.Succs))

		for id := block.First; ; {
			sb.WriteString(f.Insts[id].Dump(id))
			sb.WriteString("\n")
			next := f.Layout[id].Next
			if next == NoInst {
				break
			}
			id = next
		}

		if i != len(f.Blocks)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func joinBlockIds(ids []BlockId) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ", ")
}

// DumpProgram renders every function in source order, each separated by
// a blank line, for drivers that compile more than one function per run.
func DumpProgram(functions []*Function) string {
	var sb strings.Builder
	for i, f := range functions {
		sb.WriteString(Dump(f))
		if i != len(functions)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
