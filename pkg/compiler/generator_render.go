package compiler

import (
	"strings"
)

// Render produces the assembly text: data, bss, then text with the entry
// procedure first. Empty data and bss sections are left out.
func (p *AssemblyProgram) Render() string {
	var buf strings.Builder
	for _, c := range p.Comments {
		buf.WriteString("; " + c + "\n")
	}
	if len(p.Comments) > 0 {
		buf.WriteString("\n")
	}

	if len(p.Constants) > 0 {
		buf.WriteString("section .data\n")
		for _, line := range p.Constants {
			buf.WriteString(line + "\n")
		}
		buf.WriteString("\n")
	}

	if len(p.Variables) > 0 {
		buf.WriteString("section .bss\n")
		for _, line := range p.Variables {
			buf.WriteString(line + "\n")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("section .text\n")
	buf.WriteString("global " + EntryPoint + "\n")
	for _, proc := range orderedProcedures(p.Procedures) {
		buf.WriteString("\n" + proc.Name + ":\n")
		for _, line := range proc.Lines {
			if isLabel(line) {
				buf.WriteString(line + "\n")
				continue
			}
			buf.WriteString("    " + line + "\n")
		}
	}
	return buf.String()
}

func isLabel(line string) bool {
	return strings.HasSuffix(line, ":") && !strings.ContainsAny(line, " \t")
}

// orderedProcedures moves the entry procedure to the front and keeps the
// rest in generation order.
func orderedProcedures(procs []*Procedure) []*Procedure {
	out := make([]*Procedure, 0, len(procs))
	for _, proc := range procs {
		if proc.Name == EntryPoint {
			out = append(out, proc)
		}
	}
	for _, proc := range procs {
		if proc.Name != EntryPoint {
			out = append(out, proc)
		}
	}
	return out
}
