package compiler

// AssemblyProgram is NASM source for x86-64 Linux, kept as ordered lines per
// section until rendered.
type AssemblyProgram struct {
	Comments   []string
	Constants  []string
	Variables  []string
	Procedures []*Procedure
}

// Procedure is a named block of instructions. Lines ending in ':' are labels.
type Procedure struct {
	Name  string
	Lines []string
}

// EntryPoint is the name of the procedure generated for the top-level block.
const EntryPoint = "_start"

// Procedure returns the procedure called name, or nil.
func (p *AssemblyProgram) Procedure(name string) *Procedure {
	for _, proc := range p.Procedures {
		if proc.Name == name {
			return proc
		}
	}
	return nil
}

const (
	// qwordSize is the storage width of int and bool values.
	qwordSize = 8
	// stringSize is the storage width of a string: up to 255 bytes plus NUL.
	stringSize = 256
)
