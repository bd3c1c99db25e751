package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/CodyValle/LexicalAnalyzer/pkg/typechecker"
)

type Options struct {
	// OutputName is the file name of the generated assembly. Defaults to
	// "out.asm".
	OutputName string
	// Header lines are written as comments at the top of the assembly.
	Header []string
}

type Result struct {
	Program *AssemblyProgram
	Files   map[string][]byte
}

type Compiler struct {
	opts Options
}

func New(opts Options) *Compiler {
	if opts.OutputName == "" {
		opts.OutputName = "out.asm"
	}
	return &Compiler{opts: opts}
}

func (c *Compiler) Compile(program *typechecker.Program) (*Result, error) {
	if program == nil || program.AST == nil {
		return nil, fmt.Errorf("compiler: missing program")
	}
	asm, err := c.generate(program)
	if err != nil {
		return nil, err
	}
	return &Result{
		Program: asm,
		Files:   map[string][]byte{c.opts.OutputName: []byte(asm.Render())},
	}, nil
}

// generate converts a generator panic on an unchecked program into an error.
func (c *Compiler) generate(program *typechecker.Program) (asm *AssemblyProgram, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg, ok := r.(string)
			if !ok || !strings.HasPrefix(msg, "compiler: ") {
				panic(r)
			}
			err = fmt.Errorf("%s", msg)
		}
	}()
	return Generate(program, c.opts), nil
}

func (r *Result) Write(dir string) error {
	if r == nil {
		return fmt.Errorf("compiler: nil result")
	}
	return writeFiles(dir, r.Files)
}

// AssemblyPath is where Write places the generated assembly inside dir.
func (c *Compiler) AssemblyPath(dir string) string {
	return filepath.Join(dir, c.opts.OutputName)
}
