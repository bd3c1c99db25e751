package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/CodyValle/LexicalAnalyzer/pkg/runtime"
	"github.com/CodyValle/LexicalAnalyzer/pkg/typechecker"
)

// slot is the storage behind one declared name: a single value for scalars or
// one value per element for lists.
type slot struct {
	values []runtime.Value
}

// Interpreter executes checked programs. Its global frame survives between
// calls to Run so a REPL can execute one entry at a time.
type Interpreter struct {
	scopes  *runtime.ScopeStack[*slot]
	out     *bufio.Writer
	in      Source
	program *typechecker.Program
}

// New returns an interpreter printing to out and reading from in. A nil in
// behaves like an exhausted input.
func New(out io.Writer, in Source) *Interpreter {
	if out == nil {
		out = io.Discard
	}
	return &Interpreter{
		scopes: runtime.NewScopeStack[*slot](),
		out:    bufio.NewWriter(out),
		in:     in,
	}
}

// Run executes a checked program with a fresh interpreter.
func Run(program *typechecker.Program, out io.Writer, in Source) error {
	return New(out, in).Run(program)
}

// Run executes program in the interpreter's global frame. The first runtime
// failure stops execution and is returned as a *RuntimeError.
func (i *Interpreter) Run(program *typechecker.Program) (err error) {
	if program == nil || program.AST == nil {
		return fmt.Errorf("interpreter: program is nil")
	}
	i.program = program
	defer func() {
		if flushErr := i.out.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("interpreter: write output: %w", flushErr)
		}
	}()
	return i.execBlock(program.AST)
}

func (i *Interpreter) readLine(prompt string) (string, error) {
	if prompting, ok := i.in.(PromptingSource); ok {
		if err := i.out.Flush(); err != nil {
			return "", err
		}
		return i.finishRead(prompting.PromptLine(prompt))
	}
	if _, err := i.out.WriteString(prompt); err != nil {
		return "", err
	}
	if err := i.out.Flush(); err != nil {
		return "", err
	}
	if i.in == nil {
		return "", nil
	}
	return i.finishRead(i.in.ReadLine())
}

// finishRead treats end of input as an empty line.
func (i *Interpreter) finishRead(line string, err error) (string, error) {
	if errors.Is(err, io.EOF) {
		return line, nil
	}
	if err != nil {
		return "", fmt.Errorf("interpreter: read input: %w", err)
	}
	return line, nil
}
