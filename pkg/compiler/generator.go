package compiler

import (
	"fmt"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/runtime"
	"github.com/CodyValle/LexicalAnalyzer/pkg/typechecker"
)

// variable is the storage generated for one declaration.
type variable struct {
	symbol string
	typ    typechecker.Type
}

type generator struct {
	opts    Options
	program *typechecker.Program
	asm     *AssemblyProgram
	names   *nameMangler
	emitted map[string]bool
	scopes  *runtime.ScopeStack[*variable]
	// literals maps string literal text to its hoisted symbol.
	literals map[string]string
	proc     *Procedure
}

func newGenerator(program *typechecker.Program, opts Options) *generator {
	return &generator{
		opts:     opts,
		program:  program,
		asm:      &AssemblyProgram{Comments: append([]string(nil), opts.Header...)},
		names:    newNameMangler(),
		emitted:  make(map[string]bool),
		scopes:   runtime.NewScopeStack[*variable](),
		literals: make(map[string]string),
	}
}

// Generate lowers a checked program to assembly. Checking guarantees every
// construct it meets is legal, so generation cannot fail.
func Generate(program *typechecker.Program, opts Options) *AssemblyProgram {
	g := newGenerator(program, opts)
	g.generateEntry(program.AST)
	return g.asm
}

func (g *generator) emit(format string, args ...any) {
	g.proc.Lines = append(g.proc.Lines, fmt.Sprintf(format, args...))
}

func (g *generator) label(name string) {
	g.proc.Lines = append(g.proc.Lines, name+":")
}

// generateEntry emits _start for the top-level block, which runs in the
// global frame.
func (g *generator) generateEntry(list *ast.StmtList) {
	g.proc = &Procedure{Name: EntryPoint}
	g.lowerStatements(list)
	g.emit("mov rax, 60")
	g.emit("xor rdi, rdi")
	g.emit("syscall")
	g.asm.Procedures = append(g.asm.Procedures, g.proc)
}

// generateBlock emits a nested block as its own procedure and returns its
// name. Procedures are appended after the blocks they call.
func (g *generator) generateBlock(list *ast.StmtList) string {
	name := g.names.next("block")
	outer := g.proc
	g.proc = &Procedure{Name: name}
	g.scopes.Enter()
	g.lowerStatements(list)
	g.scopes.Leave()
	g.emit("ret")
	g.asm.Procedures = append(g.asm.Procedures, g.proc)
	g.proc = outer
	return name
}

// literal returns the symbol holding text, hoisting it on first use.
func (g *generator) literal(text string) string {
	if sym, ok := g.literals[text]; ok {
		return sym
	}
	sym := g.names.next("str")
	g.literals[text] = sym
	g.asm.Constants = append(g.asm.Constants, dataLine(sym, text))
	return sym
}

// reserve allocates size bytes of bss under a fresh symbol derived from base.
func (g *generator) reserve(base string, size int) string {
	sym := g.names.next(base)
	g.reserveSymbol(sym, size)
	return sym
}

func (g *generator) reserveSymbol(sym string, size int) {
	if size < qwordSize {
		size = qwordSize
	}
	g.asm.Variables = append(g.asm.Variables, bssLine(sym, size))
}

func (g *generator) lookup(name ast.Token) *variable {
	v, ok := g.scopes.Lookup(name.Lexeme)
	if !ok {
		panic(fmt.Sprintf("compiler: %s undefined identifier '%s'", name.Pos(), name.Lexeme))
	}
	return v
}

// elementSize is the width of one scalar of type name.
func elementSize(name ast.TypeName) int {
	if name == ast.TypeString {
		return stringSize
	}
	return qwordSize
}

// storageSize is the full width of a variable of type t.
func storageSize(t typechecker.Type) int {
	if t.IsList() {
		return t.Length * elementSize(t.Name)
	}
	return elementSize(t.Name)
}

func scalarType(name ast.TypeName) typechecker.Type {
	return typechecker.Type{Name: name, Subtype: ast.SubtypeScalar, Length: 1}
}

func elementType(t typechecker.Type) typechecker.Type {
	return scalarType(t.Name)
}

// panicWith emits a call to rt_panic with a hoisted message.
func (g *generator) panicWith(pos ast.Position, message string) {
	g.emit("mov rdi, %s", g.literal(fmt.Sprintf("runtime: %s %s", pos, message)))
	g.call("rt_panic")
}
