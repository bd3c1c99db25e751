package compiler

import (
	"fmt"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/typechecker"
)

func (g *generator) lowerStatements(list *ast.StmtList) {
	for _, stmt := range list.Stmts {
		g.lowerStatement(stmt)
	}
}

func (g *generator) lowerStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecStmt:
		g.lowerVarDec(s)
	case *ast.AssignStmt:
		g.lowerAssign(s)
	case *ast.PrintStmt:
		g.lowerPrint(s)
	case *ast.IfStmt:
		g.lowerIf(s)
	case *ast.WhileStmt:
		g.lowerWhile(s)
	default:
		panic(fmt.Sprintf("compiler: unsupported statement %T", stmt))
	}
}

// lowerVarDec gives every declaration its own storage. The name is bound
// after the initializer so the initializer still sees an outer binding.
func (g *generator) lowerVarDec(s *ast.VarDecStmt) {
	declared := g.program.Declared(s)
	v := &variable{symbol: g.names.variable(s.Name.Lexeme), typ: declared}
	g.reserveSymbol(v.symbol, storageSize(declared))
	if s.Init != nil {
		g.store(v, s.Init)
	} else {
		g.zero(v)
	}
	if !g.scopes.Declare(s.Name.Lexeme, v) {
		panic(fmt.Sprintf("compiler: %s '%s' already declared in this block", s.Name.Pos(), s.Name.Lexeme))
	}
}

// zero resets storage each time the declaration runs, so a declaration in a
// loop body starts from the zero value on every iteration.
func (g *generator) zero(v *variable) {
	switch {
	case v.typ.IsList():
		g.emit("mov rdi, %s", v.symbol)
		g.emit("mov rsi, %d", storageSize(v.typ))
		g.call("rt_mem_zero")
	case v.typ.Name == ast.TypeString:
		g.emit("mov byte [%s], 0", v.symbol)
	default:
		g.emit("mov qword [%s], 0", v.symbol)
	}
}

func (g *generator) lowerAssign(s *ast.AssignStmt) {
	v := g.lookup(s.Name)
	if s.Index == nil {
		g.store(v, s.Value)
		return
	}
	g.lowerIndex(s.Name, v, s.Index)
	g.emit("push rax")
	g.lowerExpr(s.Value)
	g.emit("pop rcx")
	if v.typ.Name == ast.TypeString {
		g.emit("imul rcx, rcx, %d", stringSize)
		g.emit("mov rdi, %s", v.symbol)
		g.emit("add rdi, rcx")
		g.emit("mov rsi, rax")
		g.call("rt_str_copy")
		return
	}
	g.emit("mov rdx, %s", v.symbol)
	g.emit("mov [rdx + rcx*%d], rax", qwordSize)
}

// store evaluates value into v's storage.
func (g *generator) store(v *variable, value ast.Expr) {
	if v.typ.IsList() {
		g.storeList(v, value)
		return
	}
	g.lowerExpr(value)
	if v.typ.Name == ast.TypeString {
		g.emit("mov rsi, rax")
		g.emit("mov rdi, %s", v.symbol)
		g.call("rt_str_copy")
		return
	}
	g.emit("mov [%s], rax", v.symbol)
}

// storeList builds a literal in a scratch buffer before copying it over the
// target, so elements that read the target see its old contents.
func (g *generator) storeList(v *variable, value ast.Expr) {
	size := storageSize(v.typ)
	switch e := value.(type) {
	case *ast.ListExpr:
		width := elementSize(v.typ.Name)
		scratch := g.reserve("tmp", len(e.Elements)*width)
		for idx, el := range e.Elements {
			offset := idx * width
			g.lowerExpr(el)
			if v.typ.Name == ast.TypeString {
				g.emit("mov rsi, rax")
				g.emit("mov rdi, %s + %d", scratch, offset)
				g.call("rt_str_copy")
				continue
			}
			g.emit("mov [%s + %d], rax", scratch, offset)
		}
		g.copyList(v.symbol, scratch, size)
	case *ast.SimpleExpr:
		source := g.lookup(e.Term)
		g.copyList(v.symbol, source.symbol, size)
	default:
		panic(fmt.Sprintf("compiler: %s cannot store %T into list '%s'", ast.Pos(value), value, v.symbol))
	}
}

func (g *generator) copyList(dst, src string, size int) {
	if size == 0 {
		return
	}
	g.emit("mov rdi, %s", dst)
	g.emit("mov rsi, %s", src)
	g.emit("mov rdx, %d", size)
	g.call("rt_mem_copy")
}

func (g *generator) lowerPrint(s *ast.PrintStmt) {
	t := g.lowerExpr(s.Value)
	g.printValue(t)
	if s.Newline {
		g.call("rt_print_newline")
	}
}

// printValue writes the scalar in rax to stdout.
func (g *generator) printValue(t typechecker.Type) {
	switch t.Name {
	case ast.TypeInt:
		g.require("rt_num_buf")
		g.emit("mov rdi, rax")
		g.emit("mov rsi, rt_num_buf")
		g.call("rt_int_to_str")
	case ast.TypeBool:
		g.emit("mov rdi, rax")
		g.call("rt_bool_to_str")
	}
	g.emit("mov rdi, rax")
	g.call("rt_print_str")
}
