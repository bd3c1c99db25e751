package compiler

import (
	"fmt"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
)

// lowerIf tests each branch in order and calls the first body whose
// condition holds.
func (g *generator) lowerIf(s *ast.IfStmt) {
	id := g.names.next("if")
	end := id + "_end"
	for k, branch := range s.Branches {
		next := fmt.Sprintf("%s_next_%d", id, k)
		g.lowerCondition(branch.Condition)
		g.emit("test rax, rax")
		g.emit("jz %s", next)
		body := g.generateBlock(branch.Body)
		g.emit("call %s", body)
		g.emit("jmp %s", end)
		g.label(next)
	}
	if s.Else != nil {
		body := g.generateBlock(s.Else)
		g.emit("call %s", body)
	}
	g.label(end)
}

func (g *generator) lowerWhile(s *ast.WhileStmt) {
	id := g.names.next("while")
	top, end := id+"_top", id+"_end"
	g.label(top)
	g.lowerCondition(s.Condition)
	g.emit("test rax, rax")
	g.emit("jz %s", end)
	body := g.generateBlock(s.Body)
	g.emit("call %s", body)
	g.emit("jmp %s", top)
	g.label(end)
}
