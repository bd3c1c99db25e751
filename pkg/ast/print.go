package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented outline of node, one node per line with its
// position and the tokens it carries.
func Fprint(w io.Writer, node Node) error {
	p := &printer{w: w}
	p.node(node)
	return p.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth), fmt.Sprintf(format, args...))
}

// section prints a label and the given children one level below it.
func (p *printer) section(label string, children ...Node) {
	p.line("%s:", label)
	p.depth++
	for _, child := range children {
		p.node(child)
	}
	p.depth--
}

func (p *printer) node(node Node) {
	switch n := node.(type) {
	case *StmtList:
		if len(n.Stmts) == 0 {
			p.line("StmtList (empty)")
			return
		}
		p.line("StmtList")
		p.depth++
		for _, stmt := range n.Stmts {
			p.node(stmt)
		}
		p.depth--
	case *IfStmt:
		p.line("IfStmt %s", n.Keyword.Pos())
		p.depth++
		for i, branch := range n.Branches {
			label := "elif"
			if i == 0 {
				label = "if"
			}
			p.section(label, branch.Condition)
			p.section("then", branch.Body)
		}
		if n.Else != nil {
			p.section("else", n.Else)
		}
		p.depth--
	case *BasicIf:
		p.section("if", n.Condition)
		p.section("then", n.Body)
	case *WhileStmt:
		p.line("WhileStmt %s", n.Keyword.Pos())
		p.depth++
		p.section("while", n.Condition)
		p.section("do", n.Body)
		p.depth--
	case *VarDecStmt:
		declared := n.DeclaredType.String()
		if n.Subtype == SubtypeList {
			declared += "[]"
		}
		p.line("VarDecStmt %s %s %s", Pos(n), n.Name.Lexeme, declared)
		if n.Init != nil {
			p.depth++
			p.node(n.Init)
			p.depth--
		}
	case *AssignStmt:
		p.line("AssignStmt %s %s", n.Name.Pos(), n.Name.Lexeme)
		p.depth++
		if n.Index != nil {
			p.section("index", n.Index)
		}
		p.node(n.Value)
		p.depth--
	case *PrintStmt:
		p.line("PrintStmt %s %s", n.Keyword.Pos(), printKeyword(n.Newline))
		p.depth++
		p.node(n.Value)
		p.depth--
	case *SimpleExpr:
		p.line("SimpleExpr %s %s", n.Term.Pos(), n.Term)
	case *IndexExpr:
		p.line("IndexExpr %s %s", n.Name.Pos(), n.Name.Lexeme)
		p.depth++
		p.node(n.Index)
		p.depth--
	case *ListExpr:
		p.line("ListExpr %s len=%d", n.Open.Pos(), len(n.Elements))
		p.depth++
		for _, el := range n.Elements {
			p.node(el)
		}
		p.depth--
	case *ReadExpr:
		p.line("ReadExpr %s %s %q", n.Keyword.Pos(), n.Keyword.Kind, n.Prompt.Lexeme)
	case *ComplexExpr:
		p.line("ComplexExpr %s %s", n.OpToken.Pos(), n.Operator)
		p.depth++
		p.node(n.Left)
		p.node(n.Right)
		p.depth--
	case *SimpleBoolExpr:
		p.line("SimpleBoolExpr")
		p.depth++
		p.node(n.Value)
		p.depth--
	case *ComplexBoolExpr:
		p.line("ComplexBoolExpr %s %s", n.RelToken.Pos(), n.Relation)
		p.depth++
		p.node(n.Left)
		p.node(n.Right)
		if n.Rest != nil {
			p.section(n.Connector.String(), n.Rest)
		}
		p.depth--
	case *NotBoolExpr:
		p.line("NotBoolExpr %s", n.Keyword.Pos())
		p.depth++
		p.node(n.Inner)
		p.depth--
	case nil:
		p.line("<nil>")
	default:
		p.line("%s", node.NodeType())
	}
}

func printKeyword(newline bool) string {
	if newline {
		return "println"
	}
	return "print"
}
