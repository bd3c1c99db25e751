package compiler

import (
	"fmt"
	"strconv"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/runtime"
	"github.com/CodyValle/LexicalAnalyzer/pkg/typechecker"
)

// lowerExpr leaves the value of expr in rax: the value itself for int and
// bool, a buffer address for strings and lists.
func (g *generator) lowerExpr(expr ast.Expr) typechecker.Type {
	switch e := expr.(type) {
	case *ast.SimpleExpr:
		return g.lowerSimple(e)
	case *ast.IndexExpr:
		return g.lowerIndexRead(e)
	case *ast.ReadExpr:
		return g.lowerRead(e)
	case *ast.ComplexExpr:
		left := g.lowerExpr(e.Left)
		g.emit("push rax")
		right := g.lowerExpr(e.Right)
		g.emit("mov rsi, rax")
		g.emit("pop rdi")
		return g.lowerOperator(e.OpToken, e.Operator, left, right)
	case *ast.ListExpr:
		panic(fmt.Sprintf("compiler: %s list literal used as a scalar", e.Open.Pos()))
	default:
		panic(fmt.Sprintf("compiler: unsupported expression %T", expr))
	}
}

func (g *generator) lowerSimple(e *ast.SimpleExpr) typechecker.Type {
	switch e.Term.Kind {
	case ast.TokenInteger:
		n, err := strconv.ParseInt(e.Term.Lexeme, 10, 64)
		if err != nil {
			panic(fmt.Sprintf("compiler: %s bad integer literal %q", e.Term.Pos(), e.Term.Lexeme))
		}
		g.emit("mov rax, %d", n)
		return scalarType(ast.TypeInt)
	case ast.TokenString:
		g.emit("mov rax, %s", g.literal(e.Term.Lexeme))
		return scalarType(ast.TypeString)
	case ast.TokenTrue:
		g.emit("mov rax, 1")
		return scalarType(ast.TypeBool)
	case ast.TokenFalse:
		g.emit("xor rax, rax")
		return scalarType(ast.TypeBool)
	case ast.TokenIdentifier:
		v := g.lookup(e.Term)
		if v.typ.IsList() || v.typ.Name == ast.TypeString {
			g.emit("mov rax, %s", v.symbol)
		} else {
			g.emit("mov rax, [%s]", v.symbol)
		}
		return v.typ
	}
	panic(fmt.Sprintf("compiler: unexpected term %s", e.Term))
}

// lowerIndex leaves a bounds-checked element index of v in rax.
func (g *generator) lowerIndex(name ast.Token, v *variable, index ast.Expr) {
	g.lowerExpr(index)
	ok := g.names.next("idx") + "_ok"
	g.emit("cmp rax, %d", v.typ.Length)
	g.emit("jb %s", ok)
	g.panicWith(name.Pos(), fmt.Sprintf("index out of bounds for '%s' of length %d", name.Lexeme, v.typ.Length))
	g.label(ok)
}

func (g *generator) lowerIndexRead(e *ast.IndexExpr) typechecker.Type {
	v := g.lookup(e.Name)
	g.lowerIndex(e.Name, v, e.Index)
	if v.typ.Name == ast.TypeString {
		g.emit("imul rax, rax, %d", stringSize)
		g.emit("mov rcx, %s", v.symbol)
		g.emit("add rax, rcx")
	} else {
		g.emit("mov rcx, %s", v.symbol)
		g.emit("mov rax, [rcx + rax*%d]", qwordSize)
	}
	return elementType(v.typ)
}

func (g *generator) lowerRead(e *ast.ReadExpr) typechecker.Type {
	if e.Prompt.Lexeme != "" {
		g.emit("mov rdi, %s", g.literal(e.Prompt.Lexeme))
		g.call("rt_print_str")
	}
	if e.Mode == ast.ReadInt {
		g.require("rt_line_buf")
		g.emit("mov rdi, rt_line_buf")
		g.call("rt_read_line")
		g.emit("mov rdi, rax")
		g.call("rt_str_to_int")
		return scalarType(ast.TypeInt)
	}
	tmp := g.reserve("tmp", stringSize)
	g.emit("mov rdi, %s", tmp)
	g.call("rt_read_line")
	return scalarType(ast.TypeString)
}

// lowerOperator combines rdi (left) and rsi (right) into rax.
func (g *generator) lowerOperator(tok ast.Token, op ast.Operator, left, right typechecker.Type) typechecker.Type {
	result, ok := runtime.ResultKind(op, left.Kind(), right.Kind())
	if !ok || left.IsList() || right.IsList() {
		panic(fmt.Sprintf("compiler: %s operator %s is not defined for %s and %s", tok.Pos(), op, left, right))
	}
	resultType := scalarType(result.TypeName())
	switch left.Kind() {
	case runtime.KindInt:
		if right.Kind() == runtime.KindInt {
			g.lowerIntOperator(tok, op)
			return resultType
		}
		g.lowerLogical(op)
	case runtime.KindBool:
		g.lowerLogical(op)
	case runtime.KindString:
		g.lowerTextOperator(op, right.Kind())
	}
	return resultType
}

var setInstruction = map[ast.Operator]string{
	ast.OpEqual:        "sete",
	ast.OpNotEqual:     "setne",
	ast.OpLess:         "setl",
	ast.OpGreater:      "setg",
	ast.OpLessEqual:    "setle",
	ast.OpGreaterEqual: "setge",
}

func (g *generator) lowerIntOperator(tok ast.Token, op ast.Operator) {
	switch op {
	case ast.OpAdd:
		g.emit("mov rax, rdi")
		g.emit("add rax, rsi")
	case ast.OpSub:
		g.emit("mov rax, rdi")
		g.emit("sub rax, rsi")
	case ast.OpMul:
		g.emit("mov rax, rdi")
		g.emit("imul rax, rsi")
	case ast.OpDiv:
		ok := g.names.next("div") + "_ok"
		g.emit("test rsi, rsi")
		g.emit("jnz %s", ok)
		g.panicWith(tok.Pos(), runtime.ErrDivisionByZero.Error())
		g.label(ok)
		g.emit("mov rax, rdi")
		g.emit("cqo")
		g.emit("idiv rsi")
	default:
		g.emit("cmp rdi, rsi")
		g.setFlag(op)
	}
}

func (g *generator) setFlag(op ast.Operator) {
	g.emit("%s al", setInstruction[op])
	g.emit("movzx eax, al")
}

// lowerLogical treats both operands by truthiness: + is or, - is and.
func (g *generator) lowerLogical(op ast.Operator) {
	g.emit("test rdi, rdi")
	g.emit("setne al")
	g.emit("test rsi, rsi")
	g.emit("setne cl")
	if op == ast.OpAdd {
		g.emit("or al, cl")
	} else {
		g.emit("and al, cl")
	}
	g.emit("movzx eax, al")
}

func (g *generator) lowerTextOperator(op ast.Operator, right runtime.Kind) {
	if op.IsRelation() {
		g.call("rt_str_compare")
		g.emit("cmp rax, 0")
		g.setFlag(op)
		return
	}
	tmp := g.reserve("tmp", stringSize)
	if op == ast.OpMul {
		g.emit("mov rdx, rsi")
		g.emit("mov rsi, rdi")
		g.emit("mov rdi, %s", tmp)
		g.call("rt_str_repeat")
		return
	}
	g.emit("push rsi")
	g.emit("mov rsi, rdi")
	g.emit("mov rdi, %s", tmp)
	g.call("rt_str_copy")
	switch right {
	case runtime.KindString:
		g.emit("pop rsi")
	case runtime.KindInt:
		g.require("rt_num_buf")
		g.emit("pop rdi")
		g.emit("mov rsi, rt_num_buf")
		g.call("rt_int_to_str")
		g.emit("mov rsi, rax")
	case runtime.KindBool:
		g.emit("pop rdi")
		g.call("rt_bool_to_str")
		g.emit("mov rsi, rax")
	}
	g.emit("mov rdi, %s", tmp)
	g.call("rt_str_append")
	g.emit("mov rax, %s", tmp)
}

// lowerCondition leaves 0 or 1 in rax. Both sides of every connector are
// evaluated.
func (g *generator) lowerCondition(cond ast.BoolExpr) {
	switch b := cond.(type) {
	case *ast.SimpleBoolExpr:
		g.lowerExpr(b.Value)
	case *ast.ComplexBoolExpr:
		left := g.lowerExpr(b.Left)
		g.emit("push rax")
		right := g.lowerExpr(b.Right)
		g.emit("mov rsi, rax")
		g.emit("pop rdi")
		g.lowerOperator(b.RelToken, b.Relation, left, right)
		if b.Rest == nil {
			return
		}
		g.emit("push rax")
		g.lowerCondition(b.Rest)
		g.emit("pop rcx")
		if b.Connector == ast.ConnectorOr {
			g.emit("or rax, rcx")
		} else {
			g.emit("and rax, rcx")
		}
	case *ast.NotBoolExpr:
		g.lowerCondition(b.Inner)
		g.emit("xor rax, 1")
	default:
		panic(fmt.Sprintf("compiler: unsupported condition %T", cond))
	}
}
