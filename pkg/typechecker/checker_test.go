package typechecker

import (
	"errors"
	"testing"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/runtime"
)

func expectKind(t *testing.T, err error, kind ErrorKind) *SemanticError {
	t.Helper()
	var semErr *SemanticError
	if !errors.As(err, &semErr) {
		t.Fatalf("expected SemanticError %s, got %v", kind, err)
	}
	if semErr.Kind != kind {
		t.Fatalf("expected %s, got %s (%s)", kind, semErr.Kind, semErr.Message)
	}
	return semErr
}

func mustCheck(t *testing.T, list *ast.StmtList) *Program {
	t.Helper()
	program, err := Check(list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return program
}

func TestCheckDeclaredAndInitializedProgram(t *testing.T) {
	program := mustCheck(t, ast.Block(
		ast.Var("x", ast.Int(5)),
		ast.Println(ast.Bin(ast.ID("x"), ast.OpAdd, ast.Int(3))),
	))
	decl := program.AST.Stmts[0].(*ast.VarDecStmt)
	if got := program.Declared(decl); got.Name != ast.TypeInt || got.IsList() {
		t.Fatalf("unexpected declared type %s", got)
	}
	sum := program.AST.Stmts[1].(*ast.PrintStmt).Value
	if got := program.TypeOf(sum); got.Name != ast.TypeInt {
		t.Fatalf("expected int sum, got %s", got)
	}
}

func TestCheckUninitializedReadReportsPosition(t *testing.T) {
	read := ast.NewSimpleExpr(ast.Token{Kind: ast.TokenIdentifier, Lexeme: "x", Line: 2, Column: 9})
	list := ast.Block(
		ast.Var("x", nil),
		ast.NewPrintStmt(ast.Token{Kind: ast.TokenPrintln, Lexeme: "println", Line: 2, Column: 1}, read, true),
	)
	_, err := Check(list)
	semErr := expectKind(t, err, UninitializedRead)
	if semErr.Pos.Line != 2 || semErr.Pos.Column != 9 {
		t.Fatalf("expected error at 2:9, got %s", semErr.Pos)
	}
	if semErr.Error() != "typechecker: 2:9 use of uninitialized identifier 'x'" {
		t.Fatalf("unexpected message %q", semErr.Error())
	}
}

func TestCheckStringAppendInt(t *testing.T) {
	program := mustCheck(t, ast.Block(
		ast.Var("s", ast.Str("count: ")),
		ast.Println(ast.Bin(ast.ID("s"), ast.OpAdd, ast.Int(42))),
	))
	sum := program.AST.Stmts[1].(*ast.PrintStmt).Value
	if got := program.TypeOf(sum); got.Name != ast.TypeString {
		t.Fatalf("expected string result, got %s", got)
	}
}

func TestCheckListIndex(t *testing.T) {
	program := mustCheck(t, ast.Block(
		ast.Var("a", ast.List(ast.Int(1), ast.Int(2), ast.Int(3))),
		ast.Println(ast.Index("a", ast.Int(1))),
	))
	decl := program.AST.Stmts[0].(*ast.VarDecStmt)
	if got := program.Declared(decl); !got.IsList() || got.Length != 3 || got.Name != ast.TypeInt {
		t.Fatalf("unexpected list type %s", got)
	}
}

func TestCheckRedeclarationAndShadowing(t *testing.T) {
	_, err := Check(ast.Block(ast.Var("x", ast.Int(1)), ast.Var("x", ast.Int(2))))
	expectKind(t, err, Redeclaration)

	mustCheck(t, ast.Block(
		ast.Var("x", ast.Int(1)),
		ast.If(ast.Rel(ast.ID("x"), ast.OpEqual, ast.Int(1)),
			ast.Var("x", ast.Str("inner")),
			ast.Println(ast.Bin(ast.ID("x"), ast.OpAdd, ast.Int(1))),
		),
	))
}

func TestCheckNonBooleanCondition(t *testing.T) {
	_, err := Check(ast.Block(ast.If(ast.Cond(ast.Int(5)), ast.Println(ast.Str("yes")))))
	expectKind(t, err, NonBooleanCondition)

	_, err = Check(ast.Block(ast.While(ast.Not(ast.Cond(ast.Str("true"))))))
	expectKind(t, err, NonBooleanCondition)
}

func TestCheckUndeclaredIdentifier(t *testing.T) {
	cases := map[string]*ast.StmtList{
		"read":   ast.Block(ast.Println(ast.ID("missing"))),
		"assign": ast.Block(ast.Assign("missing", ast.Int(1))),
		"index":  ast.Block(ast.Println(ast.Index("missing", ast.Int(0)))),
		"use before declaration": ast.Block(
			ast.Assign("x", ast.Int(1)),
			ast.Var("x", nil),
		),
		"block local after block": ast.Block(
			ast.While(ast.Cond(ast.Bool(false)), ast.Var("inner", ast.Int(1))),
			ast.Println(ast.ID("inner")),
		),
		"else local after if": ast.Block(
			ast.If(ast.Cond(ast.Bool(true))).Otherwise(ast.Var("inner", ast.Int(1))),
			ast.Println(ast.ID("inner")),
		),
	}
	for name, list := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Check(list)
			expectKind(t, err, UndeclaredIdentifier)
		})
	}
}

func TestCheckAssignmentFixesUntypedDeclaration(t *testing.T) {
	program := mustCheck(t, ast.Block(
		ast.Var("x", nil),
		ast.Assign("x", ast.Str("later")),
		ast.Println(ast.ID("x")),
	))
	decl := program.AST.Stmts[0].(*ast.VarDecStmt)
	if got := program.Declared(decl); got.Name != ast.TypeString {
		t.Fatalf("expected string, got %s", got)
	}

	_, err := Check(ast.Block(
		ast.Var("x", ast.Int(1)),
		ast.Assign("x", ast.Str("oops")),
	))
	expectKind(t, err, TypeMismatch)
}

func TestCheckInitializationInBranchIsFlowInsensitive(t *testing.T) {
	program := mustCheck(t, ast.Block(
		ast.Var("x", nil),
		ast.If(ast.Cond(ast.Bool(false)), ast.Assign("x", ast.Bool(true))),
		ast.Println(ast.ID("x")),
	))
	decl := program.AST.Stmts[0].(*ast.VarDecStmt)
	if got := program.Declared(decl); got.Name != ast.TypeBool {
		t.Fatalf("expected bool, got %s", got)
	}
}

func TestCheckUnassignedDeclarationDefaultsToInt(t *testing.T) {
	program := mustCheck(t, ast.Block(ast.Var("x", nil)))
	decl := program.AST.Stmts[0].(*ast.VarDecStmt)
	if got := program.Declared(decl); got.Name != ast.TypeInt || got.Length != 1 {
		t.Fatalf("expected int default, got %s", got)
	}
}

func TestCheckDeclaredTypeMismatch(t *testing.T) {
	_, err := Check(ast.Block(ast.VarTyped("x", ast.TypeInt, ast.Str("no"))))
	expectKind(t, err, TypeMismatch)

	_, err = Check(ast.Block(ast.VarTyped("x", ast.TypeInt, ast.List(ast.Int(1)))))
	expectKind(t, err, TypeMismatch)

	mustCheck(t, ast.Block(ast.VarTyped("flag", ast.TypeBool, ast.Bool(true))))
}

func TestCheckLists(t *testing.T) {
	_, err := Check(ast.Block(ast.Var("a", ast.List())))
	expectKind(t, err, TypeMismatch)

	program := mustCheck(t, ast.Block(ast.VarList("a", ast.TypeString, ast.List())))
	decl := program.AST.Stmts[0].(*ast.VarDecStmt)
	if got := program.Declared(decl); got.Name != ast.TypeString || !got.IsList() || got.Length != 0 {
		t.Fatalf("unexpected empty list type %s", got)
	}

	_, err = Check(ast.Block(ast.Var("a", ast.List(ast.Int(1), ast.Str("two")))))
	expectKind(t, err, TypeMismatch)

	_, err = Check(ast.Block(
		ast.Var("n", ast.Int(3)),
		ast.Println(ast.Index("n", ast.Int(0))),
	))
	expectKind(t, err, TypeMismatch)

	_, err = Check(ast.Block(
		ast.Var("a", ast.List(ast.Int(1))),
		ast.Println(ast.Index("a", ast.Str("0"))),
	))
	expectKind(t, err, TypeMismatch)

	_, err = Check(ast.Block(
		ast.Var("a", ast.List(ast.Int(1))),
		ast.Println(ast.ID("a")),
	))
	expectKind(t, err, TypeMismatch)

	_, err = Check(ast.Block(
		ast.Var("a", ast.List(ast.Int(1), ast.Int(2))),
		ast.Assign("a", ast.List(ast.Int(1))),
	))
	expectKind(t, err, TypeMismatch)

	mustCheck(t, ast.Block(
		ast.Var("a", ast.List(ast.Int(1), ast.Int(2))),
		ast.Var("b", ast.ID("a")),
		ast.AssignIndex("b", ast.Int(0), ast.Bin(ast.Index("a", ast.Int(1)), ast.OpMul, ast.Int(10))),
		ast.Assign("a", ast.ID("b")),
	))

	_, err = Check(ast.Block(
		ast.VarList("a", ast.TypeInt, nil),
		ast.AssignIndex("a", ast.Int(0), ast.Int(1)),
	))
	expectKind(t, err, UninitializedRead)
}

func TestCheckIllegalOperationCarriesOperands(t *testing.T) {
	_, err := Check(ast.Block(
		ast.Var("s", ast.Str("a")),
		ast.Println(ast.Bin(ast.ID("s"), ast.OpSub, ast.Str("b"))),
	))
	semErr := expectKind(t, err, IllegalOperation)
	if semErr.Left != runtime.KindString || semErr.Right != runtime.KindString || semErr.Operator != ast.OpSub {
		t.Fatalf("unexpected operands %s %s %s", semErr.Left, semErr.Operator, semErr.Right)
	}
}

func TestCheckConditionConnectors(t *testing.T) {
	mustCheck(t, ast.Block(
		ast.Var("i", ast.Int(0)),
		ast.While(
			ast.And(ast.Rel(ast.ID("i"), ast.OpLess, ast.Int(3)),
				ast.Or(ast.Rel(ast.Str("a"), ast.OpLess, ast.Str("b")), ast.Not(ast.Cond(ast.Bool(false))))),
			ast.Assign("i", ast.Bin(ast.ID("i"), ast.OpAdd, ast.Int(1))),
		),
	))

	_, err := Check(ast.Block(ast.If(ast.And(
		ast.Rel(ast.Int(1), ast.OpLess, ast.Int(2)),
		ast.Rel(ast.Int(1), ast.OpLess, ast.Str("2")),
	))))
	expectKind(t, err, IllegalOperation)
}

func TestCheckIncrementalRollsBack(t *testing.T) {
	c := New()
	if _, err := c.CheckIncremental(ast.Block(ast.Var("x", ast.Int(1)))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := c.CheckIncremental(ast.Block(
		ast.Var("y", ast.Int(2)),
		ast.Println(ast.ID("missing")),
	))
	expectKind(t, err, UndeclaredIdentifier)
	if _, err := c.CheckIncremental(ast.Block(ast.Var("y", ast.Bin(ast.ID("x"), ast.OpAdd, ast.Int(1))))); err != nil {
		t.Fatalf("expected y to be free after rollback: %v", err)
	}
	_, err = c.CheckIncremental(ast.Block(ast.Var("x", ast.Int(3))))
	expectKind(t, err, Redeclaration)
}
