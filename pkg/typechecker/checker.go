package typechecker

import (
	"fmt"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/runtime"
)

// Checker walks lx ASTs. A Checker keeps its global frame between calls to
// CheckIncremental so a REPL can build a program one entry at a time.
type Checker struct {
	scopes  *runtime.ScopeStack[*IdentifierData]
	program *Program
}

// New returns a checker with an empty global frame.
func New() *Checker {
	return &Checker{scopes: runtime.NewScopeStack[*IdentifierData]()}
}

// Check verifies a whole program. The returned error is a *SemanticError.
func Check(list *ast.StmtList) (*Program, error) {
	return New().Check(list)
}

// Check verifies list as a complete program in a fresh global frame.
func (c *Checker) Check(list *ast.StmtList) (*Program, error) {
	if list == nil {
		return nil, fmt.Errorf("typechecker: program is nil")
	}
	c.scopes = runtime.NewScopeStack[*IdentifierData]()
	c.program = newProgram(list)
	if err := c.checkBlock(list); err != nil {
		return nil, err
	}
	return c.program, nil
}

// CheckIncremental verifies list in the global frame left by earlier calls.
// On failure the global frame is rolled back to its state before the call.
func (c *Checker) CheckIncremental(list *ast.StmtList) (*Program, error) {
	if list == nil {
		return nil, fmt.Errorf("typechecker: program is nil")
	}
	snapshot := c.scopes.Snapshot(cloneData)
	c.program = newProgram(list)
	if err := c.checkBlock(list); err != nil {
		c.scopes.Restore(snapshot)
		return nil, err
	}
	return c.program, nil
}

func (c *Checker) checkBlock(list *ast.StmtList) error {
	for _, stmt := range list.Stmts {
		if err := c.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// checkNested checks a block body in its own frame.
func (c *Checker) checkNested(list *ast.StmtList) error {
	return c.scopes.Within(func() error {
		return c.checkBlock(list)
	})
}

func (c *Checker) checkStatement(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDecStmt:
		return c.checkVarDec(s)
	case *ast.AssignStmt:
		return c.checkAssign(s)
	case *ast.PrintStmt:
		t, err := c.checkExpression(s.Value)
		if err != nil {
			return err
		}
		if t.IsList() {
			return errorf(TypeMismatch, ast.Pos(s.Value), "cannot print list value of type %s", t)
		}
		return nil
	case *ast.IfStmt:
		for _, branch := range s.Branches {
			if err := c.checkCondition(branch.Condition); err != nil {
				return err
			}
			if err := c.checkNested(branch.Body); err != nil {
				return err
			}
		}
		if s.Else != nil {
			return c.checkNested(s.Else)
		}
		return nil
	case *ast.WhileStmt:
		if err := c.checkCondition(s.Condition); err != nil {
			return err
		}
		return c.checkNested(s.Body)
	default:
		return fmt.Errorf("typechecker: unsupported statement %T", stmt)
	}
}

func (c *Checker) checkVarDec(stmt *ast.VarDecStmt) error {
	data := &IdentifierData{Type: stmt.DeclaredType, Subtype: stmt.Subtype}
	if stmt.Subtype == ast.SubtypeScalar {
		data.Length = 1
	}
	if stmt.Init != nil {
		expected := Type{Name: stmt.DeclaredType, Subtype: stmt.Subtype}
		t, err := c.checkValue(stmt.Init, expected)
		if err != nil {
			return err
		}
		if stmt.DeclaredType != ast.TypeUnknown && (t.Name != stmt.DeclaredType || t.Subtype != stmt.Subtype) {
			return errorf(TypeMismatch, stmt.Name.Pos(), "cannot initialize %s %s with a value of type %s",
				declaredString(stmt), stmt.Name.Lexeme, t)
		}
		data.Type, data.Subtype, data.Length = t.Name, t.Subtype, t.Length
		data.Initialized = true
	}
	if !c.scopes.Declare(stmt.Name.Lexeme, data) {
		return errorf(Redeclaration, stmt.Name.Pos(), "redeclaration of identifier '%s'", stmt.Name.Lexeme)
	}
	c.program.Declarations[stmt] = data
	return nil
}

func declaredString(stmt *ast.VarDecStmt) string {
	if stmt.Subtype == ast.SubtypeList {
		return stmt.DeclaredType.String() + "[]"
	}
	return stmt.DeclaredType.String()
}

func (c *Checker) checkAssign(stmt *ast.AssignStmt) error {
	name := stmt.Name.Lexeme
	data, ok := c.scopes.Lookup(name)
	if !ok {
		return errorf(UndeclaredIdentifier, stmt.Name.Pos(), "use of undeclared identifier '%s'", name)
	}
	if stmt.Index != nil {
		if data.Subtype != ast.SubtypeList {
			return errorf(TypeMismatch, stmt.Name.Pos(), "cannot index non-list identifier '%s'", name)
		}
		if !data.Initialized {
			return errorf(UninitializedRead, stmt.Name.Pos(), "use of uninitialized identifier '%s'", name)
		}
		if err := c.checkIndex(stmt.Index); err != nil {
			return err
		}
		t, err := c.checkExpression(stmt.Value)
		if err != nil {
			return err
		}
		if t.IsList() || t.Name != data.Type {
			return errorf(TypeMismatch, ast.Pos(stmt.Value), "cannot store %s in an element of %s", t, data.typ())
		}
		return nil
	}

	t, err := c.checkValue(stmt.Value, Type{Name: data.Type, Subtype: data.Subtype})
	if err != nil {
		return err
	}
	switch {
	case data.Type == ast.TypeUnknown:
		data.Type, data.Subtype, data.Length = t.Name, t.Subtype, t.Length
	case t.Name != data.Type || t.Subtype != data.Subtype:
		return errorf(TypeMismatch, stmt.Name.Pos(), "cannot assign %s to '%s' of type %s", t, name, data.typ())
	case t.IsList() && data.Initialized && t.Length != data.Length:
		return errorf(TypeMismatch, stmt.Name.Pos(), "cannot assign %s to '%s' of type %s", t, name, data.typ())
	case t.IsList():
		data.Length = t.Length
	}
	data.Initialized = true
	return nil
}

// checkValue checks an initializer or assigned value. An empty list literal
// takes its type from expected, which must name a list element type.
func (c *Checker) checkValue(expr ast.Expr, expected Type) (Type, error) {
	list, ok := expr.(*ast.ListExpr)
	if !ok || len(list.Elements) > 0 {
		return c.checkExpression(expr)
	}
	if expected.Name == ast.TypeUnknown || !expected.IsList() {
		return Type{}, errorf(TypeMismatch, list.Open.Pos(), "cannot determine the element type of an empty list")
	}
	t := Type{Name: expected.Name, Subtype: ast.SubtypeList, Length: 0}
	c.program.Types[list] = t
	return t, nil
}
