package typechecker

import (
	"fmt"
	"strconv"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/runtime"
)

func (c *Checker) checkExpression(expr ast.Expr) (Type, error) {
	t, err := c.inferExpression(expr)
	if err != nil {
		return Type{}, err
	}
	c.program.Types[expr] = t
	return t, nil
}

func (c *Checker) inferExpression(expr ast.Expr) (Type, error) {
	switch e := expr.(type) {
	case *ast.SimpleExpr:
		return c.checkSimple(e)
	case *ast.IndexExpr:
		data, err := c.lookupRead(e.Name)
		if err != nil {
			return Type{}, err
		}
		if data.Subtype != ast.SubtypeList {
			return Type{}, errorf(TypeMismatch, e.Name.Pos(), "cannot index non-list identifier '%s'", e.Name.Lexeme)
		}
		if err := c.checkIndex(e.Index); err != nil {
			return Type{}, err
		}
		return scalar(data.Type), nil
	case *ast.ListExpr:
		return c.checkList(e)
	case *ast.ReadExpr:
		if e.Mode == ast.ReadInt {
			return scalar(ast.TypeInt), nil
		}
		return scalar(ast.TypeString), nil
	case *ast.ComplexExpr:
		left, err := c.checkOperand(e.Left)
		if err != nil {
			return Type{}, err
		}
		right, err := c.checkOperand(e.Right)
		if err != nil {
			return Type{}, err
		}
		result, ok := runtime.ResultKind(e.Operator, left.Kind(), right.Kind())
		if !ok || e.Operator.IsRelation() {
			return Type{}, illegalOperation(e.OpToken, e.Operator, left.Kind(), right.Kind())
		}
		return scalar(result.TypeName()), nil
	case nil:
		return Type{}, fmt.Errorf("typechecker: missing expression")
	default:
		return Type{}, fmt.Errorf("typechecker: unsupported expression %T", expr)
	}
}

func (c *Checker) checkSimple(e *ast.SimpleExpr) (Type, error) {
	switch e.Term.Kind {
	case ast.TokenInteger:
		if _, err := strconv.ParseInt(e.Term.Lexeme, 10, 64); err != nil {
			return Type{}, errorf(TypeMismatch, e.Term.Pos(), "integer literal %s out of range", e.Term.Lexeme)
		}
		return scalar(ast.TypeInt), nil
	case ast.TokenString:
		return scalar(ast.TypeString), nil
	case ast.TokenTrue, ast.TokenFalse:
		return scalar(ast.TypeBool), nil
	case ast.TokenIdentifier:
		data, err := c.lookupRead(e.Term)
		if err != nil {
			return Type{}, err
		}
		return data.typ(), nil
	}
	return Type{}, fmt.Errorf("typechecker: unexpected term %s", e.Term)
}

// lookupRead resolves an identifier that is about to be read.
func (c *Checker) lookupRead(name ast.Token) (*IdentifierData, error) {
	data, ok := c.scopes.Lookup(name.Lexeme)
	if !ok {
		return nil, errorf(UndeclaredIdentifier, name.Pos(), "use of undeclared identifier '%s'", name.Lexeme)
	}
	if !data.Initialized {
		return nil, errorf(UninitializedRead, name.Pos(), "use of uninitialized identifier '%s'", name.Lexeme)
	}
	return data, nil
}

func (c *Checker) checkIndex(index ast.Expr) error {
	t, err := c.checkExpression(index)
	if err != nil {
		return err
	}
	if t.IsList() || t.Name != ast.TypeInt {
		return errorf(TypeMismatch, ast.Pos(index), "list index must be int, got %s", t)
	}
	return nil
}

func (c *Checker) checkList(e *ast.ListExpr) (Type, error) {
	if len(e.Elements) == 0 {
		return Type{}, errorf(TypeMismatch, e.Open.Pos(), "cannot determine the element type of an empty list")
	}
	var elem ast.TypeName
	for i, el := range e.Elements {
		t, err := c.checkExpression(el)
		if err != nil {
			return Type{}, err
		}
		if t.IsList() {
			return Type{}, errorf(TypeMismatch, ast.Pos(el), "list elements must be scalar, got %s", t)
		}
		if i == 0 {
			elem = t.Name
			continue
		}
		if t.Name != elem {
			return Type{}, errorf(TypeMismatch, ast.Pos(el), "list element of type %s does not match %s", t.Name, elem)
		}
	}
	return Type{Name: elem, Subtype: ast.SubtypeList, Length: len(e.Elements)}, nil
}

// checkOperand checks one side of an operator, which must be a scalar.
func (c *Checker) checkOperand(expr ast.Expr) (Type, error) {
	t, err := c.checkExpression(expr)
	if err != nil {
		return Type{}, err
	}
	if t.IsList() {
		return Type{}, errorf(TypeMismatch, ast.Pos(expr), "list value of type %s used as an operand", t)
	}
	return t, nil
}

func (c *Checker) checkCondition(cond ast.BoolExpr) error {
	switch b := cond.(type) {
	case *ast.SimpleBoolExpr:
		t, err := c.checkExpression(b.Value)
		if err != nil {
			return err
		}
		if t.IsList() || t.Name != ast.TypeBool {
			return errorf(NonBooleanCondition, ast.Pos(b.Value), "condition must be bool, got %s", t)
		}
		return nil
	case *ast.ComplexBoolExpr:
		left, err := c.checkOperand(b.Left)
		if err != nil {
			return err
		}
		right, err := c.checkOperand(b.Right)
		if err != nil {
			return err
		}
		if _, ok := runtime.ResultKind(b.Relation, left.Kind(), right.Kind()); !ok || !b.Relation.IsRelation() {
			return illegalOperation(b.RelToken, b.Relation, left.Kind(), right.Kind())
		}
		if b.Rest != nil {
			return c.checkCondition(b.Rest)
		}
		return nil
	case *ast.NotBoolExpr:
		return c.checkCondition(b.Inner)
	case nil:
		return fmt.Errorf("typechecker: missing condition")
	default:
		return fmt.Errorf("typechecker: unsupported condition %T", cond)
	}
}
