package interpreter

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/runtime"
)

func (i *Interpreter) evalExpression(expr ast.Expr) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.SimpleExpr:
		return i.evalSimple(e)
	case *ast.IndexExpr:
		target, err := i.lookup(e.Name)
		if err != nil {
			return nil, err
		}
		idx, err := i.evalIndex(e.Name, target, e.Index)
		if err != nil {
			return nil, err
		}
		return target.values[idx], nil
	case *ast.ReadExpr:
		line, err := i.readLine(e.Prompt.Lexeme)
		if err != nil {
			return nil, err
		}
		if e.Mode == ast.ReadInt {
			return runtime.IntValue{Val: runtime.AsInt(runtime.StringValue{Val: line})}, nil
		}
		return runtime.StringValue{Val: line}, nil
	case *ast.ComplexExpr:
		left, err := i.evalExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evalExpression(e.Right)
		if err != nil {
			return nil, err
		}
		return i.apply(e.OpToken, e.Operator, left, right)
	case *ast.ListExpr:
		return nil, fmt.Errorf("interpreter: %s list literal used as a scalar", e.Open.Pos())
	default:
		return nil, fmt.Errorf("interpreter: unsupported expression %T", expr)
	}
}

func (i *Interpreter) evalSimple(e *ast.SimpleExpr) (runtime.Value, error) {
	switch e.Term.Kind {
	case ast.TokenInteger:
		n, err := strconv.ParseInt(e.Term.Lexeme, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("interpreter: %s bad integer literal %q", e.Term.Pos(), e.Term.Lexeme)
		}
		return runtime.IntValue{Val: n}, nil
	case ast.TokenString:
		return runtime.StringValue{Val: e.Term.Lexeme}, nil
	case ast.TokenTrue:
		return runtime.BoolValue{Val: true}, nil
	case ast.TokenFalse:
		return runtime.BoolValue{Val: false}, nil
	case ast.TokenIdentifier:
		s, err := i.lookup(e.Term)
		if err != nil {
			return nil, err
		}
		if len(s.values) == 0 {
			return nil, fmt.Errorf("interpreter: %s '%s' has no value", e.Term.Pos(), e.Term.Lexeme)
		}
		return s.values[0], nil
	}
	return nil, fmt.Errorf("interpreter: unexpected term %s", e.Term)
}

func (i *Interpreter) evalIndex(name ast.Token, target *slot, index ast.Expr) (int, error) {
	val, err := i.evalExpression(index)
	if err != nil {
		return 0, err
	}
	n := runtime.AsInt(val)
	if n < 0 || n >= int64(len(target.values)) {
		return 0, indexError(name, n, len(target.values))
	}
	return int(n), nil
}

func (i *Interpreter) apply(tok ast.Token, op ast.Operator, left, right runtime.Value) (runtime.Value, error) {
	val, err := runtime.Apply(op, left, right)
	switch {
	case errors.Is(err, runtime.ErrDivisionByZero):
		return nil, &RuntimeError{Kind: DivisionByZero, Pos: tok.Pos(), Message: err.Error()}
	case errors.Is(err, runtime.ErrRepeatTooLong):
		return nil, &RuntimeError{Kind: RepeatTooLong, Pos: tok.Pos(), Message: err.Error()}
	}
	if err != nil {
		return nil, fmt.Errorf("interpreter: %s %w", tok.Pos(), err)
	}
	return val, nil
}

// evalCondition evaluates both sides of every connector; and/or do not
// short-circuit.
func (i *Interpreter) evalCondition(cond ast.BoolExpr) (bool, error) {
	switch b := cond.(type) {
	case *ast.SimpleBoolExpr:
		val, err := i.evalExpression(b.Value)
		if err != nil {
			return false, err
		}
		return runtime.AsBool(val), nil
	case *ast.ComplexBoolExpr:
		left, err := i.evalExpression(b.Left)
		if err != nil {
			return false, err
		}
		right, err := i.evalExpression(b.Right)
		if err != nil {
			return false, err
		}
		val, err := i.apply(b.RelToken, b.Relation, left, right)
		if err != nil {
			return false, err
		}
		result := runtime.AsBool(val)
		if b.Rest == nil {
			return result, nil
		}
		rest, err := i.evalCondition(b.Rest)
		if err != nil {
			return false, err
		}
		if b.Connector == ast.ConnectorOr {
			return result || rest, nil
		}
		return result && rest, nil
	case *ast.NotBoolExpr:
		inner, err := i.evalCondition(b.Inner)
		if err != nil {
			return false, err
		}
		return !inner, nil
	default:
		return false, fmt.Errorf("interpreter: unsupported condition %T", cond)
	}
}
