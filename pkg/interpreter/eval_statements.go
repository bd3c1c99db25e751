package interpreter

import (
	"fmt"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/runtime"
)

func (i *Interpreter) execBlock(list *ast.StmtList) error {
	for _, stmt := range list.Stmts {
		if err := i.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// execNested runs a block body in a fresh frame.
func (i *Interpreter) execNested(list *ast.StmtList) error {
	return i.scopes.Within(func() error {
		return i.execBlock(list)
	})
}

func (i *Interpreter) execStatement(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDecStmt:
		return i.execVarDec(s)
	case *ast.AssignStmt:
		return i.execAssign(s)
	case *ast.PrintStmt:
		val, err := i.evalExpression(s.Value)
		if err != nil {
			return err
		}
		text := runtime.AsText(val)
		if s.Newline {
			text += "\n"
		}
		_, err = i.out.WriteString(text)
		return err
	case *ast.IfStmt:
		for _, branch := range s.Branches {
			ok, err := i.evalCondition(branch.Condition)
			if err != nil {
				return err
			}
			if ok {
				return i.execNested(branch.Body)
			}
		}
		if s.Else != nil {
			return i.execNested(s.Else)
		}
		return nil
	case *ast.WhileStmt:
		for {
			ok, err := i.evalCondition(s.Condition)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := i.execNested(s.Body); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("interpreter: unsupported statement %T", stmt)
	}
}

func (i *Interpreter) execVarDec(stmt *ast.VarDecStmt) error {
	declared := i.program.Declared(stmt)
	var values []runtime.Value
	if stmt.Init != nil {
		var err error
		values, err = i.evalStorage(stmt.Init)
		if err != nil {
			return err
		}
	} else {
		values = make([]runtime.Value, declared.Length)
		for idx := range values {
			values[idx] = runtime.Zero(declared.Kind())
		}
	}
	if !i.scopes.Declare(stmt.Name.Lexeme, &slot{values: values}) {
		return fmt.Errorf("interpreter: %s '%s' already declared in this block", stmt.Name.Pos(), stmt.Name.Lexeme)
	}
	return nil
}

func (i *Interpreter) execAssign(stmt *ast.AssignStmt) error {
	target, err := i.lookup(stmt.Name)
	if err != nil {
		return err
	}
	if stmt.Index == nil {
		values, err := i.evalStorage(stmt.Value)
		if err != nil {
			return err
		}
		target.values = values
		return nil
	}
	idx, err := i.evalIndex(stmt.Name, target, stmt.Index)
	if err != nil {
		return err
	}
	val, err := i.evalExpression(stmt.Value)
	if err != nil {
		return err
	}
	target.values[idx] = val
	return nil
}

// evalStorage evaluates an initializer or assigned value into fresh storage.
func (i *Interpreter) evalStorage(expr ast.Expr) ([]runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.ListExpr:
		values := make([]runtime.Value, 0, len(e.Elements))
		for _, el := range e.Elements {
			val, err := i.evalExpression(el)
			if err != nil {
				return nil, err
			}
			values = append(values, val)
		}
		return values, nil
	case *ast.SimpleExpr:
		if e.IsIdentifier() && i.program.TypeOf(e).IsList() {
			source, err := i.lookup(e.Term)
			if err != nil {
				return nil, err
			}
			return append([]runtime.Value(nil), source.values...), nil
		}
	}
	val, err := i.evalExpression(expr)
	if err != nil {
		return nil, err
	}
	return []runtime.Value{val}, nil
}

func (i *Interpreter) lookup(name ast.Token) (*slot, error) {
	s, ok := i.scopes.Lookup(name.Lexeme)
	if !ok {
		return nil, fmt.Errorf("interpreter: %s undefined identifier '%s'", name.Pos(), name.Lexeme)
	}
	return s, nil
}
