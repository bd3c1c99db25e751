package typechecker

import (
	"fmt"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/runtime"
)

type ErrorKind int

const (
	UndeclaredIdentifier ErrorKind = iota
	UninitializedRead
	Redeclaration
	TypeMismatch
	IllegalOperation
	NonBooleanCondition
)

func (k ErrorKind) String() string {
	switch k {
	case UndeclaredIdentifier:
		return "UndeclaredIdentifier"
	case UninitializedRead:
		return "UninitializedRead"
	case Redeclaration:
		return "Redeclaration"
	case TypeMismatch:
		return "TypeMismatch"
	case IllegalOperation:
		return "IllegalOperation"
	case NonBooleanCondition:
		return "NonBooleanCondition"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// SemanticError is the first problem found by Check. Left, Right and Operator
// are only set for IllegalOperation.
type SemanticError struct {
	Kind     ErrorKind
	Message  string
	Pos      ast.Position
	Left     runtime.Kind
	Right    runtime.Kind
	Operator ast.Operator
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("typechecker: %s %s", e.Pos, e.Message)
}

func errorf(kind ErrorKind, pos ast.Position, format string, args ...any) *SemanticError {
	return &SemanticError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func illegalOperation(tok ast.Token, op ast.Operator, left, right runtime.Kind) *SemanticError {
	return &SemanticError{
		Kind:     IllegalOperation,
		Pos:      tok.Pos(),
		Message:  fmt.Sprintf("operator %s is not defined for %s and %s", op, left, right),
		Left:     left,
		Right:    right,
		Operator: op,
	}
}
