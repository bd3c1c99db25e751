package interpreter

import (
	"fmt"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
)

type RuntimeErrorKind int

const (
	IndexOutOfBounds RuntimeErrorKind = iota
	DivisionByZero
	RepeatTooLong
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case DivisionByZero:
		return "DivisionByZero"
	case RepeatTooLong:
		return "RepeatTooLong"
	default:
		return fmt.Sprintf("RuntimeErrorKind(%d)", int(k))
	}
}

// RuntimeError aborts a run. Output written before the failure is flushed.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	Pos     ast.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime: %s %s", e.Pos, e.Message)
}

func indexError(name ast.Token, index int64, length int) *RuntimeError {
	return &RuntimeError{
		Kind:    IndexOutOfBounds,
		Pos:     name.Pos(),
		Message: fmt.Sprintf("index %d out of bounds for '%s' of length %d", index, name.Lexeme, length),
	}
}
