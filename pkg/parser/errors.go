package parser

import (
	"fmt"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
)

// ParseError reports the first lexical or syntax error. Parsing does not
// recover.
type ParseError struct {
	Message string
	Pos     ast.Position
	// Incomplete is set when the input ended where more tokens were
	// expected, so a REPL can keep reading.
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parser: %s %s", e.Pos, e.Message)
}
