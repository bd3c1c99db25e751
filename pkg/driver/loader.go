package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/parser"
	"github.com/CodyValle/LexicalAnalyzer/pkg/typechecker"
)

// SourceExt is the file extension of lx programs.
const SourceExt = ".lx"

// Program is one source file taken through parsing and checking.
type Program struct {
	Path    string
	Source  []byte
	AST     *ast.StmtList
	Checked *typechecker.Program
}

// Loader reads, parses and checks lx source files.
type Loader struct {
	// Trace, when set, receives one line per completed stage.
	Trace func(format string, args ...any)
}

// NewLoader constructs a loader. trace may be nil.
func NewLoader(trace func(format string, args ...any)) *Loader {
	return &Loader{Trace: trace}
}

func (l *Loader) tracef(format string, args ...any) {
	if l != nil && l.Trace != nil {
		l.Trace(format, args...)
	}
}

// Load reads path and runs the front end over it. Parse and check failures
// are returned unwrapped so callers can match them with errors.As.
func (l *Loader) Load(path string) (*Program, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("driver: resolve %s: %w", path, err)
	}
	source, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("driver: read %s: %w", path, err)
	}
	return l.LoadSource(abs, source)
}

// LoadSource runs the front end over source held in memory.
func (l *Loader) LoadSource(path string, source []byte) (*Program, error) {
	list, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	l.tracef("parsed %s (%d statements)", path, len(list.Stmts))
	checked, err := typechecker.Check(list)
	if err != nil {
		return nil, err
	}
	l.tracef("checked %s (%d declarations)", path, len(checked.Declarations))
	return &Program{Path: path, Source: source, AST: list, Checked: checked}, nil
}
