package typechecker

import (
	"fmt"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/runtime"
)

// Type is the static type of an expression. Length is the list arity, or 1
// for scalars.
type Type struct {
	Name    ast.TypeName
	Subtype ast.Subtype
	Length  int
}

func scalar(name ast.TypeName) Type {
	return Type{Name: name, Subtype: ast.SubtypeScalar, Length: 1}
}

func (t Type) IsList() bool { return t.Subtype == ast.SubtypeList }

// Kind is the value kind of a scalar type.
func (t Type) Kind() runtime.Kind {
	k, _ := runtime.KindOf(t.Name)
	return k
}

func (t Type) String() string {
	if t.IsList() {
		return fmt.Sprintf("%s[%d]", t.Name, t.Length)
	}
	return t.Name.String()
}

// IdentifierData is the checker's record of one declared name.
type IdentifierData struct {
	Type        ast.TypeName
	Subtype     ast.Subtype
	Length      int
	Initialized bool
}

func (d *IdentifierData) typ() Type {
	return Type{Name: d.Type, Subtype: d.Subtype, Length: d.Length}
}

func cloneData(d *IdentifierData) *IdentifierData {
	c := *d
	return &c
}

// InferenceMap records the type of every checked expression.
type InferenceMap map[ast.Expr]Type

// Program is a checked AST together with its annotations.
type Program struct {
	AST          *ast.StmtList
	Declarations map[*ast.VarDecStmt]*IdentifierData
	Types        InferenceMap
}

func newProgram(list *ast.StmtList) *Program {
	return &Program{
		AST:          list,
		Declarations: make(map[*ast.VarDecStmt]*IdentifierData),
		Types:        make(InferenceMap),
	}
}

// Declared returns the final type of a declaration. Names whose type was never
// fixed by an assignment resolve to int.
func (p *Program) Declared(decl *ast.VarDecStmt) Type {
	data, ok := p.Declarations[decl]
	if !ok {
		return scalar(ast.TypeInt)
	}
	t := data.typ()
	if t.Name == ast.TypeUnknown {
		t.Name = ast.TypeInt
	}
	if !t.IsList() {
		t.Length = 1
	}
	return t
}

// TypeOf returns the checked type of expr.
func (p *Program) TypeOf(expr ast.Expr) Type {
	return p.Types[expr]
}
