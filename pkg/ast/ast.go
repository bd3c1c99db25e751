package ast

type NodeType string

const (
	NodeStmtList        NodeType = "StmtList"
	NodeBasicIf         NodeType = "BasicIf"
	NodeIfStmt          NodeType = "IfStmt"
	NodeWhileStmt       NodeType = "WhileStmt"
	NodeVarDecStmt      NodeType = "VarDecStmt"
	NodeAssignStmt      NodeType = "AssignStmt"
	NodePrintStmt       NodeType = "PrintStmt"
	NodeSimpleExpr      NodeType = "SimpleExpr"
	NodeIndexExpr       NodeType = "IndexExpr"
	NodeListExpr        NodeType = "ListExpr"
	NodeReadExpr        NodeType = "ReadExpr"
	NodeComplexExpr     NodeType = "ComplexExpr"
	NodeSimpleBoolExpr  NodeType = "SimpleBoolExpr"
	NodeComplexBoolExpr NodeType = "ComplexBoolExpr"
	NodeNotBoolExpr     NodeType = "NotBoolExpr"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Stmt interface {
	Node
	stmtNode()
}

type stmtMarker struct{}

func (stmtMarker) stmtNode() {}

type Expr interface {
	Node
	exprNode()
}

type exprMarker struct{}

func (exprMarker) exprNode() {}

type BoolExpr interface {
	Node
	boolExprNode()
}

type boolExprMarker struct{}

func (boolExprMarker) boolExprNode() {}

// Blocks

// StmtList is a lexical block. Every StmtList opens its own scope.
type StmtList struct {
	nodeImpl

	Stmts []Stmt `json:"stmts"`
}

func NewStmtList(stmts []Stmt) *StmtList {
	return &StmtList{nodeImpl: newNodeImpl(NodeStmtList), Stmts: stmts}
}

// Statements

type BasicIf struct {
	nodeImpl

	Condition BoolExpr  `json:"condition"`
	Body      *StmtList `json:"body"`
}

func NewBasicIf(condition BoolExpr, body *StmtList) *BasicIf {
	return &BasicIf{nodeImpl: newNodeImpl(NodeBasicIf), Condition: condition, Body: body}
}

// IfStmt holds the leading `if` in Branches[0] followed by each `elif`.
type IfStmt struct {
	nodeImpl
	stmtMarker

	Keyword  Token      `json:"keyword"`
	Branches []*BasicIf `json:"branches"`
	Else     *StmtList  `json:"else,omitempty"`
}

func NewIfStmt(keyword Token, branches []*BasicIf, elseBody *StmtList) *IfStmt {
	return &IfStmt{nodeImpl: newNodeImpl(NodeIfStmt), Keyword: keyword, Branches: branches, Else: elseBody}
}

type WhileStmt struct {
	nodeImpl
	stmtMarker

	Keyword   Token     `json:"keyword"`
	Condition BoolExpr  `json:"condition"`
	Body      *StmtList `json:"body"`
}

func NewWhileStmt(keyword Token, condition BoolExpr, body *StmtList) *WhileStmt {
	return &WhileStmt{nodeImpl: newNodeImpl(NodeWhileStmt), Keyword: keyword, Condition: condition, Body: body}
}

// VarDecStmt declares Name in the current block. DeclaredType is TypeUnknown
// when the source omits the type; Init is nil without an initializer.
type VarDecStmt struct {
	nodeImpl
	stmtMarker

	Var          Token    `json:"var"`
	Name         Token    `json:"name"`
	DeclaredType TypeName `json:"declaredType"`
	Subtype      Subtype  `json:"subtype"`
	Init         Expr     `json:"init,omitempty"`
}

func NewVarDecStmt(varTok, name Token, declared TypeName, subtype Subtype, init Expr) *VarDecStmt {
	return &VarDecStmt{
		nodeImpl:     newNodeImpl(NodeVarDecStmt),
		Var:          varTok,
		Name:         name,
		DeclaredType: declared,
		Subtype:      subtype,
		Init:         init,
	}
}

// AssignStmt stores Value into Name, or into Name[Index] when Index is set.
type AssignStmt struct {
	nodeImpl
	stmtMarker

	Name  Token `json:"name"`
	Index Expr  `json:"index,omitempty"`
	Value Expr  `json:"value"`
}

func NewAssignStmt(name Token, index Expr, value Expr) *AssignStmt {
	return &AssignStmt{nodeImpl: newNodeImpl(NodeAssignStmt), Name: name, Index: index, Value: value}
}

type PrintStmt struct {
	nodeImpl
	stmtMarker

	Keyword Token `json:"keyword"`
	Value   Expr  `json:"value"`
	Newline bool  `json:"newline"`
}

func NewPrintStmt(keyword Token, value Expr, newline bool) *PrintStmt {
	return &PrintStmt{nodeImpl: newNodeImpl(NodePrintStmt), Keyword: keyword, Value: value, Newline: newline}
}

// Expressions

// SimpleExpr is a single literal or identifier token.
type SimpleExpr struct {
	nodeImpl
	exprMarker

	Term Token `json:"term"`
}

func NewSimpleExpr(term Token) *SimpleExpr {
	return &SimpleExpr{nodeImpl: newNodeImpl(NodeSimpleExpr), Term: term}
}

func (e *SimpleExpr) IsIdentifier() bool { return e.Term.Kind == TokenIdentifier }

type IndexExpr struct {
	nodeImpl
	exprMarker

	Name  Token `json:"name"`
	Index Expr  `json:"index"`
}

func NewIndexExpr(name Token, index Expr) *IndexExpr {
	return &IndexExpr{nodeImpl: newNodeImpl(NodeIndexExpr), Name: name, Index: index}
}

type ListExpr struct {
	nodeImpl
	exprMarker

	Open     Token  `json:"open"`
	Elements []Expr `json:"elements"`
}

func NewListExpr(open Token, elements []Expr) *ListExpr {
	return &ListExpr{nodeImpl: newNodeImpl(NodeListExpr), Open: open, Elements: elements}
}

// ReadExpr prints Prompt and reads one line of input.
type ReadExpr struct {
	nodeImpl
	exprMarker

	Keyword Token    `json:"keyword"`
	Prompt  Token    `json:"prompt"`
	Mode    ReadMode `json:"mode"`
}

func NewReadExpr(keyword, prompt Token, mode ReadMode) *ReadExpr {
	return &ReadExpr{nodeImpl: newNodeImpl(NodeReadExpr), Keyword: keyword, Prompt: prompt, Mode: mode}
}

// ComplexExpr applies Operator to Left and Right. Chains nest to the right.
type ComplexExpr struct {
	nodeImpl
	exprMarker

	Left     Expr     `json:"left"`
	Operator Operator `json:"operator"`
	OpToken  Token    `json:"opToken"`
	Right    Expr     `json:"right"`
}

func NewComplexExpr(left Expr, opToken Token, right Expr) *ComplexExpr {
	op, _ := OperatorForToken(opToken.Kind)
	return &ComplexExpr{nodeImpl: newNodeImpl(NodeComplexExpr), Left: left, Operator: op, OpToken: opToken, Right: right}
}

// Boolean expressions

type SimpleBoolExpr struct {
	nodeImpl
	boolExprMarker

	Value Expr `json:"value"`
}

func NewSimpleBoolExpr(value Expr) *SimpleBoolExpr {
	return &SimpleBoolExpr{nodeImpl: newNodeImpl(NodeSimpleBoolExpr), Value: value}
}

// ComplexBoolExpr compares Left and Right, then combines the result with Rest
// through Connector when one is present.
type ComplexBoolExpr struct {
	nodeImpl
	boolExprMarker

	Left      Expr      `json:"left"`
	Relation  Operator  `json:"relation"`
	RelToken  Token     `json:"relToken"`
	Right     Expr      `json:"right"`
	Connector Connector `json:"connector"`
	ConnToken Token     `json:"connToken"`
	Rest      BoolExpr  `json:"rest,omitempty"`
}

func NewComplexBoolExpr(left Expr, relToken Token, right Expr) *ComplexBoolExpr {
	rel, _ := OperatorForToken(relToken.Kind)
	return &ComplexBoolExpr{
		nodeImpl: newNodeImpl(NodeComplexBoolExpr),
		Left:     left,
		Relation: rel,
		RelToken: relToken,
		Right:    right,
	}
}

// Chain attaches a connector and the remaining condition.
func (e *ComplexBoolExpr) Chain(connTok Token, rest BoolExpr) *ComplexBoolExpr {
	switch connTok.Kind {
	case TokenAnd:
		e.Connector = ConnectorAnd
	case TokenOr:
		e.Connector = ConnectorOr
	}
	e.ConnToken = connTok
	e.Rest = rest
	return e
}

type NotBoolExpr struct {
	nodeImpl
	boolExprMarker

	Keyword Token    `json:"keyword"`
	Inner   BoolExpr `json:"inner"`
}

func NewNotBoolExpr(keyword Token, inner BoolExpr) *NotBoolExpr {
	return &NotBoolExpr{nodeImpl: newNodeImpl(NodeNotBoolExpr), Keyword: keyword, Inner: inner}
}
