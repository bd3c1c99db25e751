package ast

// Pos returns the position of the token that starts node. A nil node or a
// node built without tokens reports the zero Position.
func Pos(node Node) Position {
	switch n := node.(type) {
	case nil:
		return Position{}
	case *StmtList:
		if n == nil || len(n.Stmts) == 0 {
			return Position{}
		}
		return Pos(n.Stmts[0])
	case *BasicIf:
		return Pos(n.Condition)
	case *IfStmt:
		return n.Keyword.Pos()
	case *WhileStmt:
		return n.Keyword.Pos()
	case *VarDecStmt:
		if n.Var.Line == 0 {
			return n.Name.Pos()
		}
		return n.Var.Pos()
	case *AssignStmt:
		return n.Name.Pos()
	case *PrintStmt:
		return n.Keyword.Pos()
	case *SimpleExpr:
		return n.Term.Pos()
	case *IndexExpr:
		return n.Name.Pos()
	case *ListExpr:
		return n.Open.Pos()
	case *ReadExpr:
		return n.Keyword.Pos()
	case *ComplexExpr:
		return Pos(n.Left)
	case *SimpleBoolExpr:
		return Pos(n.Value)
	case *ComplexBoolExpr:
		return Pos(n.Left)
	case *NotBoolExpr:
		return n.Keyword.Pos()
	}
	return Position{}
}

// Walk calls fn for node and every descendant in source order. Returning
// false from fn skips the node's children.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *StmtList:
		for _, stmt := range n.Stmts {
			Walk(stmt, fn)
		}
	case *BasicIf:
		Walk(n.Condition, fn)
		Walk(n.Body, fn)
	case *IfStmt:
		for _, branch := range n.Branches {
			Walk(branch, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}
	case *WhileStmt:
		Walk(n.Condition, fn)
		Walk(n.Body, fn)
	case *VarDecStmt:
		if n.Init != nil {
			Walk(n.Init, fn)
		}
	case *AssignStmt:
		if n.Index != nil {
			Walk(n.Index, fn)
		}
		Walk(n.Value, fn)
	case *PrintStmt:
		Walk(n.Value, fn)
	case *IndexExpr:
		Walk(n.Index, fn)
	case *ListExpr:
		for _, el := range n.Elements {
			Walk(el, fn)
		}
	case *ComplexExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *SimpleBoolExpr:
		Walk(n.Value, fn)
	case *ComplexBoolExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
		if n.Rest != nil {
			Walk(n.Rest, fn)
		}
	case *NotBoolExpr:
		Walk(n.Inner, fn)
	}
}
