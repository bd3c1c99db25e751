package ast

import "strconv"

// Builders for tests. Tokens produced here carry no position.

// Token helpers.

func Tok(kind TokenKind, lexeme string) Token {
	return Token{Kind: kind, Lexeme: lexeme}
}

func Ident(name string) Token {
	return Tok(TokenIdentifier, name)
}

func OpTok(op Operator) Token {
	for kind, name := range tokenNames {
		if name == string(op) {
			return Tok(kind, string(op))
		}
	}
	return Token{}
}

// Expression helpers.

func ID(name string) *SimpleExpr {
	return NewSimpleExpr(Ident(name))
}

func Int(value int64) *SimpleExpr {
	return NewSimpleExpr(Tok(TokenInteger, strconv.FormatInt(value, 10)))
}

func Str(value string) *SimpleExpr {
	return NewSimpleExpr(Tok(TokenString, value))
}

func Bool(value bool) *SimpleExpr {
	if value {
		return NewSimpleExpr(Tok(TokenTrue, "true"))
	}
	return NewSimpleExpr(Tok(TokenFalse, "false"))
}

func List(elements ...Expr) *ListExpr {
	return NewListExpr(Tok(TokenLBracket, "["), elements)
}

func Index(name string, index Expr) *IndexExpr {
	return NewIndexExpr(Ident(name), index)
}

func Bin(left Expr, op Operator, right Expr) *ComplexExpr {
	return NewComplexExpr(left, OpTok(op), right)
}

func ReadIntExpr(prompt string) *ReadExpr {
	return NewReadExpr(Tok(TokenReadInt, "readint"), Tok(TokenString, prompt), ReadInt)
}

func ReadStrExpr(prompt string) *ReadExpr {
	return NewReadExpr(Tok(TokenReadStr, "readstr"), Tok(TokenString, prompt), ReadString)
}

// Condition helpers.

func Cond(value Expr) *SimpleBoolExpr {
	return NewSimpleBoolExpr(value)
}

func Rel(left Expr, op Operator, right Expr) *ComplexBoolExpr {
	return NewComplexBoolExpr(left, OpTok(op), right)
}

func And(first *ComplexBoolExpr, rest BoolExpr) *ComplexBoolExpr {
	return first.Chain(Tok(TokenAnd, "and"), rest)
}

func Or(first *ComplexBoolExpr, rest BoolExpr) *ComplexBoolExpr {
	return first.Chain(Tok(TokenOr, "or"), rest)
}

func Not(inner BoolExpr) *NotBoolExpr {
	return NewNotBoolExpr(Tok(TokenNot, "not"), inner)
}

// Statement helpers.

func Block(stmts ...Stmt) *StmtList {
	return NewStmtList(stmts)
}

func Var(name string, init Expr) *VarDecStmt {
	return NewVarDecStmt(Tok(TokenVar, "var"), Ident(name), TypeUnknown, SubtypeScalar, init)
}

func VarTyped(name string, typ TypeName, init Expr) *VarDecStmt {
	return NewVarDecStmt(Tok(TokenVar, "var"), Ident(name), typ, SubtypeScalar, init)
}

func VarList(name string, typ TypeName, init Expr) *VarDecStmt {
	return NewVarDecStmt(Tok(TokenVar, "var"), Ident(name), typ, SubtypeList, init)
}

func Assign(name string, value Expr) *AssignStmt {
	return NewAssignStmt(Ident(name), nil, value)
}

func AssignIndex(name string, index Expr, value Expr) *AssignStmt {
	return NewAssignStmt(Ident(name), index, value)
}

func Print(value Expr) *PrintStmt {
	return NewPrintStmt(Tok(TokenPrint, "print"), value, false)
}

func Println(value Expr) *PrintStmt {
	return NewPrintStmt(Tok(TokenPrintln, "println"), value, true)
}

func If(cond BoolExpr, body ...Stmt) *IfStmt {
	return NewIfStmt(Tok(TokenIf, "if"), []*BasicIf{NewBasicIf(cond, Block(body...))}, nil)
}

// Elif appends an `elif` branch to stmt.
func (stmt *IfStmt) Elif(cond BoolExpr, body ...Stmt) *IfStmt {
	stmt.Branches = append(stmt.Branches, NewBasicIf(cond, Block(body...)))
	return stmt
}

// Otherwise sets the `else` body of stmt.
func (stmt *IfStmt) Otherwise(body ...Stmt) *IfStmt {
	stmt.Else = Block(body...)
	return stmt
}

func While(cond BoolExpr, body ...Stmt) *WhileStmt {
	return NewWhileStmt(Tok(TokenWhile, "while"), cond, Block(body...))
}
