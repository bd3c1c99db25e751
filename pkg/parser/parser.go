package parser

import (
	"fmt"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
)

// Parse turns lx source into its top-level block.
func Parse(source []byte) (*ast.StmtList, error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	list, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	if !p.check(ast.TokenEOF) {
		return nil, p.unexpected("statement")
	}
	return list, nil
}

type parser struct {
	tokens []ast.Token
	pos    int
}

func (p *parser) peek() ast.Token { return p.tokens[p.pos] }

func (p *parser) check(kind ast.TokenKind) bool { return p.peek().Kind == kind }

func (p *parser) advance() ast.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != ast.TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) match(kind ast.TokenKind) (ast.Token, bool) {
	if !p.check(kind) {
		return ast.Token{}, false
	}
	return p.advance(), true
}

func (p *parser) expect(kind ast.TokenKind, context string) (ast.Token, error) {
	if tok, ok := p.match(kind); ok {
		return tok, nil
	}
	return ast.Token{}, p.unexpected(fmt.Sprintf("%s %s", kind, context))
}

func (p *parser) unexpected(wanted string) error {
	tok := p.peek()
	return &ParseError{
		Message:    fmt.Sprintf("expected %s, found %s", wanted, tok),
		Pos:        tok.Pos(),
		Incomplete: tok.Kind == ast.TokenEOF,
	}
}

// parseStmts reads statements until a token that closes the block.
func (p *parser) parseStmts() (*ast.StmtList, error) {
	var stmts []ast.Stmt
	for {
		switch p.peek().Kind {
		case ast.TokenEOF, ast.TokenEnd, ast.TokenElif, ast.TokenElse:
			return ast.NewStmtList(stmts), nil
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *parser) parseStmt() (ast.Stmt, error) {
	switch p.peek().Kind {
	case ast.TokenPrint, ast.TokenPrintln:
		return p.parsePrint()
	case ast.TokenVar:
		return p.parseVarDec()
	case ast.TokenIdentifier:
		return p.parseAssign()
	case ast.TokenIf:
		return p.parseIf()
	case ast.TokenWhile:
		return p.parseWhile()
	}
	return nil, p.unexpected("statement")
}

func (p *parser) parsePrint() (ast.Stmt, error) {
	keyword := p.advance()
	if _, err := p.expect(ast.TokenLParen, "after "+keyword.Lexeme); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.TokenRParen, "to close "+keyword.Lexeme); err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.TokenSemicolon, "after statement"); err != nil {
		return nil, err
	}
	return ast.NewPrintStmt(keyword, value, keyword.Kind == ast.TokenPrintln), nil
}

func (p *parser) parseVarDec() (ast.Stmt, error) {
	varTok := p.advance()
	declared := ast.TypeUnknown
	subtype := ast.SubtypeScalar
	switch p.peek().Kind {
	case ast.TokenTypeInt:
		declared = ast.TypeInt
	case ast.TokenTypeBool:
		declared = ast.TypeBool
	case ast.TokenTypeString:
		declared = ast.TypeString
	}
	if declared != ast.TypeUnknown {
		p.advance()
		if _, ok := p.match(ast.TokenLBracket); ok {
			if _, err := p.expect(ast.TokenRBracket, "in list type"); err != nil {
				return nil, err
			}
			subtype = ast.SubtypeList
		}
	}
	name, err := p.expect(ast.TokenIdentifier, "in declaration")
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if _, ok := p.match(ast.TokenAssign); ok {
		if init, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ast.TokenSemicolon, "after declaration"); err != nil {
		return nil, err
	}
	return ast.NewVarDecStmt(varTok, name, declared, subtype, init), nil
}

func (p *parser) parseAssign() (ast.Stmt, error) {
	name := p.advance()
	var index ast.Expr
	if _, ok := p.match(ast.TokenLBracket); ok {
		var err error
		if index, err = p.parseExpr(); err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.TokenRBracket, "after index"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ast.TokenAssign, "in assignment"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.TokenSemicolon, "after assignment"); err != nil {
		return nil, err
	}
	return ast.NewAssignStmt(name, index, value), nil
}

func (p *parser) parseIf() (ast.Stmt, error) {
	keyword := p.advance()
	var branches []*ast.BasicIf
	for {
		cond, err := p.parseBoolExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.TokenThen, "after condition"); err != nil {
			return nil, err
		}
		body, err := p.parseStmts()
		if err != nil {
			return nil, err
		}
		branches = append(branches, ast.NewBasicIf(cond, body))
		if _, ok := p.match(ast.TokenElif); !ok {
			break
		}
	}
	var elseBody *ast.StmtList
	if _, ok := p.match(ast.TokenElse); ok {
		var err error
		if elseBody, err = p.parseStmts(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ast.TokenEnd, "to close if"); err != nil {
		return nil, err
	}
	return ast.NewIfStmt(keyword, branches, elseBody), nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	keyword := p.advance()
	cond, err := p.parseBoolExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.TokenDo, "after condition"); err != nil {
		return nil, err
	}
	body, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.TokenEnd, "to close while"); err != nil {
		return nil, err
	}
	return ast.NewWhileStmt(keyword, cond, body), nil
}
