package parser

import (
	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
)

func isMathOperator(kind ast.TokenKind) bool {
	switch kind {
	case ast.TokenPlus, ast.TokenMinus, ast.TokenStar, ast.TokenSlash:
		return true
	}
	return false
}

func isRelation(kind ast.TokenKind) bool {
	switch kind {
	case ast.TokenEqual, ast.TokenNotEqual, ast.TokenLess, ast.TokenGreater, ast.TokenLessEqual, ast.TokenGreaterEqual:
		return true
	}
	return false
}

// parseExpr reads `value [mathop expr]`, so chains nest to the right.
func (p *parser) parseExpr() (ast.Expr, error) {
	left, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if !isMathOperator(p.peek().Kind) {
		return left, nil
	}
	op := p.advance()
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewComplexExpr(left, op, right), nil
}

func (p *parser) parseValue() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case ast.TokenIdentifier:
		p.advance()
		if _, ok := p.match(ast.TokenLBracket); !ok {
			return ast.NewSimpleExpr(tok), nil
		}
		index, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.TokenRBracket, "after index"); err != nil {
			return nil, err
		}
		return ast.NewIndexExpr(tok, index), nil
	case ast.TokenInteger, ast.TokenString, ast.TokenTrue, ast.TokenFalse:
		p.advance()
		return ast.NewSimpleExpr(tok), nil
	case ast.TokenReadInt, ast.TokenReadStr:
		p.advance()
		if _, err := p.expect(ast.TokenLParen, "after "+tok.Lexeme); err != nil {
			return nil, err
		}
		prompt, err := p.expect(ast.TokenString, "prompt")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.TokenRParen, "to close "+tok.Lexeme); err != nil {
			return nil, err
		}
		mode := ast.ReadInt
		if tok.Kind == ast.TokenReadStr {
			mode = ast.ReadString
		}
		return ast.NewReadExpr(tok, prompt, mode), nil
	case ast.TokenLBracket:
		p.advance()
		var elements []ast.Expr
		if _, ok := p.match(ast.TokenRBracket); ok {
			return ast.NewListExpr(tok, elements), nil
		}
		for {
			el, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			if _, ok := p.match(ast.TokenComma); !ok {
				break
			}
		}
		if _, err := p.expect(ast.TokenRBracket, "to close list"); err != nil {
			return nil, err
		}
		return ast.NewListExpr(tok, elements), nil
	case ast.TokenLParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.TokenRParen, "to close group"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.unexpected("expression")
}

// parseBoolExpr reads `not bexpr | expr [relop expr [(and|or) bexpr]]`.
func (p *parser) parseBoolExpr() (ast.BoolExpr, error) {
	if notTok, ok := p.match(ast.TokenNot); ok {
		inner, err := p.parseBoolExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewNotBoolExpr(notTok, inner), nil
	}
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !isRelation(p.peek().Kind) {
		return ast.NewSimpleBoolExpr(left), nil
	}
	rel := p.advance()
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	cond := ast.NewComplexBoolExpr(left, rel, right)
	if p.check(ast.TokenAnd) || p.check(ast.TokenOr) {
		conn := p.advance()
		rest, err := p.parseBoolExpr()
		if err != nil {
			return nil, err
		}
		cond.Chain(conn, rest)
	}
	return cond, nil
}
