package parser

import (
	"fmt"
	"strconv"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
)

// Lexer scans lx source into positioned tokens.
type Lexer struct {
	src  []byte
	cur  int
	line int // 1-based
	col  int // 1-based column of src[cur]

	tokLine int
	tokCol  int
}

func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Lex scans all of src. The final token is always TokenEOF.
func Lex(src []byte) ([]ast.Token, error) {
	l := NewLexer(src)
	var tokens []ast.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == ast.TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) match(want byte) bool {
	if l.peek() != want || l.isAtEnd() {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) token(kind ast.TokenKind, lexeme string) ast.Token {
	return ast.Token{Kind: kind, Lexeme: lexeme, Line: l.tokLine, Column: l.tokCol}
}

func (l *Lexer) errorf(format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Pos: ast.Position{Line: l.tokLine, Column: l.tokCol}}
}

// skipTrivia skips blanks and `#` comments.
func (l *Lexer) skipTrivia() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '#':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }

// Next returns the following token.
func (l *Lexer) Next() (ast.Token, error) {
	l.skipTrivia()
	l.tokLine, l.tokCol = l.line, l.col
	if l.isAtEnd() {
		return l.token(ast.TokenEOF, ""), nil
	}
	start := l.cur
	ch := l.advance()
	switch ch {
	case '(':
		return l.token(ast.TokenLParen, "("), nil
	case ')':
		return l.token(ast.TokenRParen, ")"), nil
	case '[':
		return l.token(ast.TokenLBracket, "["), nil
	case ']':
		return l.token(ast.TokenRBracket, "]"), nil
	case ',':
		return l.token(ast.TokenComma, ","), nil
	case ';':
		return l.token(ast.TokenSemicolon, ";"), nil
	case '+':
		return l.token(ast.TokenPlus, "+"), nil
	case '-':
		return l.token(ast.TokenMinus, "-"), nil
	case '*':
		return l.token(ast.TokenStar, "*"), nil
	case '/':
		return l.token(ast.TokenSlash, "/"), nil
	case '=':
		if l.match('=') {
			return l.token(ast.TokenEqual, "=="), nil
		}
		return l.token(ast.TokenAssign, "="), nil
	case '!':
		if l.match('=') {
			return l.token(ast.TokenNotEqual, "!="), nil
		}
		return ast.Token{}, l.errorf("unexpected character '!'")
	case '<':
		if l.match('=') {
			return l.token(ast.TokenLessEqual, "<="), nil
		}
		return l.token(ast.TokenLess, "<"), nil
	case '>':
		if l.match('=') {
			return l.token(ast.TokenGreaterEqual, ">="), nil
		}
		return l.token(ast.TokenGreater, ">"), nil
	case '"':
		return l.scanString()
	}
	switch {
	case isDigit(ch):
		for isDigit(l.peek()) {
			l.advance()
		}
		lexeme := string(l.src[start:l.cur])
		if _, err := strconv.ParseInt(lexeme, 10, 64); err != nil {
			return ast.Token{}, l.errorf("integer literal %s out of range", lexeme)
		}
		return l.token(ast.TokenInteger, lexeme), nil
	case isAlpha(ch):
		for isAlpha(l.peek()) || isDigit(l.peek()) {
			l.advance()
		}
		word := string(l.src[start:l.cur])
		if kind, ok := ast.Keywords[word]; ok {
			return l.token(kind, word), nil
		}
		return l.token(ast.TokenIdentifier, word), nil
	}
	return ast.Token{}, l.errorf("unexpected character %q", ch)
}

// scanString reads a double-quoted literal. Literals have no escapes and end
// on the same line.
func (l *Lexer) scanString() (ast.Token, error) {
	start := l.cur
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			return ast.Token{}, l.errorf("unterminated string literal")
		}
		l.advance()
	}
	if l.isAtEnd() {
		return ast.Token{}, l.errorf("unterminated string literal")
	}
	text := string(l.src[start:l.cur])
	l.advance()
	return l.token(ast.TokenString, text), nil
}
