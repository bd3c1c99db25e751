package ast

import "fmt"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdentifier
	TokenInteger
	TokenString

	// keywords
	TokenPrint
	TokenPrintln
	TokenReadInt
	TokenReadStr
	TokenVar
	TokenIf
	TokenThen
	TokenElif
	TokenElse
	TokenEnd
	TokenWhile
	TokenDo
	TokenAnd
	TokenOr
	TokenNot
	TokenTrue
	TokenFalse
	TokenTypeInt
	TokenTypeString
	TokenTypeBool

	// operators
	TokenAssign
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenEqual
	TokenNotEqual
	TokenLess
	TokenGreater
	TokenLessEqual
	TokenGreaterEqual

	// punctuation
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenSemicolon
)

var tokenNames = map[TokenKind]string{
	TokenEOF:          "end of input",
	TokenIdentifier:   "identifier",
	TokenInteger:      "integer",
	TokenString:       "string",
	TokenPrint:        "print",
	TokenPrintln:      "println",
	TokenReadInt:      "readint",
	TokenReadStr:      "readstr",
	TokenVar:          "var",
	TokenIf:           "if",
	TokenThen:         "then",
	TokenElif:         "elif",
	TokenElse:         "else",
	TokenEnd:          "end",
	TokenWhile:        "while",
	TokenDo:           "do",
	TokenAnd:          "and",
	TokenOr:           "or",
	TokenNot:          "not",
	TokenTrue:         "true",
	TokenFalse:        "false",
	TokenTypeInt:      "int",
	TokenTypeString:   "string type",
	TokenTypeBool:     "bool",
	TokenAssign:       "=",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenEqual:        "==",
	TokenNotEqual:     "!=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenLBracket:     "[",
	TokenRBracket:     "]",
	TokenComma:        ",",
	TokenSemicolon:    ";",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// Keywords maps reserved words to their token kinds. `boolean` is accepted as
// a spelling of `bool`.
var Keywords = map[string]TokenKind{
	"print":   TokenPrint,
	"println": TokenPrintln,
	"readint": TokenReadInt,
	"readstr": TokenReadStr,
	"var":     TokenVar,
	"if":      TokenIf,
	"then":    TokenThen,
	"elif":    TokenElif,
	"else":    TokenElse,
	"end":     TokenEnd,
	"while":   TokenWhile,
	"do":      TokenDo,
	"and":     TokenAnd,
	"or":      TokenOr,
	"not":     TokenNot,
	"true":    TokenTrue,
	"false":   TokenFalse,
	"int":     TokenTypeInt,
	"string":  TokenTypeString,
	"bool":    TokenTypeBool,
	"boolean": TokenTypeBool,
}

// Token is a positioned lexeme. Line and Column are 1-based.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
}

func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column}
}

func (t Token) String() string {
	if t.Lexeme == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}

// Position identifies a location in source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
