package main

import (
	"fmt"
	"os"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/parser"
)

// tokensEntry lists the tokens of each file, one per line.
func tokensEntry(args []string) int {
	return eachSource("tokens", args, func(src []byte) error {
		tokens, err := parser.Lex(src)
		if err != nil {
			return err
		}
		for _, tok := range tokens {
			fmt.Fprintf(os.Stdout, "%s\t%s\t%q\n", tok.Pos(), tok.Kind, tok.Lexeme)
		}
		return nil
	})
}

// astEntry prints the parse tree of each file without checking it.
func astEntry(args []string) int {
	return eachSource("ast", args, func(src []byte) error {
		list, err := parser.Parse(src)
		if err != nil {
			return err
		}
		return ast.Fprint(os.Stdout, list)
	})
}

// eachSource runs fn over every file. A file that fails is reported and the
// remaining files are still processed.
func eachSource(command string, paths []string, fn func(src []byte) error) int {
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "lx %s requires at least one source file\n", command)
		return 2
	}
	status := 0
	for _, path := range paths {
		if len(paths) > 1 {
			fmt.Fprintf(os.Stdout, "== %s\n", path)
		}
		src, err := os.ReadFile(path)
		if err == nil {
			err = fn(src)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			status = 1
		}
	}
	return status
}
