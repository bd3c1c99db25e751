package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
	"github.com/CodyValle/LexicalAnalyzer/pkg/interpreter"
	"github.com/CodyValle/LexicalAnalyzer/pkg/parser"
	"github.com/CodyValle/LexicalAnalyzer/pkg/typechecker"
)

const (
	historyFile = ".lx_history"
	promptMain  = "lx> "
	promptCont  = "... "
)

// session holds the state carried from one REPL entry to the next: the
// checker's and the interpreter's global frames.
type session struct {
	checker *typechecker.Checker
	interp  *interpreter.Interpreter
	out     io.Writer
}

func newSession(out io.Writer, in interpreter.Source) *session {
	return &session{
		checker: typechecker.New(),
		interp:  interpreter.New(out, in),
		out:     out,
	}
}

// eval checks and runs one entry. A rejected entry leaves no declarations
// behind.
func (s *session) eval(list *ast.StmtList) error {
	program, err := s.checker.CheckIncremental(list)
	if err != nil {
		return err
	}
	return s.interp.Run(program)
}

func runRepl(args []string, flags globalFlags) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args, " "))
		return 2
	}
	if flags.backend != "" {
		fmt.Fprintln(os.Stderr, "warning: lx repl always interprets; --backend ignored")
	}
	fmt.Fprintf(os.Stdout, "%s (:quit to exit)\n", cliToolVersion)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sess := newSession(os.Stdout, newLinerSource(ln))
	for {
		code, list, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(os.Stdout)
			return 0
		}
		trimmed := strings.TrimSpace(code)
		switch {
		case trimmed == "":
			continue
		case trimmed == ":quit" || trimmed == ":q":
			return 0
		case strings.HasPrefix(trimmed, ":"):
			fmt.Fprintln(os.Stdout, "unknown command. Type :quit to exit.")
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if list == nil {
			continue
		}
		if err := sess.eval(list); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// readEntry collects lines until they parse or fail for a reason other than
// running out of input. A nil list with ok set means the error was reported.
func readEntry(ln *liner.State) (string, *ast.StmtList, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", nil, false
		}
		if err != nil {
			return "", nil, true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		code := b.String()
		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			return code, nil, true
		}
		list, perr := parser.Parse([]byte(code))
		if perr == nil {
			return code, list, true
		}
		var parseErr *parser.ParseError
		if errors.As(perr, &parseErr) && parseErr.Incomplete && strings.TrimSpace(code) != "" {
			continue
		}
		fmt.Fprintln(os.Stderr, perr)
		return code, nil, true
	}
}
