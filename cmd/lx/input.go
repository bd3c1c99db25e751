package main

import (
	"errors"
	"io"
	"os"

	"github.com/peterh/liner"

	"github.com/CodyValle/LexicalAnalyzer/pkg/driver"
	"github.com/CodyValle/LexicalAnalyzer/pkg/interpreter"
)

// linerSource reads program input through a line editor. It shows prompts
// itself, so the interpreter hands them over instead of printing them.
type linerSource struct {
	state *liner.State
}

func newLinerSource(state *liner.State) *linerSource {
	return &linerSource{state: state}
}

func (s *linerSource) ReadLine() (string, error) {
	return s.PromptLine("")
}

func (s *linerSource) PromptLine(prompt string) (string, error) {
	line, err := s.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	return interpreter.NormalizeLine(line), err
}

// inputSource picks a line editor for terminals and a plain reader otherwise.
// The returned func releases the terminal.
func inputSource(stdin *os.File) (interpreter.Source, func()) {
	if stdin == os.Stdin && driver.IsTerminal(stdin) && driver.IsTerminal(os.Stdout) {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		return newLinerSource(state), func() { _ = state.Close() }
	}
	return interpreter.NewReaderSource(stdin), func() {}
}
