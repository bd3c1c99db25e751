package interpreter

import (
	"bufio"
	"io"
	"strings"
)

// Source supplies input lines to readint and readstr.
type Source interface {
	ReadLine() (string, error)
}

// PromptingSource displays the prompt itself, as line editors do. The
// interpreter writes prompts to its output for any other Source.
type PromptingSource interface {
	Source
	PromptLine(prompt string) (string, error)
}

type readerSource struct {
	r *bufio.Reader
}

// NewReaderSource reads newline-terminated lines from r.
func NewReaderSource(r io.Reader) Source {
	return &readerSource{r: bufio.NewReader(r)}
}

func (s *readerSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return NormalizeLine(line), err
}

// NormalizeLine strips the line terminator and every carriage return, the way
// the native rt_read_line routine does.
func NormalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.ReplaceAll(line, "\r", "")
}
