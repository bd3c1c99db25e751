package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/CodyValle/LexicalAnalyzer/pkg/compiler"
)

// BuildResult lists the files produced by Build.
type BuildResult struct {
	AsmPath string
	// ExePath is empty unless the build assembled an executable.
	ExePath string
}

// Build writes program as assembly to asmPath and, when assemble is set,
// links an executable next to it named after the source file.
func Build(ctx context.Context, program *Program, cfg Config, asmPath string, assemble bool) (*BuildResult, error) {
	if program == nil || program.Checked == nil {
		return nil, fmt.Errorf("driver: missing program")
	}
	dir, name := filepath.Split(asmPath)
	if dir == "" {
		dir = "."
	}
	comp := compiler.New(compiler.Options{OutputName: name, Header: BuildHeader(program)})
	result, err := comp.Compile(program.Checked)
	if err != nil {
		return nil, err
	}
	if err := result.Write(dir); err != nil {
		return nil, err
	}
	out := &BuildResult{AsmPath: comp.AssemblyPath(dir)}
	cfg.Tracef("wrote %s", out.AsmPath)
	if !assemble {
		return out, nil
	}
	out.ExePath = ExePathFor(out.AsmPath)
	if err := compiler.Assemble(ctx, out.AsmPath, out.ExePath, compiler.Toolchain{Nasm: cfg.Nasm, Ld: cfg.Ld}); err != nil {
		return nil, err
	}
	cfg.Tracef("linked %s", out.ExePath)
	return out, nil
}

// ExePathFor names the executable linked from asmPath: the assembly path
// without its extension, or with ".out" appended when it has none.
func ExePathFor(asmPath string) string {
	exe := strings.TrimSuffix(asmPath, filepath.Ext(asmPath))
	if exe == asmPath || exe == "" || strings.HasSuffix(exe, string(filepath.Separator)) {
		return asmPath + ".out"
	}
	return exe
}

// DefaultAsmPath places a program's assembly in the output directory.
func DefaultAsmPath(cfg Config, program *Program) string {
	base := strings.TrimSuffix(filepath.Base(program.Path), filepath.Ext(program.Path))
	return filepath.Join(cfg.OutDir, base+".asm")
}

// RunNative builds program in a scratch directory and runs the executable.
// A failing program surfaces as an *exec.ExitError.
func RunNative(ctx context.Context, program *Program, cfg Config, stdin io.Reader, stdout, stderr io.Writer) error {
	dir, err := os.MkdirTemp("", "lx-native-")
	if err != nil {
		return fmt.Errorf("driver: scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	base := strings.TrimSuffix(filepath.Base(program.Path), filepath.Ext(program.Path))
	built, err := Build(ctx, program, cfg, filepath.Join(dir, base+".asm"), true)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, built.ExePath)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
