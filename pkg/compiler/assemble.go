package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Toolchain names the assembler and linker binaries.
type Toolchain struct {
	Nasm string
	Ld   string
}

func (t Toolchain) withDefaults() Toolchain {
	if t.Nasm == "" {
		t.Nasm = "nasm"
	}
	if t.Ld == "" {
		t.Ld = "ld"
	}
	return t
}

// Available reports whether both tools can be found on PATH.
func (t Toolchain) Available() bool {
	t = t.withDefaults()
	if _, err := exec.LookPath(t.Nasm); err != nil {
		return false
	}
	_, err := exec.LookPath(t.Ld)
	return err == nil
}

// Assemble turns the assembly at asmPath into a static executable at
// exePath. The object file is written next to the executable.
func Assemble(ctx context.Context, asmPath, exePath string, tc Toolchain) error {
	tc = tc.withDefaults()
	objPath := strings.TrimSuffix(exePath, ".out") + ".o"
	if err := run(ctx, tc.Nasm, "-f", "elf64", "-o", objPath, asmPath); err != nil {
		return err
	}
	return run(ctx, tc.Ld, "-o", exePath, objPath)
}

func run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("compiler: %s: %w: %s", name, err, detail)
		}
		return fmt.Errorf("compiler: %s: %w", name, err)
	}
	return nil
}
