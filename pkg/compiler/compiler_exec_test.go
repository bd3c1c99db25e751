package compiler_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/CodyValle/LexicalAnalyzer/pkg/compiler"
	"github.com/CodyValle/LexicalAnalyzer/pkg/driver"
	"github.com/CodyValle/LexicalAnalyzer/pkg/interpreter"
)

// TestNativeMatchesInterpreter runs every fixture through both backends and
// compares their behaviour.
func TestNativeMatchesInterpreter(t *testing.T) {
	if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" {
		t.Skip("native code targets x86-64 Linux")
	}
	if !(compiler.Toolchain{}).Available() {
		t.Skip("nasm or ld not found on PATH")
	}
	fixtures, err := driver.LoadFixtures("../../testdata/fixtures")
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	cfg := driver.Config{Nasm: "nasm", Ld: "ld"}
	for _, fixture := range fixtures {
		if fixture.Error == "parse" || fixture.Error == "check" {
			continue
		}
		t.Run(fixture.Name, func(t *testing.T) {
			program, err := driver.NewLoader(nil).Load(fixture.MainPath())
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}

			var interpOut bytes.Buffer
			interpErr := interpreter.Run(program.Checked, &interpOut, interpreter.NewReaderSource(strings.NewReader(fixture.Stdin)))

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			var nativeOut, nativeErr bytes.Buffer
			runErr := driver.RunNative(ctx, program, cfg, strings.NewReader(fixture.Stdin), &nativeOut, &nativeErr)

			if nativeOut.String() != interpOut.String() {
				t.Fatalf("stdout differs:\n native: %q\ninterp: %q", nativeOut.String(), interpOut.String())
			}
			if interpErr == nil {
				if runErr != nil {
					t.Fatalf("native run failed: %v (stderr %q)", runErr, nativeErr.String())
				}
				return
			}
			var exitErr *exec.ExitError
			if !errors.As(runErr, &exitErr) || exitErr.ExitCode() != 1 {
				t.Fatalf("expected exit status 1, got %v", runErr)
			}
			if !strings.Contains(nativeErr.String(), fixture.ErrorContains) {
				t.Fatalf("native stderr %q does not contain %q", nativeErr.String(), fixture.ErrorContains)
			}
		})
	}
}
