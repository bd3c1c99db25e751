package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadManifestBasic(t *testing.T) {
	path := writeManifest(t, `
name: Word Count
version: "0.1.0"
authors:
  - Cody
targets:
  app: src/main.lx
  native-app:
    main: src/main.lx
    backend: Native
    output: build/app.asm
    assemble: true
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if got, want := manifest.Name, "word_count"; got != want {
		t.Fatalf("Name = %q, want %q", got, want)
	}
	if len(manifest.Authors) != 1 || manifest.Authors[0] != "Cody" {
		t.Fatalf("Authors unexpected: %#v", manifest.Authors)
	}
	if got := strings.Join(manifest.TargetOrder, ","); got != "app,native_app" {
		t.Fatalf("TargetOrder = %q", got)
	}

	def, err := manifest.DefaultTarget()
	if err != nil || def.Name != "app" {
		t.Fatalf("DefaultTarget = %#v, %v", def, err)
	}
	if def.Backend != "" {
		t.Fatalf("shorthand target should not set a backend, got %q", def.Backend)
	}

	native, ok := manifest.FindTarget("native-app")
	if !ok {
		t.Fatalf("FindTarget(native-app) failed")
	}
	if native.Backend != BackendNative || !native.Assemble || native.Output != "build/app.asm" {
		t.Fatalf("native target not parsed: %#v", native)
	}
	mainPath, err := manifest.MainPath(native)
	if err != nil {
		t.Fatalf("MainPath: %v", err)
	}
	if want := filepath.Join(filepath.Dir(path), "src", "main.lx"); mainPath != want {
		t.Fatalf("MainPath = %q, want %q", mainPath, want)
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := writeManifest(t, `
name: demo
dependencies:
  other: "1.0"
`)
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestLoadManifestValidation(t *testing.T) {
	path := writeManifest(t, `
targets:
  a:
    main: main.txt
    backend: jit
  b:
    main: b.lx
    assemble: true
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	joined := strings.Join(verr.Issues, "\n")
	for _, want := range []string{"name must be provided", "must be a .lx file", "unsupported backend", "assemble without an output"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing issue %q in:\n%s", want, joined)
		}
	}
}

func TestFindManifestWalksUpwards(t *testing.T) {
	path := writeManifest(t, "name: demo\n")
	nested := filepath.Join(filepath.Dir(path), "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if found != path {
		t.Fatalf("FindManifest = %q, want %q", found, path)
	}
}

func TestParseBackend(t *testing.T) {
	if b, err := ParseBackend(" NATIVE "); err != nil || b != BackendNative {
		t.Fatalf("ParseBackend = %q, %v", b, err)
	}
	if _, err := ParseBackend("bytecode"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}
