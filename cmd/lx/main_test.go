package main

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/CodyValle/LexicalAnalyzer/pkg/driver"
	"github.com/CodyValle/LexicalAnalyzer/pkg/interpreter"
	"github.com/CodyValle/LexicalAnalyzer/pkg/parser"
)

func TestParseGlobalFlags(t *testing.T) {
	flags, rest, err := parseGlobalFlags([]string{"--backend", "native", "run", "-v", "main.lx"})
	if err != nil {
		t.Fatalf("parseGlobalFlags: %v", err)
	}
	if flags.backend != driver.BackendNative || !flags.verbose {
		t.Fatalf("unexpected flags %#v", flags)
	}
	if strings.Join(rest, " ") != "run main.lx" {
		t.Fatalf("unexpected remaining args %v", rest)
	}
	if _, _, err := parseGlobalFlags([]string{"--backend=vm"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if _, _, err := parseGlobalFlags([]string{"--backend"}); err == nil {
		t.Fatalf("expected error for missing value")
	}
}

func TestLooksLikePathCandidate(t *testing.T) {
	cases := map[string]bool{
		"main.lx":     true,
		"./prog":      true,
		"src/main":    true,
		"app":         false,
		"native_app":  false,
		"":            false,
		`dir\file.lx`: true,
	}
	for arg, want := range cases {
		if got := looksLikePathCandidate(arg); got != want {
			t.Fatalf("looksLikePathCandidate(%q) = %v, want %v", arg, got, want)
		}
	}
}

func TestRunDirectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lx")
	writeFile(t, path, `
var x = 20;
println("x=" + (x + 1));
`)
	code, stdout, stderr := captureCLI(t, []string{"run", path})
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	if stdout != "x=21\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestRunReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lx")
	writeFile(t, path, `println(missing);`)
	code, _, stderr := captureCLI(t, []string{path})
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.HasPrefix(stderr, "typechecker: 1:") {
		t.Fatalf("stderr = %q", stderr)
	}

	writeFile(t, path, `
println("start");
println(1 / 0);
`)
	code, stdout, stderr := captureCLI(t, []string{"run", path})
	if code != 1 || stdout != "start\n" || !strings.HasPrefix(stderr, "runtime: 2:") || !strings.Contains(stderr, "division by zero") {
		t.Fatalf("code %d stdout %q stderr %q", code, stdout, stderr)
	}
}

func TestUsageErrors(t *testing.T) {
	if code, _, _ := captureCLI(t, nil); code != 2 {
		t.Fatalf("no args: exit %d, want 2", code)
	}
	if code, _, _ := captureCLI(t, []string{"frobnicate"}); code != 2 {
		t.Fatalf("unknown command: exit %d, want 2", code)
	}
	if code, stdout, _ := captureCLI(t, []string{"--version"}); code != 0 || strings.TrimSpace(stdout) != cliToolVersion {
		t.Fatalf("version: exit %d stdout %q", code, stdout)
	}
}

func TestRunManifestTarget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, driver.ManifestFile), `
name: demo
targets:
  hello: src/hello.lx
  other: src/other.lx
`)
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "src", "hello.lx"), `println("hello");`)
	writeFile(t, filepath.Join(dir, "src", "other.lx"), `println("other");`)
	chdir(t, dir)

	code, stdout, stderr := captureCLI(t, []string{"run"})
	if code != 0 || stdout != "hello\n" {
		t.Fatalf("default target: code %d stdout %q stderr %q", code, stdout, stderr)
	}
	code, stdout, stderr = captureCLI(t, []string{"run", "other"})
	if code != 0 || stdout != "other\n" {
		t.Fatalf("named target: code %d stdout %q stderr %q", code, stdout, stderr)
	}
	code, stdout, _ = captureCLI(t, []string{"check", "other"})
	if code != 0 || !strings.HasSuffix(stdout, "other.lx: ok\n") {
		t.Fatalf("check: code %d stdout %q", code, stdout)
	}
}

func TestBuildStampsRevision(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.lx")
	writeFile(t, src, `println(1);`)
	hash := initGitRepo(t, dir)

	out := filepath.Join(dir, "out", "main.asm")
	code, stdout, stderr := captureCLI(t, []string{"build", "-o", out, src})
	if code != 0 {
		t.Fatalf("build: code %d stderr %q", code, stderr)
	}
	if strings.TrimSpace(stdout) != out {
		t.Fatalf("build stdout = %q", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read asm: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "; generated by lx from main.lx\n") {
		t.Fatalf("missing header:\n%s", text)
	}
	if !strings.Contains(text, "; revision "+hash[:12]) {
		t.Fatalf("missing revision %s:\n%s", hash[:12], text)
	}
	if !strings.Contains(text, "global _start") {
		t.Fatalf("missing entry point:\n%s", text)
	}
}

func TestCheckReportsEachFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lx")
	bad := filepath.Join(dir, "bad.lx")
	other := filepath.Join(dir, "other.lx")
	writeFile(t, good, `println(1);`)
	writeFile(t, bad, `println(missing);`)
	writeFile(t, other, `var s = "a"; println(s);`)

	code, stdout, stderr := captureCLI(t, []string{"check", good, bad, other})
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if stdout != good+": ok\n"+other+": ok\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if !strings.HasPrefix(stderr, bad+": typechecker: ") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestTokensAndAstCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lx")
	writeFile(t, path, `println(1 + x);`)

	code, stdout, stderr := captureCLI(t, []string{"tokens", path})
	if code != 0 {
		t.Fatalf("tokens: code %d stderr %q", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 8 || lines[0] != "1:1\tprintln\t\"println\"" || lines[5] != "1:14\t)\t\")\"" || lines[7] != "2:1\tend of input\t\"\"" {
		t.Fatalf("tokens output:\n%s", stdout)
	}

	code, stdout, stderr = captureCLI(t, []string{"ast", path})
	if code != 0 {
		t.Fatalf("ast: code %d stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, "PrintStmt 1:1 println") || !strings.Contains(stdout, `SimpleExpr 1:13 identifier "x"`) {
		t.Fatalf("ast output:\n%s", stdout)
	}

	broken := filepath.Join(dir, "broken.lx")
	writeFile(t, broken, `println(;`)
	code, stdout, stderr = captureCLI(t, []string{"ast", broken, path})
	if code != 1 || !strings.Contains(stdout, "== "+path) || !strings.HasPrefix(stderr, broken+": parser: ") {
		t.Fatalf("code %d stdout %q stderr %q", code, stdout, stderr)
	}
}

func TestSessionKeepsGlobalsAndRollsBackErrors(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(&out, interpreter.NewReaderSource(strings.NewReader("")))
	entries := []string{
		"var x = 2;",
		"var y = x + missing;",
		"var y = x * 10;",
		"println(y);",
	}
	var failures int
	for _, entry := range entries {
		list, err := parser.Parse([]byte(entry))
		if err != nil {
			t.Fatalf("parse %q: %v", entry, err)
		}
		if err := sess.eval(list); err != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Fatalf("expected exactly one rejected entry, got %d", failures)
	}
	if out.String() != "20\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, err = worktree.Add(rel)
		return err
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
	hash, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "lx",
			Email: "lx@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func captureCLI(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("stderr pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code := run(args)

	if err := wOut.Close(); err != nil {
		t.Fatalf("stdout close: %v", err)
	}
	if err := wErr.Close(); err != nil {
		t.Fatalf("stderr close: %v", err)
	}

	os.Stdout = stdout
	os.Stderr = stderr

	outBytes, err := io.ReadAll(rOut)
	if err != nil {
		t.Fatalf("stdout read: %v", err)
	}
	errBytes, err := io.ReadAll(rErr)
	if err != nil {
		t.Fatalf("stderr read: %v", err)
	}
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
