package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/CodyValle/LexicalAnalyzer/pkg/driver"
	"github.com/CodyValle/LexicalAnalyzer/pkg/interpreter"
)

// invocation is a resolved entry file plus the manifest and target it came
// from, either of which may be nil.
type invocation struct {
	path     string
	manifest *driver.Manifest
	target   *driver.TargetSpec
}

// resolveEntry turns the positional arguments of run, check and build into an
// entry file. No argument selects the manifest's default target; one argument
// is a target name or a source path.
func resolveEntry(command string, args []string) (*invocation, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(args[1:], " "))
	}
	if len(args) == 0 {
		manifest, err := loadManifestFrom(".")
		if err != nil {
			if errors.Is(err, driver.ErrManifestNotFound) {
				return nil, fmt.Errorf("lx %s requires a manifest target or source file (%s not found)", command, driver.ManifestFile)
			}
			return nil, err
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			return nil, err
		}
		return invocationFor(manifest, target)
	}

	candidate := args[0]
	if !looksLikePathCandidate(candidate) {
		manifest, err := loadManifestFrom(".")
		if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
			return nil, err
		}
		if target, ok := manifest.FindTarget(candidate); ok {
			return invocationFor(manifest, target)
		}
	}

	inv := &invocation{path: candidate}
	manifest, err := loadManifestFrom(candidate)
	switch {
	case err == nil:
		inv.manifest = manifest
	case errors.Is(err, driver.ErrManifestNotFound):
	default:
		fmt.Fprintf(os.Stderr, "warning: unable to load manifest (%v); using defaults\n", err)
	}
	return inv, nil
}

func invocationFor(manifest *driver.Manifest, target *driver.TargetSpec) (*invocation, error) {
	path, err := manifest.MainPath(target)
	if err != nil {
		return nil, err
	}
	return &invocation{path: path, manifest: manifest, target: target}, nil
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	manifestPath, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

func looksLikePathCandidate(arg string) bool {
	if arg == "" {
		return false
	}
	if strings.ContainsAny(arg, `/\`) || strings.Contains(arg, string(os.PathSeparator)) {
		return true
	}
	return filepath.Ext(arg) == driver.SourceExt || strings.HasPrefix(arg, ".")
}

func (inv *invocation) config(flags globalFlags) (driver.Config, error) {
	cfg, err := driver.LoadConfig(inv.target)
	if err != nil {
		return cfg, err
	}
	return flags.apply(cfg), nil
}

func (inv *invocation) load(cfg driver.Config) (*driver.Program, error) {
	return driver.NewLoader(cfg.Tracef).Load(inv.path)
}

func runEntry(args []string, flags globalFlags) int {
	inv, err := resolveEntry("run", args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg, err := inv.config(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	program, err := inv.load(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return execute(program, cfg, os.Stdin, os.Stdout, os.Stderr)
}

// execute runs a loaded program on the configured backend and returns the
// process exit status.
func execute(program *driver.Program, cfg driver.Config, stdin *os.File, stdout, stderr io.Writer) int {
	if cfg.Backend == driver.BackendNative {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := driver.RunNative(ctx, program, cfg, stdin, stdout, stderr)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	source, closeSource := inputSource(stdin)
	defer closeSource()
	if err := interpreter.Run(program.Checked, stdout, source); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	cfg.Tracef("finished %s", program.Path)
	return 0
}

func checkEntry(args []string, flags globalFlags) int {
	if len(args) > 1 {
		return checkFiles(args, flags)
	}
	inv, err := resolveEntry("check", args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return checkOne(inv, flags)
}

// checkFiles checks each file on its own; a failure in one is reported and
// the rest are still checked.
func checkFiles(paths []string, flags globalFlags) int {
	status := 0
	for _, path := range paths {
		if code := checkOne(&invocation{path: path}, flags); code > status {
			status = code
		}
	}
	return status
}

func checkOne(inv *invocation, flags globalFlags) int {
	cfg, err := inv.config(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if _, err := inv.load(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inv.path, err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "%s: ok\n", inv.path)
	return 0
}

func buildEntry(args []string, flags globalFlags) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	output := fs.String("o", "", "assembly output path")
	exe := fs.Bool("exe", false, "assemble and link an executable with nasm and ld")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	inv, err := resolveEntry("build", fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg, err := inv.config(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	program, err := inv.load(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	asmPath := *output
	assemble := *exe
	if inv.target != nil {
		if asmPath == "" && inv.target.Output != "" {
			asmPath = inv.manifest.Resolve(inv.target.Output)
		}
		assemble = assemble || inv.target.Assemble
	}
	if asmPath == "" {
		asmPath = driver.DefaultAsmPath(cfg, program)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	result, err := driver.Build(ctx, program, cfg, asmPath, assemble)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, result.AsmPath)
	if result.ExePath != "" {
		fmt.Fprintln(os.Stdout, result.ExePath)
	}
	return 0
}
