package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/CodyValle/LexicalAnalyzer/pkg/driver"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run compiles every file it is given. A file that fails is reported and the
// others are still compiled; the exit status is 1 if any failed.
func run(args []string) int {
	fs := flag.NewFlagSet("lxc", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	output := fs.String("o", "", "assembly output path, single file only (default <out-dir>/<name>.asm)")
	exe := fs.Bool("exe", false, "assemble and link an executable with nasm and ld")
	verbose := fs.Bool("v", false, "trace each stage on stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: lxc [options] <file.lx>...")
		fs.PrintDefaults()
		return 2
	}
	if *output != "" && fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "lxc: -o needs exactly one source file")
		return 2
	}

	cfg, err := driver.LoadConfig(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	cfg.Trace = cfg.Trace || *verbose

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	status := 0
	for _, entry := range fs.Args() {
		if err := compile(ctx, cfg, entry, *output, *exe); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", entry, err)
			status = 1
		}
	}
	return status
}

func compile(ctx context.Context, cfg driver.Config, entry, asmPath string, exe bool) error {
	program, err := driver.NewLoader(cfg.Tracef).Load(entry)
	if err != nil {
		return err
	}
	if asmPath == "" {
		asmPath = driver.DefaultAsmPath(cfg, program)
	}
	result, err := driver.Build(ctx, program, cfg, asmPath, exe)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, result.AsmPath)
	if result.ExePath != "" {
		fmt.Fprintln(os.Stdout, result.ExePath)
	}
	return nil
}
