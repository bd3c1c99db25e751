package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/CodyValle/LexicalAnalyzer/pkg/driver"
)

// watchEntry re-checks and re-runs a program every time it is saved. Input
// is not available to watched programs; reads see end of input.
func watchEntry(args []string, flags globalFlags) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "lx watch requires exactly one source file")
		return 2
	}
	inv, err := resolveEntry("watch", args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg, err := inv.config(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	rerun := func(path string) {
		fmt.Fprintf(os.Stderr, "--- %s\n", path)
		program, err := inv.load(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		devNull, err := os.Open(os.DevNull)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		defer devNull.Close()
		if code := execute(program, cfg, devNull, os.Stdout, os.Stderr); code != 0 {
			fmt.Fprintf(os.Stderr, "exit status %d\n", code)
		}
	}

	watcher, err := driver.NewFileWatcher(rerun)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer watcher.Close()
	if err := watcher.AddFile(inv.path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		_ = watcher.Close()
	}()

	rerun(inv.path)
	fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", strings.TrimSpace(inv.path))
	if err := watcher.Watch(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
