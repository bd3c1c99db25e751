package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  lx [--backend=interpret|native] [--verbose] run [target]")
	fmt.Fprintln(os.Stderr, "  lx [--backend=interpret|native] [--verbose] run <file.lx>")
	fmt.Fprintln(os.Stderr, "  lx [--backend=interpret|native] [--verbose] <file.lx>")
	fmt.Fprintln(os.Stderr, "  lx check [target | file.lx...]")
	fmt.Fprintln(os.Stderr, "  lx ast <file.lx>...")
	fmt.Fprintln(os.Stderr, "  lx tokens <file.lx>...")
	fmt.Fprintln(os.Stderr, "  lx build [-o out.asm] [--exe] [target | file.lx]")
	fmt.Fprintln(os.Stderr, "  lx repl")
	fmt.Fprintln(os.Stderr, "  lx watch <file.lx>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment: LX_BACKEND, LX_OUT_DIR, LX_NASM, LX_LD, LX_TRACE")
}
