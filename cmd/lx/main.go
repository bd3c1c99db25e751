package main

import (
	"fmt"
	"os"
)

const cliToolVersion = "lx 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, args, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:], flags)
	case "check":
		return checkEntry(args[1:], flags)
	case "ast":
		return astEntry(args[1:])
	case "tokens":
		return tokensEntry(args[1:])
	case "build":
		return buildEntry(args[1:], flags)
	case "repl":
		return runRepl(args[1:], flags)
	case "watch":
		return watchEntry(args[1:], flags)
	default:
		if looksLikePathCandidate(args[0]) {
			return runEntry(args, flags)
		}
		fmt.Fprintf(os.Stderr, "unknown command '%s'\n", args[0])
		printUsage()
		return 2
	}
}
