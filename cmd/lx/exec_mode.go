package main

import (
	"fmt"
	"strings"

	"github.com/CodyValle/LexicalAnalyzer/pkg/driver"
)

// globalFlags are accepted before the command name.
type globalFlags struct {
	// backend is empty unless --backend was given.
	backend driver.Backend
	verbose bool
}

func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	var flags globalFlags
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		switch {
		case arg == "--backend":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("--backend expects a value")
			}
			backend, err := parseBackendValue(args[i+1])
			if err != nil {
				return flags, nil, err
			}
			flags.backend = backend
			i++
		case strings.HasPrefix(arg, "--backend="):
			backend, err := parseBackendValue(strings.TrimPrefix(arg, "--backend="))
			if err != nil {
				return flags, nil, err
			}
			flags.backend = backend
		case arg == "--verbose" || arg == "-v":
			flags.verbose = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return flags, remaining, nil
}

func parseBackendValue(value string) (driver.Backend, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("--backend expects a value")
	}
	backend, err := driver.ParseBackend(value)
	if err != nil {
		return "", fmt.Errorf("--backend: %w", err)
	}
	return backend, nil
}

// apply lets command-line flags override the merged configuration.
func (f globalFlags) apply(cfg driver.Config) driver.Config {
	if f.backend != "" {
		cfg.Backend = f.backend
	}
	if f.verbose {
		cfg.Trace = true
	}
	return cfg
}
