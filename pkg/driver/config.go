package driver

import (
	"fmt"
	"os"

	"github.com/xyproto/env/v2"
)

// Config holds the settings shared by lx and lxc. Manifest values are
// overridden by the environment, which command-line flags override in turn.
type Config struct {
	Backend Backend
	OutDir  string
	Nasm    string
	Ld      string
	Trace   bool
}

// DefaultOutDir is where build outputs go when nothing else is configured.
const DefaultOutDir = "target"

// LoadConfig merges the defaults, the manifest target (which may be nil) and
// the LX_* environment variables.
func LoadConfig(target *TargetSpec) (Config, error) {
	cfg := Config{
		Backend: BackendInterpret,
		OutDir:  DefaultOutDir,
		Nasm:    "nasm",
		Ld:      "ld",
	}
	if target != nil && target.Backend != "" {
		cfg.Backend = target.Backend
	}
	if value := env.Str("LX_BACKEND"); value != "" {
		backend, err := ParseBackend(value)
		if err != nil {
			return cfg, fmt.Errorf("driver: LX_BACKEND: %w", err)
		}
		cfg.Backend = backend
	}
	cfg.OutDir = env.Str("LX_OUT_DIR", cfg.OutDir)
	cfg.Nasm = env.Str("LX_NASM", cfg.Nasm)
	cfg.Ld = env.Str("LX_LD", cfg.Ld)
	cfg.Trace = env.Bool("LX_TRACE")
	return cfg, nil
}

// Tracef writes a stage trace line to stderr when tracing is enabled.
func (c Config) Tracef(format string, args ...any) {
	if !c.Trace {
		return
	}
	fmt.Fprintf(os.Stderr, "lx: "+format+"\n", args...)
}
