package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the package manifest looked up from a source
// directory upwards.
const ManifestFile = "package.yml"

// Manifest represents the parsed contents of package.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Authors     []string
	Targets     map[string]*TargetSpec
	TargetOrder []string

	targetEntries []manifestTargetEntry
}

// TargetSpec describes one runnable program from the manifest.
type TargetSpec struct {
	Name         string
	OriginalName string
	Main         string
	Backend      Backend
	// Output is the assembly path written by lx build, relative to the
	// manifest.
	Output   string
	Assemble bool
}

type manifestTargetEntry struct {
	sanitized string
	spec      *TargetSpec
}

// Backend selects how lx run executes a program.
type Backend string

const (
	BackendInterpret Backend = "interpret"
	BackendNative    Backend = "native"
)

// IsValid reports whether the backend is recognised.
func (b Backend) IsValid() bool {
	switch b {
	case BackendInterpret, BackendNative:
		return true
	default:
		return false
	}
}

// ParseBackend accepts the backend names case-insensitively.
func ParseBackend(value string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(value)))
	if !b.IsValid() {
		return "", fmt.Errorf("unknown backend '%s' (expected interpret or native)", value)
	}
	return b, nil
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

var (
	ErrManifestNotFound = errors.New("package.yml not found")
	ErrNoTarget         = errors.New("manifest: no targets defined")
)

// LoadManifest parses package.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from start up to the filesystem root looking for
// package.yml. The error wraps ErrManifestNotFound when there is none.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestFile)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ManifestFile, origin, ErrManifestNotFound)
		}
		dir = parent
	}
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	for i, author := range m.Authors {
		if author == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("authors[%d] must be a non-empty string", i))
		}
	}

	targetNames := make(map[string]string, len(m.targetEntries))
	for _, entry := range m.targetEntries {
		target := entry.spec
		if target == nil {
			continue
		}
		if other, exists := targetNames[entry.sanitized]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("targets %q and %q collide after sanitization", other, target.OriginalName))
		} else {
			targetNames[entry.sanitized] = target.OriginalName
		}
		if target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main entrypoint", target.OriginalName))
		} else if filepath.Ext(target.Main) != ".lx" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q main %q must be a .lx file", target.OriginalName, target.Main))
		}
		if target.Backend != "" && !target.Backend.IsValid() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q has unsupported backend %q", target.OriginalName, target.Backend))
		}
		if target.Assemble && target.Output == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q sets assemble without an output", target.OriginalName))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*TargetSpec, error) {
	if m == nil {
		return nil, ErrNoTarget
	}
	for _, entry := range m.targetEntries {
		if entry.spec != nil {
			return entry.spec, nil
		}
	}
	return nil, ErrNoTarget
}

// FindTarget looks up a target by sanitized or original name.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	key := sanitizeSegment(strings.TrimSpace(name))
	if key != "" {
		if target, ok := m.Targets[key]; ok && target != nil {
			return target, true
		}
	}
	for _, entry := range m.targetEntries {
		if entry.spec == nil {
			continue
		}
		if strings.EqualFold(entry.spec.OriginalName, strings.TrimSpace(name)) {
			return entry.spec, true
		}
	}
	return nil, false
}

// Resolve turns a manifest-relative path into an absolute one.
func (m *Manifest) Resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(path))
}

// MainPath is the absolute path of the target's entry file.
func (m *Manifest) MainPath(target *TargetSpec) (string, error) {
	if m == nil || target == nil {
		return "", fmt.Errorf("missing manifest or target")
	}
	if target.Main == "" {
		return "", fmt.Errorf("target %q missing main entrypoint", target.OriginalName)
	}
	return m.Resolve(target.Main), nil
}

type manifestFile struct {
	Name    string     `yaml:"name"`
	Version string     `yaml:"version"`
	Authors stringList `yaml:"authors"`
	Targets targetMap  `yaml:"targets"`
}

type targetYAML struct {
	Main     string  `yaml:"main"`
	Backend  Backend `yaml:"backend"`
	Output   string  `yaml:"output"`
	Assemble bool    `yaml:"assemble"`
}

// targetMap keeps targets in file order so the first one is the default.
type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		entry := new(targetYAML)
		if valueNode.Kind == yaml.ScalarNode && valueNode.Tag != "!!null" {
			// `name: path/to/main.lx` is shorthand for `name: {main: ...}`.
			entry.Main = valueNode.Value
		} else if err := valueNode.Decode(entry); err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, strings.TrimSpace(str))
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest(path string) *Manifest {
	targetCapacity := len(mf.Targets.items)
	result := &Manifest{
		Path:          path,
		Name:          sanitizeSegment(strings.TrimSpace(mf.Name)),
		Version:       strings.TrimSpace(mf.Version),
		Authors:       append([]string(nil), mf.Authors...),
		Targets:       make(map[string]*TargetSpec, targetCapacity),
		TargetOrder:   make([]string, 0, targetCapacity),
		targetEntries: make([]manifestTargetEntry, 0, targetCapacity),
	}

	for _, item := range mf.Targets.items {
		target := item.spec
		if target == nil {
			continue
		}
		original := strings.TrimSpace(item.name)
		sanitized := sanitizeSegment(original)
		spec := &TargetSpec{
			Name:         sanitized,
			OriginalName: original,
			Main:         strings.TrimSpace(target.Main),
			Backend:      Backend(strings.ToLower(strings.TrimSpace(string(target.Backend)))),
			Output:       strings.TrimSpace(target.Output),
			Assemble:     target.Assemble,
		}
		if _, exists := result.Targets[sanitized]; !exists {
			result.Targets[sanitized] = spec
			result.TargetOrder = append(result.TargetOrder, sanitized)
		}
		result.targetEntries = append(result.targetEntries, manifestTargetEntry{sanitized: sanitized, spec: spec})
	}
	return result
}

// sanitizeSegment lowercases a name and maps anything outside [a-z0-9_] to
// an underscore.
func sanitizeSegment(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
