package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// FixtureFile and FixtureMain are the files making up one fixture directory.
const (
	FixtureFile = "fixture.yml"
	FixtureMain = "main.lx"
)

// Fixture is an example program with its input and expected behaviour.
type Fixture struct {
	Name        string `yaml:"-"`
	Dir         string `yaml:"-"`
	Description string `yaml:"description"`
	Stdin       string `yaml:"stdin"`
	Stdout      string `yaml:"stdout"`
	// Error, when set, names the stage expected to fail: parse, check or
	// runtime. ErrorContains is matched against the message.
	Error         string `yaml:"error"`
	ErrorContains string `yaml:"error_contains"`
}

// MainPath is the fixture's program.
func (f *Fixture) MainPath() string {
	return filepath.Join(f.Dir, FixtureMain)
}

var fixtureStages = map[string]bool{"": true, "parse": true, "check": true, "runtime": true}

// LoadFixtures reads every directory under root that holds a fixture.yml,
// sorted by name.
func LoadFixtures(root string) ([]*Fixture, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("driver: read fixtures %s: %w", root, err)
	}
	var fixtures []*Fixture
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		fixture, err := LoadFixture(dir)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fixture)
	}
	sort.Slice(fixtures, func(i, j int) bool { return fixtures[i].Name < fixtures[j].Name })
	return fixtures, nil
}

// LoadFixture reads dir/fixture.yml. The error wraps os.ErrNotExist when the
// directory has no fixture file.
func LoadFixture(dir string) (*Fixture, error) {
	data, err := os.ReadFile(filepath.Join(dir, FixtureFile))
	if err != nil {
		return nil, err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	fixture := &Fixture{Name: filepath.Base(dir), Dir: dir}
	if err := decoder.Decode(fixture); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("driver: parse fixture %s: %w", dir, err)
	}
	if !fixtureStages[fixture.Error] {
		return nil, fmt.Errorf("driver: fixture %s: unknown error stage %q", fixture.Name, fixture.Error)
	}
	if _, err := os.Stat(fixture.MainPath()); err != nil {
		return nil, fmt.Errorf("driver: fixture %s: %w", fixture.Name, err)
	}
	return fixture, nil
}
