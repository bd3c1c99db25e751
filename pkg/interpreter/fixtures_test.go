package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/CodyValle/LexicalAnalyzer/pkg/driver"
)

func TestFixtures(t *testing.T) {
	fixtures, err := driver.LoadFixtures("../../testdata/fixtures")
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	for _, fixture := range fixtures {
		if fixture.Error == "parse" || fixture.Error == "check" {
			continue
		}
		t.Run(fixture.Name, func(t *testing.T) {
			program, err := driver.NewLoader(nil).Load(fixture.MainPath())
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			var out bytes.Buffer
			err = Run(program.Checked, &out, NewReaderSource(strings.NewReader(fixture.Stdin)))
			if fixture.Error == "runtime" {
				var rtErr *RuntimeError
				if !errors.As(err, &rtErr) {
					t.Fatalf("expected RuntimeError, got %v", err)
				}
				if !strings.Contains(rtErr.Error(), fixture.ErrorContains) {
					t.Fatalf("error %q does not contain %q", rtErr.Error(), fixture.ErrorContains)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := out.String(); got != fixture.Stdout {
				t.Fatalf("output mismatch:\n got: %q\nwant: %q", got, fixture.Stdout)
			}
		})
	}
}
