package runtime

import (
	"errors"
	"testing"
)

func TestScopeStackShadowingAndRedeclaration(t *testing.T) {
	s := NewScopeStack[int]()
	if !s.Declare("x", 1) {
		t.Fatalf("expected first declaration to succeed")
	}
	if s.Declare("x", 2) {
		t.Fatalf("expected redeclaration in the same frame to fail")
	}
	if v, _ := s.Lookup("x"); v != 1 {
		t.Fatalf("redeclaration must not overwrite, got %d", v)
	}
	err := s.Within(func() error {
		if !s.Declare("x", 3) {
			t.Fatalf("expected shadowing in nested frame to succeed")
		}
		if v, _ := s.Lookup("x"); v != 3 {
			t.Fatalf("expected inner binding, got %d", v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := s.Lookup("x"); v != 1 {
		t.Fatalf("expected outer binding after leave, got %d", v)
	}
}

func TestScopeStackWithinAlwaysLeaves(t *testing.T) {
	s := NewScopeStack[string]()
	boom := errors.New("boom")
	err := s.Within(func() error {
		s.Declare("inner", "v")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected error to propagate, got %v", err)
	}
	if s.Depth() != 1 {
		t.Fatalf("expected frame to be left, depth=%d", s.Depth())
	}
	if _, ok := s.Lookup("inner"); ok {
		t.Fatalf("inner binding leaked past its block")
	}
}

func TestScopeStackSnapshotRestore(t *testing.T) {
	type data struct{ n int }
	s := NewScopeStack[*data]()
	s.Declare("a", &data{n: 1})
	snap := s.Snapshot(func(d *data) *data { c := *d; return &c })
	a, _ := s.Lookup("a")
	a.n = 99
	s.Declare("b", &data{n: 2})
	s.Enter()
	s.Restore(snap)
	if s.Depth() != 1 {
		t.Fatalf("restore should drop nested frames, depth=%d", s.Depth())
	}
	if _, ok := s.Lookup("b"); ok {
		t.Fatalf("b should be rolled back")
	}
	if got, _ := s.Lookup("a"); got.n != 1 {
		t.Fatalf("expected snapshot value 1, got %d", got.n)
	}
	if names := s.Names(); len(names) != 1 || names[0] != "a" {
		t.Fatalf("unexpected names %v", names)
	}
}
