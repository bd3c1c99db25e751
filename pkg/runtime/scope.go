package runtime

import "sort"

// ScopeStack is a LIFO chain of block frames mapping identifier names to T.
// The global frame is created by NewScopeStack and is never left.
type ScopeStack[T any] struct {
	frames []map[string]T
}

// NewScopeStack creates a stack holding only the global frame.
func NewScopeStack[T any]() *ScopeStack[T] {
	return &ScopeStack[T]{frames: []map[string]T{make(map[string]T)}}
}

// Depth is the number of open frames, including the global one.
func (s *ScopeStack[T]) Depth() int {
	return len(s.frames)
}

func (s *ScopeStack[T]) Enter() {
	s.frames = append(s.frames, make(map[string]T))
}

func (s *ScopeStack[T]) Leave() {
	if len(s.frames) <= 1 {
		panic("runtime: leave called on the global frame")
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
}

// Within runs fn in a fresh frame. The frame is left however fn returns.
func (s *ScopeStack[T]) Within(fn func() error) error {
	s.Enter()
	defer s.Leave()
	return fn()
}

// Declare binds name in the innermost frame. It reports false, leaving the
// frame untouched, when the name is already bound there.
func (s *ScopeStack[T]) Declare(name string, value T) bool {
	frame := s.frames[len(s.frames)-1]
	if _, exists := frame[name]; exists {
		return false
	}
	frame[name] = value
	return true
}

// Lookup searches from the innermost frame outward.
func (s *ScopeStack[T]) Lookup(name string) (T, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Names returns the bindings of the innermost frame in sorted order.
func (s *ScopeStack[T]) Names() []string {
	frame := s.frames[len(s.frames)-1]
	names := make([]string, 0, len(frame))
	for name := range frame {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the global frame. clone copies each binding so later
// mutation through pointers does not leak into the snapshot.
func (s *ScopeStack[T]) Snapshot(clone func(T) T) map[string]T {
	out := make(map[string]T, len(s.frames[0]))
	for k, v := range s.frames[0] {
		if clone != nil {
			v = clone(v)
		}
		out[k] = v
	}
	return out
}

// Restore replaces the global frame with a snapshot and drops any open
// nested frames.
func (s *ScopeStack[T]) Restore(snapshot map[string]T) {
	s.frames = []map[string]T{snapshot}
}
