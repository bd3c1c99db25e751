//go:build linux

package driver

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncedCallbacksCollapseAndDoNotOverlap(t *testing.T) {
	var (
		mu      sync.Mutex
		calls   = map[string]int{}
		active  atomic.Int32
		overlap atomic.Bool
		wg      sync.WaitGroup
	)
	wg.Add(2)
	fw, err := NewFileWatcher(func(path string) {
		defer wg.Done()
		if active.Add(1) > 1 {
			overlap.Store(true)
		}
		time.Sleep(50 * time.Millisecond)
		active.Add(-1)
		mu.Lock()
		calls[path]++
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	defer fw.Close()

	fw.debouncedCallback("/a.lx")
	fw.debouncedCallback("/a.lx")
	fw.debouncedCallback("/b.lx")
	wg.Wait()

	if overlap.Load() {
		t.Fatalf("callbacks ran concurrently")
	}
	mu.Lock()
	if calls["/a.lx"] != 1 || calls["/b.lx"] != 1 {
		t.Fatalf("unexpected callback counts %v", calls)
	}
	mu.Unlock()

	deadline := time.Now().Add(time.Second)
	for {
		fw.mu.Lock()
		pending := len(fw.debounceMap)
		fw.mu.Unlock()
		if pending == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("debounce entries left behind: %d", pending)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDebounceKeepsNewerTimer(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	fw, err := NewFileWatcher(func(string) {
		started <- struct{}{}
		<-release
	})
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	defer fw.Close()

	fw.debouncedCallback("/a.lx")
	<-started
	// The first callback is still running; a new change installs a new timer.
	fw.debouncedCallback("/a.lx")
	fw.mu.Lock()
	newer := fw.debounceMap["/a.lx"]
	fw.mu.Unlock()
	release <- struct{}{}

	<-started
	fw.mu.Lock()
	current := fw.debounceMap["/a.lx"]
	fw.mu.Unlock()
	if current != newer {
		t.Fatalf("finishing the first callback dropped the newer timer")
	}
	release <- struct{}{}
}
