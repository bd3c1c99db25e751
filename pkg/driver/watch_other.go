//go:build !linux

package driver

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileWatcher polls modification times where inotify is unavailable.
type FileWatcher struct {
	mu        sync.Mutex
	watchMap  map[string]time.Time
	onChange  func(string)
	done      chan struct{}
	closeOnce sync.Once
}

func NewFileWatcher(onChange func(string)) (*FileWatcher, error) {
	return &FileWatcher{
		watchMap: make(map[string]time.Time),
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}
	fw.mu.Lock()
	fw.watchMap[absPath] = info.ModTime()
	fw.mu.Unlock()
	return nil
}

func (fw *FileWatcher) Watch() error {
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()
	for {
		select {
		case <-fw.done:
			return nil
		case <-ticker.C:
		}
		var changed []string
		fw.mu.Lock()
		for path, last := range fw.watchMap {
			info, err := os.Stat(path)
			if err != nil || !info.ModTime().After(last) {
				continue
			}
			fw.watchMap[path] = info.ModTime()
			changed = append(changed, path)
		}
		fw.mu.Unlock()
		for _, path := range changed {
			fw.onChange(path)
		}
	}
}

func (fw *FileWatcher) Close() error {
	fw.closeOnce.Do(func() { close(fw.done) })
	return nil
}
