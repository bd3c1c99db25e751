//go:build linux

package driver

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// FileWatcher reports writes to watched files through inotify. Bursts of
// events for one file are collapsed into a single callback.
type FileWatcher struct {
	fd          int
	watchMap    map[int]string
	mu          sync.Mutex
	debounceMap map[string]*time.Timer
	onChange    func(string)
	// runMu keeps callbacks for different files from overlapping.
	runMu       sync.Mutex
	done        chan struct{}
	closeOnce   sync.Once
}

func NewFileWatcher(onChange func(string)) (*FileWatcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("driver: inotify init: %w", err)
	}
	return &FileWatcher{
		fd:          fd,
		watchMap:    make(map[int]string),
		debounceMap: make(map[string]*time.Timer),
		onChange:    onChange,
		done:        make(chan struct{}),
	}, nil
}

func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	wd, err := unix.InotifyAddWatch(fw.fd, absPath, unix.IN_MODIFY|unix.IN_CLOSE_WRITE)
	if err != nil {
		return fmt.Errorf("driver: watch %s: %w", absPath, err)
	}
	fw.mu.Lock()
	fw.watchMap[wd] = absPath
	fw.mu.Unlock()
	return nil
}

// Watch blocks delivering change callbacks until Close is called.
func (fw *FileWatcher) Watch() error {
	buf := make([]byte, unix.SizeofInotifyEvent*16+unix.NAME_MAX+1)
	for {
		select {
		case <-fw.done:
			return nil
		default:
		}
		n, err := unix.Read(fw.fd, buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			select {
			case <-fw.done:
				return nil
			default:
			}
			return fmt.Errorf("driver: read inotify events: %w", err)
		}
		offset := 0
		for offset+unix.SizeofInotifyEvent <= n {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			offset += unix.SizeofInotifyEvent + int(event.Len)
			if event.Mask&(unix.IN_MODIFY|unix.IN_CLOSE_WRITE) == 0 {
				continue
			}
			fw.mu.Lock()
			path := fw.watchMap[int(event.Wd)]
			fw.mu.Unlock()
			if path != "" {
				fw.debouncedCallback(path)
			}
		}
	}
}

func (fw *FileWatcher) debouncedCallback(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if timer, exists := fw.debounceMap[path]; exists {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(debounce, func() {
		fw.runMu.Lock()
		fw.onChange(path)
		fw.runMu.Unlock()
		fw.mu.Lock()
		if fw.debounceMap[path] == timer {
			delete(fw.debounceMap, path)
		}
		fw.mu.Unlock()
	})
	fw.debounceMap[path] = timer
}

func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		close(fw.done)
		err = unix.Close(fw.fd)
	})
	return err
}
