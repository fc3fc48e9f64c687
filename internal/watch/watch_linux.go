//go:build linux

// Package watch re-triggers a callback once a single watched file
// settles after a burst of writes, so the driver can be pointed at a
// program file and re-run the optimizer on every save during
// development. It only ever tracks the one path cmd/varelim hands it:
// there is no per-path watch table or add/remove API to support
// watching more than one file at a time, since nothing here needs it.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Watcher watches one file for writes, coalescing a burst of events
// into a single onChange call after interval of quiet.
type Watcher struct {
	fd       int
	wd       int
	path     string
	interval time.Duration
	onChange func(string)
	verbose  bool

	mu    sync.Mutex
	timer *time.Timer
}

// New opens an inotify instance and registers a watch on path. interval
// is how long a burst of writes must settle before onChange fires.
func New(path string, interval time.Duration, verbose bool, onChange func(string)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("watch: inotify_init failed: %w", err)
	}
	wd, err := unix.InotifyAddWatch(fd, absPath, unix.IN_MODIFY|unix.IN_CLOSE_WRITE)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("watch: failed to watch %s: %w", absPath, err)
	}
	return &Watcher{fd: fd, wd: wd, path: absPath, interval: interval, verbose: verbose, onChange: onChange}, nil
}

// Watch blocks, reading inotify events for the registered path until a
// read error other than EAGAIN/EWOULDBLOCK occurs.
func (w *Watcher) Watch() error {
	buf := make([]byte, unix.SizeofInotifyEvent*10)
	for {
		n, err := unix.Read(w.fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("watch: reading inotify events: %w", err)
		}

		offset := 0
		for offset < n {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			offset += unix.SizeofInotifyEvent + int(event.Len)

			if int(event.Wd) != w.wd {
				continue
			}
			if event.Mask&(unix.IN_MODIFY|unix.IN_CLOSE_WRITE) != 0 {
				w.debounce()
			}
		}
	}
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.interval, func() {
		if w.verbose {
			fmt.Fprintf(os.Stderr, "watch: %s changed\n", w.path)
		}
		w.onChange(w.path)
	})
}

func (w *Watcher) Close() error {
	return unix.Close(w.fd)
}
