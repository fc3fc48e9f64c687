//go:build darwin

package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// Watcher watches one file for writes, coalescing a burst of events
// into a single onChange call after interval of quiet.
type Watcher struct {
	kq       int
	fd       int
	path     string
	interval time.Duration
	onChange func(string)
	verbose  bool

	mu    sync.Mutex
	timer *time.Timer
}

// New opens a kqueue and registers a vnode watch on path. interval is
// how long a burst of writes must settle before onChange fires.
func New(path string, interval time.Duration, verbose bool, onChange func(string)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, fmt.Errorf("watch: kqueue failed: %w", err)
	}
	fd, err := unix.Open(absPath, unix.O_RDONLY, 0)
	if err != nil {
		unix.Close(kq)
		return nil, fmt.Errorf("watch: failed to open %s: %w", absPath, err)
	}

	event := unix.Kevent_t{
		Ident:  uint64(fd),
		Filter: unix.EVFILT_VNODE,
		Flags:  unix.EV_ADD | unix.EV_CLEAR,
		Fflags: unix.NOTE_WRITE | unix.NOTE_ATTRIB,
	}
	if _, err := unix.Kevent(kq, []unix.Kevent_t{event}, nil, nil); err != nil {
		unix.Close(fd)
		unix.Close(kq)
		return nil, fmt.Errorf("watch: failed to add kevent for %s: %w", absPath, err)
	}

	return &Watcher{kq: kq, fd: fd, path: absPath, interval: interval, verbose: verbose, onChange: onChange}, nil
}

// Watch blocks, reading kqueue events for the registered path until a
// read error other than EINTR occurs.
func (w *Watcher) Watch() error {
	events := make([]unix.Kevent_t, 1)
	for {
		n, err := unix.Kevent(w.kq, nil, events, nil)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("watch: reading kevent: %w", err)
		}
		if n > 0 {
			w.debounce()
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
	unix.Close(w.fd)
	return unix.Close(w.kq)
}
