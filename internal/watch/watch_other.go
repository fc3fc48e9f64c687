//go:build !linux && !darwin

package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Watcher is a polling fallback for platforms without a native kernel
// event mechanism wired in: it stats the watched file once per interval
// and fires onChange when the modification time advances. A poll loop
// already can't fire faster than interval, so unlike the kqueue/inotify
// variants there is nothing left for a separate debounce timer to do.
type Watcher struct {
	path     string
	interval time.Duration
	onChange func(string)
	verbose  bool
	stop     chan struct{}
}

// New returns a Watcher that will poll path every interval once Watch is
// called.
func New(path string, interval time.Duration, verbose bool, onChange func(string)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: absPath, interval: interval, verbose: verbose, onChange: onChange, stop: make(chan struct{})}, nil
}

// Watch blocks, polling until Close is called.
func (w *Watcher) Watch() error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var lastMod time.Time
	for {
		select {
		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil {
				continue
			}
			if !lastMod.IsZero() && info.ModTime().After(lastMod) {
				if w.verbose {
					fmt.Fprintf(os.Stderr, "watch: %s changed\n", w.path)
				}
				w.onChange(w.path)
			}
			lastMod = info.ModTime()
		case <-w.stop:
			return nil
		}
	}
}

func (w *Watcher) Close() error {
	close(w.stop)
	return nil
}
