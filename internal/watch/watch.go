// Package watch wraps fsnotify with the per-path debouncing the
// --watch modes of the aslang tools need. Editors tend to emit bursts
// of Write events for one save; the watcher coalesces a burst into a
// single callback.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period a path must hold before its
// callback fires.
const DefaultDebounce = 100 * time.Millisecond

// Watcher delivers debounced change notifications for a set of files.
type Watcher struct {
	w        *fsnotify.Watcher
	debounce time.Duration
	onChange func(path string)
	onError  func(err error)

	mu      sync.Mutex
	timers  map[string]*time.Timer
	watched map[string]bool
	done    chan struct{}
	closed  bool
}

// New creates a watcher that invokes onChange with the path of every
// changed file, debounced per path. onError may be nil.
func New(onChange func(path string), onError func(err error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		w:        fw,
		debounce: DefaultDebounce,
		onChange: onChange,
		onError:  onError,
		timers:   make(map[string]*time.Timer),
		watched:  make(map[string]bool),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// SetDebounce overrides the quiet period. Takes effect for events
// arriving after the call.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounce = d
	w.mu.Unlock()
}

// Add registers a file for watching. fsnotify wants the directory for
// reliable Write/Create coverage across editors that save via rename,
// so the parent directory is watched and events are filtered back to
// the registered files.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.watched[abs] = true
	w.mu.Unlock()

	return w.w.Add(filepath.Dir(abs))
}

// Close stops the watcher and cancels pending callbacks.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()

	return w.w.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			// Chmod alone carries no content change.
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(ev.Name)
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) schedule(name string) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.watched[abs] {
		return
	}

	if t, ok := w.timers[abs]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[abs] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, abs)
		closed := w.closed
		w.mu.Unlock()
		if !closed {
			w.onChange(abs)
		}
	})
}
