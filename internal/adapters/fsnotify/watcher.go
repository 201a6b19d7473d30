// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It watches the parent directories of the given corpus files, filters events
// down to those files, and debounces rapid events (editors often trigger
// multiple writes per save).
package fsnotify

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/corey/strsearch/internal/ports"
	"github.com/creachadair/taskgroup"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after an event before onChange fires.
const DefaultDebounce = 100 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
//
// The event loop and every onChange call run in one task group, so Stop
// returns only after the last callback has finished.
type Watcher struct {
	fw       *fsnotify.Watcher
	done     chan struct{}
	debounce time.Duration
	stopped  bool
	mu       sync.Mutex
	tasks    *taskgroup.Group

	pmu     sync.Mutex
	pending map[string]*pendingFire
	closing bool // set under pmu; no task starts once it is true
}

// pendingFire is the debounce timer for one file. A timer only fires its
// callback while its generation is current.
type pendingFire struct {
	timer *time.Timer
	gen   uint64
}

var _ ports.Watcher = (*Watcher)(nil)

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:       fw,
		done:     make(chan struct{}),
		debounce: DefaultDebounce,
		tasks:    taskgroup.New(nil),
		pending:  make(map[string]*pendingFire),
	}, nil
}

// SetDebounce changes the quiet period. It must be called before Watch.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Watch starts monitoring paths. Watching the parent directory rather than
// the file itself keeps the watch alive across editors that save by rename.
func (w *Watcher) Watch(paths []string, onChange func(filePath string)) error {
	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.fw.Add(d); err != nil {
			return err
		}
	}

	w.pmu.Lock()
	defer w.pmu.Unlock()
	if w.closing {
		return errors.New("watcher stopped")
	}
	w.tasks.Run(func() { w.loop(targets, onChange) })
	return nil
}

func (w *Watcher) loop(targets map[string]bool, onChange func(string)) {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			path := filepath.Clean(event.Name)
			if !targets[path] {
				continue
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}
			w.schedule(path, onChange)

		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// Errors are dropped; fsnotify keeps delivering events

		case <-w.done:
			return
		}
	}
}

// schedule pushes the deadline for path out by one debounce period.
// The previous timer is superseded even if it has already fired.
func (w *Watcher) schedule(path string, onChange func(string)) {
	w.pmu.Lock()
	defer w.pmu.Unlock()
	if w.closing {
		return
	}
	p, ok := w.pending[path]
	if !ok {
		p = &pendingFire{}
		w.pending[path] = p
	} else {
		p.timer.Stop()
	}
	p.gen++
	gen := p.gen
	p.timer = time.AfterFunc(w.debounce, func() { w.fire(path, gen, onChange) })
}

func (w *Watcher) fire(path string, gen uint64, onChange func(string)) {
	w.pmu.Lock()
	defer w.pmu.Unlock()
	p, ok := w.pending[path]
	if w.closing || !ok || p.gen != gen {
		return
	}
	delete(w.pending, path)
	w.tasks.Run(func() { onChange(path) })
}

// Stop ends monitoring and releases all resources. It waits for any
// onChange call already in flight. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true

	w.pmu.Lock()
	w.closing = true
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.pmu.Unlock()

	close(w.done)
	err := w.fw.Close()
	w.tasks.Wait()
	return err
}
