// Package watch invalidates cached datasets when their source file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/dtindex/internal/logger"
)

// Invalidator forgets cached state for a path.
// driving.DatasetService satisfies it.
type Invalidator interface {
	Invalidate(path string)
}

// relevantOps are the events that mean the file content may have changed.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher watches one dataset file. The parent directory is watched so
// that editors which replace the file on save are still seen.
type Watcher struct {
	path     string
	key      string
	target   Invalidator
	onChange func(path string)

	logEvery rate.Sometimes

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	done    chan struct{}
	started bool
}

// New creates a watcher that calls target.Invalidate(path) on changes.
// path is passed to target as given, cleaned, so it matches the key the
// dataset was loaded under.
func New(path string, target Invalidator) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return &Watcher{
		path:     abs,
		key:      filepath.Clean(path),
		target:   target,
		logEvery: rate.Sometimes{First: 1, Interval: time.Second},
		done:     make(chan struct{}),
	}, nil
}

// OnChange registers fn to run after each invalidation.
// It must be called before Start.
func (w *Watcher) OnChange(fn func(path string)) {
	w.onChange = fn
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. Events are handled on a background goroutine
// until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return fmt.Errorf("watcher for %s already started", w.path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.fsw = fsw
	w.started = true

	logger.Debug("Watching %s", w.path)
	go w.loop(ctx)
	return nil
}

// Done is closed once the watcher has stopped.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Stopped watching %s", w.path)
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", w.path, err)
		}
	}
}

// handleEvent invalidates the dataset when event concerns the watched
// file. It reports whether it did.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if event.Op&relevantOps == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil || name != w.path {
		return false
	}

	w.target.Invalidate(w.key)
	w.logEvery.Do(func() {
		logger.Info("dataset changed (%s), cache invalidated: %s", event.Op, w.path)
	})
	if w.onChange != nil {
		w.onChange(w.key)
	}
	return true
}
