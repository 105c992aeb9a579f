// Package watcher reports input files that changed on disk.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 100 * time.Millisecond

// Filter decides whether a changed file is of interest.
type Filter func(path string) bool

// Watcher watches a set of directories (non-recursively) and emits
// debounced batches of changed files.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	files     map[string]struct{}
	dirs      map[string]struct{}
	filter    Filter
	logger    *log.Logger
}

// New watches every directory input and the parent directory of every file
// input. Events for explicitly named files always pass; events in watched
// directories pass when filter accepts them.
func New(inputs []string, filter Filter, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsWatcher: fsw,
		debouncer: NewDebouncer(debounce),
		files:     make(map[string]struct{}),
		dirs:      make(map[string]struct{}),
		filter:    filter,
		logger:    logger,
	}

	watched := make(map[string]struct{})
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		fi, err := os.Stat(abs)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		if fi.IsDir() {
			w.dirs[abs] = struct{}{}
			watched[abs] = struct{}{}
			continue
		}
		w.files[abs] = struct{}{}
		watched[filepath.Dir(abs)] = struct{}{}
	}
	for d := range watched {
		if err := fsw.Add(d); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Events returns the channel of debounced batches.
func (w *Watcher) Events() <-chan []string {
	return w.debouncer.Output()
}

// Start consumes fsnotify events until ctx is done or the watcher closes.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	path, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
		return
	}
	if !w.accepts(path) {
		return
	}
	w.debouncer.Add(path)
}

func (w *Watcher) accepts(path string) bool {
	if _, ok := w.files[path]; ok {
		return true
	}
	if _, ok := w.dirs[filepath.Dir(path)]; !ok {
		return false
	}
	return w.filter == nil || w.filter(path)
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	w.debouncer.Stop()
	return w.fsWatcher.Close()
}
