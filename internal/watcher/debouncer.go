package watcher

import (
	"sort"
	"sync"
	"time"
)

// Debouncer collects paths and emits them as one sorted batch after a quiet
// period. Repeated events for a path inside the window collapse into one.
type Debouncer struct {
	interval time.Duration

	mu     sync.Mutex
	paths  map[string]struct{}
	timer  *time.Timer
	output chan []string
}

func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		paths:    make(map[string]struct{}),
		output:   make(chan []string, 16),
	}
}

// Output returns the channel that receives batches.
func (d *Debouncer) Output() <-chan []string {
	return d.output
}

// Add records path and restarts the quiet-period timer.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.paths[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

// Stop cancels a pending flush.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if len(d.paths) == 0 {
		d.mu.Unlock()
		return
	}
	batch := make([]string, 0, len(d.paths))
	for p := range d.paths {
		batch = append(batch, p)
	}
	d.paths = make(map[string]struct{})
	d.mu.Unlock()

	sort.Strings(batch)
	d.output <- batch
}
