package watch

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Debouncer batches file events. Each event restarts the quiet period; when
// it elapses the callback receives every distinct path seen in the batch,
// sorted, and the batch starts over.
type Debouncer struct {
	interval time.Duration
	callback func(paths []string)
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
}

// NewDebouncer returns a Debouncer that calls callback after interval
// without events.
func NewDebouncer(interval time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		callback: callback,
		logger:   slog.Default(),
		pending:  make(map[string]struct{}),
	}
}

// Trigger adds path to the current batch and restarts the quiet period.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, d.flush)
}

// flush hands the batch to the callback. A panicking regeneration is logged
// so that the watcher keeps running.
func (d *Debouncer) flush() {
	d.mu.Lock()
	paths := make([]string, 0, len(d.pending))

	for p := range d.pending {
		paths = append(paths, p)
	}

	d.pending = make(map[string]struct{})
	d.mu.Unlock()

	if len(paths) == 0 {
		return
	}

	sort.Strings(paths)

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("regeneration panicked", slog.Any("error", r), slog.Any("paths", paths))
		}
	}()

	d.callback(paths)
}

// Stop cancels the pending callback and drops the current batch.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.pending = make(map[string]struct{})
}
