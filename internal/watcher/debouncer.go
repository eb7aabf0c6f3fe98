package watcher

import (
	"slices"
	"sync"
	"time"
)

// Debouncer collects paths and flushes them once no new path arrived for the
// window, or as soon as maxBatch distinct paths are pending.
type Debouncer struct {
	window   time.Duration
	maxBatch int
	pending  map[string]struct{}
	mu       sync.Mutex
	timer    *time.Timer
	onFlush  func([]string)
	stopped  bool
}

func NewDebouncer(window time.Duration, maxBatch int, onFlush func([]string)) *Debouncer {
	return &Debouncer{
		window:   window,
		maxBatch: maxBatch,
		pending:  make(map[string]struct{}),
		onFlush:  onFlush,
	}
}

func (d *Debouncer) Add(path string) {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.pending[path] = struct{}{}

	if d.maxBatch > 0 && len(d.pending) >= d.maxBatch {
		d.flushLocked()
		return
	}

	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if !d.stopped {
			d.flushLocked()
		} else {
			d.mu.Unlock()
		}
	})

	d.mu.Unlock()
}

// flushLocked must be called with mu held; it releases mu.
func (d *Debouncer) flushLocked() {
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	d.pending = make(map[string]struct{})

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.mu.Unlock()

	if len(paths) > 0 && d.onFlush != nil {
		d.onFlush(paths)
	}
}

// Stop flushes whatever is pending and ignores later Adds.
func (d *Debouncer) Stop() {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if len(d.pending) > 0 {
		d.flushLocked()
	} else {
		d.mu.Unlock()
	}
}
