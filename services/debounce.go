package services

import (
	"sync"
	"time"
)

// DefaultDebounceInterval bounds how often a coalesced action fires.
const DefaultDebounceInterval = 300 * time.Millisecond

// Debouncer coalesces bursts of triggers leading-edge: the first trigger
// runs immediately, and further triggers inside the interval collapse into
// at most one trailing run per interval. The immediate first run matters
// for cache invalidation, where the action must land before the caller's
// next read. Safe for concurrent use.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	open    bool
}

// NewDebouncer creates a Debouncer. A non-positive interval falls back to
// the default.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}
	return &Debouncer{interval: interval}
}

// Trigger runs fn immediately when the debouncer is idle. While the
// suppression window is open, fn is held as the single pending trailing
// run, replacing any previously held function.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	if d.open {
		d.pending = fn
		d.mu.Unlock()
		return
	}
	d.open = true
	d.timer = time.AfterFunc(d.interval, d.expire)
	d.mu.Unlock()
	fn()
}

// expire closes the suppression window, running the pending trailing
// function if one accumulated. A trailing run reopens the window so a
// sustained burst still fires at most once per interval.
func (d *Debouncer) expire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if fn != nil {
		d.timer = time.AfterFunc(d.interval, d.expire)
	} else {
		d.open = false
	}
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancels any pending trailing run and closes the window.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.open = false
}
