package common

import (
	"sync"
	"time"
)

// DefaultDebounceIdle is the idle window before a pending edit is saved.
const DefaultDebounceIdle = 1500 * time.Millisecond

// Debouncer coalesces rapid successive edits into one save call: each
// Trigger restarts an idle timer, and the action fires once the timer
// expires without another Trigger. Flush fires a pending action
// immediately (the blur case), Stop discards it.
type Debouncer struct {
	mu      sync.Mutex
	idle    time.Duration
	timer   *time.Timer
	pending func()
	// gen invalidates timers whose callback was already in flight when
	// the action they belonged to was replaced, flushed, or stopped.
	gen uint64
}

// NewDebouncer creates a debouncer with the given idle window. A zero or
// negative idle falls back to DefaultDebounceIdle.
func NewDebouncer(idle time.Duration) *Debouncer {
	if idle <= 0 {
		idle = DefaultDebounceIdle
	}
	return &Debouncer{idle: idle}
}

// Trigger schedules action to run after the idle window, replacing any
// previously scheduled action.
func (d *Debouncer) Trigger(action func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = action
	d.timer = time.AfterFunc(d.idle, func() {
		d.mu.Lock()
		if gen != d.gen {
			// Stop missed this timer: it had already fired and was
			// waiting on the lock when the action got replaced. The
			// replacement's own timer is still live, so hands off.
			d.mu.Unlock()
			return
		}
		fn := d.pending
		d.pending = nil
		d.timer = nil
		d.mu.Unlock()

		if fn != nil {
			fn()
		}
	})
}

// Flush runs any pending action now and cancels its timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop cancels any pending action without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = nil
}
