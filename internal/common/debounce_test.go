package common

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	var fired atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncerFlushFiresImmediately(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var fired atomic.Int32

	d.Trigger(func() { fired.Add(1) })
	d.Flush()
	assert.Equal(t, int32(1), fired.Load())

	// Flush with nothing pending is a no-op.
	d.Flush()
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncerStopDiscardsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var fired atomic.Int32

	d.Trigger(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebouncerRetriggerAtExpiryNeverFiresEarly(t *testing.T) {
	// Retrigger right as the first timer expires, so the first callback
	// can be in flight while the action is replaced. The replacement must
	// still wait out its own full idle window.
	const idle = 5 * time.Millisecond
	for i := 0; i < 50; i++ {
		d := NewDebouncer(idle)
		var firedAt atomic.Value

		d.Trigger(func() {})
		time.Sleep(idle)

		start := time.Now()
		d.Trigger(func() { firedAt.Store(time.Now()) })
		time.Sleep(4 * idle)

		if ts, ok := firedAt.Load().(time.Time); ok {
			assert.GreaterOrEqual(t, ts.Sub(start), idle)
		}
		d.Stop()
	}
}

func TestDebouncerLastActionWins(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var got atomic.Int32

	d.Trigger(func() { got.Store(1) })
	d.Trigger(func() { got.Store(2) })

	time.Sleep(90 * time.Millisecond)
	assert.Equal(t, int32(2), got.Load())
}
