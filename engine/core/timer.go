package core

import "time"

// TimerHandle identifies a scheduled one-shot callback. Zero is never issued.
type TimerHandle uint64

type timer struct {
	handle   TimerHandle
	deadline time.Time
	fn       func()
}

// Timers runs one-shot deferred callbacks against a TimeProvider. Nothing
// fires on its own: the owner calls Advance from its frame loop, so callbacks
// run on the same goroutine as everything else the owner touches.
type Timers struct {
	clock   TimeProvider
	next    TimerHandle
	pending []*timer
}

func NewTimers(clock TimeProvider) *Timers {
	return &Timers{clock: clock}
}

// After schedules fn to run once d has elapsed.
func (t *Timers) After(d time.Duration, fn func()) TimerHandle {
	t.next++
	t.pending = append(t.pending, &timer{
		handle:   t.next,
		deadline: t.clock.Now().Add(d),
		fn:       fn,
	})
	return t.next
}

// Cancel drops a pending callback. Returns false if it already ran or never existed.
func (t *Timers) Cancel(h TimerHandle) bool {
	for i, tm := range t.pending {
		if tm.handle == h {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Timers) CancelAll() {
	t.pending = nil
}

func (t *Timers) Pending() int {
	return len(t.pending)
}

// Advance runs every callback whose deadline is not after now, earliest
// deadline first and in scheduling order for equal deadlines. Callbacks may
// schedule further timers; those run in the same call if already due.
func (t *Timers) Advance() int {
	now := t.clock.Now()
	fired := 0
	for {
		idx := -1
		for i, tm := range t.pending {
			if tm.deadline.After(now) {
				continue
			}
			if idx < 0 || tm.deadline.Before(t.pending[idx].deadline) {
				idx = i
			}
		}
		if idx < 0 {
			return fired
		}
		tm := t.pending[idx]
		t.pending = append(t.pending[:idx], t.pending[idx+1:]...)
		tm.fn()
		fired++
	}
}
