// Package clock schedules one-shot and repeating callbacks.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop cancels the timer. It reports whether this call stopped it.
	Stop() bool
}

// Clock schedules callbacks. Callbacks never run concurrently with each other.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	Every(period time.Duration, f func()) Timer
}

// Dispatch hands a callback to the goroutine that owns the caller's state.
type Dispatch func(func())

// Loop is a real-time Clock whose callbacks are delivered through a Dispatch.
type Loop struct {
	dispatch Dispatch
	mu       sync.Mutex
}

// NewLoop returns a Loop. A nil dispatch runs callbacks on the timer goroutine,
// serialized by an internal mutex.
func NewLoop(dispatch Dispatch) *Loop {
	l := &Loop{}
	if dispatch == nil {
		dispatch = func(f func()) {
			l.mu.Lock()
			defer l.mu.Unlock()
			f()
		}
	}
	l.dispatch = dispatch
	return l
}

// Now implements Clock.
func (l *Loop) Now() time.Time {
	return time.Now()
}

type loopTimer struct {
	stopped atomic.Bool
	mu      sync.Mutex
	t       *time.Timer
}

func (t *loopTimer) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	t.mu.Lock()
	if t.t != nil {
		t.t.Stop()
	}
	t.mu.Unlock()
	return true
}

func (t *loopTimer) arm(d time.Duration, f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped.Load() {
		return
	}
	t.t = time.AfterFunc(d, f)
}

// AfterFunc implements Clock.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.arm(d, func() {
		l.dispatch(func() {
			// Stopped while queued for the loop.
			if t.stopped.Swap(true) {
				return
			}
			f()
		})
	})
	return t
}

// Every implements Clock.
func (l *Loop) Every(period time.Duration, f func()) Timer {
	if period <= 0 {
		panic("clock: non-positive period for Every")
	}
	t := &loopTimer{}
	next := time.Now().Add(period)
	var fire func()
	fire = func() {
		next = next.Add(period)
		t.arm(time.Until(next), fire)
		l.dispatch(func() {
			if t.stopped.Load() {
				return
			}
			f()
		})
	}
	t.arm(period, fire)
	return t
}
