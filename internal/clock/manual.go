package clock

import (
	"sort"
	"time"
)

// Manual is a virtual Clock advanced explicitly. It is not safe for concurrent use.
type Manual struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	m        *Manual
	deadline time.Time
	period   time.Duration
	seq      uint64
	f        func()
	stopped  bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.m.remove(t)
	return true
}

// NewManual returns a Manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now implements Clock.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc implements Clock.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	return m.add(d, 0, f)
}

// Every implements Clock.
func (m *Manual) Every(period time.Duration, f func()) Timer {
	if period <= 0 {
		panic("clock: non-positive period for Every")
	}
	return m.add(period, period, f)
}

func (m *Manual) add(d, period time.Duration, f func()) *manualTimer {
	m.seq++
	t := &manualTimer{m: m, deadline: m.now.Add(d), period: period, seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) remove(t *manualTimer) {
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

// Pending returns the number of scheduled timers.
func (m *Manual) Pending() int {
	return len(m.timers)
}

func (m *Manual) earliest() *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		a, b := m.timers[i], m.timers[j]
		if !a.deadline.Equal(b.deadline) {
			return a.deadline.Before(b.deadline)
		}
		return a.seq < b.seq
	})
	return m.timers[0]
}

func (m *Manual) run(t *manualTimer) {
	if t.period > 0 {
		m.seq++
		t.seq = m.seq
		t.deadline = t.deadline.Add(t.period)
	} else {
		t.stopped = true
		m.remove(t)
	}
	t.f()
}

// Fire runs the earliest timer due at the current time. It reports whether one ran.
func (m *Manual) Fire() bool {
	t := m.earliest()
	if t == nil || t.deadline.After(m.now) {
		return false
	}
	m.run(t)
	return true
}

// Advance moves the clock forward by d, running every timer that comes due.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		t := m.earliest()
		if t == nil || t.deadline.After(target) {
			break
		}
		if t.deadline.After(m.now) {
			m.now = t.deadline
		}
		m.run(t)
	}
	m.now = target
}
