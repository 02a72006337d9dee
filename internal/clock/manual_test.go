package clock

import (
	"testing"
	"time"
)

func TestManualAdvanceFiresInDeadlineOrder(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	var order []string
	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(20 * time.Millisecond)
	if got := len(order); got != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected order after 20ms: %v", order)
	}
	m.Advance(10 * time.Millisecond)
	if len(order) != 3 || order[2] != "c" {
		t.Fatalf("unexpected order after 30ms: %v", order)
	}
	if m.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", m.Pending())
	}
}

func TestManualCallbackSeesDeadlineAsNow(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewManual(start)
	var seen time.Duration
	m.AfterFunc(15*time.Millisecond, func() { seen = m.Now().Sub(start) })
	m.Advance(time.Second)
	if seen != 15*time.Millisecond {
		t.Fatalf("expected callback at 15ms, got %v", seen)
	}
	if m.Now().Sub(start) != time.Second {
		t.Fatalf("expected clock at 1s, got %v", m.Now().Sub(start))
	}
}

func TestManualEveryRepeatsUntilStopped(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	count := 0
	timer := m.Every(500*time.Millisecond, func() { count++ })
	m.Advance(2 * time.Second)
	if count != 4 {
		t.Fatalf("expected 4 ticks, got %d", count)
	}
	if !timer.Stop() {
		t.Fatalf("expected first stop to report true")
	}
	if timer.Stop() {
		t.Fatalf("expected second stop to report false")
	}
	m.Advance(2 * time.Second)
	if count != 4 {
		t.Fatalf("expected no ticks after stop, got %d", count)
	}
}

func TestManualFireRunsOneTimer(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	count := 0
	var schedule func()
	schedule = func() {
		m.AfterFunc(0, func() {
			count++
			if count < 3 {
				schedule()
			}
		})
	}
	schedule()
	if !m.Fire() || count != 1 {
		t.Fatalf("expected exactly one callback, got %d", count)
	}
	if !m.Fire() || count != 2 {
		t.Fatalf("expected second callback, got %d", count)
	}
	m.Fire()
	if m.Fire() {
		t.Fatalf("expected nothing left to fire")
	}
}

func TestManualStopFromCallback(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	fired := false
	var late Timer
	m.AfterFunc(10*time.Millisecond, func() { late.Stop() })
	late = m.AfterFunc(20*time.Millisecond, func() { fired = true })
	m.Advance(time.Second)
	if fired {
		t.Fatalf("expected stopped timer not to fire")
	}
}
