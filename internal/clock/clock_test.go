package clock

import (
	"testing"
	"time"
)

func TestLoopDispatchesCallbacks(t *testing.T) {
	queue := make(chan func(), 8)
	l := NewLoop(func(f func()) { queue <- f })
	l.AfterFunc(time.Millisecond, func() {})

	select {
	case f := <-queue:
		f()
	case <-time.After(time.Second):
		t.Fatalf("expected callback to be dispatched")
	}
}

func TestLoopDropsCallbackStoppedWhileQueued(t *testing.T) {
	queue := make(chan func(), 8)
	l := NewLoop(func(f func()) { queue <- f })
	fired := false
	timer := l.AfterFunc(time.Millisecond, func() { fired = true })

	var f func()
	select {
	case f = <-queue:
	case <-time.After(time.Second):
		t.Fatalf("expected callback to be dispatched")
	}
	timer.Stop()
	f()
	if fired {
		t.Fatalf("expected queued callback to be dropped after stop")
	}
	if timer.Stop() {
		t.Fatalf("expected repeated stop to report false")
	}
}

func TestLoopEveryStops(t *testing.T) {
	queue := make(chan func(), 64)
	l := NewLoop(func(f func()) { queue <- f })
	count := 0
	timer := l.Every(time.Millisecond, func() { count++ })

	for i := 0; i < 3; i++ {
		select {
		case f := <-queue:
			f()
		case <-time.After(time.Second):
			t.Fatalf("expected tick %d", i)
		}
	}
	timer.Stop()
	for {
		select {
		case f := <-queue:
			f()
			continue
		default:
		}
		break
	}
	if count != 3 {
		t.Fatalf("expected 3 ticks before stop, got %d", count)
	}
}
