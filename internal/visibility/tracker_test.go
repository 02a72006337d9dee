package visibility

import (
	"math"
	"testing"
)

func TestTrackerRatio(t *testing.T) {
	tr := NewTracker()
	tr.SetLayout(map[string]Region{
		"hero":  {Top: 0, Height: 20},
		"about": {Top: 20, Height: 10},
	})
	if _, ok := tr.Ratio("hero"); ok {
		t.Fatalf("expected unknown ratio before scroll window is set")
	}
	tr.Scroll(0, 25)
	if r, _ := tr.Ratio("hero"); r != 1 {
		t.Fatalf("expected hero fully visible, got %v", r)
	}
	if r, _ := tr.Ratio("about"); math.Abs(r-0.5) > 1e-9 {
		t.Fatalf("expected about half visible, got %v", r)
	}
	if _, ok := tr.Ratio("missing"); ok {
		t.Fatalf("expected missing region to be unknown")
	}
}

func TestTrackerInitialCheckDeliversEnteredForVisibleRegions(t *testing.T) {
	tr := NewTracker()
	tr.SetLayout(map[string]Region{
		"hero":  {Top: 0, Height: 20},
		"about": {Top: 40, Height: 10},
	})
	var events []Event
	tr.Observe("hero", 0.1, func(ev Event) { events = append(events, ev) })
	tr.Observe("about", 0.2, func(ev Event) { events = append(events, ev) })

	tr.Scroll(0, 30)
	if len(events) != 1 || events[0].ID != "hero" || !events[0].Entered {
		t.Fatalf("expected a single entered event for hero, got %+v", events)
	}
}

func TestTrackerCrossings(t *testing.T) {
	tr := NewTracker()
	tr.SetLayout(map[string]Region{"about": {Top: 40, Height: 10}})
	var events []Event
	tr.Observe("about", 0.2, func(ev Event) { events = append(events, ev) })

	tr.Scroll(0, 30)
	tr.Scroll(11, 30) // one row of about visible, ratio 0.1
	if len(events) != 0 {
		t.Fatalf("expected no events below threshold, got %+v", events)
	}
	tr.Scroll(12, 30)
	if len(events) != 1 || !events[0].Entered {
		t.Fatalf("expected entered event at threshold, got %+v", events)
	}
	tr.Scroll(13, 30)
	if len(events) != 1 {
		t.Fatalf("expected no repeated event while in view, got %+v", events)
	}
	tr.Scroll(0, 30)
	if len(events) != 2 || events[1].Entered {
		t.Fatalf("expected exit event, got %+v", events)
	}
}

func TestTrackerCancel(t *testing.T) {
	tr := NewTracker()
	tr.SetLayout(map[string]Region{"hero": {Top: 0, Height: 5}})
	calls := 0
	cancel := tr.Observe("hero", 0, func(Event) { calls++ })
	cancel()
	cancel()
	tr.Scroll(0, 10)
	if calls != 0 {
		t.Fatalf("expected no calls after cancel, got %d", calls)
	}
}

func TestTrackerVisibleOrder(t *testing.T) {
	tr := NewTracker()
	tr.SetLayout(map[string]Region{
		"skills": {Top: 30, Height: 10},
		"about":  {Top: 10, Height: 20},
		"hero":   {Top: 0, Height: 10},
	})
	tr.Scroll(5, 30)
	got := tr.Visible()
	if len(got) != 3 || got[0] != "hero" || got[1] != "about" || got[2] != "skills" {
		t.Fatalf("unexpected visible order: %v", got)
	}
}

func TestTrackerUpdateEvaluatesLayoutWithNewWindow(t *testing.T) {
	tr := NewTracker()
	var events []Event
	tr.Observe("about", 0.2, func(ev Event) { events = append(events, ev) })
	tr.Update(map[string]Region{
		"hero":  {Top: 0, Height: 38},
		"about": {Top: 38, Height: 38},
	}, 0, 38)
	if len(events) != 0 {
		t.Fatalf("expected about out of view, got %+v", events)
	}

	// Shorter sections in a shorter window: about moves up but stays below the fold.
	tr.Update(map[string]Region{
		"hero":  {Top: 0, Height: 12},
		"about": {Top: 12, Height: 15},
	}, 0, 10)
	if len(events) != 0 {
		t.Fatalf("expected no event for a section below the new window, got %+v", events)
	}
	if r, ok := tr.Ratio("about"); !ok || r != 0 {
		t.Fatalf("expected about ratio 0, got %v (%v)", r, ok)
	}

	tr.Update(map[string]Region{
		"hero":  {Top: 0, Height: 12},
		"about": {Top: 12, Height: 15},
	}, 12, 10)
	if len(events) != 1 || !events[0].Entered {
		t.Fatalf("expected about to enter after scrolling to it, got %+v", events)
	}
}
