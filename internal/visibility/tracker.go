// Package visibility tracks how much of each page region is inside the scroll window.
package visibility

import "sort"

// Event reports that a region entered or left view for one observer.
type Event struct {
	ID      string
	Entered bool
	Ratio   float64
}

// Region is a vertical span of rows in the page.
type Region struct {
	Top    int
	Height int
}

type observer struct {
	id        string
	threshold float64
	fn        func(Event)
	inView    bool
	known     bool
	cancelled bool
}

// Tracker computes intersection ratios from a layout and a scroll window.
type Tracker struct {
	regions   map[string]Region
	top       int
	height    int
	laidOut   bool
	observers []*observer
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{regions: map[string]Region{}}
}

// SetLayout replaces the region layout and re-evaluates observers.
func (t *Tracker) SetLayout(regions map[string]Region) {
	t.setRegions(regions)
	t.evaluate()
}

func (t *Tracker) setRegions(regions map[string]Region) {
	t.regions = make(map[string]Region, len(regions))
	for id, r := range regions {
		t.regions[id] = r
	}
}

// Update replaces the layout and moves the window in one step, then evaluates
// observers once against the new pair.
func (t *Tracker) Update(regions map[string]Region, top, height int) {
	t.setRegions(regions)
	t.top = top
	t.height = height
	t.laidOut = height > 0
	t.evaluate()
}

// Scroll moves the window and re-evaluates observers.
func (t *Tracker) Scroll(top, height int) {
	t.top = top
	t.height = height
	t.laidOut = height > 0
	t.evaluate()
}

// Ratio returns the visible fraction of id. ok is false until the window is known
// or when id is not laid out.
func (t *Tracker) Ratio(id string) (float64, bool) {
	if !t.laidOut {
		return 0, false
	}
	r, ok := t.regions[id]
	if !ok {
		return 0, false
	}
	return t.ratio(r), true
}

func (t *Tracker) ratio(r Region) float64 {
	if r.Height <= 0 {
		return 0
	}
	lo := max(r.Top, t.top)
	hi := min(r.Top+r.Height, t.top+t.height)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(r.Height)
}

// Visible returns the ids of regions with any visible rows, top to bottom.
func (t *Tracker) Visible() []string {
	ids := make([]string, 0, len(t.regions))
	for id, r := range t.regions {
		if t.laidOut && t.ratio(r) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return t.regions[ids[i]].Top < t.regions[ids[j]].Top
	})
	return ids
}

// Observe calls fn each time id moves into or out of view at threshold.
// The first evaluation with a known layout is reported as a transition from out of view.
func (t *Tracker) Observe(id string, threshold float64, fn func(Event)) (cancel func()) {
	o := &observer{id: id, threshold: threshold, fn: fn}
	t.observers = append(t.observers, o)
	return func() {
		if o.cancelled {
			return
		}
		o.cancelled = true
		for i, other := range t.observers {
			if other == o {
				t.observers = append(t.observers[:i], t.observers[i+1:]...)
				break
			}
		}
	}
}

func (t *Tracker) evaluate() {
	if !t.laidOut {
		return
	}
	// Observers may cancel themselves from fn.
	snapshot := append([]*observer(nil), t.observers...)
	for _, o := range snapshot {
		if o.cancelled {
			continue
		}
		r, ok := t.regions[o.id]
		if !ok {
			continue
		}
		ratio := t.ratio(r)
		inView := ratio > 0 && ratio >= o.threshold
		if o.known && inView == o.inView {
			continue
		}
		wasKnown := o.known
		o.known = true
		o.inView = inView
		if !wasKnown && !inView {
			continue
		}
		o.fn(Event{ID: o.id, Entered: inView, Ratio: ratio})
	}
}
