// Package reveal runs the one-time, staggered entrance of a page section.
package reveal

import (
	"fmt"
	"time"

	"github.com/verte-zerg/folio/internal/anim"
	"github.com/verte-zerg/folio/internal/clock"
	"github.com/verte-zerg/folio/internal/visibility"
)

// DefaultContainerDuration is the container fade length used by the page.
const DefaultContainerDuration = 300 * time.Millisecond

// State is the reveal progress of a section.
type State int

const (
	Hidden State = iota
	Revealing
	Revealed
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealing:
		return "revealing"
	case Revealed:
		return "revealed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Entrance is the per-child motion shared by every child of a section.
type Entrance struct {
	// Offset is the pose a child starts from, typically displaced and transparent.
	Offset   anim.Pose
	Duration time.Duration
	Easing   anim.Easing
}

// Section configures one controller.
type Section struct {
	ID                string
	Threshold         float64
	BaseDelay         time.Duration
	Stagger           time.Duration
	ContainerDuration time.Duration
	Entrance          Entrance
	Children          int
}

// ContainerHidden is the pose of a section container before it reveals.
var ContainerHidden = anim.Pose{Opacity: 0, Scale: 1}

// Provider delivers visibility crossings for a section.
type Provider interface {
	Observe(id string, threshold float64, fn func(visibility.Event)) (cancel func())
	Ratio(id string) (float64, bool)
}

// ChildKey names the executor key of child i of a section.
func ChildKey(sectionID string, i int) string {
	return fmt.Sprintf("%s/%d", sectionID, i)
}

// Stagger returns the start offsets of n children: base + i*step.
func Stagger(base, step time.Duration, n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = base + time.Duration(i)*step
	}
	return out
}

// Controller owns the reveal state of one section.
type Controller struct {
	section  Section
	clock    clock.Clock
	exec     anim.Executor
	onChange func(id string, s State)

	state      State
	done       clock.Timer
	cancel     func()
	revealedAt time.Time
	disposed   bool
}

// New returns a Hidden controller for section.
func New(section Section, c clock.Clock, exec anim.Executor) *Controller {
	return &Controller{section: section, clock: c, exec: exec}
}

// OnChange registers fn to be called after every state transition.
func (c *Controller) OnChange(fn func(id string, s State)) {
	c.onChange = fn
}

// ID returns the section id.
func (c *Controller) ID() string {
	return c.section.ID
}

// Section returns the controller's settings.
func (c *Controller) Section() Section {
	return c.section
}

// State returns the current reveal state.
func (c *Controller) State() State {
	return c.state
}

// RevealedAt returns when the section reached Revealed, or the zero time.
func (c *Controller) RevealedAt() time.Time {
	return c.revealedAt
}

// Schedule returns the start offset of each child relative to the reveal.
func (c *Controller) Schedule() []time.Duration {
	return Stagger(c.section.BaseDelay, c.section.Stagger, c.section.Children)
}

// Total returns how long after the qualifying event the section becomes Revealed:
// when the last child settles, or when the container does if there are no children.
// A container fade longer than the children keeps playing after Revealed.
func (c *Controller) Total() time.Duration {
	s := c.section
	if s.Children == 0 {
		return s.BaseDelay + s.ContainerDuration
	}
	return s.BaseDelay + time.Duration(s.Children-1)*s.Stagger + s.Entrance.Duration
}

// Mount subscribes to p and seeds the state from the current visibility, so a
// section already on screen reveals without waiting for a crossing.
func (c *Controller) Mount(p Provider) {
	if c.disposed || c.cancel != nil {
		return
	}
	c.cancel = p.Observe(c.section.ID, c.section.Threshold, c.Observe)
	if ratio, ok := p.Ratio(c.section.ID); ok && ratio > 0 {
		c.Observe(visibility.Event{ID: c.section.ID, Entered: true, Ratio: ratio})
	}
}

// Observe handles a visibility crossing. Only the first qualifying entry has an effect.
func (c *Controller) Observe(ev visibility.Event) {
	if c.disposed || c.state != Hidden {
		return
	}
	if !ev.Entered || ev.Ratio < c.section.Threshold {
		return
	}
	c.start()
}

func (c *Controller) start() {
	s := c.section
	c.setState(Revealing)
	// Entry is one-shot; later crossings are irrelevant.
	c.unsubscribe()

	c.exec.Play(s.ID, anim.Transition{
		From:     ContainerHidden,
		To:       anim.Visible,
		Delay:    s.BaseDelay,
		Duration: s.ContainerDuration,
		Easing:   s.Entrance.Easing,
	})
	for i, delay := range c.Schedule() {
		c.exec.Play(ChildKey(s.ID, i), anim.Transition{
			From:     s.Entrance.Offset,
			To:       anim.Visible,
			Delay:    delay,
			Duration: s.Entrance.Duration,
			Easing:   s.Entrance.Easing,
		})
	}
	c.done = c.clock.AfterFunc(c.Total(), func() {
		c.done = nil
		c.revealedAt = c.clock.Now()
		c.setState(Revealed)
	})
}

func (c *Controller) setState(s State) {
	c.state = s
	if c.onChange != nil {
		c.onChange(c.section.ID, s)
	}
}

func (c *Controller) unsubscribe() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Dispose releases the subscription and any pending completion timer.
// A section still Revealing stays Revealing. Dispose may be called more than once.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.unsubscribe()
	if c.done != nil {
		c.done.Stop()
		c.done = nil
	}
	c.exec.Stop(c.section.ID)
	for i := 0; i < c.section.Children; i++ {
		c.exec.Stop(ChildKey(c.section.ID, i))
	}
}
