package anim

import (
	"time"

	"github.com/verte-zerg/folio/internal/clock"
)

// Executor plays transitions keyed by element.
type Executor interface {
	Play(key string, tr Transition)
	Stop(key string)
}

type playing struct {
	tr      Transition
	started time.Time
}

// Player is an Executor that samples poses against a clock.
type Player struct {
	clock   clock.Clock
	playing map[string]playing
}

// NewPlayer returns a Player driven by c.
func NewPlayer(c clock.Clock) *Player {
	return &Player{clock: c, playing: map[string]playing{}}
}

// Play starts tr for key, replacing any transition already playing for it.
func (p *Player) Play(key string, tr Transition) {
	p.playing[key] = playing{tr: tr, started: p.clock.Now()}
}

// Stop forgets key.
func (p *Player) Stop(key string) {
	delete(p.playing, key)
}

// Pose returns the current pose for key, or fallback if nothing was played for it.
func (p *Player) Pose(key string, fallback Pose) Pose {
	entry, ok := p.playing[key]
	if !ok {
		return fallback
	}
	return entry.tr.At(p.clock.Now().Sub(entry.started))
}

// Playing reports whether a transition is held for key.
func (p *Player) Playing(key string) bool {
	_, ok := p.playing[key]
	return ok
}

// Active reports whether any one-shot transition has not settled yet.
// Repeating transitions are ignored; callers decide when those need frames.
func (p *Player) Active() bool {
	now := p.clock.Now()
	for _, entry := range p.playing {
		if !entry.tr.Repeat && now.Sub(entry.started) < entry.tr.End() {
			return true
		}
	}
	return false
}
