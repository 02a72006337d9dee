// Package typing simulates a line of text being typed one character at a time.
package typing

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/verte-zerg/folio/internal/clock"
)

// BlinkInterval is the cursor half-period.
const BlinkInterval = 500 * time.Millisecond

// State is the typing progress.
type State int

const (
	Waiting State = iota
	Typing
	Done
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Typing:
		return "typing"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Simulator reveals a fixed text after an initial delay, one grapheme cluster per
// tick, while a cursor blinks independently. It schedules itself on a clock.
type Simulator struct {
	clock    clock.Clock
	chars    []string
	perChar  time.Duration
	onChange func()

	pos           int
	display       strings.Builder
	started       bool
	cursorVisible bool

	startTimer clock.Timer
	charTimer  clock.Timer
	blinkTimer clock.Timer
	disposed   bool
}

// New starts a session for text on c. perChar is the gap between characters and
// initialDelay the wait before the first one is scheduled.
func New(c clock.Clock, text string, perChar, initialDelay time.Duration) *Simulator {
	if perChar < 0 {
		perChar = 0
	}
	s := &Simulator{
		clock:         c,
		chars:         splitGraphemes(text),
		perChar:       perChar,
		cursorVisible: true,
	}
	s.startTimer = c.AfterFunc(initialDelay, s.begin)
	s.blinkTimer = c.Every(BlinkInterval, s.blink)
	return s
}

func splitGraphemes(text string) []string {
	var chars []string
	state := -1
	for text != "" {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		chars = append(chars, cluster)
	}
	return chars
}

// OnChange registers fn to be called after each visible change.
func (s *Simulator) OnChange(fn func()) {
	s.onChange = fn
}

func (s *Simulator) begin() {
	s.startTimer = nil
	s.started = true
	s.scheduleNext()
	s.changed()
}

func (s *Simulator) scheduleNext() {
	if s.pos >= len(s.chars) {
		s.charTimer = nil
		return
	}
	s.charTimer = s.clock.AfterFunc(s.perChar, s.advance)
}

func (s *Simulator) advance() {
	s.display.WriteString(s.chars[s.pos])
	s.pos++
	s.scheduleNext()
	s.changed()
}

func (s *Simulator) blink() {
	s.cursorVisible = !s.cursorVisible
	s.changed()
}

func (s *Simulator) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// DisplayText returns the typed prefix of the text.
func (s *Simulator) DisplayText() string {
	return s.display.String()
}

// CursorVisible reports the blink phase.
func (s *Simulator) CursorVisible() bool {
	return s.cursorVisible
}

// Position returns the number of characters typed so far.
func (s *Simulator) Position() int {
	return s.pos
}

// Len returns the number of characters in the text.
func (s *Simulator) Len() int {
	return len(s.chars)
}

// HasStarted reports whether the initial delay has elapsed.
func (s *Simulator) HasStarted() bool {
	return s.started
}

// State returns the typing state.
func (s *Simulator) State() State {
	switch {
	case !s.started:
		return Waiting
	case s.pos < len(s.chars):
		return Typing
	default:
		return Done
	}
}

// Dispose cancels every outstanding timer. It may be called more than once.
func (s *Simulator) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, t := range []clock.Timer{s.startTimer, s.charTimer, s.blinkTimer} {
		if t != nil {
			t.Stop()
		}
	}
	s.startTimer, s.charTimer, s.blinkTimer = nil, nil, nil
}
