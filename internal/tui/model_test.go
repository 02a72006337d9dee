package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/folio/internal/clock"
	"github.com/verte-zerg/folio/internal/content"
	"github.com/verte-zerg/folio/internal/model"
	"github.com/verte-zerg/folio/internal/reveal"
)

func newTestModel(t *testing.T, cfg model.Config) (*Model, *clock.Manual) {
	t.Helper()
	p, err := content.Default()
	if err != nil {
		t.Fatalf("default content: %v", err)
	}
	c := clock.NewManual(time.Unix(0, 0))
	m, err := newModel(cfg, p, nil, c, nil)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if cmd := m.Init(); cmd != nil {
		t.Fatalf("expected no callback pump on a manual clock")
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, c
}

func defaultConfig() model.Config {
	return model.Config{TypingSpeedMs: -1, TypingDelayMs: -1}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (m *Model) section(id string) *pageSection {
	for _, ps := range m.sections {
		if ps.id == id {
			return ps
		}
	}
	return nil
}

func TestHeroRevealsOnFirstLayout(t *testing.T) {
	m, c := newTestModel(t, defaultConfig())
	hero := m.section(content.SectionHome)
	if hero.ctrl.State() != reveal.Revealing {
		t.Fatalf("expected hero revealing after first layout, got %s", hero.ctrl.State())
	}
	if about := m.section(content.SectionAbout); about.ctrl.State() != reveal.Hidden {
		t.Fatalf("expected about hidden, got %s", about.ctrl.State())
	}
	c.Advance(hero.ctrl.Total())
	if hero.ctrl.State() != reveal.Revealed {
		t.Fatalf("expected hero revealed, got %s", hero.ctrl.State())
	}
}

func TestJumpRevealsSection(t *testing.T) {
	m, _ := newTestModel(t, defaultConfig())
	m.Update(keyRunes("2"))
	about := m.section(content.SectionAbout)
	if about.ctrl.State() != reveal.Revealing {
		t.Fatalf("expected about revealing after jump, got %s", about.ctrl.State())
	}
	if m.vp.YOffset != m.regions[content.SectionAbout].Top {
		t.Fatalf("expected viewport at about, got offset %d", m.vp.YOffset)
	}
	if got := m.activeSection(); got != 1 {
		t.Fatalf("expected about active in nav, got %d", got)
	}
}

func TestTypingCompletesInView(t *testing.T) {
	m, c := newTestModel(t, defaultConfig())
	tagline := m.content.Hero.Tagline
	if strings.Contains(m.View(), tagline) {
		t.Fatalf("expected tagline not yet typed")
	}
	c.Advance(5 * time.Second)
	m.Update(frameMsg(c.Now()))
	if !strings.Contains(m.View(), tagline) {
		t.Fatalf("expected typed tagline in view")
	}
}

func TestReducedMotionRevealsImmediately(t *testing.T) {
	cfg := defaultConfig()
	cfg.ReducedMotion = true
	m, c := newTestModel(t, cfg)
	c.Advance(0)
	if hero := m.section(content.SectionHome); hero.ctrl.State() != reveal.Revealed {
		t.Fatalf("expected hero revealed without motion, got %s", hero.ctrl.State())
	}
	if got := m.typer.DisplayText(); got != m.content.Hero.Tagline {
		t.Fatalf("expected full tagline, got %q", got)
	}
}

func TestContactKeyFocusesForm(t *testing.T) {
	m, _ := newTestModel(t, defaultConfig())
	m.Update(keyRunes("c"))
	if !m.form.Focused() {
		t.Fatalf("expected form focused")
	}
	if contact := m.section(content.SectionContact); contact.ctrl.State() == reveal.Hidden {
		t.Fatalf("expected contact to start revealing")
	}
	m.Update(keyRunes("q"))
	if m.disposed {
		t.Fatalf("expected q to be typed into the form, not quit")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.form.Focused() {
		t.Fatalf("expected esc to leave the form")
	}
}

func TestQuitReleasesTimers(t *testing.T) {
	m, c := newTestModel(t, defaultConfig())
	m.Update(keyRunes("5"))
	if c.Pending() == 0 {
		t.Fatalf("expected timers while the page runs")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if n := c.Pending(); n != 0 {
		t.Fatalf("expected no pending timers after quit, got %d", n)
	}
	for _, ps := range m.sections {
		before := ps.ctrl.State()
		m.tracker.Scroll(m.regions[ps.id].Top, m.vp.Height)
		if ps.ctrl.State() != before {
			t.Fatalf("section %s changed state after quit", ps.id)
		}
	}
}

func TestShrinkKeepsOffscreenSectionHidden(t *testing.T) {
	m, _ := newTestModel(t, defaultConfig())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 12})
	about := m.section(content.SectionAbout)
	if ratio, _ := m.tracker.Ratio(content.SectionAbout); ratio != 0 {
		t.Fatalf("expected about below the fold after shrinking, ratio %v", ratio)
	}
	if about.ctrl.State() != reveal.Hidden {
		t.Fatalf("expected about hidden after shrinking, got %s", about.ctrl.State())
	}
}

func TestLayoutStableDuringReveal(t *testing.T) {
	m, c := newTestModel(t, defaultConfig())
	before := m.regions
	c.Advance(400 * time.Millisecond)
	m.Update(frameMsg(c.Now()))
	for id, r := range before {
		if m.regions[id] != r {
			t.Fatalf("section %s moved during reveal: %+v -> %+v", id, r, m.regions[id])
		}
	}
}

func TestNavLinksDropInStaggered(t *testing.T) {
	m, c := newTestModel(t, defaultConfig())
	if nav := m.renderNav(); strings.Contains(nav, "1 Home") || strings.Contains(nav, "Resume") {
		t.Fatalf("expected no links before the navbar animates: %q", nav)
	}
	c.Advance(250 * time.Millisecond)
	nav := m.renderNav()
	if !strings.Contains(nav, "1 Home") {
		t.Fatalf("expected the first link in place at 250ms: %q", nav)
	}
	if strings.Contains(nav, "5 Contact") || strings.Contains(nav, "Resume") {
		t.Fatalf("expected later links still above the bar at 250ms: %q", nav)
	}
	c.Advance(time.Second)
	nav = m.renderNav()
	if !containsAll(nav, []string{"1 Home", "5 Contact", "Resume"}) {
		t.Fatalf("expected every link after the stagger: %q", nav)
	}
}

func hintRow(m *Model) int {
	rows := m.renderSection(m.section(content.SectionHome), m.contentWidth(), m.bodyHeight())
	for i, row := range rows {
		if strings.Contains(row, m.content.Hero.ScrollHint) {
			return i
		}
	}
	return -1
}

func TestScrollHintBouncesWhileHeroVisible(t *testing.T) {
	m, c := newTestModel(t, defaultConfig())
	c.Advance(10 * time.Second)
	top := hintRow(m)
	if top < 0 {
		t.Fatalf("expected scroll hint on screen")
	}
	if !m.animating() {
		t.Fatalf("expected frames while the hint bounces on screen")
	}
	c.Advance(time.Second)
	if got := hintRow(m); got != top+1 {
		t.Fatalf("expected hint one row lower mid-bounce, got row %d from %d", got, top)
	}
	c.Advance(time.Second)
	if got := hintRow(m); got != top {
		t.Fatalf("expected hint back in place after a full bounce, got row %d from %d", got, top)
	}

	m.Update(keyRunes("3"))
	c.Advance(10 * time.Second)
	if m.animating() {
		t.Fatalf("expected no frames once the hero is off screen and reveals settled")
	}
}

func TestReducedMotionSkipsBounce(t *testing.T) {
	cfg := defaultConfig()
	cfg.ReducedMotion = true
	m, c := newTestModel(t, cfg)
	c.Advance(0)
	if m.player.Playing(bounceKey) || m.animating() {
		t.Fatalf("expected no repeating motion with reduced motion")
	}
}
