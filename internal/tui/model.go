// Package tui provides the Bubble Tea portfolio page.
package tui

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/folio/internal/anim"
	"github.com/verte-zerg/folio/internal/clock"
	"github.com/verte-zerg/folio/internal/contact"
	"github.com/verte-zerg/folio/internal/content"
	"github.com/verte-zerg/folio/internal/model"
	"github.com/verte-zerg/folio/internal/reveal"
	"github.com/verte-zerg/folio/internal/typing"
	"github.com/verte-zerg/folio/internal/visibility"
)

const (
	frameInterval = time.Second / 60
	queueSize     = 64
	navKey        = "nav"
	navDuration   = 800 * time.Millisecond

	navLinkStagger  = 100 * time.Millisecond
	navLinkDuration = 500 * time.Millisecond
	navLinkOffset   = -20.0
	resumeKey       = "nav/resume"
	resumeDelay     = 400 * time.Millisecond

	bounceKey      = "home/scroll"
	bounceDuration = 2 * time.Second
	heroHintChild  = 2
)

// bounceLow is the bottom of the scroll hint bounce: one row down and dimmed.
var bounceLow = anim.Pose{Opacity: 0.3, OffsetY: pxPerRow, Scale: 1}

type callbackMsg func()

type frameMsg time.Time

// Model implements the Bubble Tea portfolio page.
type Model struct {
	config  model.Config
	content content.Portfolio
	logger  *log.Logger

	clock clock.Clock
	queue chan func()
	done  chan struct{}

	player   *anim.Player
	tracker  *visibility.Tracker
	sections []*pageSection
	typer    *typing.Simulator
	form     *contact.Form

	vp      viewport.Model
	regions map[string]visibility.Region

	width  int
	height int

	ticking  bool
	mounted  bool
	disposed bool
}

// NewModel constructs the page. Timers run in real time and their callbacks are
// delivered to Update, so all page state is owned by the Bubble Tea loop.
func NewModel(cfg model.Config, p content.Portfolio, sink contact.Sink, logger *log.Logger) (*Model, error) {
	queue := make(chan func(), queueSize)
	done := make(chan struct{})
	c := clock.NewLoop(func(f func()) {
		select {
		case queue <- f:
		case <-done:
		}
	})
	m, err := newModel(cfg, p, sink, c, logger)
	if err != nil {
		return nil, err
	}
	m.queue = queue
	m.done = done
	return m, nil
}

func newModel(cfg model.Config, p content.Portfolio, sink contact.Sink, c clock.Clock, logger *log.Logger) (*Model, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := &Model{
		config:  cfg,
		content: p,
		logger:  logger,
		clock:   c,
		player:  anim.NewPlayer(c),
		tracker: visibility.NewTracker(),
		form:    contact.New(c, sink),
		vp:      viewport.New(0, 0),
		regions: map[string]visibility.Region{},
	}
	sections, err := m.newSections()
	if err != nil {
		return nil, err
	}
	m.sections = sections
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.mount()
	return m.waitForCallback()
}

func (m *Model) mount() {
	if m.mounted {
		return
	}
	m.mounted = true
	speed, delay := m.typingTimes()
	m.typer = typing.New(m.clock, m.content.Hero.Tagline, speed, delay)
	for _, ps := range m.sections {
		ps.ctrl.Mount(m.tracker)
	}
	m.player.Play(navKey, anim.Transition{
		From:     anim.Pose{Opacity: 0, Scale: 1},
		To:       anim.Visible,
		Duration: m.motion(navDuration),
		Easing:   anim.CubicBezier(0.22, 1, 0.36, 1),
	})
	linkFrom := anim.Pose{Opacity: 0, OffsetY: navLinkOffset, Scale: 1}
	for i := range m.sections {
		m.player.Play(navLinkKey(i), anim.Transition{
			From:     linkFrom,
			To:       anim.Visible,
			Delay:    m.motion(time.Duration(i) * navLinkStagger),
			Duration: m.motion(navLinkDuration),
			Easing:   anim.CubicBezier(0.22, 1, 0.36, 1),
		})
	}
	if m.content.Resume != "" {
		m.player.Play(resumeKey, anim.Transition{
			From:     linkFrom,
			To:       anim.Visible,
			Delay:    m.motion(resumeDelay),
			Duration: m.motion(navLinkDuration),
			Easing:   anim.EaseInOut,
		})
	}
	if !m.config.ReducedMotion {
		m.player.Play(bounceKey, anim.Transition{
			From:     anim.Visible,
			To:       bounceLow,
			Duration: bounceDuration,
			Easing:   anim.EaseInOut,
			Repeat:   true,
		})
	}
}

func navLinkKey(i int) string {
	return reveal.ChildKey(navKey, i)
}

// animating reports whether the next frame differs from the current one.
func (m *Model) animating() bool {
	if m.player.Active() {
		return true
	}
	if !m.player.Playing(bounceKey) {
		return false
	}
	ratio, ok := m.tracker.Ratio(content.SectionHome)
	return ok && ratio > 0
}

func (m *Model) motion(d time.Duration) time.Duration {
	if m.config.ReducedMotion {
		return 0
	}
	return d
}

func (m *Model) typingTimes() (speed, delay time.Duration) {
	speedMs := m.content.Hero.TypingSpeedMs
	delayMs := m.content.Hero.TypingDelayMs
	if m.config.TypingSpeedMs >= 0 {
		speedMs = m.config.TypingSpeedMs
	}
	if m.config.TypingDelayMs >= 0 {
		delayMs = m.config.TypingDelayMs
	}
	speed = time.Duration(speedMs) * time.Millisecond
	delay = time.Duration(delayMs) * time.Millisecond
	return m.motion(speed), m.motion(delay)
}

func (m *Model) waitForCallback() tea.Cmd {
	if m.queue == nil {
		return nil
	}
	queue, done := m.queue, m.done
	return func() tea.Msg {
		select {
		case f := <-queue:
			return callbackMsg(f)
		case <-done:
			return nil
		}
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = m.bodyHeight()
		m.form.SetWidth(min(m.contentWidth(), formMax))
	case callbackMsg:
		if !m.disposed {
			msg()
		}
		cmds = append(cmds, m.waitForCallback())
	case frameMsg:
		m.ticking = false
	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			m.dispose()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		cmds = append(cmds, cmd)
	default:
		_, before := m.form.Status()
		cmds = append(cmds, m.form.Update(msg))
		if text, kind := m.form.Status(); kind != before && kind != contact.StatusNone {
			m.logger.Printf("contact form: %s", text)
		}
	}
	if m.disposed {
		return m, nil
	}
	m.layout()
	if !m.ticking && m.animating() {
		m.ticking = true
		cmds = append(cmds, frameTick())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return nil, true
	}
	if m.form.Focused() {
		return m.form.Update(msg), false
	}
	switch msg.String() {
	case "q":
		return nil, true
	case "1", "2", "3", "4", "5":
		idx := int(msg.Runes[0] - '1')
		if idx < len(m.sections) {
			m.jumpTo(m.sections[idx].id)
		}
		return nil, false
	case "c":
		m.jumpTo(content.SectionContact)
		return m.form.Focus(), false
	case "enter":
		if ratio, ok := m.tracker.Ratio(content.SectionContact); ok && ratio > 0 {
			return m.form.Focus(), false
		}
		return nil, false
	case "g", "home":
		m.vp.GotoTop()
		return nil, false
	case "G", "end":
		m.vp.GotoBottom()
		return nil, false
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return cmd, false
}

func (m *Model) jumpTo(id string) {
	if r, ok := m.regions[id]; ok {
		m.vp.SetYOffset(r.Top)
	}
}

// dispose releases every timer and subscription owned by the page.
func (m *Model) dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	for _, ps := range m.sections {
		ps.ctrl.Dispose()
	}
	if m.typer != nil {
		m.typer.Dispose()
	}
	m.form.Dispose()
	m.player.Stop(navKey)
	for i := range m.sections {
		m.player.Stop(navLinkKey(i))
	}
	m.player.Stop(resumeKey)
	m.player.Stop(bounceKey)
	if m.done != nil {
		close(m.done)
	}
}

func (m *Model) bodyHeight() int {
	return max(m.height-2, 1)
}

func (m *Model) contentWidth() int {
	w := int(float64(m.width) * 0.8)
	return max(min(w, 96), 20)
}

// layout renders every section, feeds the viewport and refreshes visibility.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	width := m.contentWidth()
	bodyH := m.bodyHeight()
	var rows []string
	regions := make(map[string]visibility.Region, len(m.sections))
	for _, ps := range m.sections {
		sectionRows := m.renderSection(ps, width, bodyH)
		regions[ps.id] = visibility.Region{Top: len(rows), Height: len(sectionRows)}
		rows = append(rows, sectionRows...)
	}
	m.regions = regions
	m.vp.SetContent(strings.Join(rows, "\n"))
	// Layout and window must change together; a new layout checked against the
	// old window can report sections that are not on screen.
	m.tracker.Update(regions, m.vp.YOffset, m.vp.Height)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return m.renderNav() + "\n" + m.vp.View() + "\n" + m.renderFooter()
}
