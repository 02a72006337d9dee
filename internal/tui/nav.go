package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/folio/internal/anim"
)

// Rows of scroll after which the navbar switches to its solid style.
const scrolledRows = 3

var (
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	navSolidStyle = lipgloss.NewStyle().Background(lipgloss.Color("#1C1C1C"))
)

func (m *Model) isScrolled() bool {
	return m.vp.YOffset > scrolledRows
}

// activeSection returns the section at the top of the viewport.
func (m *Model) activeSection() int {
	active := 0
	for i, ps := range m.sections {
		r, ok := m.regions[ps.id]
		if ok && r.Top <= m.vp.YOffset {
			active = i
		}
	}
	return active
}

func (m *Model) renderNav() string {
	bar := m.player.Pose(navKey, anim.Visible)
	active := m.activeSection()
	parts := []string{
		line{{text: m.content.Owner, color: colorAccent, bold: true}}.render(bar.Opacity),
		"   ",
	}
	for i, ps := range m.sections {
		s := span{text: fmt.Sprintf("%d %s", i+1, ps.title), color: colorMuted}
		if i == active {
			s.color = colorText
			s.underline = true
		}
		parts = append(parts, navLink(s, m.player.Pose(navLinkKey(i), anim.Visible), bar.Opacity), "  ")
	}
	if m.content.Resume != "" {
		resume := span{text: "Resume", color: colorAccent, bold: true, underline: true}
		parts = append(parts, " ", navLink(resume, m.player.Pose(resumeKey, anim.Visible), bar.Opacity))
	}
	row := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(parts, ""))
	if m.isScrolled() {
		return navSolidStyle.Width(m.width).Render(row)
	}
	return row
}

// navLink draws one link at pose. A link still a row or more above the bar has
// not dropped in yet and leaves a gap of its own width.
func navLink(s span, pose anim.Pose, barOpacity float64) string {
	if offsetRows(pose.OffsetY) > 0 {
		return strings.Repeat(" ", line{s}.width())
	}
	return line{s}.render(pose.Opacity * barOpacity)
}

func (m *Model) renderFooter() string {
	title := ""
	if len(m.sections) > 0 {
		title = m.sections[m.activeSection()].title
	}
	footer := footerText(title, m.vp.ScrollPercent(), m.form.Focused())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footerStyle.Render(footer))
}

func footerText(section string, percent float64, formFocused bool) string {
	segments := []string{fmt.Sprintf("%s %d%%", section, int(percent*100))}
	if formFocused {
		segments = append(segments, "tab next", "ctrl+s send", "esc leave form")
	} else {
		segments = append(segments, "1-5 jump", "c contact", "q quit")
	}
	return strings.Join(segments, "  ")
}
