package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/folio/internal/anim"
	"github.com/verte-zerg/folio/internal/content"
	"github.com/verte-zerg/folio/internal/reveal"
)

const (
	cardWidth   = 28
	projectMax  = 72
	formMax     = 60
	gridGap     = 2
	layoutWidth = 80
)

// group is a row of blocks laid out side by side.
type group []block

type pageSection struct {
	id    string
	title string
	ctrl  *reveal.Controller
	build func(width int) []group
	// overlays maps a child index to a player key whose pose is added on top
	// of the child's entrance pose.
	overlays map[int]string
}

func countBlocks(groups []group) int {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	return n
}

func headingLine(h string) line {
	h = strings.TrimSpace(h)
	idx := strings.LastIndex(h, " ")
	if idx < 0 {
		return line{{text: h, color: colorAccent, bold: true}}
	}
	return line{
		{text: h[:idx+1], color: colorText, bold: true},
		{text: h[idx+1:], color: colorAccent, bold: true},
	}
}

func single(b block) group {
	return group{b}
}

func (m *Model) buildHero(width int) []group {
	h := m.content.Hero
	display, cursor := "", "|"
	if m.typer != nil {
		display = m.typer.DisplayText()
		if !m.typer.CursorVisible() {
			cursor = " "
		}
	}
	return []group{
		single(block{lines: []line{{
			{text: h.Greeting + " ", color: colorText, bold: true},
			{text: h.Name, color: colorAccent, bold: true},
		}}}),
		single(block{lines: []line{{
			{text: display, color: colorBody},
			{text: " " + cursor, color: colorAccent},
		}}}),
		single(block{lines: []line{text(h.ScrollHint, colorMuted)}}),
	}
}

func (m *Model) buildAbout(width int) []group {
	a := m.content.About
	groups := []group{single(block{lines: []line{headingLine(a.Heading)}})}
	for _, l := range a.Lines {
		groups = append(groups, single(block{lines: wrapped(l, colorBody, width)}))
	}
	return groups
}

func (m *Model) buildSkills(width int) []group {
	s := m.content.Skills
	groups := []group{
		single(block{lines: []line{headingLine(s.Heading)}}),
		single(block{lines: wrapped(s.Subtitle, colorMuted, width)}),
	}
	cols := max(1, (width+gridGap)/(cardWidth+2+gridGap))
	var row group
	for _, skill := range s.Items {
		color := skill.Color
		if color == "" {
			color = colorAccent
		}
		desc := wrapped(skill.Description, colorMuted, cardWidth-2)
		for len(desc) < 2 {
			desc = append(desc, text("", colorMuted))
		}
		row = append(row, block{
			lines:  append([]line{{{text: skill.Name, color: color, bold: true}}}, desc...),
			border: colorBorder,
			width:  cardWidth,
		})
		if len(row) == cols {
			groups = append(groups, row)
			row = nil
		}
	}
	if len(row) > 0 {
		groups = append(groups, row)
	}
	if s.Footer != "" {
		groups = append(groups, single(block{
			lines:  []line{{{text: s.Footer, color: colorText, bold: true}}},
			border: colorAccent,
			width:  lipgloss.Width(s.Footer) + 6,
		}))
	}
	return groups
}

func (m *Model) buildProjects(width int) []group {
	p := m.content.Projects
	groups := []group{
		single(block{lines: []line{headingLine(p.Heading)}}),
		single(block{lines: wrapped(p.Subtitle, colorMuted, width)}),
	}
	cardW := min(width, projectMax)
	inner := cardW - 2
	for _, proj := range p.Items {
		accent := proj.Accent
		if accent == "" {
			accent = colorAccent
		}
		lines := []line{{{text: proj.Title, color: accent, bold: true}}, text("", colorBody)}
		lines = append(lines, wrapped(proj.Description, colorBody, inner)...)
		if len(proj.Stack) > 0 {
			lines = append(lines, text("", colorBody))
			lines = append(lines, wrapped("Tech Stack: "+strings.Join(proj.Stack, " · "), colorMuted, inner)...)
		}
		if proj.GitHub != "" {
			lines = append(lines, line{{text: "GitHub ", color: colorMuted}, {text: proj.GitHub, color: colorText, underline: true}})
		}
		if proj.Live != "" {
			lines = append(lines, line{{text: "Live   ", color: colorMuted}, {text: proj.Live, color: colorText, underline: true}})
		}
		groups = append(groups, single(block{lines: lines, border: accent, width: cardW}))
	}
	return groups
}

func (m *Model) buildContact(width int) []group {
	c := m.content.Contact
	groups := []group{
		single(block{lines: []line{headingLine(c.Heading)}}),
		single(block{lines: wrapped(c.Subtitle, colorMuted, width)}),
	}
	fields := m.form.Fields()
	// Name, email and message animate on their own; the status line rides with the button.
	for _, f := range fields[:3] {
		groups = append(groups, single(block{raw: lipgloss.PlaceHorizontal(min(width, formMax), lipgloss.Left, f)}))
	}
	button := lipgloss.JoinVertical(lipgloss.Center, fields[3], fields[4])
	groups = append(groups, single(block{raw: lipgloss.PlaceHorizontal(min(width, formMax), lipgloss.Center, button)}))

	var links []line
	if c.LinkedIn != "" {
		links = append(links, line{{text: "LinkedIn ", color: colorMuted}, {text: c.LinkedIn, color: colorText, underline: true}})
	}
	if c.Email != "" {
		links = append(links, line{{text: "Email    ", color: colorMuted}, {text: c.Email, color: colorText}})
	}
	if m.content.Resume != "" {
		links = append(links, line{{text: "Resume   ", color: colorMuted}, {text: m.content.Resume, color: colorText, underline: true}})
	}
	if c.Phone != "" {
		links = append(links, line{{text: "Phone    ", color: colorMuted}, {text: c.Phone, color: colorText}})
	}
	if len(links) > 0 {
		groups = append(groups, single(block{lines: links}))
	}
	return groups
}

func (m *Model) newSections() ([]*pageSection, error) {
	builders := map[string]struct {
		title string
		build func(int) []group
	}{
		content.SectionHome:     {"Home", m.buildHero},
		content.SectionAbout:    {"About", m.buildAbout},
		content.SectionSkills:   {"Skills", m.buildSkills},
		content.SectionProjects: {"Projects", m.buildProjects},
		content.SectionContact:  {"Contact", m.buildContact},
	}
	motions := m.content.Motions()
	sections := make([]*pageSection, 0, len(content.SectionIDs))
	for _, id := range content.SectionIDs {
		b := builders[id]
		children := countBlocks(b.build(layoutWidth))
		sec, err := motions[id].Section(id, children, m.config.ReducedMotion)
		if err != nil {
			return nil, err
		}
		ctrl := reveal.New(sec, m.clock, m.player)
		ctrl.OnChange(func(id string, s reveal.State) {
			m.logger.Printf("section %s: %s", id, s)
		})
		ps := &pageSection{id: id, title: b.title, ctrl: ctrl, build: b.build}
		if id == content.SectionHome {
			ps.overlays = map[int]string{heroHintChild: bounceKey}
		}
		sections = append(sections, ps)
	}
	return sections, nil
}

// renderSection draws a section at its current poses, at least minHeight rows tall.
func (m *Model) renderSection(ps *pageSection, width, minHeight int) []string {
	sec := ps.ctrl.Section()
	container := m.player.Pose(sec.ID, reveal.ContainerHidden)
	reserve := offsetRows(sec.Entrance.Offset.OffsetY)

	var rows []string
	idx := 0
	for gi, g := range ps.build(width) {
		parts := make([]string, 0, len(g)*2)
		for bi, b := range g {
			pose := m.player.Pose(reveal.ChildKey(sec.ID, idx), sec.Entrance.Offset)
			pose.Opacity *= container.Opacity
			if key, ok := ps.overlays[idx]; ok {
				extra := m.player.Pose(key, anim.Visible)
				pose.Opacity *= extra.Opacity
				pose.OffsetY += extra.OffsetY
			}
			if bi > 0 {
				parts = append(parts, strings.Repeat(" ", gridGap))
			}
			parts = append(parts, b.render(pose, reserve))
			idx++
		}
		joined := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		if gi > 0 {
			rows = append(rows, "")
		}
		for _, r := range strings.Split(joined, "\n") {
			rows = append(rows, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, r))
		}
	}

	if extra := minHeight - len(rows) - 2; extra > 0 {
		top := extra / 2
		rows = append(make([]string, top+1), append(rows, make([]string, extra-top+1)...)...)
	} else {
		rows = append(append([]string{""}, rows...), "")
	}
	return rows
}
