package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/folio/internal/anim"
)

// Entrance offsets are authored in pixels; one terminal row stands for this many.
const pxPerRow = 20.0

// Below this opacity a pre-styled block is not drawn at all.
const rawOpacityCutoff = 0.5

const (
	colorBackground = "#101010"
	colorText       = "#F0F0F0"
	colorBody       = "#B8B8B8"
	colorMuted      = "#8C8C8C"
	colorAccent     = "#3B82F6"
	colorBorder     = "#4A4A4A"
)

type span struct {
	text      string
	color     string
	bold      bool
	underline bool
}

type line []span

// block is one staggered child. Either lines (faded by colour) or raw
// (already styled, shown once mostly opaque) is set. With a border, width is the
// inner width including one column of padding on each side.
type block struct {
	lines  []line
	raw    string
	border string
	width  int
}

func (b block) height() int {
	h := len(b.lines)
	if b.raw != "" {
		h = lipgloss.Height(b.raw)
	}
	if b.border != "" {
		h += 2
	}
	return h
}

func text(s, color string) line {
	return line{{text: s, color: color}}
}

func wrapped(s, color string, width int) []line {
	var out []line
	for _, l := range wrapText(s, width) {
		out = append(out, text(l, color))
	}
	return out
}

// fade blends color toward the background by opacity.
func fade(color string, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return lipgloss.Color(color)
	}
	fg, err := colorful.Hex(color)
	if err != nil {
		return lipgloss.Color(color)
	}
	bg, _ := colorful.Hex(colorBackground)
	return lipgloss.Color(bg.BlendLab(fg, math.Max(opacity, 0)).Clamped().Hex())
}

func offsetRows(px float64) int {
	return int(math.Round(math.Abs(px) / pxPerRow))
}

func (l line) render(opacity float64) string {
	var b strings.Builder
	for _, s := range l {
		style := lipgloss.NewStyle().Foreground(fade(s.color, opacity)).Bold(s.bold).Underline(s.underline)
		b.WriteString(style.Render(s.text))
	}
	return b.String()
}

func (l line) width() int {
	w := 0
	for _, s := range l {
		w += runewidth.StringWidth(s.text)
	}
	return w
}

// render draws b at pose. The result always has b.height()+reserve rows so that
// layout does not move while a child slides into place.
func (b block) render(pose anim.Pose, reserve int) string {
	shift := min(offsetRows(pose.OffsetY), reserve)
	var body string
	switch {
	case pose.Opacity <= 0.01, b.raw != "" && pose.Opacity < rawOpacityCutoff:
		body = blankBlock(b.blockWidth(), b.height())
	case b.raw != "":
		body = b.raw
	default:
		rows := make([]string, len(b.lines))
		for i, l := range b.lines {
			rows[i] = l.render(pose.Opacity)
		}
		body = strings.Join(rows, "\n")
		if b.border != "" {
			body = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(fade(b.border, pose.Opacity)).
				Padding(0, 1).
				Width(b.width).
				Render(body)
		}
	}
	return padRows(body, shift, reserve-shift)
}

func (b block) blockWidth() int {
	if b.raw != "" {
		return lipgloss.Width(b.raw)
	}
	w := 0
	for _, l := range b.lines {
		w = max(w, l.width())
	}
	if b.border != "" {
		// width covers the padding; the border adds a column on each side.
		w = max(w+2, b.width) + 2
	}
	return w
}

func blankBlock(width, height int) string {
	if height <= 0 {
		return ""
	}
	row := strings.Repeat(" ", max(width, 0))
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func padRows(s string, above, below int) string {
	var b strings.Builder
	for i := 0; i < above; i++ {
		b.WriteByte('\n')
	}
	b.WriteString(s)
	for i := 0; i < below; i++ {
		b.WriteByte('\n')
	}
	return b.String()
}
