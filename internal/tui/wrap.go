package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type wrapRune struct {
	r       rune
	width   int
	isSpace bool
}

// wrapText breaks text into lines no wider than width cells, preferring the last
// space on the line and hard-breaking words that do not fit.
func wrapText(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := make([]wrapRune, 0, len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' {
			r = ' '
		}
		runes = append(runes, wrapRune{r: r, width: runewidth.RuneWidth(r), isSpace: r == ' '})
	}
	if width <= 0 {
		return []string{renderRunes(runes)}
	}

	var out []string
	line := make([]wrapRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out = append(out, renderRunes(line[:lastSpaceIdx]))
				line = append([]wrapRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out = append(out, renderRunes(line))
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		if item.isSpace && len(line) == 0 {
			// Wrapped lines never start with a space.
			i++
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	if len(line) > 0 {
		out = append(out, renderRunes(line))
	}
	return out
}

func renderRunes(runes []wrapRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteRune(item.r)
	}
	return strings.TrimRight(b.String(), " ")
}

func lineWidthOf(line []wrapRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []wrapRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
