// Package inbox lists and manages stored contact messages.
package inbox

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/folio/internal/model"
)

const (
	dateLayout   = "2006-01-02 15:04"
	previewWidth = 48
)

var messageHeaders = []string{"ID", "Received", "Name", "Email", "Message"}

// WriteTable prints msgs as a plain aligned table.
func WriteTable(w io.Writer, msgs []model.Message) error {
	if len(msgs) == 0 {
		_, err := fmt.Fprintln(w, "No messages found.")
		return err
	}
	for _, line := range formatTable(messageHeaders, messageRows(msgs), map[int]bool{0: true}) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func messageRows(msgs []model.Message) [][]string {
	rows := make([][]string, 0, len(msgs))
	for _, msg := range msgs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", msg.ID),
			msg.CreatedAt.Local().Format(dateLayout),
			msg.Name,
			msg.Email,
			preview(msg.Body, previewWidth),
		})
	}
	return rows
}

// preview flattens body onto one line of at most width columns.
func preview(body string, width int) string {
	flat := strings.Join(strings.Fields(body), " ")
	return runewidth.Truncate(flat, width, "...")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
