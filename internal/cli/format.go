// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatTable renders columns and rows inside a box-drawing frame followed
// by a row count line:
//
//	┌──────┬─────┐
//	│ name │ n   │
//	├──────┼─────┤
//	│ Bash │ 12  │
//	└──────┴─────┘
//	(1 row)
//
// An empty result renders as the column names joined by " | " and
// "(0 rows)". The output has no trailing newline.
func FormatTable(columns []string, rows [][]string) string {
	if len(rows) == 0 {
		return strings.Join(columns, " | ") + "\n(0 rows)"
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, row := range rows {
		for i := 0; i < len(columns) && i < len(row); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	border := func(left, mid, right string) {
		b.WriteString(left)
		for i, w := range widths {
			if i > 0 {
				b.WriteString(mid)
			}
			b.WriteString(strings.Repeat("─", w+2))
		}
		b.WriteString(right)
		b.WriteByte('\n')
	}
	line := func(cells []string) {
		b.WriteString("│ ")
		for i, w := range widths {
			if i > 0 {
				b.WriteString(" │ ")
			}
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(runewidth.FillRight(cell, w))
		}
		b.WriteString(" │\n")
	}

	border("┌", "┬", "┐")
	line(columns)
	border("├", "┼", "┤")
	for _, row := range rows {
		line(row)
	}
	border("└", "┴", "┘")

	b.WriteByte('(')
	b.WriteString(strconv.Itoa(len(rows)))
	if len(rows) == 1 {
		b.WriteString(" row)")
	} else {
		b.WriteString(" rows)")
	}
	return b.String()
}

// FormatTSV renders a header line and one line per row, fields separated
// by tabs. The output has no trailing newline.
func FormatTSV(columns []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(columns, "\t"))
	for _, row := range rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}
