package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a styled header and a separator
// line. Widths are measured on visible text, so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = StyleHeader.Render(h)
	}
	all := append([][]string{styled}, rows...)
	widths := columnWidths(all, len(headers))

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = StyleDim.Render(strings.Repeat("─", w))
	}

	var b strings.Builder
	b.WriteString(joinRow(styled, widths) + "\n")
	b.WriteString(joinRow(sep, widths) + "\n")
	for _, row := range rows {
		b.WriteString(joinRow(row, widths) + "\n")
	}
	return b.String()
}

// AlignColumns pads every row to common column widths without a header.
func AlignColumns(rows [][]string) []string {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	widths := columnWidths(rows, cols)
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = joinRow(r, widths)
	}
	return out
}

func columnWidths(rows [][]string, cols int) []int {
	widths := make([]int, cols)
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

// joinRow pads each cell to its column width. The last cell is not padded
// so lines carry no trailing spaces.
func joinRow(row []string, widths []int) string {
	var b strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", max(0, w-lipgloss.Width(cell))+colGap))
		}
	}
	return strings.TrimRight(b.String(), " ")
}
