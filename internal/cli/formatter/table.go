package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column describes one table column. MaxWidth of 0 means unlimited.
type Column struct {
	Header   string
	MaxWidth int
	Right    bool
}

const colGap = 2

// RenderTable renders left-aligned, unbounded columns.
func RenderTable(headers []string, rows [][]string) string {
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = Column{Header: h}
	}
	return RenderColumns(cols, rows)
}

// RenderColumns renders an aligned table with a header separator line.
// Widths are measured on visible width so styled cells line up; short rows
// are padded with empty cells.
func RenderColumns(cols []Column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Header)
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i, c := range cols {
			if i < len(row) {
				cells[r][i] = clip(row[i], c.MaxWidth)
			}
			widths[i] = max(widths[i], lipgloss.Width(cells[r][i]))
		}
	}

	var b strings.Builder
	headers := make([]string, len(cols))
	rules := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = StyleHeader.Render(c.Header)
		rules[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}
	writeRow(&b, cols, widths, headers)
	writeRow(&b, cols, widths, rules)
	for _, row := range cells {
		writeRow(&b, cols, widths, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cols []Column, widths []int, cells []string) {
	for i, cell := range cells {
		gap := max(widths[i]-lipgloss.Width(cell), 0)
		last := i == len(cells)-1
		switch {
		case cols[i].Right:
			b.WriteString(strings.Repeat(" ", gap) + cell)
		case last:
			b.WriteString(cell)
		default:
			b.WriteString(cell + strings.Repeat(" ", gap))
		}
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}

// clip bounds a cell to width. Plain text gets an ellipsis; styled text is
// cut by lipgloss so escape sequences stay balanced.
func clip(cell string, width int) string {
	if width <= 0 || lipgloss.Width(cell) <= width {
		return cell
	}
	if !strings.Contains(cell, "\x1b") {
		return Truncate(cell, width)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(cell)
}
