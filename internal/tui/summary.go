package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SummaryRow struct {
	Label string
	Value string
}

// RenderSummary draws label | value rows between two rules.
func RenderSummary(rows []SummaryRow) string {
	labelWidth, valueWidth := 0, 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Label))
		valueWidth = max(valueWidth, lipgloss.Width(row.Value))
	}

	rule := ruleStyle.Render(strings.Repeat("-", labelWidth+valueWidth+3))
	lines := []string{rule}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s | %s",
			labelStyle.Render(padRight(row.Label, labelWidth)),
			valueStyle.Render(row.Value),
		))
	}
	lines = append(lines, rule)
	return strings.Join(lines, "\n")
}

// RenderTable draws a header row and aligned columns. Cells wider than
// maxCell are cut from the left so file names keep their extension.
func RenderTable(headers []string, rows [][]string, maxCell int) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(headers))
		for i := range headers {
			if i >= len(row) {
				continue
			}
			cell := clipLeft(row[i], maxCell)
			cells[r][i] = cell
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(headerCellStyle.Render(padRight(h, widths[i])))
	}
	for _, row := range cells {
		b.WriteString("\n")
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(valueStyle.Render(padRight(cell, widths[i])))
		}
	}
	return b.String()
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func clipLeft(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return "..." + string(r[len(r)-width+3:])
}

var (
	valueStyle      = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	headerCellStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	ruleStyle       = lipgloss.NewStyle().Foreground(ColorDim)
)
