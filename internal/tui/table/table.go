// Package table renders rectangular data as a bordered text grid. It is a
// pure renderer: pages format their typed rows into strings and hand them in.
package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gitpulse/gitpulse/internal/tui/theme"
)

const (
	minColWidth = 1
	maxColWidth = 32
)

// Render draws a header row plus up to maxRows data rows, truncating cells to
// the computed column widths. Returns "" for an empty column set.
func Render(columns []string, rows [][]string, width, maxRows int) string {
	if len(columns) == 0 {
		return ""
	}

	widths := columnWidths(columns, rows)

	headerStyle := lipgloss.NewStyle().Foreground(theme.ColorPrimary).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sepStyle := theme.StyleMuted

	var sb strings.Builder

	// Header
	headerCells := make([]string, len(columns))
	for i, col := range columns {
		headerCells[i] = headerStyle.Render(pad(col, widths[i]))
	}
	sb.WriteString(truncateLine(strings.Join(headerCells, sepStyle.Render(" │ ")), width))
	sb.WriteString("\n")

	// Separator
	sepParts := make([]string, len(columns))
	for i := range columns {
		sepParts[i] = strings.Repeat("─", widths[i])
	}
	sb.WriteString(truncateLine(sepStyle.Render(strings.Join(sepParts, "─┼─")), width))
	sb.WriteString("\n")

	shown := len(rows)
	if maxRows > 0 && shown > maxRows {
		shown = maxRows
	}

	for r := 0; r < shown; r++ {
		cells := make([]string, len(columns))
		for i := range columns {
			val := ""
			if i < len(rows[r]) {
				val = rows[r][i]
			}
			cells[i] = cellStyle.Render(pad(val, widths[i]))
		}
		sb.WriteString(truncateLine(strings.Join(cells, sepStyle.Render(" │ ")), width))
		sb.WriteString("\n")
	}

	if shown < len(rows) {
		sb.WriteString(theme.StyleMuted.Render(fmt.Sprintf("… %d more rows", len(rows)-shown)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// columnWidths sizes each column to its widest cell, clamped to
// [minColWidth, maxColWidth]. Display width, not byte length.
func columnWidths(columns []string, rows [][]string) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = lipgloss.Width(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < minColWidth {
			widths[i] = minColWidth
		}
		if widths[i] > maxColWidth {
			widths[i] = maxColWidth
		}
	}
	return widths
}

// pad right-pads or truncates a cell to exactly w display columns.
func pad(s string, w int) string {
	sw := lipgloss.Width(s)
	if sw > w {
		runes := []rune(s)
		if w > 1 && len(runes) > w-1 {
			return string(runes[:w-1]) + "…"
		}
		if len(runes) > w {
			return string(runes[:w])
		}
		return s
	}
	return s + strings.Repeat(" ", w-sw)
}

func truncateLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
