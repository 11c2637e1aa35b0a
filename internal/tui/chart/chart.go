// Package chart renders weekly metric series as unicode bar rows and
// sparklines, the terminal stand-ins for the dashboard's bar/line charts.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gitpulse/gitpulse/internal/tui/theme"
)

// Point is one labeled value in a series.
type Point struct {
	Label string
	Value float64
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Bars renders a titled horizontal bar chart, one row per point:
//
//	2024-01-01 ████████ 12
//
// Negative values are clamped to zero. width bounds the whole line.
func Bars(title string, points []Point, width int) string {
	var sb strings.Builder
	sb.WriteString(theme.StyleSection.Render(title))
	sb.WriteString("\n")

	if len(points) == 0 {
		sb.WriteString(theme.StyleMuted.Render("no data"))
		sb.WriteString("\n")
		return sb.String()
	}

	labelW := 0
	maxVal := 0.0
	for _, p := range points {
		if w := lipgloss.Width(p.Label); w > labelW {
			labelW = w
		}
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	barSpace := width - labelW - 10 // label + gap + value suffix
	if barSpace < 4 {
		barSpace = 4
	}

	barStyle := lipgloss.NewStyle().Foreground(theme.ColorBar)
	for _, p := range points {
		sb.WriteString(theme.StyleMuted.Render(padRight(p.Label, labelW)))
		sb.WriteString(" ")
		sb.WriteString(barStyle.Render(strings.Repeat("█", BarLength(p.Value, maxVal, barSpace))))
		sb.WriteString(" ")
		sb.WriteString(formatValue(p.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Sparkline renders a series as one line of block runes, downsampled to fit
// width. Returns "" for an empty series.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := resample(values, width)

	minVal, maxVal := sampled[0], sampled[0]
	for _, v := range sampled {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	var sb strings.Builder
	span := maxVal - minVal
	for _, v := range sampled {
		idx := 0
		if span > 0 {
			idx = int((v - minVal) / span * float64(len(sparkRunes)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		sb.WriteRune(sparkRunes[idx])
	}
	return lipgloss.NewStyle().Foreground(theme.ColorBar).Render(sb.String())
}

// BarLength scales value against max into [0, space] cells. A positive value
// always gets at least one cell so small counts stay visible.
func BarLength(value, max float64, space int) int {
	if value <= 0 || max <= 0 || space <= 0 {
		return 0
	}
	n := int(value / max * float64(space))
	if n < 1 {
		n = 1
	}
	if n > space {
		n = space
	}
	return n
}

// resample reduces (or keeps) a series to at most width points by striding.
func resample(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		out[i] = values[i*len(values)/width]
	}
	return out
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func padRight(s string, w int) string {
	if sw := lipgloss.Width(s); sw < w {
		return s + strings.Repeat(" ", w-sw)
	}
	return s
}
