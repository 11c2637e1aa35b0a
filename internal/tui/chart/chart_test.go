package chart

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestBarLength(t *testing.T) {
	tests := []struct {
		value, max float64
		space      int
		want       int
	}{
		{10, 10, 20, 20},
		{5, 10, 20, 10},
		{0, 10, 20, 0},
		{-3, 10, 20, 0},
		{0.1, 100, 20, 1}, // small positive values stay visible
		{10, 0, 20, 0},
		{10, 10, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BarLength(tt.value, tt.max, tt.space),
			"value=%v max=%v space=%d", tt.value, tt.max, tt.space)
	}
}

func TestBarsEmptySeries(t *testing.T) {
	out := Bars("Deployments", nil, 60)
	assert.Contains(t, out, "Deployments")
	assert.Contains(t, out, "no data")
}

func TestBarsRendersEachPoint(t *testing.T) {
	points := []Point{
		{Label: "2024-01-01", Value: 4},
		{Label: "2024-01-08", Value: 8},
	}

	out := Bars("PRs Opened", points, 60)
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "2024-01-08")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "4")
	assert.Contains(t, out, "8")
}

func TestSparklineLength(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	out := Sparkline(values, 40)
	assert.Equal(t, len(values), lipgloss.Width(out), "series shorter than width keeps its length")

	out = Sparkline(values, 4)
	assert.Equal(t, 4, lipgloss.Width(out), "long series is downsampled to width")
}

func TestSparklineFlatSeries(t *testing.T) {
	out := Sparkline([]float64{5, 5, 5}, 10)
	assert.Equal(t, strings.Repeat("▁", 3), stripANSI(out))
}

func TestSparklineEmpty(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil, 10))
	assert.Equal(t, "", Sparkline([]float64{1}, 0))
}

func TestResample(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7}

	out := resample(values, 4)
	assert.Len(t, out, 4)
	assert.Equal(t, 0.0, out[0])

	assert.Equal(t, values, resample(values, 8))
	assert.Equal(t, values, resample(values, 100))
}

// stripANSI removes color escapes so assertions see the raw runes.
func stripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && r == 'm':
			inEscape = false
		case !inEscape:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
