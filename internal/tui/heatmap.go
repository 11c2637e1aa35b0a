package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gitpulse/gitpulse/internal/metrics"
	"github.com/gitpulse/gitpulse/internal/tui/table"
	"github.com/gitpulse/gitpulse/internal/tui/theme"
)

// heatmapModel renders the reviewer × author PR-count matrix.
type heatmapModel struct {
	hm *metrics.Heatmap
}

func (v *heatmapModel) setData(hm *metrics.Heatmap) {
	v.hm = hm
}

func (v *heatmapModel) view(width int) string {
	var sb strings.Builder

	sb.WriteString(theme.StyleTitle.Render("Reviewer ↔ Author Interaction Heatmap"))
	sb.WriteString("\n\n")

	if v.hm == nil || len(v.hm.Reviewers) == 0 {
		sb.WriteString(theme.StyleMuted.Render("No data in FACT_PR_CYCLE_TIME."))
		sb.WriteString("\n")
		return sb.String()
	}

	labelW := 0
	for _, r := range v.hm.Reviewers {
		if w := lipgloss.Width(r); w > labelW {
			labelW = w
		}
	}

	// Column header: first letters of authors, vertical alignment is not
	// worth the trouble at terminal widths. Full names go in the legend.
	sb.WriteString(strings.Repeat(" ", labelW+1))
	for j := range v.hm.Authors {
		sb.WriteString(theme.StyleMuted.Render(padLabel(columnTag(j), 2)))
		sb.WriteString(" ")
	}
	sb.WriteString("\n")

	for i, reviewer := range v.hm.Reviewers {
		sb.WriteString(theme.StyleMuted.Render(padLabel(reviewer, labelW)))
		sb.WriteString(" ")
		for _, n := range v.hm.Counts[i] {
			sb.WriteString(heatCell(n, v.hm.Max))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(theme.StyleSection.Render("Authors"))
	sb.WriteString("\n")
	for j, a := range v.hm.Authors {
		sb.WriteString(theme.StyleMuted.Render(columnTag(j) + " = " + a))
		sb.WriteString("  ")
	}
	sb.WriteString("\n\n")

	sb.WriteString(theme.StyleSection.Render("Top Interactions"))
	sb.WriteString("\n")

	type pair struct {
		reviewer, author string
		count            int
	}
	var pairs []pair
	for i, r := range v.hm.Reviewers {
		for j, a := range v.hm.Authors {
			if n := v.hm.Counts[i][j]; n > 0 {
				pairs = append(pairs, pair{r, a, n})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].count > pairs[j].count })

	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p.reviewer, p.author, fmt.Sprintf("%d", p.count)})
	}
	sb.WriteString(table.Render([]string{"REVIEWER", "AUTHOR", "PR_COUNT"}, rows, width, 10))

	return sb.String()
}

// heatCell maps a count onto the heat ramp, two cells wide.
func heatCell(count, max int) string {
	idx := 0
	if max > 0 && count > 0 {
		idx = 1 + count*(len(theme.Heat)-2)/max
		if idx >= len(theme.Heat) {
			idx = len(theme.Heat) - 1
		}
	}
	return lipgloss.NewStyle().Foreground(theme.Heat[idx]).Render("██")
}

// columnTag labels heatmap columns a, b, … z, aa, ab, …
func columnTag(j int) string {
	tag := string(rune('a' + j%26))
	if j >= 26 {
		tag = string(rune('a'+j/26-1)) + tag
	}
	return tag
}

func padLabel(s string, w int) string {
	if sw := lipgloss.Width(s); sw < w {
		return s + strings.Repeat(" ", w-sw)
	}
	return s
}
