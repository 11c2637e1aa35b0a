package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gitpulse/gitpulse/internal/metrics"
	"github.com/gitpulse/gitpulse/internal/tui/chart"
	"github.com/gitpulse/gitpulse/internal/tui/table"
	"github.com/gitpulse/gitpulse/internal/tui/theme"
)

// summaryModel renders per-reviewer performance aggregates.
type summaryModel struct {
	repoSel selector
	rows    []metrics.ReviewSummaryRow
}

func (v *summaryModel) setData(repos []string, rows []metrics.ReviewSummaryRow) {
	v.repoSel.allOption = true
	v.repoSel.setOptions(repos)
	v.rows = rows
}

func (v *summaryModel) cycle(delta int) bool { return v.repoSel.cycle(delta) }
func (v *summaryModel) selectedRepo() string { return v.repoSel.value() }

func (v *summaryModel) view(width int) string {
	var sb strings.Builder

	sb.WriteString(theme.StyleTitle.Render("PR Review Summary"))
	sb.WriteString("  ")
	sb.WriteString(theme.StyleMuted.Render("repo: " + v.repoSel.label()))
	sb.WriteString("\n\n")

	if len(v.rows) == 0 {
		sb.WriteString(theme.StyleMuted.Render("No data in PR_REVIEW_SUMMARY."))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(theme.StyleSection.Render("Reviewer Performance Table"))
	sb.WriteString("\n")

	rows := make([][]string, 0, len(v.rows))
	for _, r := range v.rows {
		rows = append(rows, []string{
			r.Repo,
			r.Reviewer,
			fmt.Sprintf("%d", r.TotalPRsReviewed),
			fmt.Sprintf("%.2f", r.AvgReviewTimeHours),
			fmt.Sprintf("%.2f", r.AvgPRCycleTimeHours),
			fmt.Sprintf("%.1f", r.AvgFilesChanged),
			fmt.Sprintf("%.1f", r.AvgLinesAdded),
			fmt.Sprintf("%.1f", r.AvgLinesDeleted),
			r.FirstPRDate.Format("2006-01-02"),
			r.LastPRDate.Format("2006-01-02"),
		})
	}
	sb.WriteString(table.Render(
		[]string{"REPO", "REVIEWER", "TOTAL_PRS", "AVG_REVIEW_HRS", "AVG_CYCLE_HRS",
			"AVG_FILES", "AVG_ADDED", "AVG_DELETED", "FIRST_PR", "LAST_PR"},
		rows, width, 15))
	sb.WriteString("\n")

	// Review time vs volume, busiest reviewers first.
	byVolume := make([]metrics.ReviewSummaryRow, len(v.rows))
	copy(byVolume, v.rows)
	sort.Slice(byVolume, func(i, j int) bool {
		return byVolume[i].TotalPRsReviewed > byVolume[j].TotalPRsReviewed
	})
	if len(byVolume) > 10 {
		byVolume = byVolume[:10]
	}

	points := make([]chart.Point, 0, len(byVolume))
	for _, r := range byVolume {
		points = append(points, chart.Point{
			Label: fmt.Sprintf("%s (%d PRs)", r.Reviewer, r.TotalPRsReviewed),
			Value: r.AvgReviewTimeHours,
		})
	}
	sb.WriteString(chart.Bars("Avg Review Time by Reviewer (hrs)", points, width/2))

	return sb.String()
}
