package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/internal/metrics"
	"github.com/gitpulse/gitpulse/internal/tui/chart"
	"github.com/gitpulse/gitpulse/internal/tui/table"
	"github.com/gitpulse/gitpulse/internal/tui/theme"
)

// reviewersModel renders weekly review workload for one reviewer plus the
// current-week rank snapshot across all reviewers.
type reviewersModel struct {
	reviewerSel selector
	rows        []metrics.ReviewerLoadRow
	snapshot    []metrics.ReviewerLoadRow
}

func (v *reviewersModel) setData(reviewers []string, rows, snapshot []metrics.ReviewerLoadRow) {
	v.reviewerSel.setOptions(reviewers)
	v.rows = rows
	v.snapshot = snapshot
}

func (v *reviewersModel) cycle(delta int) bool     { return v.reviewerSel.cycle(delta) }
func (v *reviewersModel) selectedReviewer() string { return v.reviewerSel.value() }

func (v *reviewersModel) view(width int) string {
	var sb strings.Builder

	sb.WriteString(theme.StyleTitle.Render("Reviewer Load"))
	sb.WriteString("  ")
	sb.WriteString(theme.StyleMuted.Render("reviewer: " + v.reviewerSel.label()))
	sb.WriteString("\n\n")

	if len(v.rows) == 0 {
		sb.WriteString(theme.StyleMuted.Render("No data in REVIEWER_LOAD."))
		sb.WriteString("\n")
		return sb.String()
	}

	recent := v.rows
	if len(recent) > 12 {
		recent = recent[len(recent)-12:]
	}

	reviewed := make([]chart.Point, 0, len(recent))
	for _, r := range recent {
		reviewed = append(reviewed, chart.Point{
			Label: r.WeekStart.Format("2006-01-02") + " " + r.Repo,
			Value: float64(r.PRsReviewed),
		})
	}
	sb.WriteString(chart.Bars("PRs Reviewed per Week", reviewed, width/2))
	sb.WriteString("\n")

	reviewTimes := make([]float64, 0, len(v.rows))
	for _, r := range v.rows {
		reviewTimes = append(reviewTimes, r.AvgReviewTimeHours)
	}
	sb.WriteString(theme.StyleSection.Render("Avg Review Time (hrs)"))
	sb.WriteString("\n")
	sb.WriteString(chart.Sparkline(reviewTimes, width-4))
	sb.WriteString("\n\n")

	// Rank snapshot for the latest week across all reviewers.
	latest := latestWeek(v.snapshot)
	if !latest.IsZero() {
		sb.WriteString(theme.StyleSection.Render("Reviewer Rank Snapshot (week of " + latest.Format("2006-01-02") + ")"))
		sb.WriteString("\n")

		var current []metrics.ReviewerLoadRow
		for _, r := range v.snapshot {
			if r.WeekStart.Equal(latest) {
				current = append(current, r)
			}
		}
		sort.Slice(current, func(i, j int) bool {
			return current[i].ReviewerRankThisWeek < current[j].ReviewerRankThisWeek
		})

		rows := make([][]string, 0, len(current))
		for _, r := range current {
			rows = append(rows, []string{
				r.Reviewer,
				r.Repo,
				fmt.Sprintf("%d", r.PRsReviewed),
				fmt.Sprintf("%.2f", r.AvgReviewTimeHours),
				fmt.Sprintf("%d", r.ReviewerRankThisWeek),
			})
		}
		sb.WriteString(table.Render(
			[]string{"REVIEWER", "REPO", "PRS_REVIEWED", "AVG_REVIEW_HRS", "RANK"},
			rows, width, 10))
	}

	return sb.String()
}

func latestWeek(rows []metrics.ReviewerLoadRow) time.Time {
	var latest time.Time
	for _, r := range rows {
		if r.WeekStart.After(latest) {
			latest = r.WeekStart
		}
	}
	return latest
}
