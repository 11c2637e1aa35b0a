package tui

import (
	"fmt"
	"strings"

	"github.com/gitpulse/gitpulse/internal/metrics"
	"github.com/gitpulse/gitpulse/internal/tui/chart"
	"github.com/gitpulse/gitpulse/internal/tui/table"
	"github.com/gitpulse/gitpulse/internal/tui/theme"
)

// velocityModel renders weekly PR throughput for one repo.
type velocityModel struct {
	repoSel selector
	rows    []metrics.RepoVelocityRow
}

func (v *velocityModel) setData(repos []string, rows []metrics.RepoVelocityRow) {
	v.repoSel.setOptions(repos)
	v.rows = rows
}

func (v *velocityModel) cycle(delta int) bool { return v.repoSel.cycle(delta) }
func (v *velocityModel) selectedRepo() string { return v.repoSel.value() }

func (v *velocityModel) view(width int) string {
	var sb strings.Builder

	sb.WriteString(theme.StyleTitle.Render("Repo Velocity"))
	sb.WriteString("  ")
	sb.WriteString(theme.StyleMuted.Render("repo: " + v.repoSel.label()))
	sb.WriteString("\n\n")

	if len(v.rows) == 0 {
		sb.WriteString(theme.StyleMuted.Render("No data in REPO_VELOCITY."))
		sb.WriteString("\n")
		return sb.String()
	}

	recent := v.rows
	if len(recent) > 12 {
		recent = recent[len(recent)-12:]
	}

	opened := make([]chart.Point, 0, len(recent))
	merged := make([]chart.Point, 0, len(recent))
	cycleTimes := make([]float64, 0, len(v.rows))
	reviewTimes := make([]float64, 0, len(v.rows))
	linesAdded := make([]float64, 0, len(v.rows))
	linesDeleted := make([]float64, 0, len(v.rows))

	for _, r := range recent {
		week := r.WeekStart.Format("2006-01-02")
		opened = append(opened, chart.Point{Label: week, Value: float64(r.PRsOpened)})
		merged = append(merged, chart.Point{Label: week, Value: float64(r.PRsMerged)})
	}
	for _, r := range v.rows {
		cycleTimes = append(cycleTimes, r.AvgCycleTimeHours)
		reviewTimes = append(reviewTimes, r.AvgReviewTimeHours)
		linesAdded = append(linesAdded, r.AvgLinesAdded)
		linesDeleted = append(linesDeleted, r.AvgLinesDeleted)
	}

	sb.WriteString(chart.Bars("PRs Opened per Week", opened, width/2))
	sb.WriteString("\n")
	sb.WriteString(chart.Bars("PRs Merged per Week", merged, width/2))
	sb.WriteString("\n")

	sparkWidth := width - 4
	sb.WriteString(theme.StyleSection.Render("Average PR Cycle Time (hrs)"))
	sb.WriteString("\n")
	sb.WriteString(chart.Sparkline(cycleTimes, sparkWidth))
	sb.WriteString("\n")
	sb.WriteString(theme.StyleSection.Render("Average Review Time (hrs)"))
	sb.WriteString("\n")
	sb.WriteString(chart.Sparkline(reviewTimes, sparkWidth))
	sb.WriteString("\n")
	sb.WriteString(theme.StyleSection.Render("Avg Lines Added / Deleted per PR"))
	sb.WriteString("\n")
	sb.WriteString(chart.Sparkline(linesAdded, sparkWidth))
	sb.WriteString("\n")
	sb.WriteString(chart.Sparkline(linesDeleted, sparkWidth))
	sb.WriteString("\n\n")

	sb.WriteString(theme.StyleSection.Render("Underlying Data"))
	sb.WriteString("\n")

	rows := make([][]string, 0, len(v.rows))
	for _, r := range v.rows {
		rows = append(rows, []string{
			r.WeekStart.Format("2006-01-02"),
			fmt.Sprintf("%d", r.PRsOpened),
			fmt.Sprintf("%d", r.PRsMerged),
			fmt.Sprintf("%.2f", r.AvgCycleTimeHours),
			fmt.Sprintf("%.2f", r.AvgReviewTimeHours),
			fmt.Sprintf("%.1f", r.AvgLinesAdded),
			fmt.Sprintf("%.1f", r.AvgLinesDeleted),
		})
	}
	sb.WriteString(table.Render(
		[]string{"WEEK_START", "OPENED", "MERGED", "CYCLE_HRS", "REVIEW_HRS", "ADDED", "DELETED"},
		rows, width, 10))

	return sb.String()
}
