package tui

import (
	"fmt"
	"strings"

	"github.com/gitpulse/gitpulse/internal/metrics"
	"github.com/gitpulse/gitpulse/internal/tui/chart"
	"github.com/gitpulse/gitpulse/internal/tui/table"
	"github.com/gitpulse/gitpulse/internal/tui/theme"
)

// doraModel renders the four weekly DORA metrics for one repo.
type doraModel struct {
	repoSel selector
	rows    []metrics.DORAWeeklyRow
}

func (v *doraModel) setData(repos []string, rows []metrics.DORAWeeklyRow) {
	v.repoSel.setOptions(repos)
	v.rows = rows
}

func (v *doraModel) cycle(delta int) bool { return v.repoSel.cycle(delta) }
func (v *doraModel) selectedRepo() string { return v.repoSel.value() }

func (v *doraModel) view(width int) string {
	var sb strings.Builder

	sb.WriteString(theme.StyleTitle.Render("DORA Metrics (Weekly)"))
	sb.WriteString("  ")
	sb.WriteString(theme.StyleMuted.Render("repo: " + v.repoSel.label()))
	sb.WriteString("\n\n")

	if len(v.rows) == 0 {
		sb.WriteString(theme.StyleMuted.Render("No data in DORA_METRICS_WEEKLY."))
		sb.WriteString("\n")
		return sb.String()
	}

	recent := v.rows
	if len(recent) > 12 {
		recent = recent[len(recent)-12:]
	}

	deployments := make([]chart.Point, 0, len(recent))
	for _, r := range recent {
		deployments = append(deployments, chart.Point{
			Label: r.WeekStart.Format("2006-01-02"),
			Value: float64(r.Deployments),
		})
	}
	sb.WriteString(chart.Bars("Deployment Frequency", deployments, width/2))
	sb.WriteString("\n")

	leadTimes := make([]float64, 0, len(v.rows))
	cfrs := make([]float64, 0, len(v.rows))
	mttrs := make([]float64, 0, len(v.rows))
	for _, r := range v.rows {
		leadTimes = append(leadTimes, r.AvgLeadTimeHours)
		cfrs = append(cfrs, r.ChangeFailureRate)
		mttrs = append(mttrs, r.MTTRHours)
	}

	sparkWidth := width - 4
	sb.WriteString(theme.StyleSection.Render("Lead Time (hrs)"))
	sb.WriteString("\n")
	sb.WriteString(chart.Sparkline(leadTimes, sparkWidth))
	sb.WriteString("\n")
	sb.WriteString(theme.StyleSection.Render("Change Failure Rate"))
	sb.WriteString("\n")
	sb.WriteString(chart.Sparkline(cfrs, sparkWidth))
	sb.WriteString("\n")
	sb.WriteString(theme.StyleSection.Render("MTTR (hrs)"))
	sb.WriteString("\n")
	sb.WriteString(chart.Sparkline(mttrs, sparkWidth))
	sb.WriteString("\n\n")

	sb.WriteString(theme.StyleSection.Render("Underlying Data"))
	sb.WriteString("\n")

	rows := make([][]string, 0, len(v.rows))
	for _, r := range v.rows {
		rows = append(rows, []string{
			r.WeekStart.Format("2006-01-02"),
			fmt.Sprintf("%d", r.Deployments),
			fmt.Sprintf("%.2f", r.AvgLeadTimeHours),
			fmt.Sprintf("%.3f", r.ChangeFailureRate),
			fmt.Sprintf("%.2f", r.MTTRHours),
		})
	}
	sb.WriteString(table.Render(
		[]string{"WEEK_START", "DEPLOYMENTS", "LEAD_TIME_HRS", "CFR", "MTTR_HRS"},
		rows, width, 10))

	return sb.String()
}
