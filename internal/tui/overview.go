package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gitpulse/gitpulse/internal/metrics"
	"github.com/gitpulse/gitpulse/internal/tui/chart"
	"github.com/gitpulse/gitpulse/internal/tui/table"
	"github.com/gitpulse/gitpulse/internal/tui/theme"
)

// overviewModel renders the homepage: top-level DORA KPIs and trends.
type overviewModel struct {
	repoSel selector
	kpi     *metrics.KPISummary
	trend   []metrics.DORAWeeklyRow
}

func (o *overviewModel) setData(repos []string, kpi *metrics.KPISummary, trend []metrics.DORAWeeklyRow) {
	o.repoSel.allOption = true
	o.repoSel.setOptions(repos)
	o.kpi = kpi
	o.trend = trend
}

func (o *overviewModel) cycle(delta int) bool { return o.repoSel.cycle(delta) }
func (o *overviewModel) selectedRepo() string { return o.repoSel.value() }

func (o *overviewModel) view(width int) string {
	var sb strings.Builder

	sb.WriteString(theme.StyleTitle.Render("Engineering Productivity Overview"))
	sb.WriteString("  ")
	sb.WriteString(theme.StyleMuted.Render("repo: " + o.repoSel.label()))
	sb.WriteString("\n\n")

	if o.kpi != nil {
		cards := []string{
			kpiCard("Deployments / Week", formatKPI(o.kpi.AvgDeploymentsPerWeek, 0)),
			kpiCard("Lead Time (hrs)", formatKPI(o.kpi.AvgLeadTimeHours, 2)),
			kpiCard("Change Failure Rate", formatKPI(o.kpi.AvgChangeFailureRate, 3)),
			kpiCard("MTTR (hrs)", formatKPI(o.kpi.AvgMTTRHours, 2)),
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		sb.WriteString("\n\n")
	}

	if len(o.trend) == 0 {
		sb.WriteString(theme.StyleMuted.Render("No DORA metrics found for this selection."))
		sb.WriteString("\n")
		return sb.String()
	}

	points := make([]chart.Point, 0, len(o.trend))
	leadTimes := make([]float64, 0, len(o.trend))
	for _, r := range o.trend {
		points = append(points, chart.Point{
			Label: r.WeekStart.Format("2006-01-02"),
			Value: float64(r.Deployments),
		})
		leadTimes = append(leadTimes, r.AvgLeadTimeHours)
	}
	if len(points) > 12 {
		points = points[len(points)-12:]
	}

	sb.WriteString(chart.Bars("Deployments per Week", points, width/2))
	sb.WriteString("\n")
	sb.WriteString(theme.StyleSection.Render("Lead Time per Week (hrs)"))
	sb.WriteString("\n")
	sb.WriteString(chart.Sparkline(leadTimes, width-4))
	sb.WriteString("\n\n")

	sb.WriteString(theme.StyleSection.Render("Recent Records (DORA_METRICS_WEEKLY)"))
	sb.WriteString("\n")

	recent := make([]metrics.DORAWeeklyRow, len(o.trend))
	copy(recent, o.trend)
	sort.Slice(recent, func(i, j int) bool { return recent[i].WeekStart.After(recent[j].WeekStart) })

	rows := make([][]string, 0, len(recent))
	for _, r := range recent {
		rows = append(rows, []string{
			r.Repo,
			r.WeekStart.Format("2006-01-02"),
			fmt.Sprintf("%d", r.Deployments),
			fmt.Sprintf("%.2f", r.AvgLeadTimeHours),
			fmt.Sprintf("%.3f", r.ChangeFailureRate),
			fmt.Sprintf("%.2f", r.MTTRHours),
		})
	}
	sb.WriteString(table.Render(
		[]string{"REPO", "WEEK_START", "DEPLOYMENTS", "LEAD_TIME_HRS", "CFR", "MTTR_HRS"},
		rows, width, 10))

	return sb.String()
}

func kpiCard(label, value string) string {
	content := theme.StyleKPILabel.Render(label) + "\n" + theme.StyleKPIValue.Render(value)
	return theme.StyleKPICard.Render(content)
}

func formatKPI(v *float64, decimals int) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}
