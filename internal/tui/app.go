package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitpulse/gitpulse/internal/app"
	"github.com/gitpulse/gitpulse/internal/config"
	"github.com/gitpulse/gitpulse/internal/metrics"
	"github.com/gitpulse/gitpulse/internal/tui/statusbar"
	"github.com/gitpulse/gitpulse/internal/tui/theme"
	"github.com/gitpulse/gitpulse/internal/warehouse"
)

const queryTimeout = 60 * time.Second

// Page identifies a dashboard page.
type Page int

const (
	PageOverview Page = iota
	PageVelocity
	PageReviewers
	PageSummary
	PageDORA
	PageHeatmap
	PageSettings
)

func (p Page) String() string {
	switch p {
	case PageOverview:
		return "Overview"
	case PageVelocity:
		return "Repo Velocity"
	case PageReviewers:
		return "Reviewer Load"
	case PageSummary:
		return "PR Review Summary"
	case PageDORA:
		return "DORA Metrics"
	case PageHeatmap:
		return "Heatmap"
	case PageSettings:
		return "Settings"
	default:
		return "unknown"
	}
}

var pages = []Page{
	PageOverview, PageVelocity, PageReviewers, PageSummary,
	PageDORA, PageHeatmap, PageSettings,
}

// Messages for async page loads.
type (
	overviewLoadedMsg struct {
		repos []string
		kpi   *metrics.KPISummary
		trend []metrics.DORAWeeklyRow
		err   error
	}
	velocityLoadedMsg struct {
		repos []string
		rows  []metrics.RepoVelocityRow
		err   error
	}
	reviewersLoadedMsg struct {
		reviewers []string
		rows      []metrics.ReviewerLoadRow
		snapshot  []metrics.ReviewerLoadRow
		err       error
	}
	summaryLoadedMsg struct {
		repos []string
		rows  []metrics.ReviewSummaryRow
		err   error
	}
	doraLoadedMsg struct {
		repos []string
		rows  []metrics.DORAWeeklyRow
		err   error
	}
	heatmapLoadedMsg struct {
		hm  *metrics.Heatmap
		err error
	}
)

// Model is the top-level bubbletea model orchestrating the dashboard pages.
type Model struct {
	store   *metrics.Store
	manager *warehouse.Manager
	profile config.Profile

	page      Page
	statusbar statusbar.Model
	spin      spinner.Model

	overview  overviewModel
	velocity  velocityModel
	reviewers reviewersModel
	summary   summaryModel
	dora      doraModel
	heatmap   heatmapModel
	settings  settingsModel

	width   int
	height  int
	loading bool
	err     error
}

// NewModel creates the top-level model.
func NewModel(store *metrics.Store, manager *warehouse.Manager, profile config.Profile) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(theme.ColorPrimary)

	return Model{
		store:     store,
		manager:   manager,
		profile:   profile,
		statusbar: statusbar.New(),
		spin:      spin,
		settings:  newSettingsModel(profile),
		loading:   true,
	}
}

// Init loads the first page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadPageCmd(PageOverview))
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusbar.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case overviewLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.overview.setData(msg.repos, msg.kpi, msg.trend)
			m.statusbar.SetConnected(true, m.profile.DisplayString())
		}
		return m, nil

	case velocityLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.velocity.setData(msg.repos, msg.rows)
			m.statusbar.SetConnected(true, m.profile.DisplayString())
		}
		return m, nil

	case reviewersLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.reviewers.setData(msg.reviewers, msg.rows, msg.snapshot)
			m.statusbar.SetConnected(true, m.profile.DisplayString())
		}
		return m, nil

	case summaryLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.summary.setData(msg.repos, msg.rows)
			m.statusbar.SetConnected(true, m.profile.DisplayString())
		}
		return m, nil

	case doraLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.dora.setData(msg.repos, msg.rows)
			m.statusbar.SetConnected(true, m.profile.DisplayString())
		}
		return m, nil

	case heatmapLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.heatmap.setData(msg.hm)
			m.statusbar.SetConnected(true, m.profile.DisplayString())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "1", "2", "3", "4", "5", "6", "7":
		idx := int(msg.String()[0] - '1')
		if idx < len(pages) {
			m.page = pages[idx]
			m.statusbar.SetPage(m.page.String())
			if m.page == PageSettings {
				return m, nil
			}
			m.loading = true
			return m, m.loadPageCmd(m.page)
		}

	case "tab":
		m.page = pages[(int(m.page)+1)%len(pages)]
		m.statusbar.SetPage(m.page.String())
		if m.page == PageSettings {
			return m, nil
		}
		m.loading = true
		return m, m.loadPageCmd(m.page)

	case "r":
		if m.page != PageSettings {
			m.loading = true
			return m, m.loadPageCmd(m.page)
		}

	case "left", "h":
		if m.cycleSelector(-1) {
			m.loading = true
			return m, m.loadPageCmd(m.page)
		}

	case "right", "l":
		if m.cycleSelector(1) {
			m.loading = true
			return m, m.loadPageCmd(m.page)
		}
	}

	return m, nil
}

// cycleSelector moves the current page's filter selector and reports whether
// a reload is needed.
func (m *Model) cycleSelector(delta int) bool {
	switch m.page {
	case PageOverview:
		return m.overview.cycle(delta)
	case PageVelocity:
		return m.velocity.cycle(delta)
	case PageReviewers:
		return m.reviewers.cycle(delta)
	case PageSummary:
		return m.summary.cycle(delta)
	case PageDORA:
		return m.dora.cycle(delta)
	default:
		return false
	}
}

// loadPageCmd fetches the current page's data. A lost connection is retried
// exactly once after forcing the manager to re-open; any further failure is
// surfaced as the page error state.
func (m Model) loadPageCmd(page Page) tea.Cmd {
	store := m.store
	manager := m.manager

	switch page {
	case PageOverview:
		repo := m.overview.selectedRepo()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()

			repos, err := retryOnce(manager, func() ([]string, error) {
				return store.Repos(ctx)
			})
			if err != nil {
				return overviewLoadedMsg{err: err}
			}
			f := metrics.Filter{Repo: repo}
			kpi, err := retryOnce(manager, func() (*metrics.KPISummary, error) {
				return store.KPISummary(ctx, f)
			})
			if err != nil {
				return overviewLoadedMsg{err: err}
			}
			trend, err := retryOnce(manager, func() ([]metrics.DORAWeeklyRow, error) {
				return store.DORAWeekly(ctx, f)
			})
			return overviewLoadedMsg{repos: repos, kpi: kpi, trend: trend, err: err}
		}

	case PageVelocity:
		repo := m.velocity.selectedRepo()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()

			repos, err := retryOnce(manager, func() ([]string, error) {
				return store.Repos(ctx)
			})
			if err != nil {
				return velocityLoadedMsg{err: err}
			}
			if repo == "" && len(repos) > 0 {
				repo = repos[0]
			}
			rows, err := retryOnce(manager, func() ([]metrics.RepoVelocityRow, error) {
				return store.RepoVelocity(ctx, metrics.Filter{Repo: repo})
			})
			return velocityLoadedMsg{repos: repos, rows: rows, err: err}
		}

	case PageReviewers:
		reviewer := m.reviewers.selectedReviewer()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()

			reviewers, err := retryOnce(manager, func() ([]string, error) {
				return store.Reviewers(ctx)
			})
			if err != nil {
				return reviewersLoadedMsg{err: err}
			}
			if reviewer == "" && len(reviewers) > 0 {
				reviewer = reviewers[0]
			}
			rows, err := retryOnce(manager, func() ([]metrics.ReviewerLoadRow, error) {
				return store.ReviewerLoad(ctx, metrics.Filter{Reviewer: reviewer})
			})
			if err != nil {
				return reviewersLoadedMsg{err: err}
			}
			// Unfiltered rows feed the current-week rank snapshot.
			snapshot, err := retryOnce(manager, func() ([]metrics.ReviewerLoadRow, error) {
				return store.ReviewerLoad(ctx, metrics.Filter{})
			})
			return reviewersLoadedMsg{reviewers: reviewers, rows: rows, snapshot: snapshot, err: err}
		}

	case PageSummary:
		repo := m.summary.selectedRepo()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()

			repos, err := retryOnce(manager, func() ([]string, error) {
				return store.Repos(ctx)
			})
			if err != nil {
				return summaryLoadedMsg{err: err}
			}
			rows, err := retryOnce(manager, func() ([]metrics.ReviewSummaryRow, error) {
				return store.ReviewSummary(ctx, metrics.Filter{Repo: repo})
			})
			return summaryLoadedMsg{repos: repos, rows: rows, err: err}
		}

	case PageDORA:
		repo := m.dora.selectedRepo()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()

			repos, err := retryOnce(manager, func() ([]string, error) {
				return store.Repos(ctx)
			})
			if err != nil {
				return doraLoadedMsg{err: err}
			}
			if repo == "" && len(repos) > 0 {
				repo = repos[0]
			}
			rows, err := retryOnce(manager, func() ([]metrics.DORAWeeklyRow, error) {
				return store.DORAWeekly(ctx, metrics.Filter{Repo: repo})
			})
			return doraLoadedMsg{repos: repos, rows: rows, err: err}
		}

	case PageHeatmap:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()

			facts, err := retryOnce(manager, func() ([]metrics.PRCycleTimeFact, error) {
				return store.CycleTimeFacts(ctx, metrics.Filter{})
			})
			if err != nil {
				return heatmapLoadedMsg{err: err}
			}
			return heatmapLoadedMsg{hm: metrics.ReviewerAuthorHeatmap(facts)}
		}
	}

	return nil
}

// retryOnce re-runs fn a single time after a connection loss, forcing the
// manager to re-open first. Query errors are never retried.
func retryOnce[T any](manager *warehouse.Manager, fn func() (T, error)) (T, error) {
	out, err := fn()
	var connErr *app.ErrConnection
	if err != nil && errors.As(err, &connErr) {
		manager.Invalidate()
		out, err = fn()
	}
	return out, err
}

// View renders the whole dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var sb strings.Builder
	sb.WriteString(m.renderNav())
	sb.WriteString("\n\n")

	contentWidth := m.width - 2

	switch {
	case m.err != nil:
		sb.WriteString(theme.StyleError.Render("Error: " + m.err.Error()))
		sb.WriteString("\n\n")
		sb.WriteString(theme.StyleMuted.Render("Press r to retry."))
	case m.loading:
		sb.WriteString(m.spin.View())
		sb.WriteString(theme.StyleMuted.Render("Loading " + m.page.String() + "…"))
	default:
		switch m.page {
		case PageOverview:
			sb.WriteString(m.overview.view(contentWidth))
		case PageVelocity:
			sb.WriteString(m.velocity.view(contentWidth))
		case PageReviewers:
			sb.WriteString(m.reviewers.view(contentWidth))
		case PageSummary:
			sb.WriteString(m.summary.view(contentWidth))
		case PageDORA:
			sb.WriteString(m.dora.view(contentWidth))
		case PageHeatmap:
			sb.WriteString(m.heatmap.view(contentWidth))
		case PageSettings:
			sb.WriteString(m.settings.view(contentWidth))
		}
	}

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 1).
		Padding(0, 1).
		Render(sb.String())

	return content + "\n" + m.statusbar.View()
}

func (m Model) renderNav() string {
	parts := make([]string, 0, len(pages))
	for i, p := range pages {
		label := string(rune('1'+i)) + " " + p.String()
		if p == m.page {
			parts = append(parts, theme.StyleNavActive.Render(label))
		} else {
			parts = append(parts, theme.StyleNavInactive.Render(label))
		}
	}
	return strings.Join(parts, theme.StyleMuted.Render("  │  "))
}
