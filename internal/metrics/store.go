package metrics

import (
	"context"

	"github.com/gitpulse/gitpulse/internal/warehouse"
)

// Runner executes SQL with positional binds. Satisfied by *app.Service.
type Runner interface {
	Run(ctx context.Context, sql string, args ...any) (*warehouse.ResultTable, error)
}

// Store loads the modeled metric tables through the query executor. It owns
// the SQL; pages only see typed rows.
type Store struct {
	run Runner
}

// NewStore creates a metric store on top of a query runner.
func NewStore(run Runner) *Store {
	return &Store{run: run}
}

// RepoVelocity returns weekly velocity rows, oldest week first.
func (s *Store) RepoVelocity(ctx context.Context, f Filter) ([]RepoVelocityRow, error) {
	sqlText, args := buildQuery(queryRepoVelocity, f.clauses("REPO", "", "WEEK_START"), "WEEK_START")
	t, err := s.run.Run(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	return scanRepoVelocity(t)
}

// ReviewerLoad returns weekly reviewer-load rows, oldest week first.
func (s *Store) ReviewerLoad(ctx context.Context, f Filter) ([]ReviewerLoadRow, error) {
	sqlText, args := buildQuery(queryReviewerLoad, f.clauses("REPO", "REVIEWER", "WEEK_START"), "WEEK_START")
	t, err := s.run.Run(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	return scanReviewerLoad(t)
}

// ReviewSummary returns per-reviewer aggregates.
func (s *Store) ReviewSummary(ctx context.Context, f Filter) ([]ReviewSummaryRow, error) {
	sqlText, args := buildQuery(queryReviewSummary, f.clauses("REPO", "REVIEWER", ""), "REPO, REVIEWER")
	t, err := s.run.Run(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	return scanReviewSummary(t)
}

// DORAWeekly returns weekly DORA rows, oldest week first.
func (s *Store) DORAWeekly(ctx context.Context, f Filter) ([]DORAWeeklyRow, error) {
	sqlText, args := buildQuery(queryDORAWeekly, f.clauses("REPO", "", "WEEK_START"), "WEEK_START")
	t, err := s.run.Run(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	return scanDORAWeekly(t)
}

// CycleTimeFacts returns the reviewer/author fact rows feeding the heatmap.
func (s *Store) CycleTimeFacts(ctx context.Context, f Filter) ([]PRCycleTimeFact, error) {
	sqlText, args := buildQuery(queryCycleTimeFacts, f.clauses("REPO", "REVIEWER", "CREATED_AT"), "")
	t, err := s.run.Run(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	return scanCycleTimeFacts(t)
}

// KPISummary returns the overview aggregates, optionally for one repo.
func (s *Store) KPISummary(ctx context.Context, f Filter) (*KPISummary, error) {
	sqlText, args := buildQuery(queryKPISummary, f.clauses("REPO", "", ""), "")
	t, err := s.run.Run(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	return scanKPISummary(t)
}

// Repos returns the distinct repos present in the DORA table.
func (s *Store) Repos(ctx context.Context) ([]string, error) {
	t, err := s.run.Run(ctx, queryRepos)
	if err != nil {
		return nil, err
	}
	return scanStrings(t, "REPO")
}

// Reviewers returns the distinct reviewers present in the load table.
func (s *Store) Reviewers(ctx context.Context) ([]string, error) {
	t, err := s.run.Run(ctx, queryReviewers)
	if err != nil {
		return nil, err
	}
	return scanStrings(t, "REVIEWER")
}
