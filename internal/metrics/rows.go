package metrics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/internal/warehouse"
)

// RepoVelocityRow is one repo-week from REPO_VELOCITY.
type RepoVelocityRow struct {
	Repo               string
	WeekStart          time.Time
	PRsOpened          int64
	PRsMerged          int64
	AvgCycleTimeHours  float64
	AvgReviewTimeHours float64
	AvgLinesAdded      float64
	AvgLinesDeleted    float64
}

// ReviewerLoadRow is one reviewer-repo-week from REVIEWER_LOAD.
type ReviewerLoadRow struct {
	Reviewer             string
	Repo                 string
	WeekStart            time.Time
	PRsReviewed          int64
	AvgReviewTimeHours   float64
	AvgLinesAdded        float64
	AvgLinesDeleted      float64
	ReviewerRankThisWeek int64
}

// ReviewSummaryRow is one reviewer-repo aggregate from PR_REVIEW_SUMMARY.
type ReviewSummaryRow struct {
	Repo                string
	Reviewer            string
	TotalPRsReviewed    int64
	AvgReviewTimeHours  float64
	AvgPRCycleTimeHours float64
	AvgChangedFiles     float64
	AvgFilesChanged     float64
	AvgLinesAdded       float64
	AvgLinesDeleted     float64
	FirstPRDate         time.Time
	LastPRDate          time.Time
}

// DORAWeeklyRow is one repo-week from DORA_METRICS_WEEKLY.
type DORAWeeklyRow struct {
	Repo              string
	WeekStart         time.Time
	Deployments       int64
	AvgLeadTimeHours  float64
	ChangeFailureRate float64
	MTTRHours         float64
}

// PRCycleTimeFact is one PR from FACT_PR_CYCLE_TIME (the columns the
// dashboard uses; the fact table is wider).
type PRCycleTimeFact struct {
	Repo      string
	Reviewer  string
	Author    string
	CreatedAt time.Time
}

// KPISummary holds the overview aggregates. AVG over an empty selection is
// NULL, hence pointers.
type KPISummary struct {
	AvgDeploymentsPerWeek *float64
	AvgLeadTimeHours      *float64
	AvgChangeFailureRate  *float64
	AvgMTTRHours          *float64
}

// rowReader walks a ResultTable row by row with per-column coercion. The
// warehouse drivers surface numerics inconsistently (Snowflake fixed-point
// columns arrive as strings, Postgres as int64/float64), so every accessor
// coerces. The first failure sticks in err.
type rowReader struct {
	t   *warehouse.ResultTable
	row int
	err error
}

func (r *rowReader) cell(col string) any {
	idx := r.t.ColumnIndex(col)
	if idx < 0 {
		r.fail(col, fmt.Errorf("column not in result"))
		return nil
	}
	return r.t.Rows[r.row][idx]
}

func (r *rowReader) fail(col string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("row %d, column %s: %w", r.row, col, err)
	}
}

func (r *rowReader) str(col string) string {
	if r.err != nil {
		return ""
	}
	v, err := asString(r.cell(col))
	if err != nil {
		r.fail(col, err)
	}
	return v
}

func (r *rowReader) i64(col string) int64 {
	if r.err != nil {
		return 0
	}
	v, err := asInt64(r.cell(col))
	if err != nil {
		r.fail(col, err)
	}
	return v
}

func (r *rowReader) f64(col string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := asFloat64(r.cell(col))
	if err != nil {
		r.fail(col, err)
	}
	return v
}

func (r *rowReader) f64ptr(col string) *float64 {
	if r.err != nil {
		return nil
	}
	v := r.cell(col)
	if v == nil {
		return nil
	}
	f, err := asFloat64(v)
	if err != nil {
		r.fail(col, err)
		return nil
	}
	return &f
}

func (r *rowReader) date(col string) time.Time {
	if r.err != nil {
		return time.Time{}
	}
	v, err := asTime(r.cell(col))
	if err != nil {
		r.fail(col, err)
	}
	return v
}

func asString(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	default:
		return fmt.Sprintf("%v", val), nil
	}
}

func asInt64(v any) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return val, nil
	case int32:
		return int64(val), nil
	case int:
		return int64(val), nil
	case float64:
		return int64(val), nil
	case string:
		// Snowflake NUMBER(38,0) scans as a decimal string.
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if ferr != nil {
				return 0, fmt.Errorf("cannot parse %q as integer", val)
			}
			return int64(f), nil
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to integer", v)
	}
}

func asFloat64(v any) (float64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as float", val)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

func asTime(v any) (time.Time, error) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return val, nil
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse %q as timestamp", val)
	default:
		return time.Time{}, fmt.Errorf("cannot convert %T to timestamp", v)
	}
}

func scanRepoVelocity(t *warehouse.ResultTable) ([]RepoVelocityRow, error) {
	rows := make([]RepoVelocityRow, 0, t.RowCount())
	for i := range t.Rows {
		r := rowReader{t: t, row: i}
		rows = append(rows, RepoVelocityRow{
			Repo:               r.str("REPO"),
			WeekStart:          r.date("WEEK_START"),
			PRsOpened:          r.i64("PRS_OPENED"),
			PRsMerged:          r.i64("PRS_MERGED"),
			AvgCycleTimeHours:  r.f64("AVG_CYCLE_TIME_HOURS"),
			AvgReviewTimeHours: r.f64("AVG_REVIEW_TIME_HOURS"),
			AvgLinesAdded:      r.f64("AVG_LINES_ADDED"),
			AvgLinesDeleted:    r.f64("AVG_LINES_DELETED"),
		})
		if r.err != nil {
			return nil, fmt.Errorf("scan REPO_VELOCITY: %w", r.err)
		}
	}
	return rows, nil
}

func scanReviewerLoad(t *warehouse.ResultTable) ([]ReviewerLoadRow, error) {
	rows := make([]ReviewerLoadRow, 0, t.RowCount())
	for i := range t.Rows {
		r := rowReader{t: t, row: i}
		rows = append(rows, ReviewerLoadRow{
			Reviewer:             r.str("REVIEWER"),
			Repo:                 r.str("REPO"),
			WeekStart:            r.date("WEEK_START"),
			PRsReviewed:          r.i64("PRS_REVIEWED"),
			AvgReviewTimeHours:   r.f64("AVG_REVIEW_TIME_HOURS"),
			AvgLinesAdded:        r.f64("AVG_LINES_ADDED"),
			AvgLinesDeleted:      r.f64("AVG_LINES_DELETED"),
			ReviewerRankThisWeek: r.i64("REVIEWER_RANK_THIS_WEEK"),
		})
		if r.err != nil {
			return nil, fmt.Errorf("scan REVIEWER_LOAD: %w", r.err)
		}
	}
	return rows, nil
}

func scanReviewSummary(t *warehouse.ResultTable) ([]ReviewSummaryRow, error) {
	rows := make([]ReviewSummaryRow, 0, t.RowCount())
	for i := range t.Rows {
		r := rowReader{t: t, row: i}
		rows = append(rows, ReviewSummaryRow{
			Repo:                r.str("REPO"),
			Reviewer:            r.str("REVIEWER"),
			TotalPRsReviewed:    r.i64("TOTAL_PRS_REVIEWED"),
			AvgReviewTimeHours:  r.f64("AVG_REVIEW_TIME_HOURS"),
			AvgPRCycleTimeHours: r.f64("AVG_PR_CYCLE_TIME_HOURS"),
			AvgChangedFiles:     r.f64("AVG_CHANGED_FILES"),
			AvgFilesChanged:     r.f64("AVG_FILES_CHANGED"),
			AvgLinesAdded:       r.f64("AVG_LINES_ADDED"),
			AvgLinesDeleted:     r.f64("AVG_LINES_DELETED"),
			FirstPRDate:         r.date("FIRST_PR_DATE"),
			LastPRDate:          r.date("LAST_PR_DATE"),
		})
		if r.err != nil {
			return nil, fmt.Errorf("scan PR_REVIEW_SUMMARY: %w", r.err)
		}
	}
	return rows, nil
}

func scanDORAWeekly(t *warehouse.ResultTable) ([]DORAWeeklyRow, error) {
	rows := make([]DORAWeeklyRow, 0, t.RowCount())
	for i := range t.Rows {
		r := rowReader{t: t, row: i}
		rows = append(rows, DORAWeeklyRow{
			Repo:              r.str("REPO"),
			WeekStart:         r.date("WEEK_START"),
			Deployments:       r.i64("DEPLOYMENTS"),
			AvgLeadTimeHours:  r.f64("AVG_LEAD_TIME_HOURS"),
			ChangeFailureRate: r.f64("CHANGE_FAILURE_RATE"),
			MTTRHours:         r.f64("MTTR_HOURS"),
		})
		if r.err != nil {
			return nil, fmt.Errorf("scan DORA_METRICS_WEEKLY: %w", r.err)
		}
	}
	return rows, nil
}

func scanCycleTimeFacts(t *warehouse.ResultTable) ([]PRCycleTimeFact, error) {
	rows := make([]PRCycleTimeFact, 0, t.RowCount())
	for i := range t.Rows {
		r := rowReader{t: t, row: i}
		rows = append(rows, PRCycleTimeFact{
			Repo:      r.str("REPO"),
			Reviewer:  r.str("REVIEWER"),
			Author:    r.str("PR_AUTHOR"),
			CreatedAt: r.date("CREATED_AT"),
		})
		if r.err != nil {
			return nil, fmt.Errorf("scan FACT_PR_CYCLE_TIME: %w", r.err)
		}
	}
	return rows, nil
}

func scanKPISummary(t *warehouse.ResultTable) (*KPISummary, error) {
	if t.Empty() {
		return &KPISummary{}, nil
	}
	r := rowReader{t: t, row: 0}
	kpi := &KPISummary{
		AvgDeploymentsPerWeek: r.f64ptr("AVG_DEPLOYMENTS_PER_WEEK"),
		AvgLeadTimeHours:      r.f64ptr("AVG_LEAD_TIME_HOURS"),
		AvgChangeFailureRate:  r.f64ptr("AVG_CFR"),
		AvgMTTRHours:          r.f64ptr("AVG_MTTR_HOURS"),
	}
	if r.err != nil {
		return nil, fmt.Errorf("scan KPI summary: %w", r.err)
	}
	return kpi, nil
}

func scanStrings(t *warehouse.ResultTable, col string) ([]string, error) {
	out := make([]string, 0, t.RowCount())
	for i := range t.Rows {
		r := rowReader{t: t, row: i}
		out = append(out, r.str(col))
		if r.err != nil {
			return nil, r.err
		}
	}
	return out, nil
}
