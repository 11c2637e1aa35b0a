package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildQueryNoFilter(t *testing.T) {
	sqlText, args := buildQuery("SELECT A FROM T", nil, "A")

	assert.Contains(t, sqlText, "SELECT A FROM T")
	assert.Contains(t, sqlText, "ORDER BY A")
	assert.NotContains(t, sqlText, "WHERE")
	assert.Empty(t, args)
}

func TestBuildQueryClauses(t *testing.T) {
	f := Filter{
		Repo:     "api",
		Reviewer: "alice",
		Since:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Until:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	sqlText, args := buildQuery("SELECT * FROM T", f.clauses("REPO", "REVIEWER", "WEEK_START"), "WEEK_START")

	assert.Contains(t, sqlText, "WHERE REPO = ?")
	assert.Contains(t, sqlText, "REVIEWER = ?")
	assert.Contains(t, sqlText, "WEEK_START >= ?")
	assert.Contains(t, sqlText, "WEEK_START < ?")
	assert.Equal(t, []any{"api", "alice", f.Since, f.Until}, args)

	// Values travel only as binds.
	assert.NotContains(t, sqlText, "api")
	assert.NotContains(t, sqlText, "alice")
}

func TestClausesSkipColumnsTheTableLacks(t *testing.T) {
	f := Filter{Repo: "api", Reviewer: "alice"}

	cs := f.clauses("REPO", "", "")
	assert.Len(t, cs, 1)
	assert.Equal(t, "REPO = ?", cs[0].expr)
}

func TestClausesEmptyFilter(t *testing.T) {
	assert.Empty(t, Filter{}.clauses("REPO", "REVIEWER", "WEEK_START"))
}
