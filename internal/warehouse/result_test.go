package warehouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnIndexCaseInsensitive(t *testing.T) {
	tbl := &ResultTable{Columns: []string{"REPO", "week_start", "PRs_Opened"}}

	assert.Equal(t, 0, tbl.ColumnIndex("repo"))
	assert.Equal(t, 1, tbl.ColumnIndex("WEEK_START"))
	assert.Equal(t, 2, tbl.ColumnIndex("prs_opened"))
	assert.Equal(t, -1, tbl.ColumnIndex("missing"))
}

func TestValue(t *testing.T) {
	tbl := &ResultTable{
		Columns: []string{"REPO", "DEPLOYMENTS"},
		Rows: [][]any{
			{"api", int64(4)},
			{"web", int64(9)},
		},
	}

	v, err := tbl.Value(1, "deployments")
	require.NoError(t, err)
	assert.Equal(t, int64(9), v)

	_, err = tbl.Value(0, "missing")
	assert.Error(t, err)

	_, err = tbl.Value(2, "repo")
	assert.Error(t, err)
}

func TestFormatCell(t *testing.T) {
	midnight := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	afternoon := time.Date(2024, 3, 4, 15, 30, 12, 0, time.UTC)

	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{"api", "api"},
		{int64(42), "42"},
		{true, "true"},
		{3.5, "3.5"},
		{12.0, "12"},
		{midnight, "2024-03-04"},
		{afternoon, "2024-03-04 15:30:12"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCell(tt.in))
	}
}

func TestEmptyAndRowCount(t *testing.T) {
	tbl := &ResultTable{Columns: []string{"A"}}
	assert.True(t, tbl.Empty())
	assert.Equal(t, 0, tbl.RowCount())

	tbl.Rows = [][]any{{int64(1)}}
	assert.False(t, tbl.Empty())
	assert.Equal(t, 1, tbl.RowCount())
}
