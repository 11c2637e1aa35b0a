package warehouse

import (
	"fmt"
	"strings"
	"time"
)

// ResultTable holds a fully materialized query result. Cell values are the
// driver's native Go scalars: string, int64, float64, bool, time.Time or nil.
// Every row has exactly one value per column.
type ResultTable struct {
	Columns  []string
	Rows     [][]any
	Duration time.Duration
}

// RowCount returns the number of rows.
func (t *ResultTable) RowCount() int {
	return len(t.Rows)
}

// Empty reports whether the result has no rows.
func (t *ResultTable) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the position of a column by name, case-insensitively
// (Snowflake reports upper-case identifiers, Postgres lower-case). Returns -1
// if the column does not exist.
func (t *ResultTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// Value returns the cell at (row, column name).
func (t *ResultTable) Value(row int, column string) (any, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("no column %q in result", column)
	}
	if row < 0 || row >= len(t.Rows) {
		return nil, fmt.Errorf("row %d out of range (%d rows)", row, len(t.Rows))
	}
	return t.Rows[row][idx], nil
}

// FormatCell renders a single cell for display. NULL becomes "NULL",
// timestamps are formatted as dates when they carry no time component.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04:05")
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", val), "0"), ".")
	default:
		return fmt.Sprintf("%v", val)
	}
}
