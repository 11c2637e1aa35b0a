package metrics

import (
	"strings"
	"time"
)

// Filter narrows metric queries. Zero values mean "no constraint".
type Filter struct {
	Repo     string
	Reviewer string
	Since    time.Time // inclusive lower bound on the week/created column
	Until    time.Time // exclusive upper bound
}

// clause is one WHERE condition with its bind value.
type clause struct {
	expr string
	arg  any
}

// buildQuery appends WHERE/ORDER BY to a base SELECT. Only the expressions
// are assembled as text; every value travels as a bind parameter.
func buildQuery(base string, clauses []clause, orderBy string) (string, []any) {
	var sb strings.Builder
	sb.WriteString(base)

	args := make([]any, 0, len(clauses))
	for i, c := range clauses {
		if i == 0 {
			sb.WriteString("\n\t\tWHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(c.expr)
		args = append(args, c.arg)
	}

	if orderBy != "" {
		sb.WriteString("\n\t\tORDER BY ")
		sb.WriteString(orderBy)
	}

	return sb.String(), args
}

// clauses translates a Filter for a table with the given repo/reviewer/date
// columns. Pass "" for a column the table does not have.
func (f Filter) clauses(repoCol, reviewerCol, dateCol string) []clause {
	var cs []clause
	if repoCol != "" && f.Repo != "" {
		cs = append(cs, clause{repoCol + " = ?", f.Repo})
	}
	if reviewerCol != "" && f.Reviewer != "" {
		cs = append(cs, clause{reviewerCol + " = ?", f.Reviewer})
	}
	if dateCol != "" && !f.Since.IsZero() {
		cs = append(cs, clause{dateCol + " >= ?", f.Since})
	}
	if dateCol != "" && !f.Until.IsZero() {
		cs = append(cs, clause{dateCol + " < ?", f.Until})
	}
	return cs
}
