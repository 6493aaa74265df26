package core

import (
	"strconv"
	"strings"
)

// WhereBuilder accumulates equality predicates with positional arguments.
// Every Add contributes a predicate, including zero values; callers decide
// whether a filter is present.
type WhereBuilder struct {
	conditions []string
	args       []any
	argIndex   int
}

// NewWhereBuilder returns an empty builder whose first placeholder is $1.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{argIndex: 1}
}

// Add appends "column = $n". The column is used as given; quote it first
// when it comes from a descriptor.
func (w *WhereBuilder) Add(column string, value any) {
	w.conditions = append(w.conditions, column+" = $"+strconv.Itoa(w.argIndex))
	w.args = append(w.args, value)
	w.argIndex++
}

// Build returns the WHERE clause (with a leading space) and its arguments.
// Returns "" and nil when no predicate was added.
func (w *WhereBuilder) Build() (string, []any) {
	if len(w.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(w.conditions, " AND "), w.args
}

// quoteIdentifier quotes a SQL identifier, doubling embedded quotes.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteIdentifiers(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdentifier(n)
	}
	return strings.Join(quoted, ", ")
}
