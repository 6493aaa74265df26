package core

import (
	"fmt"
	"strings"
)

// Query is a fully specified SQL statement with positional arguments.
type Query struct {
	SQL  string
	Args []any
}

// BuildQuery renders the list query of res for a validated filter:
//
//	SELECT <columns> FROM <table> [WHERE "country_id" = $1] [AND "year" = $n]
//	ORDER BY <column> ASC, "id" ASC
//
// Ties on the sort column keep insertion order through the id tiebreak.
func BuildQuery(res Resource, f Filter) (Query, error) {
	orderBy := f.OrderBy
	if orderBy == "" {
		orderBy = res.DefaultOrder()
	}
	orderCol, ok := res.OrderColumn(orderBy)
	if !ok {
		return Query{}, &ValidationError{
			Field:   "order_by",
			Value:   orderBy,
			Reason:  ReasonNotAllowed,
			Message: "must be one of " + orderValues(res),
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", quoteIdentifiers(res.Columns()), quoteIdentifier(res.Table))

	wb := NewWhereBuilder()
	if res.Kind == KindFact {
		if f.Country != nil {
			wb.Add(quoteIdentifier("country_id"), *f.Country)
		}
		if f.Year != nil {
			wb.Add(quoteIdentifier("year"), *f.Year)
		}
	}
	where, args := wb.Build()
	sb.WriteString(where)

	fmt.Fprintf(&sb, " ORDER BY %s ASC", quoteIdentifier(orderCol))
	if orderCol != "id" {
		sb.WriteString(`, "id" ASC`)
	}

	return Query{SQL: sb.String(), Args: args}, nil
}

// CountryQuery renders the single-country lookup.
func CountryQuery(res Resource, id int64) Query {
	return Query{
		SQL:  fmt.Sprintf(`SELECT %s FROM %s WHERE "id" = $1`, quoteIdentifiers(res.Columns()), quoteIdentifier(res.Table)),
		Args: []any{id},
	}
}
