package core

import "context"

// RowSource runs a read query and returns the decoded rows.
// Satisfied by *store.DB.
type RowSource interface {
	QueryRows(ctx context.Context, sql string, args ...any) ([][]any, error)
}

// Kind distinguishes the country dimension from the fact resources.
type Kind int

const (
	KindFact Kind = iota
	KindCountry
)

func (k Kind) String() string {
	if k == KindCountry {
		return "country"
	}
	return "fact"
}

// Tag is a classification label attached to every resource. Tags are
// accepted as query parameters for client-side grouping and never change
// which rows are returned.
type Tag string

const (
	TagCountry     Tag = "country"
	TagTemperature Tag = "temperature"
	TagPopulation  Tag = "population"
	TagGDP         Tag = "gdp"
	TagPollution   Tag = "pollution"
	TagEnergy      Tag = "energy"
	TagHydrosphere Tag = "hydrosphere"
	TagDisaster    Tag = "disaster"
	TagForest      Tag = "forest"
)

// Tags lists every known tag.
var Tags = []Tag{
	TagCountry, TagTemperature, TagPopulation, TagGDP, TagPollution,
	TagEnergy, TagHydrosphere, TagDisaster, TagForest,
}

// Field is one measurement exposed by a fact resource.
type Field struct {
	Name   string // JSON key
	Column string // Database column (defaults to Name)
}

// OrderOption maps an order_by value to the column it sorts by.
type OrderOption struct {
	Value  string
	Column string
}

// Resource describes one HTTP-addressable collection: where its rows live,
// which columns it projects and how it may be sorted.
type Resource struct {
	Key    string // Route path below the API prefix: "pollution/co2"
	Label  string // Human readable name: "CO2 emissions"
	Tag    Tag
	Kind   Kind
	Table  string
	Fields []Field

	// Order lists the accepted order_by values; the first one is the default.
	// Filled by Register from Kind when empty.
	Order []OrderOption
}

// DefaultOrder returns the order_by value used when none is supplied.
func (r Resource) DefaultOrder() string {
	if len(r.Order) == 0 {
		return ""
	}
	return r.Order[0].Value
}

// OrderColumn resolves an order_by value to its column.
func (r Resource) OrderColumn(value string) (string, bool) {
	for _, o := range r.Order {
		if o.Value == value {
			return o.Column, true
		}
	}
	return "", false
}

// Columns returns the projected database columns in output order.
func (r Resource) Columns() []string {
	if r.Kind == KindCountry {
		return []string{"id", "name"}
	}
	cols := make([]string, 0, len(r.Fields)+2)
	cols = append(cols, "country_id", "year")
	for _, f := range r.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

var (
	factOrder = []OrderOption{
		{Value: "year", Column: "year"},
		{Value: "country", Column: "country_id"},
	}
	countryOrder = []OrderOption{
		{Value: "id", Column: "id"},
		{Value: "name", Column: "name"},
	}
)

// CountrySiblings are the per-country sub-resource keys linked from every
// country representation, in output order.
var CountrySiblings = []string{
	"temperatures", "population", "gdp", "pollution", "energy",
	"hydrosphere", "rainfall", "disasters", "forests",
}
