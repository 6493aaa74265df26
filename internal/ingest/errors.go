package ingest

import "fmt"

// SchemaMismatchError reports a row that does not have the expected columns.
type SchemaMismatchError struct {
	Line   int
	Column string // First missing column, empty for surplus columns
	Found  int    // Number of fields on the line
}

func (e *SchemaMismatchError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("schema mismatch: line %d: expected %d columns, found %d", e.Line, ColumnCount, e.Found)
	}
	return fmt.Sprintf("schema mismatch: line %d: missing column %s (found %d of %d)", e.Line, e.Column, e.Found, ColumnCount)
}

// DataFormatError reports a value that could not be converted.
type DataFormatError struct {
	Line   int
	Column string
	Value  string
	Reason string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("data format error: line %d column %s: value %q %s", e.Line, e.Column, e.Value, e.Reason)
}

// IntegrityError reports a fact row whose country has no id.
type IntegrityError struct {
	Line    int
	Country string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity error: line %d: country %q has no id", e.Line, e.Country)
}
