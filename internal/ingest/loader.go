package ingest

import (
	"math"
	"strconv"
)

// MinYear is the earliest year accepted in a source file.
const MinYear = 1900

// Batch is the converted content of one domain, ready for COPY.
type Batch struct {
	Domain  Domain
	Columns []string
	Rows    [][]any
}

// FactLoader converts the rows of a dataset into one domain's fact rows.
type FactLoader struct {
	Domain Domain
}

// Prepare replaces country names by their ids and converts every measure.
// It fails with a SchemaMismatchError for a missing column, a
// DataFormatError for a value that does not convert and an IntegrityError
// for a country without an id. No duplicates are removed.
func (l FactLoader) Prepare(ds *Dataset, res *Resolver) (Batch, error) {
	b := Batch{
		Domain:  l.Domain,
		Columns: l.Domain.Columns(),
		Rows:    make([][]any, 0, len(ds.Rows)),
	}

	for _, row := range ds.Rows {
		out := make([]any, 0, len(b.Columns))

		name, err := ds.Value(row, "country")
		if err != nil {
			return Batch{}, err
		}
		id, err := res.Lookup(name, row.Line)
		if err != nil {
			return Batch{}, err
		}

		rawYear, err := ds.Value(row, "year")
		if err != nil {
			return Batch{}, err
		}
		year, err := parseYear(row.Line, rawYear)
		if err != nil {
			return Batch{}, err
		}
		out = append(out, id, year)

		for _, m := range l.Domain.Measures {
			raw, err := ds.Value(row, m.Source)
			if err != nil {
				return Batch{}, err
			}
			v, err := convert(row.Line, m, raw)
			if err != nil {
				return Batch{}, err
			}
			out = append(out, v)
		}

		b.Rows = append(b.Rows, out)
	}

	return b, nil
}

func parseYear(line int, raw string) (int32, error) {
	year, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, &DataFormatError{Line: line, Column: "year", Value: raw, Reason: "is not an integer"}
	}
	if year < MinYear {
		return 0, &DataFormatError{Line: line, Column: "year", Value: raw, Reason: "is before 1900"}
	}
	return int32(year), nil
}

func convert(line int, m Measure, raw string) (any, error) {
	switch m.Kind {
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, &DataFormatError{Line: line, Column: m.Source, Value: raw, Reason: "is not an integer"}
		}
		if n < 0 {
			return nil, &DataFormatError{Line: line, Column: m.Source, Value: raw, Reason: "is negative"}
		}
		return int32(n), nil
	default:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &DataFormatError{Line: line, Column: m.Source, Value: raw, Reason: "is not a finite number"}
		}
		return f, nil
	}
}
