package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Locator builds the URL-shaped references that replace raw country ids.
// Base is the absolute API root ending in a slash, for example
// "http://localhost:8000/api/v1/".
type Locator struct {
	Base string
}

// NewLocator returns a Locator for base, adding the trailing slash if
// missing.
func NewLocator(base string) Locator {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return Locator{Base: base}
}

// Country returns "<base>countries/<id>".
func (l Locator) Country(id int64) string {
	return l.Base + "countries/" + strconv.FormatInt(id, 10)
}

// Sibling returns "<base><key>?country=<id>".
func (l Locator) Sibling(key string, id int64) string {
	return l.Base + key + "?country=" + strconv.FormatInt(id, 10)
}

// Entry is one key of a Record.
type Entry struct {
	Key   string
	Value any
}

// Record is a JSON object that keeps its keys in projection order.
type Record []Entry

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, e := range r {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the entries as an object in slice order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", e.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ProjectFact turns a row selected with res.Columns() into
// {"country": <locator>, "year": y, <fields...>}.
func ProjectFact(res Resource, row []any, loc Locator) (Record, error) {
	if len(row) != len(res.Fields)+2 {
		return nil, fmt.Errorf("%s: expected %d columns, got %d", res.Key, len(res.Fields)+2, len(row))
	}

	countryID, err := toInt64(row[0])
	if err != nil {
		return nil, fmt.Errorf("%s: country_id: %w", res.Key, err)
	}

	rec := make(Record, 0, len(row))
	rec = append(rec, Entry{"country", loc.Country(countryID)}, Entry{"year", row[1]})
	for i, f := range res.Fields {
		rec = append(rec, Entry{f.Name, row[i+2]})
	}
	return rec, nil
}

// ProjectCountry turns an (id, name) row into the full country
// representation with its own locator and one locator per sibling resource.
func ProjectCountry(row []any, loc Locator) (Record, error) {
	if len(row) != 2 {
		return nil, fmt.Errorf("countries: expected 2 columns, got %d", len(row))
	}

	id, err := toInt64(row[0])
	if err != nil {
		return nil, fmt.Errorf("countries: id: %w", err)
	}

	rec := make(Record, 0, 3+len(CountrySiblings))
	rec = append(rec,
		Entry{"id", id},
		Entry{"name", row[1]},
		Entry{"url", loc.Country(id)},
	)
	for _, key := range CountrySiblings {
		rec = append(rec, Entry{key, loc.Sibling(key, id)})
	}
	return rec, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected id type %T", v)
	}
}
