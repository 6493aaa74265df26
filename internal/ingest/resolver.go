package ingest

import (
	"github.com/JonMunkholm/dashboard/internal/store"
)

// Resolver maps country names to surrogate ids. Names already stored keep
// their id; a new name gets the next id after the highest one seen, so an
// empty store yields 0, 1, 2... in first-seen order.
//
// A Resolver is not safe for concurrent use.
type Resolver struct {
	ids     map[string]int64
	next    int64
	pending []store.Country
}

// NewResolver seeds a resolver with the stored countries.
func NewResolver(existing []store.Country) *Resolver {
	r := &Resolver{ids: make(map[string]int64, len(existing))}
	for _, c := range existing {
		r.ids[c.Name] = c.ID
		if c.ID >= r.next {
			r.next = c.ID + 1
		}
	}
	return r
}

// Resolve scans the dataset in file order and assigns an id to every
// country seen for the first time. Fails with a DataFormatError on an empty
// name.
func (r *Resolver) Resolve(ds *Dataset) error {
	for _, row := range ds.Rows {
		name, err := ds.Value(row, "country")
		if err != nil {
			return err
		}
		if name == "" {
			return &DataFormatError{Line: row.Line, Column: "country", Value: name, Reason: "is empty"}
		}
		r.assign(name)
	}
	return nil
}

func (r *Resolver) assign(name string) int64 {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := r.next
	r.next++
	r.ids[name] = id
	r.pending = append(r.pending, store.Country{ID: id, Name: name})
	return id
}

// Lookup returns the id of name. line is only used for the error.
func (r *Resolver) Lookup(name string, line int) (int64, error) {
	id, ok := r.ids[name]
	if !ok {
		return 0, &IntegrityError{Line: line, Country: name}
	}
	return id, nil
}

// Pending returns the countries assigned since the last Commit or Discard.
func (r *Resolver) Pending() []store.Country {
	return append([]store.Country(nil), r.pending...)
}

// Commit marks the pending countries as persisted.
func (r *Resolver) Commit() {
	r.pending = nil
}

// Discard forgets the pending countries, returning their ids to the pool.
func (r *Resolver) Discard() {
	for _, c := range r.pending {
		delete(r.ids, c.Name)
	}
	if len(r.pending) > 0 {
		r.next = r.pending[0].ID
	}
	r.pending = nil
}

// Len returns the number of known countries.
func (r *Resolver) Len() int {
	return len(r.ids)
}
