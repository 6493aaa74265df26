package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/dashboard/internal/metrics"
)

// Service runs resource queries and projects the results. It holds no
// mutable state, so one instance serves every request concurrently.
type Service struct {
	rows RowSource
}

// NewService creates a Service reading from rows.
func NewService(rows RowSource) *Service {
	return &Service{rows: rows}
}

// List returns every row of res matching f, projected for the response.
// An empty result is an empty, non-nil slice.
func (s *Service) List(ctx context.Context, res Resource, f Filter, loc Locator) ([]Record, error) {
	q, err := BuildQuery(res, f)
	if err != nil {
		return nil, err
	}

	rows, err := s.query(ctx, res.Key, q)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		var rec Record
		if res.Kind == KindCountry {
			rec, err = ProjectCountry(row, loc)
		} else {
			rec, err = ProjectFact(res, row, loc)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Country returns the country with the given id. Returns ErrNotFound when
// no such country exists.
func (s *Service) Country(ctx context.Context, res Resource, id int64, loc Locator) (Record, error) {
	if res.Kind != KindCountry {
		return nil, fmt.Errorf("%s is not the country resource", res.Key)
	}

	rows, err := s.query(ctx, res.Key, CountryQuery(res, id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return ProjectCountry(rows[0], loc)
}

func (s *Service) query(ctx context.Context, key string, q Query) ([][]any, error) {
	start := time.Now()
	rows, err := s.rows.QueryRows(ctx, q.SQL, q.Args...)
	metrics.QueryDuration.WithLabelValues(key).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.QueryErrors.WithLabelValues(key).Inc()
		var unavailable *StoreUnavailableError
		if errors.As(err, &unavailable) {
			return nil, err
		}
		return nil, &StoreUnavailableError{Op: key, Err: err}
	}
	return rows, nil
}
