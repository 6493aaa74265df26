package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by single-entity lookups with no match.
// Handlers render it as a null body, not as an error.
var ErrNotFound = errors.New("not found")

// ValidationReason classifies why a query parameter was rejected.
type ValidationReason int

const (
	ReasonNotInteger ValidationReason = iota
	ReasonBelowMinimum
	ReasonAboveMaximum
	ReasonNotAllowed
)

// ValidationError reports a rejected query parameter.
type ValidationError struct {
	Field   string
	Value   string
	Reason  ValidationReason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// StoreUnavailableError wraps a failed call to the database. It is never
// retried.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}
