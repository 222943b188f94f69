package services

import "fmt"

// ValidationError carries field-level messages for a rejected request.
// It is always recoverable; handlers surface it as a 400 keyed by
// field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for field, msg := range e.Fields {
		return fmt.Sprintf("validation failed: %s: %s", field, msg)
	}
	return "validation failed"
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// InvalidProgressError rejects a trip update that would move progress
// backwards. The trip is left unchanged.
type InvalidProgressError struct {
	TripID    string
	Current   int
	Requested int
}

func (e *InvalidProgressError) Error() string {
	return fmt.Sprintf("trip %s: stop index %d would regress progress (currently at %d)",
		e.TripID, e.Requested, e.Current)
}

// ConcurrentTransitionError rejects a status proposal for an entity
// that already has one in flight. The caller retries after the first
// resolves.
type ConcurrentTransitionError struct {
	EntityID string
}

func (e *ConcurrentTransitionError) Error() string {
	return fmt.Sprintf("a status transition for entity %s is already in progress", e.EntityID)
}
