package types

import (
	"errors"
	"fmt"
)

// Store operation errors.
var (
	// ErrNotFound is returned when no entity exists with the requested ID.
	// Absence is a valid lookup result, not a storage failure.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied is produced by the ownership gate when a task exists
	// but belongs to a different owner. The TaskService masks it to
	// ErrNotFound before it reaches callers.
	ErrAccessDenied = errors.New("access denied")

	// ErrStorageUnavailable marks transient persistence failures. Callers
	// may retry with backoff.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrConstraintViolation marks fatal persistence failures such as a
	// duplicate ID. The operation must not be retried.
	ErrConstraintViolation = errors.New("constraint violation")
)

// Backend lifecycle errors.
var (
	ErrBackendClosed = errors.New("backend is closed")
	ErrAlreadyOpen   = errors.New("backend is already open")
)

// ErrValidation is the sentinel all ValidationError values match via
// errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports malformed input. It names the field that failed
// and why, so callers can fix the input and retry.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
