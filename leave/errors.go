/*
errors.go - Centralized error types for the leave engine

ERROR CATEGORIES:
  1. Storage errors - persistence unreachable or failed mid-operation
  2. Validation errors - malformed input rejected before any mutation
  3. Capacity decisions - NOT system errors; a rejected request is a normal
     outcome communicated to the requester

Notification failures are deliberately absent here: they are logged by the
callers and never surfaced as operation failures.
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrStorageUnavailable is returned when the roster or ledger cannot be
	// loaded or saved. Operations abort with no partial mutation, and the
	// capacity gate fails closed.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrValidation is the base error for all input validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownContract is returned when a roster row carries a contract
	// class outside the fixed vocabulary.
	ErrUnknownContract = errors.New("unknown contract class")

	// ErrUnknownLeaveType is returned for a leave type outside the vocabulary.
	ErrUnknownLeaveType = errors.New("unknown leave type")

	// ErrInvalidDateRange is returned when a request's end date precedes its
	// start date.
	ErrInvalidDateRange = errors.New("invalid date range: end before start")

	// ErrUnknownEmployee is returned when a name matches no roster row.
	ErrUnknownEmployee = errors.New("employee not found")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError reports a rejected field. Wraps ErrValidation so callers
// can classify with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// CapacityError describes why the capacity gate blocked a request. It is a
// decision outcome, not a system fault.
type CapacityError struct {
	Day     Date
	Count   int
	Ceiling int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity reached on %s: %d of %d already absent", e.Day, e.Count, e.Ceiling)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is due to invalid caller input
// rather than a system failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnknownContract) ||
		errors.Is(err, ErrUnknownLeaveType) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrUnknownEmployee)
}
