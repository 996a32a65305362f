/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All error kinds in one place for consistency and discoverability.
  Callers branch on kind with errors.Is or the Is* helpers, never on text.

ERROR CATEGORIES:
  1. Validation errors - Malformed or out-of-range input, raised before any mutation
  2. Domain conflicts  - Input is well formed but the current state rejects it
  3. History errors    - Undo/redo with an empty stack
  4. I/O errors        - Report or archive could not be written

USAGE:
  if _, err := generic.ParsePositive("horas", s); err != nil {
      return err // *FieldError wrapping ErrNotPositive
  }

  if generic.IsValidation(err) {
      // 400
  }

SEE ALSO:
  - types.go, time.go: Parsers returning FieldError
  - api/handlers.go: Maps kinds to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

// Validation
var (
	// ErrFieldRequired is returned when a required text or numeric field is blank.
	ErrFieldRequired = errors.New("field required")

	// ErrNotNumeric is returned when a numeric field cannot be parsed.
	ErrNotNumeric = errors.New("field must be numeric")

	// ErrNegative is returned when a field that must be non-negative is negative.
	ErrNegative = errors.New("field must be non-negative")

	// ErrNotPositive is returned for zero or negative hours, sales and charges.
	ErrNotPositive = errors.New("field must be positive")

	// ErrInvalidDate is returned for malformed or non-existent calendar dates.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRange is returned when a query range starts after it ends.
	ErrInvalidRange = errors.New("start date after end date")

	// ErrInvalidBool is returned when a flag is neither "true" nor "false".
	ErrInvalidBool = errors.New("field must be true or false")

	// ErrInvalidOutput is returned when a payroll run has no output destination.
	ErrInvalidOutput = errors.New("invalid output destination")
)

// Domain conflicts
var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrWrongVariant         = errors.New("wrong employee variant for operation")
	ErrDuplicateMemberID    = errors.New("duplicate union member id")
	ErrUnknownAttribute     = errors.New("unknown attribute")
	ErrScheduleUnavailable  = errors.New("payment schedule not registered")
	ErrInvalidSchedule      = errors.New("invalid payment schedule description")
	ErrDuplicateSchedule    = errors.New("payment schedule already registered")
	ErrInvalidType          = errors.New("invalid employee type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrNotUnionMember       = errors.New("employee is not a union member")
	ErrMemberNotFound       = errors.New("union member not found")
	ErrNotBankPayment       = errors.New("employee is not paid by bank deposit")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrNoEmployeeWithName   = errors.New("no employee with that name")
	ErrRunNotFound          = errors.New("payroll run not found")
	ErrDuplicateRun         = errors.New("payroll run already archived")

	// ErrSystemClosed is returned by every engine call after Close.
	ErrSystemClosed = errors.New("system closed")
)

// History
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// I/O
var (
	// ErrReportWrite is returned when a computed payroll could not be written.
	// The in-memory payroll state is not rolled back.
	ErrReportWrite = errors.New("unable to write payroll report")

	// ErrArchive is returned when a payroll run could not be archived.
	ErrArchive = errors.New("unable to archive payroll run")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError names the input field a validation sentinel applies to.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true if the error is due to malformed client input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrFieldRequired) ||
		errors.Is(err, ErrNotNumeric) ||
		errors.Is(err, ErrNegative) ||
		errors.Is(err, ErrNotPositive) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidBool) ||
		errors.Is(err, ErrInvalidOutput)
}

// IsNotFound returns true if the error indicates a missing employee, member or entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrEntryNotFound) ||
		errors.Is(err, ErrNoEmployeeWithName) ||
		errors.Is(err, ErrRunNotFound)
}

// IsConflict returns true if well-formed input was rejected by the current state.
func IsConflict(err error) bool {
	return errors.Is(err, ErrWrongVariant) ||
		errors.Is(err, ErrDuplicateMemberID) ||
		errors.Is(err, ErrUnknownAttribute) ||
		errors.Is(err, ErrScheduleUnavailable) ||
		errors.Is(err, ErrInvalidSchedule) ||
		errors.Is(err, ErrDuplicateSchedule) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidPaymentMethod) ||
		errors.Is(err, ErrNotUnionMember) ||
		errors.Is(err, ErrNotBankPayment) ||
		errors.Is(err, ErrDuplicateRun) ||
		errors.Is(err, ErrSystemClosed)
}

// IsHistory returns true for undo/redo on an empty stack.
func IsHistory(err error) bool {
	return errors.Is(err, ErrNothingToUndo) || errors.Is(err, ErrNothingToRedo)
}

// IsIO returns true if the error came from writing a report or archive.
func IsIO(err error) bool {
	return errors.Is(err, ErrReportWrite) || errors.Is(err, ErrArchive)
}
