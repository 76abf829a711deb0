/*
errors.go - Error kinds for the interest engine

PURPOSE:
  All validation failures in one place. Every failure is a client error:
  nothing here is retryable and nothing is fatal to the process.

ERROR KINDS:
  InvalidPrincipalError   principal missing, non-numeric, out of range, or <= 0
  InvalidRateError        rate missing, non-numeric, out of range, or negative
  InvalidDateFormatError  a date string does not match DDDD-DD-DD
  OrderingError           end date precedes start date, or the range
                          normalises to a negative duration
  OverflowError           the accrued amount left the float64 range

USAGE:
  Match the kind with errors.Is on the sentinel, or errors.As on the
  structured type when the offending input is needed:

    if errors.Is(err, interest.ErrOrdering) { ... }

    var fe *interest.InvalidDateFormatError
    if errors.As(err, &fe) { log(fe.Field) }

SEE ALSO:
  - calculate.go: Produces these errors during input validation
  - api/handlers.go: Maps them to HTTP 400
*/
package interest

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	ErrInvalidPrincipal  = errors.New("invalid principal")
	ErrInvalidRate       = errors.New("invalid interest rate")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrOrdering          = errors.New("end date precedes start date")
	ErrOverflow          = errors.New("amount out of range")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending input
// =============================================================================

type InvalidPrincipalError struct {
	Input string
}

func (e *InvalidPrincipalError) Error() string {
	if e.Input == "" {
		return "principal is required and must be a positive number"
	}
	return fmt.Sprintf("principal must be a finite positive number with at most %d decimal places, got %q",
		MaxFractionDigits, e.Input)
}

func (e *InvalidPrincipalError) Unwrap() error { return ErrInvalidPrincipal }

type InvalidRateError struct {
	Input string
}

func (e *InvalidRateError) Error() string {
	if e.Input == "" {
		return "interest rate is required and must be zero or greater"
	}
	return fmt.Sprintf("interest rate must be a finite number, zero or greater, with at most %d decimal places, got %q",
		MaxFractionDigits, e.Input)
}

func (e *InvalidRateError) Unwrap() error { return ErrInvalidRate }

// InvalidDateFormatError names which field failed ("start_date" or "end_date").
type InvalidDateFormatError struct {
	Field string
	Input string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("%s must use the format YYYY-MM-DD, got %q", e.Field, e.Input)
}

func (e *InvalidDateFormatError) Unwrap() error { return ErrInvalidDateFormat }

type OrderingError struct {
	Start BSDate
	End   BSDate
}

func (e *OrderingError) Error() string {
	if e.End.Before(e.Start) {
		return fmt.Sprintf("end date %s is before start date %s", e.End, e.Start)
	}
	return fmt.Sprintf("range %s to %s does not describe a forward interval", e.Start, e.End)
}

func (e *OrderingError) Unwrap() error { return ErrOrdering }

// OverflowError names the ledger period where the amount became too large.
type OverflowError struct {
	Period string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("amount exceeds the supported range in %s", e.Period)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid user input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPrincipal) ||
		errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrInvalidDateFormat) ||
		errors.Is(err, ErrOrdering) ||
		errors.Is(err, ErrOverflow)
}

// Kind returns a stable machine-readable name for a client error, or "".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPrincipal):
		return "invalid_principal"
	case errors.Is(err, ErrInvalidRate):
		return "invalid_rate"
	case errors.Is(err, ErrInvalidDateFormat):
		return "invalid_date_format"
	case errors.Is(err, ErrOrdering):
		return "ordering"
	case errors.Is(err, ErrOverflow):
		return "overflow"
	default:
		return ""
	}
}
