/*
errors.go - Centralized error types for delta construction

PURPOSE:
  All construction-time errors in one place. Every failure mode of
  New/Diff is represented here; ApplyToDate and the conversion methods
  never fail on a validly constructed delta.

ERROR CATEGORIES:
  1. Pairing errors     - date1/date2 supplied without the other
  2. Integrality errors - fractional years/months
  3. Range errors       - absolute fields outside their documented range
  4. Weekday errors     - unknown code or out-of-range number
  5. Day-of-year errors - yearDay/nonLeapYearDay outside 1-366

USAGE:
  Callers match on sentinels:

    if errors.Is(err, reldelta.ErrFieldOutOfRange) {
        // 400, not 500
    }

SEE ALSO:
  - options.go: Raises these during construction
  - weekday.go: Raises the weekday variants
*/
package reldelta

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnpairedInstants is returned when exactly one of date1/date2 is
	// supplied. A diff needs both; a field-based delta needs neither.
	ErrUnpairedInstants = errors.New("date1 and date2 must both be supplied or both omitted")

	// ErrNonIntegerPeriod is returned when years or months carry a
	// fractional part. Calendar periods have no fixed duration, so a
	// fraction of one is meaningless.
	ErrNonIntegerPeriod = errors.New("years and months must be whole numbers")

	// ErrFieldOutOfRange is returned when an absolute field lies outside
	// its documented inclusive range.
	ErrFieldOutOfRange = errors.New("field out of range")

	// ErrInvalidWeekday is returned for an unknown weekday code or number.
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidYearDay is returned when yearDay/nonLeapYearDay is outside 1-366.
	ErrInvalidYearDay = errors.New("invalid day-of-year")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NonIntegerError reports a fractional years/months input.
type NonIntegerError struct {
	Param string
	Value float64
}

func (e *NonIntegerError) Error() string {
	return fmt.Sprintf("years and months must be integers: %s=%v", e.Param, e.Value)
}

func (e *NonIntegerError) Unwrap() error { return ErrNonIntegerPeriod }

// OutOfRangeError reports an absolute field outside its valid range.
type OutOfRangeError struct {
	Param    string
	Value    int
	Min, Max int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Param, e.Min, e.Max, e.Value)
}

func (e *OutOfRangeError) Unwrap() error { return ErrFieldOutOfRange }

// WeekdayCodeError reports a string that is not a two-letter weekday code.
type WeekdayCodeError struct {
	Code string
}

func (e *WeekdayCodeError) Error() string {
	return fmt.Sprintf("invalid weekday code %q (want MO, TU, WE, TH, FR, SA or SU)", e.Code)
}

func (e *WeekdayCodeError) Unwrap() error { return ErrInvalidWeekday }

// WeekdayNumberError reports a numeric weekday outside 0-6.
type WeekdayNumberError struct {
	Value int
}

func (e *WeekdayNumberError) Error() string {
	return fmt.Sprintf("invalid weekday number %d (valid range 0-6, Monday=0)", e.Value)
}

func (e *WeekdayNumberError) Unwrap() error { return ErrInvalidWeekday }

// YearDayError reports a day-of-year outside 1-366.
type YearDayError struct {
	Param string
	Value int
}

func (e *YearDayError) Error() string {
	return fmt.Sprintf("%s must be between 1 and 366, got %d", e.Param, e.Value)
}

func (e *YearDayError) Unwrap() error { return ErrInvalidYearDay }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidationError returns true if the error is due to invalid caller input,
// as opposed to an internal failure. All construction errors qualify.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnpairedInstants) ||
		errors.Is(err, ErrNonIntegerPeriod) ||
		errors.Is(err, ErrFieldOutOfRange) ||
		errors.Is(err, ErrInvalidWeekday) ||
		errors.Is(err, ErrInvalidYearDay)
}
