/*
weekday.go - Weekday selector value type

PURPOSE:
  A Weekday pairs a day-of-week (Monday=0 .. Sunday=6) with a signed
  occurrence count n. Applying a delta that carries one moves the date
  to the |n|-th matching weekday: forward for n > 0, backward for n <= 0,
  with the date itself counting as occurrence 1 when it already matches.

CONSTRUCTION:
  Callers normally use the free constructors:

    reldelta.Monday()     // next/previous Monday depending on search direction
    reldelta.Friday(2)    // second Friday
    reldelta.Sunday(-1)   // last Sunday

  Input coming over a boundary (JSON, CLI) goes through ResolveWeekday,
  which performs the case analysis once; nothing downstream re-dispatches.

SEE ALSO:
  - apply.go: The nth-weekday search that consumes this type
*/
package reldelta

import (
	"fmt"
	"strings"
)

// Weekday selects the n-th occurrence of a day of week.
// Immutable; created at delta-construction time and never modified.
type Weekday struct {
	Day int // 0=Monday .. 6=Sunday
	N   int // signed occurrence count; 0 behaves as 1 in the forward search
}

var weekdayCodes = [7]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// NewWeekday builds a Weekday from a numeric day code, validating 0-6.
func NewWeekday(day, n int) (Weekday, error) {
	if day < 0 || day > 6 {
		return Weekday{}, &WeekdayNumberError{Value: day}
	}
	return Weekday{Day: day, N: n}, nil
}

// ParseWeekdayCode maps a two-letter code (case-insensitive) to its day number.
func ParseWeekdayCode(code string) (int, error) {
	upper := strings.ToUpper(code)
	for i, c := range weekdayCodes {
		if c == upper {
			return i, nil
		}
	}
	return 0, &WeekdayCodeError{Code: code}
}

// Code returns the two-letter code for the day of week.
func (w Weekday) Code() string { return weekdayCodes[w.Day] }

// Nth returns a copy with the occurrence count replaced.
func (w Weekday) Nth(n int) Weekday { return Weekday{Day: w.Day, N: n} }

func (w Weekday) String() string {
	code := weekdayCodes[w.Day]
	if w.N == 0 || w.N == 1 {
		return code
	}
	return fmt.Sprintf("%+d%s", w.N, code)
}

// =============================================================================
// FREE CONSTRUCTORS
// =============================================================================
// One per weekday name, each taking an optional occurrence count (default 1).

func Monday(n ...int) Weekday    { return weekdayN(0, n) }
func Tuesday(n ...int) Weekday   { return weekdayN(1, n) }
func Wednesday(n ...int) Weekday { return weekdayN(2, n) }
func Thursday(n ...int) Weekday  { return weekdayN(3, n) }
func Friday(n ...int) Weekday    { return weekdayN(4, n) }
func Saturday(n ...int) Weekday  { return weekdayN(5, n) }
func Sunday(n ...int) Weekday    { return weekdayN(6, n) }

func weekdayN(day int, n []int) Weekday {
	nth := 1
	if len(n) > 0 {
		nth = n[0]
	}
	return Weekday{Day: day, N: nth}
}

// =============================================================================
// INPUT RESOLUTION
// =============================================================================

// ResolveWeekday canonicalizes the accepted weekday input shapes into a single
// Weekday. Recognized shapes:
//   - Weekday / *Weekday: used as-is
//   - int:                bare day code, occurrence 1
//   - string:             bare two-letter code, occurrence 1
//   - []any{code, n}:     code (int or string) plus occurrence count
//     (the shape a JSON array decodes to)
//
// Returns (nil, nil) for a nil input: weekday unset.
func ResolveWeekday(v any) (*Weekday, error) {
	switch in := v.(type) {
	case nil:
		return nil, nil
	case Weekday:
		return &in, nil
	case *Weekday:
		if in == nil {
			return nil, nil
		}
		w := *in
		return &w, nil
	case int:
		w, err := NewWeekday(in, 1)
		if err != nil {
			return nil, err
		}
		return &w, nil
	case string:
		day, err := ParseWeekdayCode(in)
		if err != nil {
			return nil, err
		}
		w := Weekday{Day: day, N: 1}
		return &w, nil
	case []any:
		return resolveWeekdayPair(in)
	default:
		return nil, fmt.Errorf("%w: unsupported weekday input %T", ErrInvalidWeekday, v)
	}
}

func resolveWeekdayPair(pair []any) (*Weekday, error) {
	if len(pair) == 0 || len(pair) > 2 {
		return nil, fmt.Errorf("%w: weekday pair must be [code] or [code, n]", ErrInvalidWeekday)
	}

	var day int
	switch code := pair[0].(type) {
	case int:
		d, err := NewWeekday(code, 1)
		if err != nil {
			return nil, err
		}
		day = d.Day
	case float64:
		// JSON numbers decode as float64; a fractional day code is invalid.
		if code != float64(int(code)) {
			return nil, &WeekdayNumberError{Value: int(code)}
		}
		d, err := NewWeekday(int(code), 1)
		if err != nil {
			return nil, err
		}
		day = d.Day
	case string:
		d, err := ParseWeekdayCode(code)
		if err != nil {
			return nil, err
		}
		day = d
	default:
		return nil, fmt.Errorf("%w: weekday code must be a number or string, got %T", ErrInvalidWeekday, pair[0])
	}

	n := 1
	if len(pair) == 2 {
		switch nth := pair[1].(type) {
		case int:
			n = nth
		case float64:
			// Occurrence counts are truncated toward zero.
			n = int(nth)
		default:
			return nil, fmt.Errorf("%w: occurrence count must be a number, got %T", ErrInvalidWeekday, pair[1])
		}
	}

	w := Weekday{Day: day, N: n}
	return &w, nil
}
