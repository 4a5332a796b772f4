/*
Package reldelta implements a calendar-aware relative date delta.

PURPOSE:
  A Delta is a compound offset: relative quantities to add (years, months,
  days, time-of-day units, conditional leap days) plus absolute overrides
  that force calendar fields to fixed values, plus an optional nth-weekday
  search. The package provides:
  - Construction from explicit fields (New) or from two instants (Diff)
  - Normalization cascading overflow into larger units
  - Application to a calendar.TimePoint
  - Conversion to a scalar count of a fixed-duration unit

KEY CONCEPTS IN THIS FILE (types.go):
  - RelativeOffset: the additive fields ("add N months")
  - AbsoluteOverride: the optional fixed fields ("force day to 15")
  - Delta: both aggregates composed into the delta entity

  The plural/singular split (Months vs Month) is deliberate: plural fields
  are always present and additive, singular fields are tri-state pointers
  where nil means "leave the calendar field alone".

DESIGN PRINCIPLES:
  1. Immutability: a constructed Delta is never mutated; every method
     returns new values
  2. One normalization: overflow is fixed once at construction, not
     re-checked on every use
  3. Errors only at the boundary: ApplyToDate and the conversions cannot
     fail on a valid Delta

USAGE:
  d, err := reldelta.New(reldelta.Options{Months: 2, Days: -1})
  if err != nil { ... }
  next := d.ApplyToDate(calendar.NewDate(2023, time.January, 1))

SEE ALSO:
  - options.go: Construction and validation
  - apply.go:   Application order of operations
  - convert.go: Duration-equivalent scalars
*/
package reldelta

import (
	"fmt"
	"strings"
)

// =============================================================================
// RELATIVE OFFSET - additive fields
// =============================================================================

// RelativeOffset holds the signed quantities a delta adds to a date.
// Days is a float64 because a weeks input may leave a fractional remainder
// until Normalized() cascades it into smaller units; everything else is
// integral by construction.
type RelativeOffset struct {
	Years        int
	Months       int
	Days         float64
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int

	// LeapDays is an extra day count applied only when the date being
	// built lands in a leap year past February.
	LeapDays int
}

// IsZero reports whether the offset adds nothing.
func (r RelativeOffset) IsZero() bool {
	return r.Years == 0 && r.Months == 0 && r.Days == 0 &&
		r.Hours == 0 && r.Minutes == 0 && r.Seconds == 0 &&
		r.Milliseconds == 0 && r.LeapDays == 0
}

// =============================================================================
// ABSOLUTE OVERRIDE - tri-state fixed fields
// =============================================================================

// AbsoluteOverride holds the optional fixed values a delta forces onto a
// date. nil means unset. A Day at or above the target month's length
// resolves to that month's last day (clamp-to-last-day policy).
type AbsoluteOverride struct {
	Year        *int // 1-9999
	Month       *int // 1-12
	Day         *int // 1-31, clamped to the month's length on apply
	Hour        *int // 0-23
	Minute      *int // 0-59
	Second      *int // 0-59
	Millisecond *int // 0-999

	WeekDay *Weekday
}

// IsZero reports whether no override is set.
func (a AbsoluteOverride) IsZero() bool {
	return a.Year == nil && a.Month == nil && a.Day == nil &&
		a.Hour == nil && a.Minute == nil && a.Second == nil &&
		a.Millisecond == nil && a.WeekDay == nil
}

// =============================================================================
// DELTA
// =============================================================================

// Delta is the compound offset entity. Construct with New or Diff; the
// zero value is a valid no-op delta.
type Delta struct {
	Offset   RelativeOffset
	Override AbsoluteOverride
}

// IsZero reports whether applying the delta would leave any date unchanged.
func (d *Delta) IsZero() bool {
	return d.Offset.IsZero() && d.Override.IsZero()
}

// String renders the non-zero parts of the delta, for logs and CLI output.
func (d *Delta) String() string {
	var parts []string
	rel := func(name string, v int) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s=%+d", name, v))
		}
	}
	rel("years", d.Offset.Years)
	rel("months", d.Offset.Months)
	if d.Offset.Days != 0 {
		parts = append(parts, fmt.Sprintf("days=%+g", d.Offset.Days))
	}
	rel("leapdays", d.Offset.LeapDays)
	rel("hours", d.Offset.Hours)
	rel("minutes", d.Offset.Minutes)
	rel("seconds", d.Offset.Seconds)
	rel("milliseconds", d.Offset.Milliseconds)

	abs := func(name string, v *int) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s=%d", name, *v))
		}
	}
	abs("year", d.Override.Year)
	abs("month", d.Override.Month)
	abs("day", d.Override.Day)
	abs("hour", d.Override.Hour)
	abs("minute", d.Override.Minute)
	abs("second", d.Override.Second)
	abs("millisecond", d.Override.Millisecond)
	if d.Override.WeekDay != nil {
		parts = append(parts, "weekday="+d.Override.WeekDay.String())
	}

	if len(parts) == 0 {
		return "delta()"
	}
	return "delta(" + strings.Join(parts, ", ") + ")"
}
