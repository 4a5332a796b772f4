/*
options.go - Delta construction and validation

PURPOSE:
  Turns an Options record into a validated, normalized Delta. Two paths:
  - Field path: copy relative fields, fold weeks into days, resolve the
    weekday input, resolve yearDay/nonLeapYearDay into month+day, validate
    every field, then run the overflow cascade.
  - Diff path: when Date1 and Date2 are both present, everything else is
    ignored and the delta is derived from the two instants (see diff.go).

VALIDATION ORDER:
  Integrality is checked before range, so a fractional month reports
  "must be integers" rather than a misleading range error.

DAY-OF-YEAR RESOLUTION:
  Uses the cumulative days-per-month table of a 366-day year. The index
  of the first entry >= the requested day gives the month; the remainder
  after subtracting the previous entry gives the day. YearDay past 59
  additionally sets leapDays=-1, compensating for February 29 when the
  count started from January 1 in leap-aware mode. NonLeapYearDay skips
  that compensation.

SEE ALSO:
  - fix.go:  The cascade run at the end of construction
  - diff.go: The two-instant path
*/
package reldelta

import (
	"github.com/warp/delta-engine/calendar"
)

// Options configures delta construction. All fields are optional; the zero
// Options produces a no-op delta.
type Options struct {
	// Diff path. Supplying exactly one is an error; supplying both makes
	// every other field inert (diff fields win).
	Date1 *calendar.TimePoint
	Date2 *calendar.TimePoint

	// CountLeapDays makes the diff path accumulate the February 29ths
	// falling strictly between the two instants into LeapDays.
	CountLeapDays bool

	// Relative fields. Years and Months are float64 so fractional input
	// can be rejected with the documented error; they must be whole.
	Years  float64
	Months float64
	Weeks  float64 // folded into Days as Weeks*7, never stored
	Days   float64

	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
	LeapDays     int

	// Absolute overrides; nil leaves the calendar field untouched.
	Year        *int
	Month       *int
	Day         *int
	Hour        *int
	Minute      *int
	Second      *int
	Millisecond *int

	// WeekDay accepts a Weekday, *Weekday, bare day number, bare
	// two-letter code, or a []any{code, n} pair. See ResolveWeekday.
	WeekDay any

	// Day-of-year inputs, resolved into Month+Day at construction.
	YearDay        *int
	NonLeapYearDay *int
}

// Cumulative days per month for a 366-day year. The first entry >= a
// day-of-year identifies its month.
var yearDayTable = [12]int{31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 366}

// New builds a normalized Delta from the given options.
func New(opts Options) (*Delta, error) {
	if (opts.Date1 == nil) != (opts.Date2 == nil) {
		return nil, ErrUnpairedInstants
	}
	if opts.Date1 != nil && opts.Date2 != nil {
		return Diff(*opts.Date1, *opts.Date2, DiffOptions{CountLeapDays: opts.CountLeapDays}), nil
	}

	if opts.Years != float64(int(opts.Years)) {
		return nil, &NonIntegerError{Param: "years", Value: opts.Years}
	}
	if opts.Months != float64(int(opts.Months)) {
		return nil, &NonIntegerError{Param: "months", Value: opts.Months}
	}

	offset := RelativeOffset{
		Years:        int(opts.Years),
		Months:       int(opts.Months),
		Days:         opts.Days + opts.Weeks*7,
		Hours:        opts.Hours,
		Minutes:      opts.Minutes,
		Seconds:      opts.Seconds,
		Milliseconds: opts.Milliseconds,
		LeapDays:     opts.LeapDays,
	}

	override := AbsoluteOverride{
		Year:        opts.Year,
		Month:       opts.Month,
		Day:         opts.Day,
		Hour:        opts.Hour,
		Minute:      opts.Minute,
		Second:      opts.Second,
		Millisecond: opts.Millisecond,
	}

	weekDay, err := ResolveWeekday(opts.WeekDay)
	if err != nil {
		return nil, err
	}
	override.WeekDay = weekDay

	if err := resolveYearDay(&offset, &override, opts.YearDay, opts.NonLeapYearDay); err != nil {
		return nil, err
	}

	if err := validateOverride(override); err != nil {
		return nil, err
	}

	return &Delta{Offset: fixOffset(offset), Override: override}, nil
}

// MustNew is New for statically known options; it panics on error.
func MustNew(opts Options) *Delta {
	d, err := New(opts)
	if err != nil {
		panic(err)
	}
	return d
}

// resolveYearDay converts a day-of-year input into Month+Day overrides,
// replacing any explicit month/day. YearDay (leap-aware) past February 28
// also books a -1 leap-day compensation.
func resolveYearDay(offset *RelativeOffset, override *AbsoluteOverride, yearDay, nonLeapYearDay *int) error {
	var (
		yday  int
		param string
	)
	switch {
	case yearDay != nil:
		yday, param = *yearDay, "yearDay"
	case nonLeapYearDay != nil:
		yday, param = *nonLeapYearDay, "nonLeapYearDay"
	default:
		return nil
	}

	if yday < 1 || yday > 366 {
		return &YearDayError{Param: param, Value: yday}
	}

	prev := 0
	for i, cumulative := range yearDayTable {
		if yday <= cumulative {
			month := i + 1
			day := yday - prev
			override.Month = &month
			override.Day = &day
			if param == "yearDay" && yday > 59 {
				offset.LeapDays--
			}
			return nil
		}
		prev = cumulative
	}
	return &YearDayError{Param: param, Value: yday}
}

func validateOverride(a AbsoluteOverride) error {
	checks := []struct {
		param    string
		value    *int
		min, max int
	}{
		{"year", a.Year, 1, 9999},
		{"month", a.Month, 1, 12},
		{"day", a.Day, 1, 31},
		{"hour", a.Hour, 0, 23},
		{"minute", a.Minute, 0, 59},
		{"second", a.Second, 0, 59},
		{"millisecond", a.Millisecond, 0, 999},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if *c.value < c.min || *c.value > c.max {
			return &OutOfRangeError{Param: c.param, Value: *c.value, Min: c.min, Max: c.max}
		}
	}
	return nil
}
