/*
diff.go - Delta between two calendar instants

PURPOSE:
  Derives a pure relative delta (no absolute overrides) such that applying
  it to date2 approximately recovers date1. The years/months components are
  exact calendar differences; the day component is then measured as the
  exact whole-day count from the month-advanced earlier instant to the
  later one, because month lengths differ.

SIGN CONVENTION:
  Magnitudes are computed later-minus-earlier, then every field is
  multiplied by -1 when date1 <= date2 and +1 otherwise. Zero fields stay
  zero, never signed.

TIME-OF-DAY FIELDS:
  Hours through milliseconds are naive field subtraction, not borrowed
  against the day count. A delta can therefore carry a positive day count
  next to a negative hour count; callers wanting a fully cascaded value
  use Normalized().

SEE ALSO:
  - apply.go: addMonthsClamped, the month-advance used here
*/
package reldelta

import (
	"github.com/warp/delta-engine/calendar"
)

// DiffOptions tunes the two-instant diff.
type DiffOptions struct {
	// CountLeapDays accumulates the February 29ths strictly between the
	// two instants into the delta's LeapDays field.
	CountLeapDays bool
}

// Diff computes the delta between date1 and date2. The result has all
// absolute fields unset and is normalized.
func Diff(date1, date2 calendar.TimePoint, opts DiffOptions) *Delta {
	sign := 1
	earlier, later := date2, date1
	if !date1.After(date2) {
		sign = -1
		earlier, later = date1, date2
	}

	years := later.Year() - earlier.Year()
	months := int(later.Month()) - int(earlier.Month())
	if months < 0 || (months == 0 && later.Day() < earlier.Day()) {
		years--
		months += 12
	}

	// The day count is whatever remains after advancing the earlier
	// instant by the computed years and months, end-of-month clamped.
	anchor := addMonthsClamped(earlier, years*12+months)
	days := calendar.DaysBetween(anchor, later)

	offset := RelativeOffset{
		Years:        sign * years,
		Months:       sign * months,
		Days:         float64(sign * days),
		Hours:        sign * (later.Hour() - earlier.Hour()),
		Minutes:      sign * (later.Minute() - earlier.Minute()),
		Seconds:      sign * (later.Second() - earlier.Second()),
		Milliseconds: sign * (later.Millisecond() - earlier.Millisecond()),
	}

	if opts.CountLeapDays {
		offset.LeapDays = sign * leapDaysBetween(earlier, later)
	}

	return &Delta{Offset: fixOffset(offset)}
}

// leapDaysBetween counts the February 29ths falling strictly between the
// two instants, adjusting for partial first and last years.
func leapDaysBetween(earlier, later calendar.TimePoint) int {
	count := leapYearsThrough(later.Year()) - leapYearsThrough(earlier.Year()-1)
	if calendar.IsLeapYear(earlier.Year()) && onOrAfterFeb29(earlier) {
		count--
	}
	if calendar.IsLeapYear(later.Year()) && !onOrAfterFeb29(later) {
		count--
	}
	if count < 0 {
		count = 0
	}
	return count
}

// leapYearsThrough returns the number of leap years in [1, y].
func leapYearsThrough(y int) int {
	return y/4 - y/100 + y/400
}

func onOrAfterFeb29(tp calendar.TimePoint) bool {
	return int(tp.Month()) > 2 || (int(tp.Month()) == 2 && tp.Day() == 29)
}
