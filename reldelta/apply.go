/*
apply.go - Applying a delta to a calendar instant

PURPOSE:
  ApplyToDate produces a new instant from an input instant. The order is
  fixed and not commutative; each step sees the results of the previous
  ones:
    1. Absolute year overwrite
    2. Absolute month/day overwrite (day clamped to the month's length)
    3. Absolute time-of-day overwrites
    4. Relative years (calendar rollover: Feb 29 + 1y lands on Mar 1)
    5. Relative months (floor/modulo rollover, day clamped)
    6. Relative days, plus leap-day adjustment when the date so far sits
       in a leap year past February
    7. Relative time-of-day units
    8. Nth-weekday search

  The input instant is never mutated; TimePoint is a value type.
*/
package reldelta

import (
	"math"
	"time"

	"github.com/warp/delta-engine/calendar"
)

const millisPerDay = 24 * 60 * 60 * 1000

// ApplyToDate returns the instant obtained by applying the delta to tp.
func (d *Delta) ApplyToDate(tp calendar.TimePoint) calendar.TimePoint {
	// Step 1: absolute year.
	if d.Override.Year != nil {
		tp = tp.WithYear(*d.Override.Year)
	}

	// Step 2: absolute month/day. Clamping keeps day 31 inside a 30-day
	// month instead of overflowing into the next one.
	if d.Override.Month != nil || d.Override.Day != nil {
		month := tp.Month()
		if d.Override.Month != nil {
			month = time.Month(*d.Override.Month)
		}
		day := tp.Day()
		if d.Override.Day != nil {
			day = *d.Override.Day
		}
		if max := calendar.DaysInMonth(tp.Year(), month); day > max {
			day = max
		}
		tp = tp.WithDate(tp.Year(), month, day)
	}

	// Step 3: absolute time-of-day fields, each independent.
	if d.Override.Hour != nil {
		tp = tp.WithHour(*d.Override.Hour)
	}
	if d.Override.Minute != nil {
		tp = tp.WithMinute(*d.Override.Minute)
	}
	if d.Override.Second != nil {
		tp = tp.WithSecond(*d.Override.Second)
	}
	if d.Override.Millisecond != nil {
		tp = tp.WithMillisecond(*d.Override.Millisecond)
	}

	// Step 4: relative years.
	if d.Offset.Years != 0 {
		tp = tp.AddYears(d.Offset.Years)
	}

	// Step 5: relative months.
	if d.Offset.Months != 0 {
		tp = addMonthsClamped(tp, d.Offset.Months)
	}

	// Step 6: relative days, with the conditional leap-day extra.
	daysToAdd := d.Offset.Days
	if d.Offset.LeapDays != 0 && calendar.IsLeapYear(tp.Year()) && int(tp.Month()) > 2 {
		daysToAdd += float64(d.Offset.LeapDays)
	}
	tp = addFractionalDays(tp, daysToAdd)

	// Step 7: relative time-of-day units.
	if d.Offset.Hours != 0 {
		tp = tp.AddHours(d.Offset.Hours)
	}
	if d.Offset.Minutes != 0 {
		tp = tp.AddMinutes(d.Offset.Minutes)
	}
	if d.Offset.Seconds != 0 {
		tp = tp.AddSeconds(d.Offset.Seconds)
	}
	if d.Offset.Milliseconds != 0 {
		tp = tp.AddMilliseconds(d.Offset.Milliseconds)
	}

	// Step 8: nth-weekday search.
	if d.Override.WeekDay != nil {
		tp = seekWeekday(tp, *d.Override.WeekDay)
	}

	return tp
}

// addMonthsClamped advances tp by months with floor/modulo rollover into the
// year, keeping the day of month but clamping it to the target month's
// length. Shared by application, diff and conversion so all three agree on
// month-boundary behavior.
func addMonthsClamped(tp calendar.TimePoint, months int) calendar.TimePoint {
	total := int(tp.Month()) + months
	yearCarry := floorDiv(total-1, 12)
	month := time.Month(total - yearCarry*12)
	year := tp.Year() + yearCarry

	day := tp.Day()
	if max := calendar.DaysInMonth(year, month); day > max {
		day = max
	}
	return tp.WithDate(year, month, day)
}

// addFractionalDays adds a possibly fractional day count, applying the
// fraction at millisecond resolution.
func addFractionalDays(tp calendar.TimePoint, days float64) calendar.TimePoint {
	whole := math.Trunc(days)
	if whole != 0 {
		tp = tp.AddDays(int(whole))
	}
	if frac := days - whole; frac != 0 {
		tp = tp.AddMilliseconds(int(math.Round(frac * millisPerDay)))
	}
	return tp
}

// seekWeekday moves tp to the |n|-th occurrence of the target weekday:
// forward for n > 0, backward for n <= 0 (n = 0 behaves as 1, forward).
// A date already on the target weekday counts as occurrence 1.
func seekWeekday(tp calendar.TimePoint, wd Weekday) calendar.TimePoint {
	nth := wd.N
	if nth == 0 {
		nth = 1
	}

	jump := (abs(nth) - 1) * 7
	current := tp.WeekdayIndex()

	if nth > 0 {
		jump += (7 - current + wd.Day) % 7
		return tp.AddDays(jump)
	}
	jump += ((current-wd.Day)%7 + 7) % 7
	return tp.AddDays(-jump)
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
