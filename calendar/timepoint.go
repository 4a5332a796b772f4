/*
Package calendar provides the wall-clock primitive the delta engine operates on.

PURPOSE:
  A TimePoint is an immutable calendar instant at millisecond resolution.
  It exposes the operations the delta engine needs and nothing more:
  - Field getters (year, month, day, hour, minute, second, millisecond)
  - Field overwrites (WithYear, WithDay, ...) returning new values
  - Unit addition (AddYears, AddDays, ...) with full calendar rollover
  - Leap-year and month-length helpers

ROLLOVER:
  All arithmetic delegates to the standard library, which normalizes
  out-of-range fields. In particular Feb 29 + 1 year rolls to Mar 1,
  never clamps to Feb 28 - the delta engine depends on this.

WEEKDAYS:
  WeekdayIndex uses Monday=0 .. Sunday=6, matching the delta engine's
  weekday table. time.Weekday (Sunday=0) never leaks out of this package.

DAY COUNTING:
  DaysBetween compares midday-normalized day stamps instead of raw
  instant subtraction, so a daylight-saving shift inside the span can
  never skew the whole-day count.

SEE ALSO:
  - reldelta: the delta engine built on this primitive
*/
package calendar

import (
	"time"
)

// TimePoint is an immutable calendar instant with millisecond resolution.
// All values are anchored to UTC; the engine has no time-zone semantics.
type TimePoint struct {
	t time.Time
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// New creates a TimePoint from explicit calendar fields.
func New(year int, month time.Month, day, hour, minute, second, millisecond int) TimePoint {
	return TimePoint{t: time.Date(year, month, day, hour, minute, second, millisecond*int(time.Millisecond), time.UTC)}
}

// NewDate creates a TimePoint at midnight of the given day.
func NewDate(year int, month time.Month, day int) TimePoint {
	return New(year, month, day, 0, 0, 0, 0)
}

// FromTime converts a time.Time, truncating below millisecond resolution.
func FromTime(t time.Time) TimePoint {
	u := t.UTC()
	return New(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond()/int(time.Millisecond))
}

// Now returns the current instant.
func Now() TimePoint {
	return FromTime(time.Now())
}

// =============================================================================
// GETTERS
// =============================================================================

func (tp TimePoint) Year() int         { return tp.t.Year() }
func (tp TimePoint) Month() time.Month { return tp.t.Month() }
func (tp TimePoint) Day() int          { return tp.t.Day() }
func (tp TimePoint) Hour() int         { return tp.t.Hour() }
func (tp TimePoint) Minute() int       { return tp.t.Minute() }
func (tp TimePoint) Second() int       { return tp.t.Second() }
func (tp TimePoint) Millisecond() int  { return tp.t.Nanosecond() / int(time.Millisecond) }

// WeekdayIndex returns the day of week with Monday=0 .. Sunday=6.
func (tp TimePoint) WeekdayIndex() int {
	return (int(tp.t.Weekday()) + 6) % 7
}

// Time returns the underlying time.Time (UTC).
func (tp TimePoint) Time() time.Time { return tp.t }

func (tp TimePoint) IsZero() bool { return tp.t.IsZero() }

// =============================================================================
// FIELD OVERWRITES - copy-on-write setters
// =============================================================================

func (tp TimePoint) WithYear(year int) TimePoint {
	return New(year, tp.Month(), tp.Day(), tp.Hour(), tp.Minute(), tp.Second(), tp.Millisecond())
}

func (tp TimePoint) WithMonth(month time.Month) TimePoint {
	return New(tp.Year(), month, tp.Day(), tp.Hour(), tp.Minute(), tp.Second(), tp.Millisecond())
}

func (tp TimePoint) WithDay(day int) TimePoint {
	return New(tp.Year(), tp.Month(), day, tp.Hour(), tp.Minute(), tp.Second(), tp.Millisecond())
}

// WithDate overwrites year, month and day in one step, so an intermediate
// combination (say, Feb 31) never exists.
func (tp TimePoint) WithDate(year int, month time.Month, day int) TimePoint {
	return New(year, month, day, tp.Hour(), tp.Minute(), tp.Second(), tp.Millisecond())
}

func (tp TimePoint) WithHour(hour int) TimePoint {
	return New(tp.Year(), tp.Month(), tp.Day(), hour, tp.Minute(), tp.Second(), tp.Millisecond())
}

func (tp TimePoint) WithMinute(minute int) TimePoint {
	return New(tp.Year(), tp.Month(), tp.Day(), tp.Hour(), minute, tp.Second(), tp.Millisecond())
}

func (tp TimePoint) WithSecond(second int) TimePoint {
	return New(tp.Year(), tp.Month(), tp.Day(), tp.Hour(), tp.Minute(), second, tp.Millisecond())
}

func (tp TimePoint) WithMillisecond(ms int) TimePoint {
	return New(tp.Year(), tp.Month(), tp.Day(), tp.Hour(), tp.Minute(), tp.Second(), ms)
}

// =============================================================================
// ARITHMETIC
// =============================================================================

func (tp TimePoint) AddYears(n int) TimePoint  { return TimePoint{t: tp.t.AddDate(n, 0, 0)} }
func (tp TimePoint) AddMonths(n int) TimePoint { return TimePoint{t: tp.t.AddDate(0, n, 0)} }
func (tp TimePoint) AddDays(n int) TimePoint   { return TimePoint{t: tp.t.AddDate(0, 0, n)} }

func (tp TimePoint) AddHours(n int) TimePoint {
	return TimePoint{t: tp.t.Add(time.Duration(n) * time.Hour)}
}

func (tp TimePoint) AddMinutes(n int) TimePoint {
	return TimePoint{t: tp.t.Add(time.Duration(n) * time.Minute)}
}

func (tp TimePoint) AddSeconds(n int) TimePoint {
	return TimePoint{t: tp.t.Add(time.Duration(n) * time.Second)}
}

func (tp TimePoint) AddMilliseconds(n int) TimePoint {
	return TimePoint{t: tp.t.Add(time.Duration(n) * time.Millisecond)}
}

// =============================================================================
// COMPARISON
// =============================================================================

func (tp TimePoint) Before(other TimePoint) bool { return tp.t.Before(other.t) }
func (tp TimePoint) After(other TimePoint) bool  { return tp.t.After(other.t) }
func (tp TimePoint) Equal(other TimePoint) bool  { return tp.t.Equal(other.t) }

func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

func (tp TimePoint) String() string {
	return tp.t.Format("2006-01-02T15:04:05.000")
}

// =============================================================================
// CALENDAR HELPERS
// =============================================================================

// IsLeapYear reports whether year is a leap year under the 4/100/400 rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month of the given year.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns the whole calendar days from a to b (negative when b
// precedes a). Both instants are normalized to noon before the subtraction so
// the count is immune to daylight-saving boundaries inside the span.
func DaysBetween(a, b TimePoint) int {
	return int(dayStamp(b) - dayStamp(a))
}

// dayStamp maps a TimePoint to its calendar-day ordinal via a noon timestamp.
func dayStamp(tp TimePoint) int64 {
	noon := time.Date(tp.Year(), tp.Month(), tp.Day(), 12, 0, 0, 0, time.UTC)
	// Floor division keeps pre-epoch days correct.
	sec := noon.Unix()
	if sec >= 0 {
		return sec / 86400
	}
	return (sec - 86399) / 86400
}
