package reldelta_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/delta-engine/calendar"
	"github.com/warp/delta-engine/reldelta"
)

func TestToSeconds_FixedUnits(t *testing.T) {
	d := mustNew(t, reldelta.Options{Weeks: 2, Days: 1})
	assert.Equal(t, 1296000.0, d.ToSeconds())

	d = mustNew(t, reldelta.Options{Hours: 1, Minutes: 30})
	assert.Equal(t, 5400.0, d.ToSeconds())

	d = mustNew(t, reldelta.Options{Seconds: -90})
	assert.Equal(t, -90.0, d.ToSeconds())

	d = mustNew(t, reldelta.Options{Milliseconds: 250})
	assert.Equal(t, 0.25, d.ToSeconds())
}

func TestToSeconds_MonthsNeedReference(t *testing.T) {
	// Three months from mid-January 2024: 16+29+31+15 = 91 days.
	ref := calendar.NewDate(2024, time.January, 15)
	d := mustNew(t, reldelta.Options{Months: 3})
	assert.Equal(t, 91.0*86400, d.ToSeconds(ref))

	// The same delta from mid-February spans fewer days.
	ref = calendar.NewDate(2023, time.February, 15)
	assert.Equal(t, 89.0*86400, d.ToSeconds(ref))
}

func TestToSeconds_YearsAcrossLeapBoundary(t *testing.T) {
	d := mustNew(t, reldelta.Options{Years: 1})
	assert.Equal(t, 366.0*86400, d.ToSeconds(calendar.NewDate(2020, time.January, 1)))
	assert.Equal(t, 365.0*86400, d.ToSeconds(calendar.NewDate(2021, time.January, 1)))
}

func TestToSeconds_LeapDaysJoinDayCount(t *testing.T) {
	d := mustNew(t, reldelta.Options{Days: 10, LeapDays: 1})
	assert.Equal(t, 11.0*86400, d.ToSeconds())
}

func TestDerivedUnits(t *testing.T) {
	d := mustNew(t, reldelta.Options{Days: 1.75})

	assert.Equal(t, 151200.0, d.ToSeconds())
	assert.Equal(t, 151200000.0, d.ToMilliseconds())
	assert.Equal(t, 2520.0, d.ToMinutes())
	assert.Equal(t, 42.0, d.ToHours())
	assert.Equal(t, 1.75, d.ToDays())
	assert.Equal(t, 0.25, d.ToWeeks())
}

func TestToWeeks_NoBinaryNoise(t *testing.T) {
	// 1.75 days / 7 is exactly 0.25 but intermediate division would leave
	// 0.24999999999999997 without the cleanup pass.
	d := mustNew(t, reldelta.Options{Hours: 42})
	assert.Equal(t, 0.25, d.ToWeeks())
}

func TestToMonths_SnapsWholeMonthSpans(t *testing.T) {
	// 91 calendar days is 2.9898 mean months; within tolerance it reads as 3.
	ref := calendar.NewDate(2024, time.January, 15)
	d := mustNew(t, reldelta.Options{Months: 3})
	assert.Equal(t, 3.0, d.ToMonths(ref))

	// A plain day count far from a whole month is left alone.
	d = mustNew(t, reldelta.Options{Days: 45})
	got := d.ToMonths()
	assert.InDelta(t, 45.0/30.436875, got, 1e-9)
	assert.NotEqual(t, 1.0, got)
	assert.NotEqual(t, 2.0, got)
}

func TestToYears(t *testing.T) {
	d := mustNew(t, reldelta.Options{Years: 2})
	assert.Equal(t, 2.0, d.ToYears(calendar.NewDate(2021, time.March, 1)))

	d = mustNew(t, reldelta.Options{Months: 18})
	assert.Equal(t, 1.5, d.ToYears(calendar.NewDate(2021, time.July, 1)))
}

func TestConversion_ReferenceDayOfMonthClamps(t *testing.T) {
	// One month from Jan 31 clamps to Feb 29 in a leap year: 29 days.
	d := mustNew(t, reldelta.Options{Months: 1})
	assert.Equal(t, 29.0*86400, d.ToSeconds(calendar.NewDate(2020, time.January, 31)))
}

func TestConversion_IgnoresAbsoluteOverrides(t *testing.T) {
	// Only the relative offset has a duration.
	d := mustNew(t, reldelta.Options{Days: 2, Year: intPtr(1999), Hour: intPtr(5)})
	assert.Equal(t, 2.0*86400, d.ToSeconds())
}
