/*
convert.go - Duration-equivalent scalars

PURPOSE:
  Expresses a delta as a count of a fixed-duration unit. Years and months
  have no fixed length, so whenever either is nonzero the conversion
  re-derives the exact calendar days they span relative to a reference
  instant (default: now): two noon-normalized clones of the reference are
  taken, one advanced by the years/months components, and the whole-day
  difference between them joins the day total.

FLOATING-POINT CLEANUP:
  Repeated division breeds binary noise (0.24999999999999997 weeks). Every
  scalar goes through cleanScalar before return: values within 1e-6 of an
  integer snap to it, everything else is rounded to 10 decimal places
  using decimal arithmetic. ToMonths additionally snaps within 0.06 of an
  integer, absorbing the leap-year day-count wobble across spans of whole
  months.

UNITS:
  ToMonths divides by 30.436875 days, the mean Gregorian month
  (365.2425 / 12); ToYears is ToMonths / 12.
*/
package reldelta

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/warp/delta-engine/calendar"
)

const (
	secondsPerDay  = 86400
	secondsPerWeek = 604800

	// Mean Gregorian month in days: 365.2425 / 12.
	meanMonthDays = 30.436875

	// monthSnapTolerance absorbs leap-year variation when a span of whole
	// calendar months is expressed in mean-month units.
	monthSnapTolerance = 0.06

	integerSnapEpsilon = 1e-6
)

// ToSeconds returns the delta's duration in seconds relative to the given
// reference instant, defaulting to the current instant. Absolute overrides
// do not participate; only the relative offset has a duration.
func (d *Delta) ToSeconds(ref ...calendar.TimePoint) float64 {
	days := d.Offset.Days + float64(d.Offset.LeapDays)

	if d.Offset.Years != 0 || d.Offset.Months != 0 {
		reference := calendar.Now()
		if len(ref) > 0 {
			reference = ref[0]
		}
		// Noon-normalize both clones so a daylight-saving boundary in the
		// span cannot skew the whole-day count.
		base := reference.WithHour(12).WithMinute(0).WithSecond(0).WithMillisecond(0)
		shifted := base
		if d.Offset.Years != 0 {
			shifted = shifted.AddYears(d.Offset.Years)
		}
		if d.Offset.Months != 0 {
			shifted = addMonthsClamped(shifted, d.Offset.Months)
		}
		days += float64(calendar.DaysBetween(base, shifted))
	}

	total := days*secondsPerDay +
		float64(d.Offset.Hours)*3600 +
		float64(d.Offset.Minutes)*60 +
		float64(d.Offset.Seconds) +
		float64(d.Offset.Milliseconds)/1000

	return cleanScalar(total)
}

// ToMilliseconds returns the duration in milliseconds.
func (d *Delta) ToMilliseconds(ref ...calendar.TimePoint) float64 {
	return cleanScalar(d.ToSeconds(ref...) * 1000)
}

// ToMinutes returns the duration in minutes.
func (d *Delta) ToMinutes(ref ...calendar.TimePoint) float64 {
	return cleanScalar(d.ToSeconds(ref...) / 60)
}

// ToHours returns the duration in hours.
func (d *Delta) ToHours(ref ...calendar.TimePoint) float64 {
	return cleanScalar(d.ToSeconds(ref...) / 3600)
}

// ToDays returns the duration in days.
func (d *Delta) ToDays(ref ...calendar.TimePoint) float64 {
	return cleanScalar(d.ToSeconds(ref...) / secondsPerDay)
}

// ToWeeks returns the duration in weeks.
func (d *Delta) ToWeeks(ref ...calendar.TimePoint) float64 {
	return cleanScalar(d.ToSeconds(ref...) / secondsPerWeek)
}

// ToMonths returns the duration in mean Gregorian months, snapped to the
// nearest integer when within the month tolerance.
func (d *Delta) ToMonths(ref ...calendar.TimePoint) float64 {
	months := d.ToDays(ref...) / meanMonthDays
	if nearest := math.Round(months); math.Abs(months-nearest) < monthSnapTolerance {
		months = nearest
	}
	return cleanScalar(months)
}

// ToYears returns the duration in mean Gregorian years.
func (d *Delta) ToYears(ref ...calendar.TimePoint) float64 {
	return cleanScalar(d.ToMonths(ref...) / 12)
}

// cleanScalar suppresses binary floating-point noise: values within 1e-6 of
// an integer become that integer, anything else is rounded to 10 decimal
// places. Genuine fractional results survive.
func cleanScalar(v float64) float64 {
	if nearest := math.Round(v); math.Abs(v-nearest) < integerSnapEpsilon {
		return nearest
	}
	rounded, _ := decimal.NewFromFloat(v).Round(10).Float64()
	return rounded
}
