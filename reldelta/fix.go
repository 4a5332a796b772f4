/*
fix.go - Overflow cascade and fractional normalization

PURPOSE:
  Two value transforms over RelativeOffset:
  - fixOffset: the construction-time cascade. Each field's magnitude is
    reduced modulo its base and the carry moves one unit up, lowest to
    highest, exactly once per field. Days and Years are the tops of
    their chains and absorb whatever arrives.
  - Delta.Normalized: carries a fractional Days remainder down into
    integer smaller units, leaving Years/Months untouched (a fraction
    of a calendar period has no duration without a reference instant).

  Both are pure: they take a value, return a value, mutate nothing.

INVARIANT (after fixOffset):
  |Milliseconds| < 1000, |Seconds| < 60, |Minutes| < 60, |Hours| < 24,
  |Months| < 12, and every field shares sign with the carry it emitted.
*/
package reldelta

import "math"

// fixOffset cascades overflow into larger units: milliseconds through days
// on the time chain, months into years on the calendar chain. Single pass,
// fixed order, sign-preserving.
func fixOffset(r RelativeOffset) RelativeOffset {
	r.Seconds += carry(&r.Milliseconds, 1000)
	r.Minutes += carry(&r.Seconds, 60)
	r.Hours += carry(&r.Minutes, 60)
	r.Days += float64(carry(&r.Hours, 24))
	r.Years += carry(&r.Months, 12)
	return r
}

// carry reduces *field modulo base, preserving sign, and returns the whole
// multiples that move to the next unit up.
func carry(field *int, base int) int {
	v := *field
	if v >= base || v <= -base {
		sign := 1
		if v < 0 {
			sign = -1
			v = -v
		}
		*field = (v % base) * sign
		return (v / base) * sign
	}
	return 0
}

// Normalized returns a new delta with any fractional day remainder cascaded
// down into integer hours, minutes, seconds and milliseconds. Idempotent:
// normalizing an already-integral delta returns an equal value.
func (d *Delta) Normalized() *Delta {
	days := math.Trunc(d.Offset.Days)

	hoursF := float64(d.Offset.Hours) + 24*(d.Offset.Days-days)
	hours := math.Trunc(hoursF)

	minutesF := float64(d.Offset.Minutes) + 60*(hoursF-hours)
	minutes := math.Trunc(minutesF)

	secondsF := float64(d.Offset.Seconds) + 60*(minutesF-minutes)
	seconds := math.Floor(secondsF)

	milliseconds := math.Round(float64(d.Offset.Milliseconds) + 1000*(secondsF-seconds))

	// Re-running the cascade mops up any secondary overflow the carries
	// introduced (e.g. milliseconds reaching 1000 after rounding).
	offset := fixOffset(RelativeOffset{
		Years:        d.Offset.Years,
		Months:       d.Offset.Months,
		Days:         days,
		Hours:        int(hours),
		Minutes:      int(minutes),
		Seconds:      int(seconds),
		Milliseconds: int(milliseconds),
		LeapDays:     d.Offset.LeapDays,
	})

	return &Delta{Offset: offset, Override: d.Override}
}
