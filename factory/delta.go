/*
Package factory provides JSON to delta conversion.

PURPOSE:
  Converts JSON delta definitions into reldelta.Delta values. This is the
  boundary layer: it parses dates from strings, rejects fractional values
  where the engine demands integers, and hands reldelta a fully typed
  Options record. The engine itself never sees a string.

WHY JSON?
  - Named deltas stored in the database as config blobs
  - API request bodies carry the same shape inline
  - Diff results serialize back out through the same type

JSON SCHEMA:
  {
    "years": 1, "months": -2, "weeks": 0.5, "days": 3,
    "hours": 4, "minutes": 5, "seconds": 6, "milliseconds": 7,
    "leap_days": 0,
    "year": 2025, "month": 6, "day": 31,
    "hour": 9, "minute": 30, "second": 0, "millisecond": 0,
    "week_day": ["MO", 2],
    "year_day": 100,
    "date1": "2025-01-01", "date2": "2025-06-15T12:00:00",
    "count_leap_days": true
  }

  week_day also accepts a bare code ("FR") or a bare number (4).
  All keys are optional; an empty object is a valid no-op delta.

FLOAT HANDLING:
  JSON numbers arrive as float64. Fields the engine requires to be whole
  (everything except weeks/days) are checked for fractional parts here,
  before range validation, so "month": 2.5 fails as a non-integer rather
  than as out-of-range.

SEE ALSO:
  - reldelta/options.go: The typed construction this feeds
  - api/dto.go:          Request/response types embedding DeltaJSON
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/delta-engine/calendar"
	"github.com/warp/delta-engine/reldelta"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// DeltaJSON is the JSON representation of a delta configuration.
type DeltaJSON struct {
	Date1         string `json:"date1,omitempty"`
	Date2         string `json:"date2,omitempty"`
	CountLeapDays bool   `json:"count_leap_days,omitempty"`

	Years        *float64 `json:"years,omitempty"`
	Months       *float64 `json:"months,omitempty"`
	Weeks        *float64 `json:"weeks,omitempty"`
	Days         *float64 `json:"days,omitempty"`
	LeapDays     *float64 `json:"leap_days,omitempty"`
	Hours        *float64 `json:"hours,omitempty"`
	Minutes      *float64 `json:"minutes,omitempty"`
	Seconds      *float64 `json:"seconds,omitempty"`
	Milliseconds *float64 `json:"milliseconds,omitempty"`

	Year        *float64 `json:"year,omitempty"`
	Month       *float64 `json:"month,omitempty"`
	Day         *float64 `json:"day,omitempty"`
	Hour        *float64 `json:"hour,omitempty"`
	Minute      *float64 `json:"minute,omitempty"`
	Second      *float64 `json:"second,omitempty"`
	Millisecond *float64 `json:"millisecond,omitempty"`

	WeekDay any `json:"week_day,omitempty"`

	YearDay        *float64 `json:"year_day,omitempty"`
	NonLeapYearDay *float64 `json:"non_leap_year_day,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// Parse converts a JSON string into a Delta.
func Parse(raw string) (*reldelta.Delta, error) {
	var dj DeltaJSON
	if err := json.Unmarshal([]byte(raw), &dj); err != nil {
		return nil, fmt.Errorf("failed to parse delta JSON: %w", err)
	}
	return FromJSON(dj)
}

// FromJSON converts a decoded DeltaJSON into a Delta.
func FromJSON(dj DeltaJSON) (*reldelta.Delta, error) {
	opts, err := OptionsFromJSON(dj)
	if err != nil {
		return nil, err
	}
	return reldelta.New(opts)
}

// OptionsFromJSON translates the JSON shape into typed engine options.
func OptionsFromJSON(dj DeltaJSON) (reldelta.Options, error) {
	var opts reldelta.Options

	if dj.Date1 != "" {
		tp, err := ParseTimePoint(dj.Date1)
		if err != nil {
			return opts, fmt.Errorf("date1: %w", err)
		}
		opts.Date1 = &tp
	}
	if dj.Date2 != "" {
		tp, err := ParseTimePoint(dj.Date2)
		if err != nil {
			return opts, fmt.Errorf("date2: %w", err)
		}
		opts.Date2 = &tp
	}
	opts.CountLeapDays = dj.CountLeapDays

	// Years/Months stay float64: the engine itself reports fractional input.
	opts.Years = orZero(dj.Years)
	opts.Months = orZero(dj.Months)
	opts.Weeks = orZero(dj.Weeks)
	opts.Days = orZero(dj.Days)

	// The remaining relative fields must be whole numbers.
	var err error
	if opts.LeapDays, err = wholeInt("leap_days", dj.LeapDays); err != nil {
		return opts, err
	}
	if opts.Hours, err = wholeInt("hours", dj.Hours); err != nil {
		return opts, err
	}
	if opts.Minutes, err = wholeInt("minutes", dj.Minutes); err != nil {
		return opts, err
	}
	if opts.Seconds, err = wholeInt("seconds", dj.Seconds); err != nil {
		return opts, err
	}
	if opts.Milliseconds, err = wholeInt("milliseconds", dj.Milliseconds); err != nil {
		return opts, err
	}

	// Absolute fields: float-ness is checked before range, so 2.5 reports
	// as non-integer rather than out-of-range.
	if opts.Year, err = wholeIntPtr("year", dj.Year); err != nil {
		return opts, err
	}
	if opts.Month, err = wholeIntPtr("month", dj.Month); err != nil {
		return opts, err
	}
	if opts.Day, err = wholeIntPtr("day", dj.Day); err != nil {
		return opts, err
	}
	if opts.Hour, err = wholeIntPtr("hour", dj.Hour); err != nil {
		return opts, err
	}
	if opts.Minute, err = wholeIntPtr("minute", dj.Minute); err != nil {
		return opts, err
	}
	if opts.Second, err = wholeIntPtr("second", dj.Second); err != nil {
		return opts, err
	}
	if opts.Millisecond, err = wholeIntPtr("millisecond", dj.Millisecond); err != nil {
		return opts, err
	}
	if opts.YearDay, err = wholeIntPtr("year_day", dj.YearDay); err != nil {
		return opts, err
	}
	if opts.NonLeapYearDay, err = wholeIntPtr("non_leap_year_day", dj.NonLeapYearDay); err != nil {
		return opts, err
	}

	if opts.WeekDay, err = normalizeWeekDayJSON(dj.WeekDay); err != nil {
		return opts, err
	}

	return opts, nil
}

// ToJSON renders a delta back into its JSON shape, used for diff responses.
func ToJSON(d *reldelta.Delta) DeltaJSON {
	var dj DeltaJSON
	setRel := func(dst **float64, v float64) {
		if v != 0 {
			val := v
			*dst = &val
		}
	}
	setRel(&dj.Years, float64(d.Offset.Years))
	setRel(&dj.Months, float64(d.Offset.Months))
	setRel(&dj.Days, d.Offset.Days)
	setRel(&dj.LeapDays, float64(d.Offset.LeapDays))
	setRel(&dj.Hours, float64(d.Offset.Hours))
	setRel(&dj.Minutes, float64(d.Offset.Minutes))
	setRel(&dj.Seconds, float64(d.Offset.Seconds))
	setRel(&dj.Milliseconds, float64(d.Offset.Milliseconds))

	setAbs := func(dst **float64, v *int) {
		if v != nil {
			val := float64(*v)
			*dst = &val
		}
	}
	setAbs(&dj.Year, d.Override.Year)
	setAbs(&dj.Month, d.Override.Month)
	setAbs(&dj.Day, d.Override.Day)
	setAbs(&dj.Hour, d.Override.Hour)
	setAbs(&dj.Minute, d.Override.Minute)
	setAbs(&dj.Second, d.Override.Second)
	setAbs(&dj.Millisecond, d.Override.Millisecond)

	if wd := d.Override.WeekDay; wd != nil {
		dj.WeekDay = []any{wd.Code(), float64(wd.N)}
	}
	return dj
}

// =============================================================================
// DATE PARSING
// =============================================================================

var timeLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimePoint parses the date layouts the boundary accepts. The engine
// itself never parses strings; this is the only place layouts live.
func ParseTimePoint(s string) (calendar.TimePoint, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar.FromTime(t), nil
		}
	}
	return calendar.TimePoint{}, fmt.Errorf("unrecognized date %q (want RFC3339 or 2006-01-02)", s)
}

// =============================================================================
// HELPERS
// =============================================================================

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func wholeInt(name string, v *float64) (int, error) {
	if v == nil {
		return 0, nil
	}
	if *v != float64(int(*v)) {
		return 0, fmt.Errorf("%s must be an integer, got %v", name, *v)
	}
	return int(*v), nil
}

func wholeIntPtr(name string, v *float64) (*int, error) {
	if v == nil {
		return nil, nil
	}
	n, err := wholeInt(name, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// normalizeWeekDayJSON maps decoded JSON weekday shapes onto the inputs
// ResolveWeekday understands (bare float64 codes become ints).
func normalizeWeekDayJSON(v any) (any, error) {
	switch in := v.(type) {
	case nil, string, []any:
		return in, nil
	case float64:
		if in != float64(int(in)) {
			return nil, fmt.Errorf("week_day code must be an integer, got %v", in)
		}
		return int(in), nil
	default:
		return nil, fmt.Errorf("unsupported week_day input %T", v)
	}
}
