package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/delta-engine/reldelta"
)

// deltaFlags collects the delta-shaped flags shared by apply and convert.
type deltaFlags struct {
	years, months, weeks, days        float64
	hours, minutes, seconds, millis   int
	leapDays                          int
	year, month, day                  int
	hour, minute, second, millisecond int
	weekday                           string
	weekdayN                          int
	yearDay, nonLeapYearDay           int
}

func registerDeltaFlags(cmd *cobra.Command, f *deltaFlags) {
	fs := cmd.Flags()
	fs.Float64Var(&f.years, "years", 0, "relative years to add")
	fs.Float64Var(&f.months, "months", 0, "relative months to add")
	fs.Float64Var(&f.weeks, "weeks", 0, "relative weeks to add (folded into days)")
	fs.Float64Var(&f.days, "days", 0, "relative days to add")
	fs.IntVar(&f.hours, "hours", 0, "relative hours to add")
	fs.IntVar(&f.minutes, "minutes", 0, "relative minutes to add")
	fs.IntVar(&f.seconds, "seconds", 0, "relative seconds to add")
	fs.IntVar(&f.millis, "milliseconds", 0, "relative milliseconds to add")
	fs.IntVar(&f.leapDays, "leap-days", 0, "extra days applied in a leap year past February")

	// Absolute overrides use -1 as the unset sentinel; every valid value
	// for these fields is non-negative.
	fs.IntVar(&f.year, "year", -1, "force the year field (1-9999)")
	fs.IntVar(&f.month, "month", -1, "force the month field (1-12)")
	fs.IntVar(&f.day, "day", -1, "force the day field (1-31, clamped to month length)")
	fs.IntVar(&f.hour, "hour", -1, "force the hour field (0-23)")
	fs.IntVar(&f.minute, "minute", -1, "force the minute field (0-59)")
	fs.IntVar(&f.second, "second", -1, "force the second field (0-59)")
	fs.IntVar(&f.millisecond, "millisecond", -1, "force the millisecond field (0-999)")

	fs.StringVar(&f.weekday, "weekday", "", "move to a weekday (MO..SU)")
	fs.IntVar(&f.weekdayN, "nth", 1, "weekday occurrence count (negative searches backward)")
	fs.IntVar(&f.yearDay, "year-day", -1, "absolute day of year (1-366, leap-aware)")
	fs.IntVar(&f.nonLeapYearDay, "non-leap-year-day", -1, "absolute day of year ignoring February 29")
}

func (f *deltaFlags) build() (*reldelta.Delta, error) {
	opts := reldelta.Options{
		Years:        f.years,
		Months:       f.months,
		Weeks:        f.weeks,
		Days:         f.days,
		Hours:        f.hours,
		Minutes:      f.minutes,
		Seconds:      f.seconds,
		Milliseconds: f.millis,
		LeapDays:     f.leapDays,
	}

	set := func(dst **int, v int) {
		if v >= 0 {
			val := v
			*dst = &val
		}
	}
	set(&opts.Year, f.year)
	set(&opts.Month, f.month)
	set(&opts.Day, f.day)
	set(&opts.Hour, f.hour)
	set(&opts.Minute, f.minute)
	set(&opts.Second, f.second)
	set(&opts.Millisecond, f.millisecond)
	set(&opts.YearDay, f.yearDay)
	set(&opts.NonLeapYearDay, f.nonLeapYearDay)

	if f.weekday != "" {
		day, err := reldelta.ParseWeekdayCode(f.weekday)
		if err != nil {
			return nil, err
		}
		wd, err := reldelta.NewWeekday(day, f.weekdayN)
		if err != nil {
			return nil, err
		}
		opts.WeekDay = wd
	}

	d, err := reldelta.New(opts)
	if err != nil {
		return nil, fmt.Errorf("invalid delta: %w", err)
	}
	return d, nil
}
