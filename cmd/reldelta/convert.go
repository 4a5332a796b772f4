package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/delta-engine/calendar"
	"github.com/warp/delta-engine/factory"
	"github.com/warp/delta-engine/reldelta"
)

var (
	convertFlags     deltaFlags
	convertUnit      string
	convertReference string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Express a delta as a count of a fixed unit",
	Long: "Converts a delta to a scalar. Deltas carrying years or months are\n" +
		"measured against a reference date (default: now), because calendar\n" +
		"periods have no fixed duration.",
	Example: `  reldelta convert --days 15 --unit seconds
  reldelta convert --months 3 --unit days --reference 2024-01-15`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := convertFlags.build()
		if err != nil {
			return err
		}

		var refs []calendar.TimePoint
		if convertReference != "" {
			tp, err := factory.ParseTimePoint(convertReference)
			if err != nil {
				return err
			}
			refs = append(refs, tp)
		}

		value, err := convertTo(delta, convertUnit, refs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%g %s\n", value, convertUnit)
		return nil
	},
}

func convertTo(d *reldelta.Delta, unit string, refs []calendar.TimePoint) (float64, error) {
	switch unit {
	case "seconds":
		return d.ToSeconds(refs...), nil
	case "milliseconds":
		return d.ToMilliseconds(refs...), nil
	case "minutes":
		return d.ToMinutes(refs...), nil
	case "hours":
		return d.ToHours(refs...), nil
	case "days":
		return d.ToDays(refs...), nil
	case "weeks":
		return d.ToWeeks(refs...), nil
	case "months":
		return d.ToMonths(refs...), nil
	case "years":
		return d.ToYears(refs...), nil
	default:
		return 0, fmt.Errorf("unknown unit %q (want seconds, milliseconds, minutes, hours, days, weeks, months or years)", unit)
	}
}

func init() {
	registerDeltaFlags(convertCmd, &convertFlags)
	convertCmd.Flags().StringVar(&convertUnit, "unit", "seconds", "target unit")
	convertCmd.Flags().StringVar(&convertReference, "reference", "", "reference date for calendar-relative deltas")
	rootCmd.AddCommand(convertCmd)
}
