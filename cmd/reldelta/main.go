// Command reldelta is a CLI front end for the delta engine: apply a
// compound offset to a date, diff two dates, or express an offset as a
// scalar count of a fixed unit.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reldelta",
	Short: "Calendar-aware relative date arithmetic",
	Long: "reldelta applies compound calendar offsets (years, months, weeks, days,\n" +
		"time-of-day units, absolute overrides, nth-weekday searches) to dates,\n" +
		"computes the offset between two dates, and converts offsets to fixed units.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
