package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/delta-engine/factory"
	"github.com/warp/delta-engine/reldelta"
)

var diffCountLeapDays bool

var diffCmd = &cobra.Command{
	Use:   "diff <date1> <date2>",
	Short: "Compute the delta between two dates",
	Long: "Computes the delta d such that applying d to date2 approximately\n" +
		"recovers date1 (exactly, when no month-end clamping was involved).",
	Example: `  reldelta diff 2020-01-01 2021-12-31T23:59:59
  reldelta diff 2020-01-01 2024-06-01 --count-leap-days`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date1, err := factory.ParseTimePoint(args[0])
		if err != nil {
			return err
		}
		date2, err := factory.ParseTimePoint(args[1])
		if err != nil {
			return err
		}
		delta := reldelta.Diff(date1, date2, reldelta.DiffOptions{CountLeapDays: diffCountLeapDays})
		fmt.Fprintln(cmd.OutOrStdout(), delta)
		return nil
	},
}

func init() {
	diffCmd.Flags().BoolVar(&diffCountLeapDays, "count-leap-days", false,
		"accumulate February 29ths between the dates into leap days")
	rootCmd.AddCommand(diffCmd)
}
