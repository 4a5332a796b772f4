package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/delta-engine/factory"
)

var applyFlags deltaFlags

var applyCmd = &cobra.Command{
	Use:   "apply <date>",
	Short: "Apply a delta to a date",
	Example: `  reldelta apply 2023-01-01 --months 2 --days -1
  reldelta apply 2020-01-31 --months 1 --day 31
  reldelta apply 2023-01-30 --weekday MO --nth 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tp, err := factory.ParseTimePoint(args[0])
		if err != nil {
			return err
		}
		delta, err := applyFlags.build()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), delta.ApplyToDate(tp))
		return nil
	},
}

func init() {
	registerDeltaFlags(applyCmd, &applyFlags)
	rootCmd.AddCommand(applyCmd)
}
