package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// timeCmd groups the manual time commands
var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Add or subtract tracked time manually",
	Long: `Adjust the time tracked on a task without running a timer.

Amounts: Yh (hours), Ym (minutes), or YhYm (combined), e.g. 2h, 30m, 1h30m`,
}

var timeAddCmd = &cobra.Command{
	Use:   "add <task> <amount>",
	Short: "Log time on a task",
	Long: `Log time on a task as a manual time entry starting at the current time of day.

The entry goes on the task's own day, or on the day given with --date.

Examples:
  tally time add 3f2a 45m
  tally time add 3f2a 1h30m -d 2024-03-01`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		handlers.AddTime(cli.GetDeps(), args[0], args[1], date)
	},
}

var timeSubCmd = &cobra.Command{
	Use:   "sub <task> <amount>",
	Short: "Remove time from a task",
	Long: `Remove time from a task's entries, newest first.

The task must have at least the given amount logged on the day. Time logged
on sub-tasks is never touched.

Examples:
  tally time sub 3f2a 15m`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		handlers.SubtractTime(cli.GetDeps(), args[0], args[1], date)
	},
}

func init() {
	rootCmd.AddCommand(timeCmd)
	timeCmd.AddCommand(timeAddCmd, timeSubCmd)

	timeAddCmd.Flags().StringP("date", "d", "", "Day to log the time on (YYYY-MM-DD, default the task's day)")
	timeSubCmd.Flags().StringP("date", "d", "", "Day to remove the time from (YYYY-MM-DD, default the task's day)")
}
