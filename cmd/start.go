package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <task>",
	Short: "Start a timer for a task",
	Long: `Start the timer on a task, or on one of its sub-tasks with --sub.

Only one timer runs at a time. The timer survives restarts and runs until
you stop it with 'tally stop'. Stopping a main-task timer logs a time entry;
stopping a sub-task timer adds the time to the sub-task.

Use --force to stop the running timer (logging its time) and start the new one.

Examples:
  tally start 3f2a
  tally start 3f2a --sub 2
  tally start 3f2a --force`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sub, _ := cmd.Flags().GetString("sub")
		force, _ := cmd.Flags().GetBool("force")
		handlers.StartTimer(cli.GetDeps(), args[0], sub, force)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringP("sub", "s", "", "Sub-task id or 1-based position")
	startCmd.Flags().BoolP("force", "f", false, "Stop the running timer and start this one")
}
