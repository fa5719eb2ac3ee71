package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running timer and log the time",
	Long: `Stop the running timer and record the elapsed time.

A main-task timer produces a time entry; a sub-task timer adds the time to
the sub-task.

Examples:
  tally stop`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.StopTimer(cli.GetDeps())
	},
}

// cancelCmd represents the cancel command
var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the running timer without logging time",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.CancelTimer(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(cancelCmd)
}
