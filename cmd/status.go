package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of the current timer",
	Long: `Show the task of the running timer, when it started and how long it has run.
If no timer is running, displays a message indicating that.

Examples:
  tally status`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowTimerStatus(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
