package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for tally.

Views available:
  - Day: Plan the day, run timers and complete tasks
  - Week: Time per day, project and billing code

Keyboard shortcuts:
  - Tab/Shift+Tab: Switch views
  - ←/→: Previous/next day or week, t: back to today
  - j/k or arrows: Move the selection
  - a: Add a task, s: Start/stop the timer, c: Complete, i: Important
  - K/J: Move the selected task up/down, d: Delete
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI runs the TUI over the shared services
func runTUI() {
	deps := cli.GetDeps()
	if deps.Services == nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error initializing services: %v\n", deps.Err)
		deps.Exit(1)
		return
	}

	if err := tui.Run(deps.Services); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI()
		return true
	}
	return false
}
