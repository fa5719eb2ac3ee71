package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// subCmd groups the sub-task commands
var subCmd = &cobra.Command{
	Use:   "sub",
	Short: "Manage the sub-tasks of a task",
	Long: `Add, complete and delete sub-tasks.

Sub-tasks are referenced by id or by their 1-based position under the task,
as shown by 'tally day' and 'tally task show'.`,
}

var subAddCmd = &cobra.Command{
	Use:   "add <task> <name>",
	Short: "Add a sub-task",
	Long: `Add a sub-task to the end of a task's checklist.

Examples:
  tally sub add 3f2a draft outline`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AddSubTask(cli.GetDeps(), args[0], strings.Join(args[1:], " "))
	},
}

var subDoneCmd = &cobra.Command{
	Use:   "done <task> <sub>",
	Short: "Toggle a sub-task between completed and open",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ToggleSubTaskDone(cli.GetDeps(), args[0], args[1])
	},
}

var subDeleteCmd = &cobra.Command{
	Use:   "delete <task> <sub>",
	Short: "Delete a sub-task",
	Long:  `Delete a sub-task. A timer running on it is discarded.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.DeleteSubTask(cli.GetDeps(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(subCmd)
	subCmd.AddCommand(subAddCmd, subDoneCmd, subDeleteCmd)
}
