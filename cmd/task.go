package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
	"github.com/xolan/tally/internal/service"
)

// taskCmd groups the task commands
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long: `Add, edit, complete, reorder and delete tasks.

Tasks are referenced by id or by an id prefix of at least 4 characters, as
shown by 'tally day'.`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a task",
	Long: `Add a task to a day (today by default).

Without --project or --code, "@project" and "#code" tokens in the name select
them; without a project token the first project is used.

Examples:
  tally task add write release notes
  tally task add review pull request @website #ACME-1
  tally task add planning -p Website -d 2024-03-05 --desc "quarterly"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		date, _ := flags.GetString("date")
		desc, _ := flags.GetString("desc")
		project, _ := flags.GetString("project")
		code, _ := flags.GetString("code")
		handlers.AddTask(cli.GetDeps(), service.NewTask{
			Name:        strings.Join(args, " "),
			Description: desc,
			Date:        date,
			Project:     project,
			Code:        code,
		})
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <task>",
	Short: "Edit a task",
	Long: `Change the name, description, date, project, billing code or position of a task.

An empty --code removes the billing code.

Examples:
  tally task edit 3f2a --name "write changelog"
  tally task edit 3f2a --date 2024-03-05
  tally task edit 3f2a --code ""`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.EditTask(cli.GetDeps(), args[0], taskChanges(cmd))
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task>",
	Short: "Delete a task and its time entries",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.DeleteTask(cli.GetDeps(), args[0], yes)
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <task>",
	Short: "Toggle a task between completed and open",
	Long: `Toggle a task between completed and open.

Completing a task whose timer is running stops the timer first.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ToggleTaskDone(cli.GetDeps(), args[0])
	},
}

var taskImportantCmd = &cobra.Command{
	Use:   "important <task>",
	Short: "Toggle the important flag of a task",
	Long:  `Toggle the important flag. Important tasks move to the top of their day.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ToggleTaskImportant(cli.GetDeps(), args[0])
	},
}

var taskReorderCmd = &cobra.Command{
	Use:   "reorder <task> [target]",
	Short: "Move a task onto the position of another task",
	Long: `Move a task onto the position of another task of the same day.

Dropping a task on one above it inserts it before that task; dropping it on
one below inserts it after. Without a target the task moves to the end.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ReorderTask(cli.GetDeps(), args[0], argOr(args, 1, ""))
	},
}

var taskUpCmd = &cobra.Command{
	Use:   "up <task>",
	Short: "Move a task one position up",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShiftTask(cli.GetDeps(), args[0], true)
	},
}

var taskDownCmd = &cobra.Command{
	Use:   "down <task>",
	Short: "Move a task one position down",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShiftTask(cli.GetDeps(), args[0], false)
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <task> <date>",
	Short: "Move a task to another day",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.MoveTask(cli.GetDeps(), args[0], args[1])
	},
}

var taskCopyCmd = &cobra.Command{
	Use:   "copy <task> <date>",
	Short: "Copy a task to another day",
	Long: `Copy a task to another day. Sub-tasks are copied unchecked and
without their logged time; time entries are not copied.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.CopyTask(cli.GetDeps(), args[0], args[1])
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <task>",
	Short: "Show the details of a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowTask(cli.GetDeps(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskEditCmd, taskDeleteCmd, taskDoneCmd, taskImportantCmd,
		taskReorderCmd, taskUpCmd, taskDownCmd, taskMoveCmd, taskCopyCmd, taskShowCmd)

	taskAddCmd.Flags().StringP("date", "d", "", "Day of the task (YYYY-MM-DD, default today)")
	taskAddCmd.Flags().String("desc", "", "Task description")
	taskAddCmd.Flags().StringP("project", "p", "", "Project name or id")
	taskAddCmd.Flags().StringP("code", "c", "", "Billing code or id")

	taskEditCmd.Flags().String("name", "", "New name")
	taskEditCmd.Flags().String("desc", "", "New description")
	taskEditCmd.Flags().StringP("date", "d", "", "New date (YYYY-MM-DD)")
	taskEditCmd.Flags().StringP("project", "p", "", "New project name or id")
	taskEditCmd.Flags().StringP("code", "c", "", "New billing code or id (empty removes it)")
	taskEditCmd.Flags().Int("order", 0, "New position within the day (1-based)")

	taskDeleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking for confirmation")
}

// taskChanges collects the edit flags that were set on the command line
func taskChanges(cmd *cobra.Command) service.TaskChanges {
	flags := cmd.Flags()
	var c service.TaskChanges
	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	c.Name = str("name")
	c.Description = str("desc")
	c.Date = str("date")
	c.Project = str("project")
	c.Code = str("code")
	if flags.Changed("order") {
		n, _ := flags.GetInt("order")
		n--
		c.Order = &n
	}
	return c
}
