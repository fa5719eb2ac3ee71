package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "A task and time tracking CLI application",
	Long: `tally plans your day as a list of tasks and tracks the time you spend on them.

Usage:
  tally                                  Show today's tasks
  tally day [date]                       Show the tasks of a day
  tally task add <name> [@project] [#code]
                                         Add a task for today
  tally start <task> [--sub <n>]         Start the timer on a task or sub-task
  tally stop                             Stop the timer and log the time
  tally time add <task> 1h30m            Log time manually
  tally week [date]                      Weekly summary (optionally as PDF)
  tally export --format csv              Export tasks and time entries
  tally tui                              Interactive terminal UI

Tasks are referenced by id or by an id prefix of at least 4 characters.

Dates use the YYYY-MM-DD format and default to today.
Amounts: Yh (hours), Ym (minutes), or YhYm (combined), e.g. 2h, 30m, 1h30m`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		handlers.ShowDay(cli.GetDeps(), "", handlers.DayFilter{})
	},
}

// dayCmd represents the day command
var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show the tasks of a day",
	Long: `Show the tasks planned for a day with their tracked time.

Without a date, today's tasks are shown. Filters narrow the list:

Examples:
  tally day
  tally day 2024-03-04
  tally day --search docs
  tally day --project Website --code ACME-1`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		search, _ := cmd.Flags().GetString("search")
		project, _ := cmd.Flags().GetString("project")
		code, _ := cmd.Flags().GetString("code")
		handlers.ShowDay(cli.GetDeps(), argOr(args, 0, ""), handlers.DayFilter{
			Search:  search,
			Project: project,
			Code:    code,
		})
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)

	dayCmd.Flags().StringP("search", "s", "", "Only show tasks whose name or description contains the keyword")
	dayCmd.Flags().StringP("project", "p", "", "Only show tasks of the project")
	dayCmd.Flags().StringP("code", "c", "", "Only show tasks with the billing code")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"tally version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// argOr returns args[i], or def when the argument was not given.
func argOr(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}
