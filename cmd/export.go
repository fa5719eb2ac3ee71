package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks and time entries",
	Long: `Export tasks with their time entries for backup, invoicing or scripting.

Formats:
  json    Tasks, time entries, projects and billing codes as one JSON document
  yaml    The same document as YAML
  csv     One row per task with its resolved project, code and tracked time

Date Filtering:
  Use --from and --to to filter by date range
  Use --last to filter by relative days (e.g., 'last 7 days')

Filtering:
  Use --search to match the task name or description
  Use --project and --code to select one project or billing code

Examples:
  tally export                                 Export everything as JSON
  tally export --format csv -o march.csv       Write a CSV file
  tally export --format yaml --last 7          Last 7 days as YAML
  tally export --from 2024-03-01 --to 2024-03-31 --project Website`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		var ef handlers.ExportFlags
		ef.Format, _ = flags.GetString("format")
		ef.Output, _ = flags.GetString("output")
		ef.From, _ = flags.GetString("from")
		ef.To, _ = flags.GetString("to")
		ef.Last, _ = flags.GetInt("last")
		ef.Keyword, _ = flags.GetString("search")
		ef.Project, _ = flags.GetString("project")
		ef.Code, _ = flags.GetString("code")
		handlers.Export(cli.GetDeps(), ef)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", "json", "Output format: json, yaml or csv")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	exportCmd.Flags().String("to", "", "End date (YYYY-MM-DD, default today)")
	exportCmd.Flags().Int("last", 0, "Only the last N days, including today")
	exportCmd.Flags().StringP("search", "s", "", "Only tasks whose name or description contains the keyword")
	exportCmd.Flags().StringP("project", "p", "", "Only tasks of the project")
	exportCmd.Flags().StringP("code", "c", "", "Only tasks with the billing code")
}
