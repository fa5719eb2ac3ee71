package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// weekCmd represents the week command
var weekCmd = &cobra.Command{
	Use:   "week [date]",
	Short: "Show the weekly summary",
	Long: `Show the time tracked in the week containing the date (this week by default),
per day, per project and per billing code.

The week starts on the configured week_start_day. With --pdf the summary is
also written as a PDF report.

Examples:
  tally week
  tally week 2024-03-04
  tally week --pdf report.pdf`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pdfPath, _ := cmd.Flags().GetString("pdf")
		handlers.ShowWeek(cli.GetDeps(), argOr(args, 0, ""), pdfPath)
	},
}

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored data for problems",
	Long: `Check the stored data for unreadable values and broken references, such as
time entries of deleted tasks or tasks without a project.

With --fix the data is normalized and saved: invalid records are dropped and
positions renumbered. The json storage keeps a backup of every value it
replaces, so a repair can be undone with 'tally restore'.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fix, _ := cmd.Flags().GetBool("fix")
		handlers.Doctor(cli.GetDeps(), fix)
	},
}

func init() {
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(doctorCmd)

	weekCmd.Flags().String("pdf", "", "Also write the summary as a PDF to this path")
	doctorCmd.Flags().Bool("fix", false, "Repair the problems found and save")
}
