package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// favCmd groups the favorite template commands
var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favorite task templates",
	Long: `Favorites remember a task's name, description, project and billing code
so the same task can be added again in one step.

Examples:
  tally fav save 3f2a
  tally fav use standup
  tally fav use standup -d 2024-03-05`,
}

var favListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List favorites",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListFavorites(cli.GetDeps())
	},
}

var favSaveCmd = &cobra.Command{
	Use:   "save <task>",
	Short: "Save a task as a favorite",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.SaveFavorite(cli.GetDeps(), args[0])
	},
}

var favUseCmd = &cobra.Command{
	Use:   "use <favorite>",
	Short: "Add a task from a favorite",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		handlers.UseFavorite(cli.GetDeps(), args[0], date)
	},
}

var favDeleteCmd = &cobra.Command{
	Use:   "delete <favorite>",
	Short: "Delete a favorite",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.DeleteFavorite(cli.GetDeps(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(favCmd)
	favCmd.AddCommand(favListCmd, favSaveCmd, favUseCmd, favDeleteCmd)

	favUseCmd.Flags().StringP("date", "d", "", "Day of the new task (YYYY-MM-DD, default today)")
}
