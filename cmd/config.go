package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for tally.

Shows the configuration file location, whether it exists, and all current settings.
By default, tally works without any configuration file. All settings have defaults:
  - week_start_day: monday
  - timezone: Local (system timezone)
  - storage: json (also: diskv, sqlite)
  - data_dir: (empty, uses the data directory next to the config file)
  - theme: dracula
  - tone: purple (also: blue, teal, pink)

Examples:
  tally config                     Show all current settings
  tally config --init              Create a sample config file

Configuration file location:
  ~/.config/tally/config.toml      Linux
  %APPDATA%\tally\config.toml      Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initFlag, _ := cmd.Flags().GetBool("init")
		if initFlag {
			handlers.InitConfig(cli.GetDeps())
			return
		}
		handlers.ShowConfig(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("init", false, "Create a sample config file with all options documented")
}
