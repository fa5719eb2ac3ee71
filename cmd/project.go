package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// projectCmd groups the project commands
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long: `Every task belongs to a project. Projects have a name and a display color.

Projects are referenced by id, id prefix or name (case-insensitive).`,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListProjects(cli.GetDeps())
	},
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a project",
	Long: `Add a project. Names must be unique, ignoring case.

Examples:
  tally project add Website
  tally project add "Internal tools" --color "#10b981"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		color, _ := cmd.Flags().GetString("color")
		handlers.AddProject(cli.GetDeps(), strings.Join(args, " "), color)
	},
}

var projectEditCmd = &cobra.Command{
	Use:   "edit <project>",
	Short: "Rename or recolor a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, color := optionalString(cmd, "name"), optionalString(cmd, "color")
		handlers.EditProject(cli.GetDeps(), args[0], name, color)
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project>",
	Short: "Delete a project that no task uses",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.DeleteProject(cli.GetDeps(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectListCmd, projectAddCmd, projectEditCmd, projectDeleteCmd)

	projectAddCmd.Flags().String("color", "", "Display color as #rrggbb (default is picked from the palette)")
	projectEditCmd.Flags().String("name", "", "New name")
	projectEditCmd.Flags().String("color", "", "New color as #rrggbb")
}

// optionalString returns the flag value, or nil when it was not set
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
