package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// codeCmd groups the billing code commands
var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Manage billing codes",
	Long: `Billing codes are optional accounting codes attached to tasks.

Codes are referenced by id, id prefix or the code itself (case-insensitive).`,
}

var codeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List billing codes",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListBillingCodes(cli.GetDeps())
	},
}

var codeAddCmd = &cobra.Command{
	Use:   "add <code>",
	Short: "Add a billing code",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AddBillingCode(cli.GetDeps(), args[0])
	},
}

var codeEditCmd = &cobra.Command{
	Use:   "edit <code> <new-code>",
	Short: "Change a billing code",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.EditBillingCode(cli.GetDeps(), args[0], args[1])
	},
}

var codeDeleteCmd = &cobra.Command{
	Use:   "delete <code>",
	Short: "Delete a billing code that no task uses",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.DeleteBillingCode(cli.GetDeps(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(codeCmd)
	codeCmd.AddCommand(codeListCmd, codeAddCmd, codeEditCmd, codeDeleteCmd)
}
