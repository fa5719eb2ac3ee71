package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
	"github.com/xolan/tally/internal/storage"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore data from a backup",
	Long: fmt.Sprintf(`Restore stored data from a backup.

The json storage keeps up to %d backups of every value it replaces.
By default the most recent backup (1) is restored.

Examples:
  tally restore       Restore from most recent backup
  tally restore 2     Restore from backup #2`, storage.MaxBackupCount),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restoreFromBackup(args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

// restoreFromBackup validates the backup number and restores it
func restoreFromBackup(args []string) {
	deps := cli.GetDeps()
	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			deps.Exit(1)
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", storage.MaxBackupCount, num)
			deps.Exit(1)
			return
		}
		backupNum = num
	}
	handlers.RestoreBackup(deps, backupNum)
}
