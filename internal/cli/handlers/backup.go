package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/tally/internal/cli"
)

// RestoreBackup lists the backups and restores generation n (1 is the
// most recent)
func RestoreBackup(deps *cli.Deps, n int) {
	if !ready(deps) {
		return
	}
	backups, err := deps.Services.Backup.List()
	if err != nil {
		fail(deps, err)
		return
	}
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, b := range backups {
		label := fmt.Sprintf("  %d: %s", b.Number, strings.Join(b.Keys, ", "))
		if b.Number == 1 {
			label += " (most recent)"
		}
		_, _ = fmt.Fprintln(deps.Stdout, label)
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	exists := false
	for _, b := range backups {
		if b.Number == n {
			exists = true
			break
		}
	}
	if !exists {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup %d does not exist\n", n)
		deps.Exit(1)
		return
	}

	keys, err := deps.Services.Backup.Restore(n)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if len(keys) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Backup %d matches the current data, nothing restored\n", n)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored %s from backup %d\n", strings.Join(keys, ", "), n)
}

