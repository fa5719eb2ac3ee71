// Package handlers implements the CLI commands on top of the service layer.
// Handlers write results to deps.Stdout, diagnostics to deps.Stderr, and
// call deps.Exit(1) on failure.
package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/storage"
	"github.com/xolan/tally/internal/tracker"
)

// ready reports whether storage is available, printing the failure if not.
func ready(deps *cli.Deps) bool {
	if deps.Services != nil {
		return true
	}
	err := deps.Err
	if err == nil {
		err = errors.New("storage is not available")
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to open storage: %v\n", err)
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check the storage and data_dir settings with 'tally config'")
	deps.Exit(1)
	return false
}

// fail prints err with a hint matching its kind and exits.
func fail(deps *cli.Deps, err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	if hint := hintFor(err); hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, service.ErrAmbiguousID):
		return "Use more characters of the id"
	case errors.Is(err, service.ErrIDTooShort):
		return fmt.Sprintf("Ids need at least %d characters", service.MinIDPrefix)
	case errors.Is(err, tracker.ErrConflict):
		return "Stop it with 'tally stop', or use --force to stop it and start the new one"
	case errors.Is(err, tracker.ErrReferentialIntegrity):
		return "Move or delete the tasks that use it first"
	case errors.Is(err, tracker.ErrInsufficientTime):
		return "See the logged time with 'tally day'"
	case errors.Is(err, tracker.ErrNotFound):
		return "List tasks with 'tally day [date]'"
	case errors.Is(err, service.ErrBackupsUnsupported):
		return "Set storage = \"json\" in the config file to keep backups"
	}
	return ""
}

// printWarnings reports values that could not be decoded.
func printWarnings(deps *cli.Deps, warnings []storage.ParseWarning) {
	if len(warnings) == 0 {
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Warning: %d stored %s could not be read and %s reset:\n",
		len(warnings), cli.Pluralize("value", len(warnings)), pick(len(warnings) == 1, "was", "were"))
	for _, w := range warnings {
		_, _ = fmt.Fprintln(deps.Stderr, cli.FormatCorruptionWarning(w))
	}
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'tally doctor' for details or 'tally restore' to roll back")
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
