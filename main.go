package main

import (
	"fmt"
	"os"

	"github.com/xolan/tally/cmd"
	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/config"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run executes the CLI and returns the process exit code. An unreadable
// config file is reported before any command runs.
func run() int {
	if path, err := config.GetConfigPath(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: Failed to determine config file location: %v\n", err)
		return 1
	} else if _, err := config.LoadOrDefault(path); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintf(os.Stderr, "Hint: Fix or remove the config file at %s\n", path)
		return 1
	}

	cmd.SetVersionInfo(version, commit, date)
	defer cli.ResetDeps()
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
