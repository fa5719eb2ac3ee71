package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/tally/internal/cli"
)

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	if !ready(deps) {
		return
	}
	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "week_start_day: %s\n", cfg.WeekStartDay)
	_, _ = fmt.Fprintf(deps.Stdout, "timezone:       %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "storage:        %s\n", cfg.Storage)
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "data_dir:       %s\n", dataDir)
	_, _ = fmt.Fprintf(deps.Stdout, "theme:          %s\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "tone:           %s\n", cfg.Tone)
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	if !ready(deps) {
		return
	}
	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}
