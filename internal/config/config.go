package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xolan/tally/internal/osutil"
	"github.com/xolan/tally/internal/timeutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Storage backends. They mirror the names accepted by storage.Open.
var validStorage = []string{"json", "diskv", "sqlite"}

// Tones are the accent colours of the TUI.
var validTones = []string{"purple", "blue", "teal", "pink"}

// Tones returns the accepted tone names in display order.
func Tones() []string {
	return append([]string(nil), validTones...)
}

// Config represents the application configuration
type Config struct {
	// WeekStartDay defines which day starts the week (monday or sunday)
	WeekStartDay string `toml:"week_start_day"`
	// Timezone defines the timezone for time operations (IANA timezone name, e.g., "America/New_York")
	Timezone string `toml:"timezone"`
	// Storage selects the storage backend (json, diskv or sqlite)
	Storage string `toml:"storage"`
	// DataDir overrides the data directory; empty means <UserConfigDir>/tally/data
	DataDir string `toml:"data_dir"`
	// Theme is the bubbletint theme id used by the TUI
	Theme string `toml:"theme"`
	// Tone is the TUI accent colour
	Tone string `toml:"tone"`
}

// DefaultConfig returns a Config with sensible defaults.
// - week_start_day: "monday" (ISO 8601 standard)
// - timezone: "Local" (use system local timezone)
// - storage: "json" (one JSON file per key, with backups)
func DefaultConfig() Config {
	return Config{
		WeekStartDay: "monday",
		Timezone:     "Local",
		Storage:      "json",
		DataDir:      "",
		Theme:        "dracula",
		Tone:         "purple",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	appDir, err := osutil.AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads and validates the config file at path. Fields missing from the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path, or returns DefaultConfig when the
// file does not exist. An existing but invalid file is an error.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to check config file: %w", err)
	}
	return Load(path)
}

// Normalize lowercases and trims the enumerated fields and fills empty ones
// with their defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	c.WeekStartDay = strings.ToLower(strings.TrimSpace(c.WeekStartDay))
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	c.DataDir = strings.TrimSpace(c.DataDir)
	c.Theme = strings.TrimSpace(c.Theme)
	c.Tone = strings.ToLower(strings.TrimSpace(c.Tone))
	if c.Storage == "" {
		c.Storage = def.Storage
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Tone == "" {
		c.Tone = def.Tone
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.WeekStartDay != "monday" && c.WeekStartDay != "sunday" {
		return fmt.Errorf("invalid week_start_day %q: must be \"monday\" or \"sunday\"", c.WeekStartDay)
	}
	if c.Timezone != "" && c.Timezone != "Local" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}
	if !contains(validStorage, c.Storage) {
		return fmt.Errorf("invalid storage %q: must be one of %s", c.Storage, strings.Join(validStorage, ", "))
	}
	if !contains(validTones, c.Tone) {
		return fmt.Errorf("invalid tone %q: must be one of %s", c.Tone, strings.Join(validTones, ", "))
	}
	return nil
}

// Location returns the configured time zone. Empty and "Local" mean the
// process local zone.
func (c Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// WeekStart returns the configured first day of the week.
func (c Config) WeekStart() time.Weekday {
	wd, err := timeutil.ParseWeekday(c.WeekStartDay)
	if err != nil {
		return time.Monday
	}
	return wd
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	var b strings.Builder
	b.WriteString("# tally configuration file\n\n")
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// GenerateSampleConfig returns a commented sample configuration file.
func GenerateSampleConfig() string {
	return `# tally configuration file
# Uncomment and edit the values you want to change.

# Week start day: "monday" or "sunday"
# week_start_day = "monday"

# Timezone: IANA timezone name or "Local"
# Examples: "America/New_York", "Europe/London", "Asia/Tokyo"
# timezone = "Local"

# Storage backend: "json" (files with backups), "diskv" or "sqlite"
# storage = "json"

# Data directory (defaults to <config dir>/tally/data)
# data_dir = ""

# TUI theme (any bubbletint theme id, e.g. "dracula", "nord", "gruvbox_dark")
# theme = "dracula"

# TUI accent tone: "purple", "blue", "teal" or "pink"
# tone = "purple"
`
}
