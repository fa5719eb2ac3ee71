package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the default theme used when no theme is configured
const DefaultTheme = "dracula"

// DefaultTone is the accent used when no tone is configured
const DefaultTone = "purple"

// ThemeProvider manages TUI themes using bubbletint
type ThemeProvider struct {
	registry *tint.Registry
	tone     string
}

// NewThemeProvider creates a new ThemeProvider with the specified initial theme
// and accent tone.
// If initialTheme is empty or unknown, DefaultTheme is used.
func NewThemeProvider(initialTheme, tone string) *ThemeProvider {
	// Get all available tints
	allTints := tint.DefaultTints()

	// Find the default tint
	var defaultTint tint.Tint
	for _, t := range allTints {
		if t.ID() == DefaultTheme {
			defaultTint = t
			break
		}
	}

	// Fallback to first tint if default not found
	if defaultTint == nil && len(allTints) > 0 {
		defaultTint = allTints[0]
	}

	// Create registry with all tints
	registry := tint.NewRegistry(defaultTint, allTints...)

	// Set initial theme if specified
	if initialTheme != "" {
		registry.SetTintID(initialTheme)
	}

	if tone == "" {
		tone = DefaultTone
	}

	return &ThemeProvider{
		registry: registry,
		tone:     tone,
	}
}

// SetTheme sets the current theme by name.
// Returns true if the theme was found and set, false otherwise.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// NextTheme cycles to the next theme.
// Returns the name of the new current theme.
func (tp *ThemeProvider) NextTheme() string {
	tp.registry.NextTint()
	return tp.registry.ID()
}

// PreviousTheme cycles to the previous theme.
// Returns the name of the new current theme.
func (tp *ThemeProvider) PreviousTheme() string {
	tp.registry.PreviousTint()
	return tp.registry.ID()
}

// Tone returns the accent tone.
func (tp *ThemeProvider) Tone() string {
	return tp.tone
}

// SetTone changes the accent tone used by Styles.
func (tp *ThemeProvider) SetTone(tone string) {
	tp.tone = tone
}

// CurrentName returns the name of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the display name of the current theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns a sorted list of all available theme names.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Registry returns the underlying bubbletint registry for direct color access.
func (tp *ThemeProvider) Registry() *tint.Registry {
	return tp.registry
}

// Styles returns a Styles struct configured for the current theme and tone.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry, tp.tone)
}
