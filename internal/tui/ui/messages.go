package ui

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ToneChangeRequestMsg is sent when the accent tone should change.
type ToneChangeRequestMsg struct {
	Tone string
}

// ThemeChangedMsg is broadcast to all views when the theme or tone changes.
type ThemeChangedMsg struct {
	ThemeName string
	Tone      string
	Styles    Styles
}

// DataChangedMsg is broadcast after a view modified stored data so that the
// other views reload.
type DataChangedMsg struct{}
