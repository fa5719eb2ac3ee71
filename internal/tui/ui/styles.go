package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabBar       lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	TabSeparator lipgloss.Style

	// Content area
	Content   lipgloss.Style
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusHelp  lipgloss.Style

	// Task list
	TaskSelected  lipgloss.Style
	TaskNormal    lipgloss.Style
	TaskDone      lipgloss.Style
	TaskID        lipgloss.Style
	TaskImportant lipgloss.Style
	TaskDuration  lipgloss.Style
	TaskProject   lipgloss.Style
	TaskCode      lipgloss.Style
	SubTask       lipgloss.Style

	// Timer
	TimerRunning lipgloss.Style
	TimerStopped lipgloss.Style
	TimerElapsed lipgloss.Style

	// Week summary
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Bar       lipgloss.Style
	BarEmpty  lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette holds the semantic colours a Styles set is built from.
type palette struct {
	primary    lipgloss.TerminalColor
	secondary  lipgloss.TerminalColor
	accent     lipgloss.TerminalColor
	muted      lipgloss.TerminalColor
	success    lipgloss.TerminalColor
	warning    lipgloss.TerminalColor
	errorColor lipgloss.TerminalColor
	fg         lipgloss.TerminalColor
	bg         lipgloss.TerminalColor
	selection  lipgloss.TerminalColor
}

// DefaultStyles returns the default TUI styles
func DefaultStyles() Styles {
	return buildStyles(palette{
		primary:    lipgloss.Color("99"),  // Purple
		secondary:  lipgloss.Color("39"),  // Cyan
		accent:     lipgloss.Color("212"), // Pink
		muted:      lipgloss.Color("240"),
		success:    lipgloss.Color("82"),
		warning:    lipgloss.Color("214"),
		errorColor: lipgloss.Color("196"),
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
		selection:  lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// The tone selects the accent used for tabs, titles and projects; unknown
// tones fall back to purple.
func NewStylesFromRegistry(r *tint.Registry, tone string) Styles {
	return buildStyles(palette{
		primary:    ToneColor(r, tone),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		selection:  r.BrightBlack(),
	})
}

// ToneColor maps a tone name onto a colour of the current tint.
func ToneColor(r *tint.Registry, tone string) lipgloss.TerminalColor {
	switch tone {
	case "blue":
		return r.Blue()
	case "teal":
		return r.Cyan()
	case "pink":
		return r.BrightPurple()
	default:
		return r.Purple()
	}
}

func buildStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),
		TabSeparator: lipgloss.NewStyle().
			Foreground(p.muted).
			SetString("|"),

		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(p.fg),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		TaskSelected: lipgloss.NewStyle().
			Background(p.selection).
			Bold(true),
		TaskNormal: lipgloss.NewStyle().
			Foreground(p.fg),
		TaskDone: lipgloss.NewStyle().
			Foreground(p.muted).
			Strikethrough(true),
		TaskID: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(6),
		TaskImportant: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		TaskDuration: lipgloss.NewStyle().
			Foreground(p.accent).
			Width(10).
			Align(lipgloss.Right),
		TaskProject: lipgloss.NewStyle().
			Foreground(p.primary),
		TaskCode: lipgloss.NewStyle().
			Foreground(p.secondary),
		SubTask: lipgloss.NewStyle().
			Foreground(p.muted).
			PaddingLeft(8),

		TimerRunning: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		TimerStopped: lipgloss.NewStyle().
			Foreground(p.muted),
		TimerElapsed: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),
		Bar: lipgloss.NewStyle().
			Foreground(p.primary),
		BarEmpty: lipgloss.NewStyle().
			Foreground(p.muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.muted),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
