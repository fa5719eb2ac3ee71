package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/tui/ui"
)

// themeRows is the number of themes the picker shows at once.
const themeRows = 10

// ConfigModel shows the effective settings and lets the user pick the
// theme and accent tone.
type ConfigModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int

	cfg    config.Config
	path   string
	exists bool

	// Applied appearance, as last confirmed by the root model.
	themeName string
	tone      string

	picking bool
	themes  picker
}

// NewConfigModel creates a config view starting from the provider's theme
// and tone.
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	m := ConfigModel{
		services:  services,
		styles:    styles,
		keys:      keys,
		themeName: themeProvider.CurrentName(),
		tone:      themeProvider.Tone(),
		themes:    newPicker(themeProvider.AvailableThemes(), themeRows),
	}
	m.themes.focus(m.themeName)
	return m
}

type configLoadedMsg struct {
	cfg    config.Config
	path   string
	exists bool
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	services := m.services
	return func() tea.Msg {
		return configLoadedMsg{
			cfg:    services.Config.Get(),
			path:   services.Config.GetPath(),
			exists: services.Config.Exists(),
		}
	}
}

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Select), msg.String() == "t":
			m.picking = true
			m.themes.focus(m.themeName)
		case key.Matches(msg, m.keys.Right):
			return m, send(ui.ToneChangeRequestMsg{Tone: cycleTone(m.tone, 1)})
		case key.Matches(msg, m.keys.Left):
			return m, send(ui.ToneChangeRequestMsg{Tone: cycleTone(m.tone, -1)})
		}

	case configLoadedMsg:
		m.cfg, m.path, m.exists = msg.cfg, msg.path, msg.exists
		m.themeName = orDefault(msg.cfg.Theme, ui.DefaultTheme)
		m.tone = orDefault(msg.cfg.Tone, ui.DefaultTone)
		m.themes.focus(m.themeName)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.tone = msg.Tone
	}
	return m, nil
}

func (m ConfigModel) updatePicker(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.themes.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.themes.move(1)
	case key.Matches(msg, m.keys.Select):
		m.picking = false
		return m, send(ui.ThemeChangeRequestMsg{ThemeName: m.themes.selected()})
	case key.Matches(msg, m.keys.Back):
		m.picking = false
		m.themes.focus(m.themeName)
	}
	return m, nil
}

// send wraps a message in a command.
func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// cycleTone returns the tone step positions away from current.
func cycleTone(current string, step int) string {
	tones := config.Tones()
	idx := 0
	for i, t := range tones {
		if t == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(tones)) % len(tones)
	return tones[idx]
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	b.WriteString(statLine(m.styles, "Config file:", m.path))
	state := m.styles.Warning.Render("Using defaults (no config file)")
	if m.exists {
		state = m.styles.Success.Render("File exists")
	}
	b.WriteString(m.styles.StatLabel.Render("Status:") + " " + state + "\n\n")

	settings := [][2]string{
		{"week_start_day", m.cfg.WeekStartDay},
		{"timezone", m.cfg.Timezone},
		{"storage", m.cfg.Storage},
	}
	if m.cfg.DataDir != "" {
		settings = append(settings, [2]string{"data_dir", m.cfg.DataDir})
	}
	settings = append(settings, [2]string{"tone", m.tone})
	if !m.picking {
		settings = append(settings, [2]string{"theme", m.themeName})
	}
	for _, s := range settings {
		b.WriteString(statLine(m.styles, fmt.Sprintf("%-16s", s[0]+":"), s[1]))
	}

	b.WriteString("\n")
	if m.picking {
		b.WriteString(statLine(m.styles, "theme:", "Select a theme"))
		b.WriteString(m.themes.render(m.styles, m.themeName))
		b.WriteString("\n")
		b.WriteString(m.styles.HelpDesc.Render("↑/↓ navigate  Enter select  Esc cancel"))
	} else {
		b.WriteString(m.styles.HelpDesc.Render("Enter/t theme  ←/→ tone"))
	}
	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
