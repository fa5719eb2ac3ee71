// Package tui provides the Terminal User Interface for the tally application.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/tui/ui"
	"github.com/xolan/tally/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabDay Tab = iota
	TabWeek
	TabConfig
)

var tabNames = []string{"Day", "Week", "Config"}

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	dayView    views.DayModel
	weekView   views.WeekModel
	configView views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(services *service.Services) Model {
	cfg := services.Config.Get()
	themeProvider := ui.NewThemeProvider(cfg.Theme, cfg.Tone)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabDay,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		dayView:       views.NewDayModel(services, styles, keys),
		weekView:      views.NewWeekModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dayView.Init(),
		m.dayView.Tick(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A modal view (typing a task, confirming a delete) keeps all keys
		// except ctrl+c.
		if m.isModal() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m.updateActive(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab):
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1):
			m.activeTab = TabDay
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2):
			m.activeTab = TabWeek
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab3):
			m.activeTab = TabConfig
			return m, m.initCurrentView()
		}
		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // Account for tabs and status bar
		m.dayView.SetSize(m.width, contentHeight)
		m.weekView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		return m.applyTheme()

	case ui.ToneChangeRequestMsg:
		m.themeProvider.SetTone(msg.Tone)
		return m.applyTheme()
	}

	// Everything else goes to every view so that loads and timer ticks are
	// not lost while a view is in the background.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.dayView, cmd = m.dayView.Update(msg)
	cmds = append(cmds, cmd)
	m.weekView, cmd = m.weekView.Update(msg)
	cmds = append(cmds, cmd)
	m.configView, cmd = m.configView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// updateActive passes a key to the active view
func (m Model) updateActive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabDay:
		m.dayView, cmd = m.dayView.Update(msg)
	case TabWeek:
		m.weekView, cmd = m.weekView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}
	return m, cmd
}

// applyTheme rebuilds the styles, broadcasts them and persists the choice
func (m Model) applyTheme() (tea.Model, tea.Cmd) {
	m.styles = m.themeProvider.Styles()

	themeMsg := ui.ThemeChangedMsg{
		ThemeName: m.themeProvider.CurrentName(),
		Tone:      m.themeProvider.Tone(),
		Styles:    m.styles,
	}
	m.dayView, _ = m.dayView.Update(themeMsg)
	m.weekView, _ = m.weekView.Update(themeMsg)
	m.configView, _ = m.configView.Update(themeMsg)

	return m, m.saveThemeConfig(themeMsg.ThemeName, themeMsg.Tone)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabDay:
		b.WriteString(m.dayView.View())
	case TabWeek:
		b.WriteString(m.weekView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.dayView.IsInputMode() && m.activeTab == TabDay {
		parts = append(parts, m.renderKeyHelp("Enter", "add"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabDay:
			parts = append(parts, m.renderKeyHelp("a", "add"))
			parts = append(parts, m.renderKeyHelp("s", "start/stop"))
			parts = append(parts, m.renderKeyHelp("c", "done"))
			parts = append(parts, m.renderKeyHelp("i", "important"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
			parts = append(parts, m.renderKeyHelp("←/→", "day"))
		case TabWeek:
			parts = append(parts, m.renderKeyHelp("←/→", "week"))
			parts = append(parts, m.renderKeyHelp("t", "this week"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
			parts = append(parts, m.renderKeyHelp("←/→", "tone"))
		}

		parts = append(parts, m.renderKeyHelp("1-3", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModal reports whether the active view is waiting for input
func (m Model) isModal() bool {
	return m.activeTab == TabDay && m.dayView.IsModal()
}

// initCurrentView reloads the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabDay:
		return m.dayView.Init()
	case TabWeek:
		return m.weekView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme and tone to the config file
func (m Model) saveThemeConfig(themeName, tone string) tea.Cmd {
	return func() tea.Msg {
		cfg := m.services.Config.Get()
		cfg.Theme = themeName
		cfg.Tone = tone
		_ = m.services.Config.Update(cfg)
		return nil
	}
}

// GetThemeProvider returns the theme provider for use by views
func (m Model) GetThemeProvider() *ui.ThemeProvider {
	return m.themeProvider
}

// renderHelpOverlay renders the keyboard shortcuts of the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-3    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabDay:
		help.WriteString(m.styles.StatLabel.Render("Day:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  h/l        Previous/next day\n")
		help.WriteString("  t          Today\n")
		help.WriteString("  a          Add task (@project #code)\n")
		help.WriteString("  s          Start/stop timer\n")
		help.WriteString("  x          Discard running timer\n")
		help.WriteString("  c          Toggle done\n")
		help.WriteString("  i          Toggle important\n")
		help.WriteString("  K/J        Move task up/down\n")
		help.WriteString("  d          Delete task\n")
		help.WriteString("  r          Refresh\n")
	case TabWeek:
		help.WriteString(m.styles.StatLabel.Render("Week:"))
		help.WriteString("\n")
		help.WriteString("  h/l        Previous/next week\n")
		help.WriteString("  t          This week\n")
		help.WriteString("  r          Refresh\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  h/l        Change tone\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(services *service.Services) error {
	model := New(services)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
