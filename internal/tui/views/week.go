package views

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/stats"
	"github.com/xolan/tally/internal/timeutil"
	"github.com/xolan/tally/internal/tui/ui"
)

// barWidth is the width of a full activity bar
const barWidth = 30

// WeekModel is the model for the weekly summary view
type WeekModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	date    string
	report  *service.WeekReport
	loading bool
	err     error
}

// NewWeekModel creates a new week view model showing the current week
func NewWeekModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) WeekModel {
	return WeekModel{
		services: services,
		styles:   styles,
		keys:     keys,
		date:     timeutil.DateKey(services.Session().Now()),
		loading:  true,
	}
}

// weekLoadedMsg is sent when the week report is loaded
type weekLoadedMsg struct {
	report *service.WeekReport
	err    error
}

// Init implements tea.Model
func (m WeekModel) Init() tea.Cmd {
	return m.loadWeek()
}

// Update implements tea.Model
func (m WeekModel) Update(msg tea.Msg) (WeekModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Left):
			return m.shiftWeek(-7)
		case key.Matches(msg, m.keys.Right):
			return m.shiftWeek(7)
		case key.Matches(msg, m.keys.Today):
			m.date = timeutil.DateKey(m.services.Session().Now())
			return m, m.loadWeek()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadWeek()
		}

	case weekLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
		}

	case ui.DataChangedMsg:
		return m, m.loadWeek()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

func (m WeekModel) shiftWeek(days int) (WeekModel, tea.Cmd) {
	next, err := timeutil.ShiftDateKey(m.date, days, m.services.Session().Location())
	if err != nil {
		m.err = err
		return m, nil
	}
	m.date = next
	return m, m.loadWeek()
}

// View implements tea.Model
func (m WeekModel) View() string {
	var b strings.Builder

	title := "Week"
	if m.report != nil {
		title = fmt.Sprintf("Week of %s to %s",
			m.report.Start.Format("Jan 2"), m.report.End.Format("Jan 2 2006"))
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.report == nil {
		b.WriteString("No data")
		return b.String()
	}

	r := m.report
	for _, d := range r.Days {
		b.WriteString(m.renderDay(d))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(statLine(m.styles, "Total time:", timeutil.FormatDuration(r.Total)))
	b.WriteString(statLine(m.styles, "Tasks:", fmt.Sprintf("%d completed, %d active (%d %s)",
		r.Status.Completed, r.Status.Active, r.Status.Total, pluralize("task", r.Status.Total))))

	if len(r.ByProject) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("By Project"))
		b.WriteString("\n")
		b.WriteString(m.renderBreakdown(r.ByProject, "@"))
	}

	if len(r.ByCode) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("By Billing Code"))
		b.WriteString("\n")
		b.WriteString(m.renderBreakdown(r.ByCode, "#"))
	}

	return b.String()
}

// renderDay renders one weekday with a bar scaled to the busiest day
func (m WeekModel) renderDay(d stats.DayActivity) string {
	filled := int(math.Round(d.Ratio * barWidth))
	filled = max(0, min(barWidth, filled))
	bar := m.styles.Bar.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled))

	label := d.Date.Format("Mon 02")
	if d.Key == timeutil.DateKey(m.services.Session().Now()) {
		label = m.styles.TabActive.UnsetPadding().Render(label)
	}
	return fmt.Sprintf("  %s  %s  %s", label, bar, timeutil.FormatDuration(d.Total))
}

func (m WeekModel) renderBreakdown(items []stats.Breakdown, prefix string) string {
	var b strings.Builder
	for _, it := range items {
		name := prefix + it.Name
		if it.Color != "" {
			name = lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Render(name)
		}
		pad := max(0, 20-lipgloss.Width(name))
		b.WriteString(fmt.Sprintf("  %s%s %10s\n", name, strings.Repeat(" ", pad), timeutil.FormatDuration(it.Duration)))
	}
	return b.String()
}

// SetSize sets the view dimensions
func (m *WeekModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Date returns the date key whose week is shown
func (m WeekModel) Date() string {
	return m.date
}

// loadWeek creates a command to load the week report
func (m WeekModel) loadWeek() tea.Cmd {
	date := m.date
	return func() tea.Msg {
		report, err := m.services.Report.Week(context.Background(), date)
		return weekLoadedMsg{report: report, err: err}
	}
}
