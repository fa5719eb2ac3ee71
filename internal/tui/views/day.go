package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/timeutil"
	"github.com/xolan/tally/internal/tui/ui"
)

// dayMode represents the current mode of the day view
type dayMode int

const (
	dayModeNormal dayMode = iota
	dayModeAdd
	dayModeDelete
)

// DayModel is the model for the day view
type DayModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	date    string
	cursor  int
	day     *service.DayResult
	elapsed time.Duration
	status  string
	loading bool
	err     error

	mode     dayMode
	addInput textinput.Model
}

// NewDayModel creates a new day view model showing today
func NewDayModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) DayModel {
	addInput := textinput.New()
	addInput.Placeholder = "Task name (@project #code)..."
	addInput.CharLimit = 200
	addInput.Width = 50

	return DayModel{
		services: services,
		styles:   styles,
		keys:     keys,
		date:     timeutil.DateKey(services.Session().Now()),
		loading:  true,
		addInput: addInput,
	}
}

// dayLoadedMsg is sent when the tasks of a day are loaded
type dayLoadedMsg struct {
	day *service.DayResult
	err error
}

// dayActionMsg is sent when a task or timer action finished
type dayActionMsg struct {
	status string
	err    error
}

// dayTickMsg is sent every second to update the running timer
type dayTickMsg time.Time

// Init implements tea.Model
func (m DayModel) Init() tea.Cmd {
	return m.loadDay()
}

// Tick starts the once-a-second refresh of the running timer.
func (m DayModel) Tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return dayTickMsg(t)
	})
}

// Update implements tea.Model
func (m DayModel) Update(msg tea.Msg) (DayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case dayModeAdd:
			return m.handleAddMode(msg)
		case dayModeDelete:
			return m.handleDeleteMode(msg)
		}
		return m.handleNormalMode(msg)

	case dayLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.day = msg.day
			m.date = msg.day.Date
			m.elapsed = 0
			if msg.day.Timer != nil && msg.day.Timer.Running {
				m.elapsed = msg.day.Timer.Elapsed
			}
			if m.cursor >= len(m.day.Tasks) {
				m.cursor = max(0, len(m.day.Tasks)-1)
			}
		}
		return m, nil

	case dayActionMsg:
		m.status = msg.status
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		return m, tea.Batch(m.loadDay(), dataChanged)

	case dayTickMsg:
		if t := m.runningTimer(); t != nil {
			start := timeutil.FromMillis(t.Timer.StartTime, m.services.Session().Location())
			m.elapsed = m.services.Session().Now().Sub(start)
		}
		return m, m.Tick()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode == dayModeAdd {
		var cmd tea.Cmd
		m.addInput, cmd = m.addInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m DayModel) handleNormalMode(msg tea.KeyMsg) (DayModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.day != nil && m.cursor < len(m.day.Tasks)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Left):
		return m.shiftDay(-1)
	case key.Matches(msg, m.keys.Right):
		return m.shiftDay(1)
	case key.Matches(msg, m.keys.Today):
		m.date = timeutil.DateKey(m.services.Session().Now())
		m.cursor = 0
		return m, m.loadDay()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadDay()
	case key.Matches(msg, m.keys.Add):
		m.mode = dayModeAdd
		m.addInput.SetValue("")
		m.addInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Cancel):
		if m.runningTimer() != nil {
			return m, m.cancelTimer()
		}
		return m, nil
	}

	task := m.selected()
	if task == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Delete):
		m.mode = dayModeDelete
		return m, nil
	case key.Matches(msg, m.keys.Timer):
		return m, m.toggleTimer(task.Task.ID)
	case key.Matches(msg, m.keys.Complete):
		return m, m.toggleComplete(task.Task.ID)
	case key.Matches(msg, m.keys.Important):
		return m, m.toggleImportant(task.Task.ID)
	case key.Matches(msg, m.keys.MoveUp):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, m.move(task.Task.ID, true)
	case key.Matches(msg, m.keys.MoveDown):
		if m.cursor < len(m.day.Tasks)-1 {
			m.cursor++
		}
		return m, m.move(task.Task.ID, false)
	}
	return m, nil
}

// handleAddMode handles key events while a new task is typed
func (m DayModel) handleAddMode(msg tea.KeyMsg) (DayModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		text := strings.TrimSpace(m.addInput.Value())
		if text == "" {
			return m, nil
		}
		m.mode = dayModeNormal
		m.addInput.Blur()
		return m, m.addTask(text)
	case key.Matches(msg, m.keys.Back):
		m.mode = dayModeNormal
		m.addInput.Blur()
		m.addInput.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

// handleDeleteMode handles key events when in delete confirmation mode
func (m DayModel) handleDeleteMode(msg tea.KeyMsg) (DayModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm), msg.String() == "Y":
		m.mode = dayModeNormal
		if task := m.selected(); task != nil {
			return m, m.deleteTask(task.Task.ID)
		}
	case msg.String() == "n", msg.String() == "N", key.Matches(msg, m.keys.Back):
		m.mode = dayModeNormal
	}
	return m, nil
}

func (m DayModel) shiftDay(days int) (DayModel, tea.Cmd) {
	next, err := timeutil.ShiftDateKey(m.date, days, m.services.Session().Location())
	if err != nil {
		m.err = err
		return m, nil
	}
	m.date = next
	m.cursor = 0
	m.status = ""
	return m, m.loadDay()
}

// View implements tea.Model
func (m DayModel) View() string {
	switch m.mode {
	case dayModeAdd:
		return m.renderAddForm()
	case dayModeDelete:
		return m.renderDeleteConfirm()
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render(dayTitle(m.date, m.services.Session().Location())))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	b.WriteString(m.renderTimer())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Success.Render(m.status))
		b.WriteString("\n\n")
	}

	if m.day == nil || len(m.day.Tasks) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No tasks for this day"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press 'a' to add a task"))
		return b.String()
	}

	b.WriteString(RenderTaskList(m.day.Tasks, m.styles, TaskRenderOptions{
		Width:   m.width,
		Cursor:  m.cursor,
		Elapsed: m.elapsed,
	}))

	b.WriteString(strings.Repeat("─", min(50, max(m.width, 1))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %s (%d %s)",
		timeutil.FormatDuration(m.total()),
		len(m.day.Tasks),
		pluralize("task", len(m.day.Tasks))))

	return b.String()
}

// renderTimer renders the running timer line
func (m DayModel) renderTimer() string {
	t := m.runningTimer()
	if t == nil {
		return m.styles.TimerStopped.Render("No timer running")
	}
	name := t.Task.Name
	if t.SubTask != nil {
		name += " › " + t.SubTask.Name
	}
	return m.styles.TimerRunning.Render("● "+name) + "  " +
		m.styles.TimerElapsed.Render(timeutil.FormatClock(m.elapsed))
}

func (m DayModel) renderAddForm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("New Task for " + dayTitle(m.date, m.services.Session().Location())))
	b.WriteString("\n\n")
	b.WriteString(m.styles.StatLabel.Render("Name:"))
	b.WriteString("\n")
	b.WriteString(m.addInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.StatLabel.Render("Enter to add, Esc to cancel"))
	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m DayModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Task"))
	b.WriteString("\n\n")

	if task := m.selected(); task != nil {
		b.WriteString(m.styles.Warning.Render("Delete this task and all of its time entries?"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Task: "))
		b.WriteString(m.styles.StatValue.Render(task.Task.Name))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Time: "))
		b.WriteString(m.styles.StatValue.Render(timeutil.FormatDuration(task.Duration)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.StatLabel.Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// total is the day total including the live time of a timer running on
// one of the day's tasks.
func (m DayModel) total() int64 {
	if m.day == nil {
		return 0
	}
	total := m.day.Total
	for _, v := range m.day.Tasks {
		if v.Running || v.RunningSubID != "" {
			total += m.elapsed.Milliseconds()
		}
	}
	return total
}

func (m DayModel) selected() *service.TaskView {
	if m.day == nil || m.cursor < 0 || m.cursor >= len(m.day.Tasks) {
		return nil
	}
	return &m.day.Tasks[m.cursor]
}

func (m DayModel) runningTimer() *service.TimerStatus {
	if m.day == nil || m.day.Timer == nil || !m.day.Timer.Running {
		return nil
	}
	return m.day.Timer
}

// SetSize sets the view dimensions
func (m *DayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Date returns the date key shown by the view
func (m DayModel) Date() string {
	return m.date
}

// IsInputMode returns true when the view is capturing keyboard input
func (m DayModel) IsInputMode() bool {
	return m.mode == dayModeAdd
}

// IsModal returns true while the view waits for input or a confirmation
func (m DayModel) IsModal() bool {
	return m.mode != dayModeNormal
}

// loadDay creates a command to load the tasks of the current date
func (m DayModel) loadDay() tea.Cmd {
	date := m.date
	return func() tea.Msg {
		day, err := m.services.Tasks.Day(context.Background(), date, nil)
		return dayLoadedMsg{day: day, err: err}
	}
}

func (m DayModel) addTask(text string) tea.Cmd {
	date := m.date
	return func() tea.Msg {
		task, err := m.services.Tasks.QuickAdd(context.Background(), text, date, "")
		if err != nil {
			return dayActionMsg{err: err}
		}
		return dayActionMsg{status: fmt.Sprintf("Added %q", task.Name)}
	}
}

func (m DayModel) deleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.services.Tasks.Delete(context.Background(), id)
		if err != nil {
			return dayActionMsg{err: err}
		}
		return dayActionMsg{status: fmt.Sprintf("Deleted %q", task.Name)}
	}
}

func (m DayModel) toggleTimer(id string) tea.Cmd {
	return func() tea.Msg {
		started, stopped, err := m.services.Timer.Toggle(context.Background(), id, "")
		if err != nil {
			return dayActionMsg{err: err}
		}
		if stopped != nil {
			return dayActionMsg{status: fmt.Sprintf("Stopped %q, logged %s",
				stopped.Task.Name, timeutil.FormatDuration(stopped.Result.Duration))}
		}
		return dayActionMsg{status: fmt.Sprintf("Started timer on %q", started.Status.Task.Name)}
	}
}

func (m DayModel) cancelTimer() tea.Cmd {
	return func() tea.Msg {
		cancelled, err := m.services.Timer.Cancel(context.Background())
		if err != nil {
			return dayActionMsg{err: err}
		}
		return dayActionMsg{status: fmt.Sprintf("Discarded timer on %q", cancelled.Task.Name)}
	}
}

func (m DayModel) toggleComplete(id string) tea.Cmd {
	return func() tea.Msg {
		task, stopped, err := m.services.Tasks.ToggleComplete(context.Background(), id)
		if err != nil {
			return dayActionMsg{err: err}
		}
		status := fmt.Sprintf("Reopened %q", task.Name)
		if task.IsCompleted {
			status = fmt.Sprintf("Completed %q", task.Name)
		}
		if stopped != nil {
			status += ", logged " + timeutil.FormatDuration(stopped.Duration)
		}
		return dayActionMsg{status: status}
	}
}

func (m DayModel) toggleImportant(id string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.services.Tasks.ToggleImportant(context.Background(), id)
		if err != nil {
			return dayActionMsg{err: err}
		}
		if task.IsImportant {
			return dayActionMsg{status: fmt.Sprintf("Marked %q important", task.Name)}
		}
		return dayActionMsg{status: fmt.Sprintf("Unmarked %q", task.Name)}
	}
}

func (m DayModel) move(id string, up bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if up {
			_, err = m.services.Tasks.MoveUp(context.Background(), id)
		} else {
			_, err = m.services.Tasks.MoveDown(context.Background(), id)
		}
		return dayActionMsg{err: err}
	}
}

// dataChanged tells the other views to reload.
func dataChanged() tea.Msg {
	return ui.DataChangedMsg{}
}
