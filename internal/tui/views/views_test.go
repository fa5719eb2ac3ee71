package views

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/storage"
	"github.com/xolan/tally/internal/tracker"
	"github.com/xolan/tally/internal/tui/ui"
)

// testClock is the clock of the test engine, fixed at 2024-03-04 09:00 UTC.
type testClock struct {
	now time.Time
}

func (c *testClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func setupTestServices(t *testing.T) (*service.Services, *testClock) {
	t.Helper()
	tmpDir := t.TempDir()
	st, err := storage.NewFileStore(filepath.Join(tmpDir, "data"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	clock := &testClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
	n := 0
	engine := &tracker.Engine{
		Now: func() time.Time { return clock.now },
		NewID: func() string {
			n++
			return fmt.Sprintf("id%04d", n)
		},
		Location: time.UTC,
	}
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	services := service.NewServicesWithStore(st, filepath.Join(tmpDir, "config.toml"), cfg, engine)
	t.Cleanup(func() { _ = services.Close() })
	return services, clock
}

// setupTestServicesWithTasks adds the project "Website" (id0001) with the
// tasks "Write docs" (id0002) and "Review" (id0003) on 2024-03-04.
func setupTestServicesWithTasks(t *testing.T) (*service.Services, *testClock) {
	t.Helper()
	services, clock := setupTestServices(t)
	ctx := context.Background()
	if _, err := services.Catalog.AddProject(ctx, "Website", "#ff0000"); err != nil {
		t.Fatalf("failed to add project: %v", err)
	}
	for _, name := range []string{"Write docs", "Review"} {
		if _, err := services.Tasks.Add(ctx, service.NewTask{Name: name, Date: "2024-03-04", Project: "Website"}); err != nil {
			t.Fatalf("failed to add task: %v", err)
		}
	}
	return services, clock
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// exec runs a command and returns its message.
func exec(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func loadedDay(t *testing.T, services *service.Services) DayModel {
	t.Helper()
	m := NewDayModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(100, 40)
	m, _ = m.Update(exec(t, m.Init()))
	return m
}

// act sends a key to the day view, runs the resulting action and reloads.
func act(t *testing.T, m DayModel, k tea.KeyMsg) DayModel {
	t.Helper()
	m, cmd := m.Update(k)
	msg := exec(t, cmd)
	m, _ = m.Update(msg)
	if action, ok := msg.(dayActionMsg); ok && action.err != nil {
		t.Fatalf("action failed: %v", action.err)
	}
	m, _ = m.Update(exec(t, m.loadDay()))
	return m
}

func dayTasks(t *testing.T, services *service.Services) []service.TaskView {
	t.Helper()
	day, err := services.Tasks.Day(context.Background(), "2024-03-04", nil)
	if err != nil {
		t.Fatalf("failed to load day: %v", err)
	}
	return day.Tasks
}

func TestRenderTaskList(t *testing.T) {
	tasks := []service.TaskView{
		{Task: model.Task{ID: "abcd1234", Name: "Write docs", IsImportant: true}, ProjectName: "Website", Code: "ACME-1", Duration: 5400000},
		{Task: model.Task{ID: "efgh5678", Name: "Review", IsCompleted: true}, ProjectName: "Website"},
	}

	output := RenderTaskList(tasks, ui.DefaultStyles(), TaskRenderOptions{Width: 100, Cursor: 0})

	for _, want := range []string{"abcd", "Write docs @Website #ACME-1", "1h 30m", "Review", "[x]", "!", "▸"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "abcd1234") {
		t.Error("expected ids to be shortened")
	}
	if lines := strings.Count(output, "\n"); lines != 2 {
		t.Errorf("expected 2 lines, got %d", lines)
	}
}

func TestRenderTaskList_Empty(t *testing.T) {
	if output := RenderTaskList(nil, ui.DefaultStyles(), TaskRenderOptions{}); output != "" {
		t.Errorf("expected empty output, got %q", output)
	}
}

func TestRenderTaskList_SubTasksAndRunningTimer(t *testing.T) {
	tasks := []service.TaskView{{
		Task: model.Task{ID: "t1", Name: "Write docs", SubTasks: []model.SubTask{
			{ID: "s1", Name: "outline", IsCompleted: true, TimeLogged: 600000},
			{ID: "s2", Name: "draft"},
		}},
		Duration:     600000,
		RunningSubID: "s2",
	}}

	output := RenderTaskList(tasks, ui.DefaultStyles(), TaskRenderOptions{Width: 80, Cursor: -1, Elapsed: 5 * time.Minute})

	for _, want := range []string{"1. [x] outline (10m 0s)", "2. [ ] draft ●", "15m 0s"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "▸") {
		t.Error("expected no selection marker with cursor -1")
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"id0002", "id00"},
		{"abcd", "abcd"},
		{"ab", "ab"},
	}
	for _, tt := range tests {
		if got := shortID(tt.id); got != tt.expected {
			t.Errorf("shortID(%q) = %q, expected %q", tt.id, got, tt.expected)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"a longer name", 8, "a longe…"},
		{"héllo wörld", 6, "héllo…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.width); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tt.input, tt.width, got, tt.expected)
		}
	}
}

func TestDayTitle(t *testing.T) {
	if got := dayTitle("2024-03-04", time.UTC); got != "Monday, Mar 4 2024" {
		t.Errorf("unexpected title %q", got)
	}
	if got := dayTitle("not-a-date", time.UTC); got != "not-a-date" {
		t.Errorf("expected invalid keys to pass through, got %q", got)
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		word     string
		count    int
		expected string
	}{
		{"task", 0, "tasks"},
		{"task", 1, "task"},
		{"task", 2, "tasks"},
	}
	for _, tt := range tests {
		if got := pluralize(tt.word, tt.count); got != tt.expected {
			t.Errorf("pluralize(%q, %d) = %q, expected %q", tt.word, tt.count, got, tt.expected)
		}
	}
}

func TestNewDayModel(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewDayModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	if m.Date() != "2024-03-04" {
		t.Errorf("expected today's date, got %q", m.Date())
	}
	if !m.loading {
		t.Error("expected model to start loading")
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Error("expected loading view")
	}
}

func TestDayModel_View_Empty(t *testing.T) {
	services, _ := setupTestServices(t)
	m := loadedDay(t, services)

	view := m.View()
	for _, want := range []string{"Monday, Mar 4 2024", "No tasks for this day", "No timer running"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestDayModel_View_WithTasks(t *testing.T) {
	services, _ := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	view := m.View()
	for _, want := range []string{"Write docs @Website", "Review @Website", "Total: 0s (2 tasks)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestDayModel_Update_Navigation(t *testing.T) {
	services, _ := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	m, _ = m.Update(runes("j"))
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}
	m, _ = m.Update(runes("j"))
	if m.cursor != 1 {
		t.Errorf("expected cursor to stay at the last task, got %d", m.cursor)
	}
	m, _ = m.Update(runes("k"))
	m, _ = m.Update(runes("k"))
	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
}

func TestDayModel_Update_ChangeDay(t *testing.T) {
	services, _ := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Date() != "2024-03-03" {
		t.Fatalf("expected previous day, got %q", m.Date())
	}
	m, _ = m.Update(exec(t, cmd))
	if !strings.Contains(m.View(), "No tasks for this day") {
		t.Error("expected the previous day to be empty")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Date() != "2024-03-05" {
		t.Errorf("expected 2024-03-05, got %q", m.Date())
	}

	m, cmd = m.Update(runes("t"))
	if m.Date() != "2024-03-04" {
		t.Errorf("expected today, got %q", m.Date())
	}
	if cmd == nil {
		t.Error("expected a reload command")
	}
}

func TestDayModel_AddTask(t *testing.T) {
	services, _ := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	m, _ = m.Update(runes("a"))
	if !m.IsInputMode() || !m.IsModal() {
		t.Fatal("expected add mode")
	}
	if !strings.Contains(m.View(), "New Task for Monday, Mar 4 2024") {
		t.Errorf("expected add form, got:\n%s", m.View())
	}

	// Enter with empty input does nothing
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || !m.IsInputMode() {
		t.Error("expected empty input to be ignored")
	}

	m.addInput.SetValue("Plan sprint @website")
	m = act(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.IsInputMode() {
		t.Error("expected add mode to end")
	}
	if !strings.Contains(m.status, `Added "Plan sprint"`) {
		t.Errorf("unexpected status %q", m.status)
	}
	tasks := dayTasks(t, services)
	if len(tasks) != 3 || tasks[2].Task.Name != "Plan sprint" || tasks[2].ProjectName != "Website" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
}

func TestDayModel_AddTask_Escape(t *testing.T) {
	services, _ := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	m, _ = m.Update(runes("a"))
	m, _ = m.Update(runes("x"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.IsInputMode() {
		t.Error("expected Esc to leave add mode")
	}
	if len(dayTasks(t, services)) != 2 {
		t.Error("expected no task to be added")
	}
}

func TestDayModel_DeleteTask(t *testing.T) {
	services, _ := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	m, _ = m.Update(runes("d"))
	if !m.IsModal() {
		t.Fatal("expected delete confirmation")
	}
	if !strings.Contains(m.View(), "Delete this task") {
		t.Errorf("expected confirmation dialog, got:\n%s", m.View())
	}

	// n cancels
	m, _ = m.Update(runes("n"))
	if m.IsModal() {
		t.Fatal("expected n to cancel")
	}

	m, _ = m.Update(runes("d"))
	m = act(t, m, runes("y"))

	tasks := dayTasks(t, services)
	if len(tasks) != 1 || tasks[0].Task.Name != "Review" {
		t.Errorf("expected only Review to remain, got %+v", tasks)
	}
	if !strings.Contains(m.status, `Deleted "Write docs"`) {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestDayModel_TimerToggleAndTick(t *testing.T) {
	services, clock := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	m = act(t, m, runes("s"))
	if !strings.Contains(m.status, `Started timer on "Write docs"`) {
		t.Fatalf("unexpected status %q", m.status)
	}
	if !strings.Contains(m.View(), "● Write docs") {
		t.Errorf("expected running timer line, got:\n%s", m.View())
	}

	clock.advance(90 * time.Second)
	m, cmd := m.Update(dayTickMsg(clock.now))
	if cmd == nil {
		t.Error("expected the tick to be rescheduled")
	}
	if m.elapsed != 90*time.Second {
		t.Errorf("expected 90s elapsed, got %v", m.elapsed)
	}
	if !strings.Contains(m.View(), "00:01:30") {
		t.Errorf("expected live clock, got:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "Total: 1m 30s") {
		t.Errorf("expected the total to include the running timer, got:\n%s", m.View())
	}

	m = act(t, m, runes("s"))
	if !strings.Contains(m.status, `Stopped "Write docs", logged 1m 30s`) {
		t.Errorf("unexpected status %q", m.status)
	}
	tasks := dayTasks(t, services)
	if tasks[0].Duration != 90000 {
		t.Errorf("expected 90s logged, got %d", tasks[0].Duration)
	}
}

func TestDayModel_CancelTimer(t *testing.T) {
	services, clock := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	m = act(t, m, runes("s"))
	clock.advance(time.Minute)
	m = act(t, m, runes("x"))

	if !strings.Contains(m.status, `Discarded timer on "Write docs"`) {
		t.Errorf("unexpected status %q", m.status)
	}
	if tasks := dayTasks(t, services); tasks[0].Duration != 0 {
		t.Errorf("expected no time logged, got %d", tasks[0].Duration)
	}

	// Without a running timer x does nothing
	_, cmd := m.Update(runes("x"))
	if cmd != nil {
		t.Error("expected no command without a running timer")
	}
}

func TestDayModel_CompleteAndImportant(t *testing.T) {
	services, _ := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	m = act(t, m, runes("c"))
	if !strings.Contains(m.status, `Completed "Write docs"`) {
		t.Errorf("unexpected status %q", m.status)
	}

	m, _ = m.Update(runes("j"))
	m = act(t, m, runes("i"))
	if !strings.Contains(m.status, `Marked "Review" important`) {
		t.Errorf("unexpected status %q", m.status)
	}

	tasks := dayTasks(t, services)
	byName := map[string]model.Task{}
	for _, v := range tasks {
		byName[v.Task.Name] = v.Task
	}
	if !byName["Write docs"].IsCompleted {
		t.Error("expected Write docs to be completed")
	}
	if !byName["Review"].IsImportant {
		t.Error("expected Review to be important")
	}
}

func TestDayModel_MoveDown(t *testing.T) {
	services, _ := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	m = act(t, m, runes("J"))
	if m.cursor != 1 {
		t.Errorf("expected cursor to follow the task, got %d", m.cursor)
	}

	tasks := dayTasks(t, services)
	if tasks[0].Task.Name != "Review" || tasks[1].Task.Name != "Write docs" {
		t.Errorf("unexpected order %q, %q", tasks[0].Task.Name, tasks[1].Task.Name)
	}

	m = act(t, m, runes("K"))
	if tasks := dayTasks(t, services); tasks[0].Task.Name != "Write docs" {
		t.Errorf("expected Write docs back on top, got %q", tasks[0].Task.Name)
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
}

func TestDayModel_ActionError(t *testing.T) {
	services, _ := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	m, cmd := m.Update(dayActionMsg{err: fmt.Errorf("boom")})
	if cmd != nil {
		t.Error("expected no reload after a failed action")
	}
	if !strings.Contains(m.View(), "Error: boom") {
		t.Errorf("expected error in view, got:\n%s", m.View())
	}
}

func TestDayModel_ActionBroadcastsDataChange(t *testing.T) {
	services, _ := setupTestServicesWithTasks(t)
	m := loadedDay(t, services)

	_, cmd := m.Update(dayActionMsg{status: "done"})
	msg := exec(t, cmd)
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch, got %T", msg)
	}
	found := false
	for _, c := range batch {
		if c == nil {
			continue
		}
		if _, ok := c().(ui.DataChangedMsg); ok {
			found = true
		}
	}
	if !found {
		t.Error("expected a DataChangedMsg")
	}
}

func TestDayModel_ThemeChanged(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewDayModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	styles := ui.NewThemeProvider("nord", "blue").Styles()
	m, _ = m.Update(ui.ThemeChangedMsg{ThemeName: "nord", Tone: "blue", Styles: styles})
	if m.styles.TabActive.GetForeground() != styles.TabActive.GetForeground() {
		t.Error("expected styles to be replaced")
	}
}

func TestNewWeekModel(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewWeekModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	if m.Date() != "2024-03-04" {
		t.Errorf("expected today's date, got %q", m.Date())
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Error("expected loading view")
	}
}

func TestWeekModel_View(t *testing.T) {
	services, clock := setupTestServicesWithTasks(t)
	ctx := context.Background()
	if _, err := services.Timer.Start(ctx, "id0002", "", false); err != nil {
		t.Fatalf("failed to start timer: %v", err)
	}
	clock.advance(time.Hour)
	if _, err := services.Timer.Stop(ctx); err != nil {
		t.Fatalf("failed to stop timer: %v", err)
	}

	m := NewWeekModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(100, 40)
	m, _ = m.Update(exec(t, m.Init()))

	view := m.View()
	for _, want := range []string{"Week of Mar 4 to Mar 10 2024", "Mon 04", "Sun 10", "Total time: 1h 0m", "By Project", "@Website", "0 completed, 2 active"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
	if !strings.Contains(view, strings.Repeat("█", barWidth)) {
		t.Error("expected a full bar for the busiest day")
	}
	if strings.Contains(view, "By Billing Code") {
		t.Error("expected no billing code section without codes")
	}
}

func TestWeekModel_Update_ChangeWeek(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewWeekModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Date() != "2024-02-26" {
		t.Errorf("expected the previous week, got %q", m.Date())
	}
	m, _ = m.Update(exec(t, cmd))
	if !strings.Contains(m.View(), "Week of Feb 26 to Mar 3 2024") {
		t.Errorf("unexpected view:\n%s", m.View())
	}

	m, _ = m.Update(runes("l"))
	m, _ = m.Update(runes("l"))
	if m.Date() != "2024-03-11" {
		t.Errorf("expected the next week, got %q", m.Date())
	}

	m, _ = m.Update(runes("t"))
	if m.Date() != "2024-03-04" {
		t.Errorf("expected this week, got %q", m.Date())
	}
}

func TestWeekModel_ReloadsOnDataChange(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewWeekModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	_, cmd := m.Update(ui.DataChangedMsg{})
	if _, ok := exec(t, cmd).(weekLoadedMsg); !ok {
		t.Error("expected the week to reload")
	}
}

func TestWeekModel_LoadError(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewWeekModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(weekLoadedMsg{err: fmt.Errorf("disk gone")})
	if !strings.Contains(m.View(), "Error: disk gone") {
		t.Errorf("expected error, got:\n%s", m.View())
	}
}

func newConfigModel(t *testing.T) ConfigModel {
	t.Helper()
	services, _ := setupTestServices(t)
	tp := ui.NewThemeProvider("dracula", "purple")
	m := NewConfigModel(services, tp, tp.Styles(), ui.DefaultKeyMap())
	m.SetSize(100, 40)
	m, _ = m.Update(exec(t, m.Init()))
	return m
}

func TestConfigModel_View(t *testing.T) {
	m := newConfigModel(t)

	view := m.View()
	for _, want := range []string{"Configuration", "Using defaults", "week_start_day", "storage:", "json", "tone:", "purple", "theme:", "dracula"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestConfigModel_ToneKeys(t *testing.T) {
	m := newConfigModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	msg, ok := exec(t, cmd).(ui.ToneChangeRequestMsg)
	if !ok || msg.Tone != "blue" {
		t.Errorf("expected a request for blue, got %+v", msg)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	msg, ok = exec(t, cmd).(ui.ToneChangeRequestMsg)
	if !ok || msg.Tone != "pink" {
		t.Errorf("expected a request for pink, got %+v", msg)
	}
}

func TestCycleTone(t *testing.T) {
	tests := []struct {
		current  string
		step     int
		expected string
	}{
		{"purple", 1, "blue"},
		{"pink", 1, "purple"},
		{"purple", -1, "pink"},
		{"unknown", 1, "blue"},
	}
	for _, tt := range tests {
		if got := cycleTone(tt.current, tt.step); got != tt.expected {
			t.Errorf("cycleTone(%q, %d) = %q, expected %q", tt.current, tt.step, got, tt.expected)
		}
	}
}

func TestConfigModel_ThemeSelector(t *testing.T) {
	m := newConfigModel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.picking {
		t.Fatal("expected theme selector to open")
	}
	if !strings.Contains(m.View(), "Select a theme") {
		t.Errorf("expected selector view, got:\n%s", m.View())
	}

	start := m.themes.cursor
	m, _ = m.Update(runes("j"))
	if m.themes.cursor != start+1 {
		t.Errorf("expected cursor to move down, got %d", m.themes.cursor)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.picking {
		t.Error("expected selector to close")
	}
	req, ok := exec(t, cmd).(ui.ThemeChangeRequestMsg)
	if !ok || req.ThemeName != m.themes.items[start+1] {
		t.Errorf("unexpected theme request %+v", req)
	}
}

func TestConfigModel_ThemeSelector_Escape(t *testing.T) {
	m := newConfigModel(t)
	start := m.themes.cursor

	m, _ = m.Update(runes("t"))
	m, _ = m.Update(runes("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.picking {
		t.Error("expected Esc to close the selector")
	}
	if m.themes.cursor != start {
		t.Errorf("expected cursor reset to %d, got %d", start, m.themes.cursor)
	}
}

func TestConfigModel_ThemeChanged(t *testing.T) {
	m := newConfigModel(t)

	m, _ = m.Update(ui.ThemeChangedMsg{ThemeName: "nord", Tone: "teal", Styles: ui.DefaultStyles()})
	view := m.View()
	if !strings.Contains(view, "nord") || !strings.Contains(view, "teal") {
		t.Errorf("expected new theme and tone in view, got:\n%s", view)
	}
}

func TestPicker(t *testing.T) {
	p := newPicker([]string{"a", "b", "c", "d", "e"}, 2)

	p.focus("d")
	if p.cursor != 3 || p.offset != 2 {
		t.Errorf("focus: cursor %d offset %d, expected 3 and 2", p.cursor, p.offset)
	}
	p.move(-3)
	if p.cursor != 0 || p.offset != 0 {
		t.Errorf("move up: cursor %d offset %d, expected 0 and 0", p.cursor, p.offset)
	}
	p.move(-1)
	if p.selected() != "a" {
		t.Errorf("cursor should stop at the top, got %q", p.selected())
	}
	p.move(10)
	if p.selected() != "e" {
		t.Errorf("cursor should stop at the bottom, got %q", p.selected())
	}

	out := p.render(ui.DefaultStyles(), "e")
	for _, want := range []string{"↑ 3 more", "▸ e", "(current)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "↓") {
		t.Errorf("nothing is below the last item:\n%s", out)
	}
}

func TestPicker_FocusUnknownKeepsCursor(t *testing.T) {
	p := newPicker([]string{"a", "b"}, 5)
	p.move(1)
	p.focus("zzz")
	if p.selected() != "b" {
		t.Errorf("expected cursor to stay on b, got %q", p.selected())
	}
}
