package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/timeutil"
	"github.com/xolan/tally/internal/tui/ui"
)

// TaskRenderOptions configures how tasks are rendered
type TaskRenderOptions struct {
	Width   int           // Available width for rendering
	Cursor  int           // Currently selected task index (-1 for none)
	Elapsed time.Duration // Live time of the running timer
}

// RenderTaskList renders the tasks of a day with aligned columns. Sub-tasks
// are listed under their task.
func RenderTaskList(tasks []service.TaskView, styles ui.Styles, opts TaskRenderOptions) string {
	if len(tasks) == 0 {
		return ""
	}

	maxNameWidth := 0
	names := make([]string, len(tasks))
	for i, v := range tasks {
		names[i] = taskLabel(v)
		if w := lipgloss.Width(names[i]); w > maxNameWidth {
			maxNameWidth = w
		}
	}

	// Leave room for marker, id, flags and duration
	maxAllowed := opts.Width - 30
	if maxAllowed < 20 {
		maxAllowed = 20
	}
	if maxNameWidth > maxAllowed {
		maxNameWidth = maxAllowed
	}

	var b strings.Builder
	for i, v := range tasks {
		name := truncate(names[i], maxNameWidth)
		nameCol := fmt.Sprintf("%-*s", maxNameWidth, name)
		if v.Task.IsCompleted {
			nameCol = styles.TaskDone.Render(nameCol)
		}

		check := "[ ]"
		if v.Task.IsCompleted {
			check = "[x]"
		}
		flag := " "
		if v.Task.IsImportant {
			flag = styles.TaskImportant.Render("!")
		}

		duration := v.Duration
		if v.Running || v.RunningSubID != "" {
			duration += opts.Elapsed.Milliseconds()
		}
		durCol := styles.TaskDuration.Render(timeutil.FormatDuration(duration))

		line := fmt.Sprintf("%s %s %s %s %s", styles.TaskID.Render(shortID(v.Task.ID)), check, flag, nameCol, durCol)
		if v.Running {
			line += " " + styles.TimerRunning.Render("●")
		}

		if i == opts.Cursor {
			b.WriteString(styles.TaskSelected.Render("▸ " + line))
		} else {
			b.WriteString(styles.TaskNormal.Render("  " + line))
		}
		b.WriteString("\n")

		for n, st := range v.Task.SubTasks {
			b.WriteString(styles.SubTask.Render(subTaskLine(n+1, st, v.RunningSubID == st.ID)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// taskLabel is the name with the project and billing code appended.
func taskLabel(v service.TaskView) string {
	parts := []string{v.Task.Name}
	if v.ProjectName != "" {
		parts = append(parts, "@"+v.ProjectName)
	}
	if v.Code != "" {
		parts = append(parts, "#"+v.Code)
	}
	return strings.Join(parts, " ")
}

func subTaskLine(pos int, st model.SubTask, running bool) string {
	check := "[ ]"
	if st.IsCompleted {
		check = "[x]"
	}
	line := fmt.Sprintf("%d. %s %s", pos, check, st.Name)
	if st.TimeLogged > 0 {
		line += " (" + timeutil.FormatDuration(st.TimeLogged) + ")"
	}
	if running {
		line += " ●"
	}
	return line
}

// shortID returns the id prefix users type to reference a task.
func shortID(id string) string {
	if len(id) > 4 {
		return id[:4]
	}
	return id
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// dayTitle renders a date key as "Monday, Mar 4 2024".
func dayTitle(key string, loc *time.Location) string {
	t, err := timeutil.ParseDateKey(key, loc)
	if err != nil {
		return key
	}
	return t.Format("Monday, Jan 2 2006")
}

// statLine renders "label value" on its own line.
func statLine(styles ui.Styles, label, value string) string {
	return styles.StatLabel.Render(label) + " " + styles.StatValue.Render(value) + "\n"
}

// picker is a scrolling single-choice list.
type picker struct {
	items   []string
	cursor  int
	offset  int
	visible int
}

func newPicker(items []string, visible int) picker {
	return picker{items: items, visible: max(visible, 1)}
}

// focus moves the cursor to name, if present.
func (p *picker) focus(name string) {
	for i, it := range p.items {
		if it == name {
			p.cursor = i
			break
		}
	}
	p.scroll()
}

func (p *picker) move(delta int) {
	p.cursor = max(0, min(len(p.items)-1, p.cursor+delta))
	p.scroll()
}

func (p picker) selected() string {
	if len(p.items) == 0 {
		return ""
	}
	return p.items[p.cursor]
}

// scroll keeps the cursor inside the visible window.
func (p *picker) scroll() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	} else if p.cursor >= p.offset+p.visible {
		p.offset = p.cursor - p.visible + 1
	}
}

// render draws the visible window. The active item is marked "(current)".
func (p picker) render(styles ui.Styles, active string) string {
	var b strings.Builder
	end := min(len(p.items), p.offset+p.visible)

	if p.offset > 0 {
		b.WriteString(styles.StatLabel.Render(fmt.Sprintf("  ↑ %d more", p.offset)))
		b.WriteString("\n")
	}
	for i := p.offset; i < end; i++ {
		item := p.items[i]
		line := "  " + styles.StatValue.Render(item)
		if i == p.cursor {
			line = styles.TaskSelected.Render("▸ " + item)
		}
		if item == active {
			line += styles.Success.Render(" (current)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if end < len(p.items) {
		b.WriteString(styles.StatLabel.Render(fmt.Sprintf("  ↓ %d more", len(p.items)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
