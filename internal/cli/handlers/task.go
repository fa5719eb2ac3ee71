package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/timeutil"
	"github.com/xolan/tally/internal/tracker"
)

// AddTask creates a task. Without a project or code flag, the name is read
// as quick-add text where "@project" and "#code" tokens select them.
func AddTask(deps *cli.Deps, in service.NewTask) {
	if !ready(deps) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Task name cannot be empty")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: tally task add <name> -p <project>")
		_, _ = fmt.Fprintln(deps.Stderr, "Example: tally task add review pull request @website #ACME-1")
		deps.Exit(1)
		return
	}

	var task model.Task
	var err error
	if in.Project == "" && in.Code == "" {
		task, err = deps.Services.Tasks.QuickAdd(deps.Context(), in.Name, in.Date, "")
		if err == nil && in.Description != "" {
			desc := in.Description
			task, err = deps.Services.Tasks.Edit(deps.Context(), task.ID, service.TaskChanges{Description: &desc})
		}
	} else {
		task, err = deps.Services.Tasks.Add(deps.Context(), in)
	}
	if err != nil {
		if errors.Is(err, tracker.ErrValidation) && strings.Contains(err.Error(), "project") {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Create a project with 'tally project add <name>'")
			deps.Exit(1)
			return
		}
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added: %s on %s (%s)\n", task.Name, task.Date, cli.ShortID(task.ID))
}

// EditTask applies changes to a task
func EditTask(deps *cli.Deps, ref string, changes service.TaskChanges) {
	if !ready(deps) {
		return
	}
	if changes == (service.TaskChanges{}) {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one change is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: tally task edit <id> [--name text] [--desc text] [--date date] [-p project] [-c code] [--order n]")
		deps.Exit(1)
		return
	}
	task, err := deps.Services.Tasks.Edit(deps.Context(), ref, changes)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s on %s (position %d)\n", task.Name, task.Date, task.Order+1)
}

// DeleteTask deletes a task after confirmation, unless yes is set
func DeleteTask(deps *cli.Deps, ref string, yes bool) {
	if !ready(deps) {
		return
	}
	view, err := deps.Services.Tasks.Get(deps.Context(), ref)
	if err != nil {
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Task to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s  %s (%s)\n", view.Task.Date, cli.FormatTaskView(*view), timeutil.FormatDuration(view.Duration))

	if !yes && !promptConfirmation(deps, "Delete this task and its time entries?") {
		_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
		return
	}

	deleted, err := deps.Services.Tasks.Delete(deps.Context(), view.Task.ID)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", deleted.Name)
}

// promptConfirmation asks a yes/no question on deps.Stdin. Only "y" or "Y"
// confirm.
func promptConfirmation(deps *cli.Deps, question string) bool {
	_, _ = fmt.Fprintf(deps.Stdout, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}

// ToggleTaskDone flips a task's completion
func ToggleTaskDone(deps *cli.Deps, ref string) {
	if !ready(deps) {
		return
	}
	task, stopped, err := deps.Services.Tasks.ToggleComplete(deps.Context(), ref)
	if err != nil {
		fail(deps, err)
		return
	}
	if task.IsCompleted {
		_, _ = fmt.Fprintf(deps.Stdout, "Completed: %s\n", task.Name)
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Reopened: %s\n", task.Name)
	}
	printStopped(deps, stopped)
}

func printStopped(deps *cli.Deps, stopped *tracker.StopResult) {
	if stopped != nil {
		_, _ = fmt.Fprintf(deps.Stdout, "Timer stopped (%s logged)\n", timeutil.FormatDuration(stopped.Duration))
	}
}

// ToggleTaskImportant flips a task's importance
func ToggleTaskImportant(deps *cli.Deps, ref string) {
	if !ready(deps) {
		return
	}
	task, err := deps.Services.Tasks.ToggleImportant(deps.Context(), ref)
	if err != nil {
		fail(deps, err)
		return
	}
	if task.IsImportant {
		_, _ = fmt.Fprintf(deps.Stdout, "Marked important: %s (moved to the top)\n", task.Name)
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Unmarked important: %s\n", task.Name)
	}
}

// ReorderTask drops a task onto another task of its day, or moves it to
// the end of the day when dropRef is empty
func ReorderTask(deps *cli.Deps, ref, dropRef string) {
	if !ready(deps) {
		return
	}
	task, err := deps.Services.Tasks.Reorder(deps.Context(), ref, dropRef)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Moved: %s to position %d\n", task.Name, task.Order+1)
}

// ShiftTask moves a task one place up or down within its day
func ShiftTask(deps *cli.Deps, ref string, up bool) {
	if !ready(deps) {
		return
	}
	shift := deps.Services.Tasks.MoveDown
	if up {
		shift = deps.Services.Tasks.MoveUp
	}
	task, err := shift(deps.Context(), ref)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Moved: %s to position %d\n", task.Name, task.Order+1)
}

// MoveTask relocates a task, with its time entries, to another day
func MoveTask(deps *cli.Deps, ref, date string) {
	if !ready(deps) {
		return
	}
	task, err := deps.Services.Tasks.Move(deps.Context(), ref, date)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Moved: %s to %s\n", task.Name, task.Date)
}

// CopyTask copies a task to another day without its time
func CopyTask(deps *cli.Deps, ref, date string) {
	if !ready(deps) {
		return
	}
	task, err := deps.Services.Tasks.Copy(deps.Context(), ref, date)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Copied: %s to %s (%s)\n", task.Name, task.Date, cli.ShortID(task.ID))
}

// ShowTask prints a task with its sub-tasks and time entries
func ShowTask(deps *cli.Deps, ref string) {
	if !ready(deps) {
		return
	}
	view, err := deps.Services.Tasks.Get(deps.Context(), ref)
	if err != nil {
		fail(deps, err)
		return
	}
	entries, err := deps.Services.Time.Entries(deps.Context(), view.Task.ID)
	if err != nil {
		fail(deps, err)
		return
	}

	t := view.Task
	_, _ = fmt.Fprintf(deps.Stdout, "%s %s\n", cli.Markers(*view), cli.Title(t.Name))
	_, _ = fmt.Fprintf(deps.Stdout, "  ID:       %s\n", t.ID)
	_, _ = fmt.Fprintf(deps.Stdout, "  Date:     %s\n", t.Date)
	_, _ = fmt.Fprintf(deps.Stdout, "  Project:  %s\n", view.ProjectName)
	if view.Code != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "  Code:     %s\n", view.Code)
	}
	if t.Description != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "  Notes:    %s\n", t.Description)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "  Tracked:  %s\n", timeutil.FormatDuration(view.Duration))

	if len(t.SubTasks) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Sub-tasks:")
		for i, st := range t.SubTasks {
			mark := cli.MarkOpen
			if st.IsCompleted {
				mark = cli.MarkDone
			}
			_, _ = fmt.Fprintf(deps.Stdout, "  %d. %s %s (%s)\n", i+1, mark, st.Name, timeutil.FormatDuration(st.TimeLogged))
		}
	}
	if len(entries) > 0 {
		loc := deps.Services.Session().Location()
		_, _ = fmt.Fprintln(deps.Stdout, "Time entries:")
		for _, e := range entries {
			start := timeutil.FromMillis(e.StartTime, loc)
			line := fmt.Sprintf("  %s  %s", start.Format("2006-01-02 15:04"), timeutil.FormatDuration(e.Duration))
			if e.Notes != "" {
				line += "  " + e.Notes
			}
			_, _ = fmt.Fprintln(deps.Stdout, line)
		}
	}
}
