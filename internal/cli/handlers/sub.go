package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/tally/internal/cli"
)

// AddSubTask appends a sub-task to a task
func AddSubTask(deps *cli.Deps, taskRef, name string) {
	if !ready(deps) {
		return
	}
	if strings.TrimSpace(name) == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Sub-task name cannot be empty")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: tally sub add <task> <name>")
		deps.Exit(1)
		return
	}
	sub, err := deps.Services.Tasks.AddSubTask(deps.Context(), taskRef, name)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added sub-task %d: %s\n", sub.Order+1, sub.Name)
}

// ToggleSubTaskDone flips a sub-task's completion
func ToggleSubTaskDone(deps *cli.Deps, taskRef, subRef string) {
	if !ready(deps) {
		return
	}
	sub, stopped, err := deps.Services.Tasks.ToggleSubTask(deps.Context(), taskRef, subRef)
	if err != nil {
		fail(deps, err)
		return
	}
	if sub.IsCompleted {
		_, _ = fmt.Fprintf(deps.Stdout, "Completed sub-task: %s\n", sub.Name)
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Reopened sub-task: %s\n", sub.Name)
	}
	printStopped(deps, stopped)
}

// DeleteSubTask removes a sub-task
func DeleteSubTask(deps *cli.Deps, taskRef, subRef string) {
	if !ready(deps) {
		return
	}
	sub, err := deps.Services.Tasks.DeleteSubTask(deps.Context(), taskRef, subRef)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted sub-task: %s\n", sub.Name)
}
