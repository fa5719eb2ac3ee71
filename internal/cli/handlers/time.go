package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/timeutil"
)

const amountHint = "Hint: Use formats like 30m, 2h or 1h30m"

// AddTime logs an amount of time on a task. An empty date means the task's date.
func AddTime(deps *cli.Deps, taskRef, amount, date string) {
	if !ready(deps) {
		return
	}
	e, task, err := deps.Services.Time.Add(deps.Context(), taskRef, date, amount)
	if err != nil {
		failAmount(deps, err)
		return
	}
	day := timeutil.DateKeyFromMillis(e.StartTime, deps.Services.Session().Location())
	_, _ = fmt.Fprintf(deps.Stdout, "Added %s to %s on %s\n", timeutil.FormatDuration(e.Duration), task.Name, day)
}

// SubtractTime removes an amount of time from a task's entries on a day
func SubtractTime(deps *cli.Deps, taskRef, amount, date string) {
	if !ready(deps) {
		return
	}
	task, err := deps.Services.Time.Subtract(deps.Context(), taskRef, date, amount)
	if err != nil {
		failAmount(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Subtracted %s from %s\n", strings.TrimSpace(amount), task.Name)
}

func failAmount(deps *cli.Deps, err error) {
	if strings.HasPrefix(err.Error(), "invalid time format") || strings.HasPrefix(err.Error(), "invalid amount") {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, amountHint)
		deps.Exit(1)
		return
	}
	fail(deps, err)
}
