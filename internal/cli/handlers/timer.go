package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/timeutil"
	"github.com/xolan/tally/internal/tracker"
)

// StartTimer starts the timer on a task, or on one of its sub-tasks
func StartTimer(deps *cli.Deps, taskRef, subRef string, force bool) {
	if !ready(deps) {
		return
	}
	res, err := deps.Services.Timer.Start(deps.Context(), taskRef, subRef, force)
	if err != nil {
		if service.IsConflict(err) && res != nil && res.Status.Running {
			_, _ = fmt.Fprintln(deps.Stderr, "Warning: Another timer is already active. Stop it before starting a new one.")
			_, _ = fmt.Fprintf(deps.Stderr, "Current timer: %s\n", timerLabel(res.Status))
			_, _ = fmt.Fprintf(deps.Stderr, "Started: %s\n", startedAt(deps, res.Status))
			_, _ = fmt.Fprintln(deps.Stderr)
			_, _ = fmt.Fprintln(deps.Stderr, "Options:")
			_, _ = fmt.Fprintln(deps.Stderr, "  - Stop the current timer with 'tally stop'")
			_, _ = fmt.Fprintln(deps.Stderr, "  - Stop it and start this one with 'tally start <task> --force'")
			deps.Exit(1)
			return
		}
		fail(deps, err)
		return
	}

	if res.Replaced != nil {
		_, _ = fmt.Fprintf(deps.Stdout, "Stopped previous timer (%s logged)\n", timeutil.FormatDuration(res.Replaced.Duration))
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Timer started: %s\n", timerLabel(res.Status))
}

// StopTimer stops the running timer and logs its time
func StopTimer(deps *cli.Deps) {
	if !ready(deps) {
		return
	}
	info, err := deps.Services.Timer.Stop(deps.Context())
	if err != nil {
		if !errors.Is(err, tracker.ErrPrecondition) {
			fail(deps, err)
			return
		}
		_, _ = fmt.Fprintln(deps.Stderr, "Error: No timer is running")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Start a timer with 'tally start <task>'")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s (%s)\n", stoppedLabel(info), timeutil.FormatDuration(info.Result.Duration))
}

// CancelTimer discards the running timer without logging time
func CancelTimer(deps *cli.Deps) {
	if !ready(deps) {
		return
	}
	status, err := deps.Services.Timer.Cancel(deps.Context())
	if err != nil {
		if !errors.Is(err, tracker.ErrPrecondition) {
			fail(deps, err)
			return
		}
		_, _ = fmt.Fprintln(deps.Stderr, "Error: No timer is running")
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Cancelled: %s (%s discarded)\n", timerLabel(status), timeutil.FormatClock(status.Elapsed))
}

// ShowTimerStatus shows the current timer status
func ShowTimerStatus(deps *cli.Deps) {
	if !ready(deps) {
		return
	}
	status, err := deps.Services.Timer.Status(deps.Context())
	if err != nil {
		fail(deps, err)
		return
	}

	if !status.Running {
		_, _ = fmt.Fprintln(deps.Stdout, "No timer running")
		_, _ = fmt.Fprintln(deps.Stdout, "Start a timer with: tally start <task>")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Timer running:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", timerLabel(status))
	_, _ = fmt.Fprintf(deps.Stdout, "  Task:    %s\n", cli.ShortID(status.Timer.TaskID))
	_, _ = fmt.Fprintf(deps.Stdout, "  Started: %s\n", startedAt(deps, status))
	_, _ = fmt.Fprintf(deps.Stdout, "  Elapsed: %s\n", timeutil.FormatClock(status.Elapsed))
}

func startedAt(deps *cli.Deps, s *service.TimerStatus) string {
	session := deps.Services.Session()
	return cli.FormatTimerStartTime(timeutil.FromMillis(s.Timer.StartTime, session.Location()), session.Now())
}

func stoppedLabel(info *service.StopInfo) string {
	if info.SubTask != nil {
		return fmt.Sprintf("%s > %s", info.Task.Name, info.SubTask.Name)
	}
	return info.Task.Name
}
