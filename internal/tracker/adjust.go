package tracker

import (
	"sort"
	"time"

	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/timeutil"
)

const (
	// ManualAdditionNote is stored on entries created by AddTime.
	ManualAdditionNote = "Manual time addition"
	// adjustedSuffix is appended to the notes of an entry shortened by
	// SubtractTime.
	adjustedSuffix = " Adjusted."
)

func validateAdjustment(op string, hours, minutes int) error {
	if hours < 0 || minutes < 0 {
		return newError(ErrValidation, op, "hours and minutes cannot be negative")
	}
	if hours == 0 && minutes == 0 {
		return newError(ErrValidation, op, "enter a non-zero amount of time")
	}
	return nil
}

// AddTime logs a manual entry on date. The entry starts at the current wall
// clock time of day transposed onto that date.
func (e *Engine) AddTime(s State, taskID, date string, hours, minutes int) (State, model.TimeEntry, error) {
	const op = "add time"
	if err := validateAdjustment(op, hours, minutes); err != nil {
		return s, model.TimeEntry{}, err
	}
	if s.Task(taskID) == nil {
		return s, model.TimeEntry{}, newError(ErrNotFound, op, "task %s not found", taskID)
	}
	day, err := timeutil.ParseDateKey(date, e.loc())
	if err != nil {
		return s, model.TimeEntry{}, newError(ErrValidation, op, "%v", err)
	}

	now := e.now()
	start := time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), now.Second(), 0, e.loc())
	amount := timeutil.HoursMinutes(hours, minutes)
	entry := model.TimeEntry{
		ID:        e.NewID(),
		TaskID:    taskID,
		StartTime: timeutil.Millis(start),
		EndTime:   timeutil.Millis(start) + amount,
		Duration:  amount,
		Notes:     ManualAdditionNote,
	}

	ns := s.Clone()
	ns.TimeEntries = append(ns.TimeEntries, entry)
	return ns, entry, nil
}

// SubtractTime removes time from a task's own entries on date, most recent
// entry first. Entries consumed entirely are dropped; the entry that absorbs
// the remainder is shortened and marked as adjusted. Sub-task time is never
// touched.
func (e *Engine) SubtractTime(s State, taskID, date string, hours, minutes int) (State, error) {
	const op = "subtract time"
	if err := validateAdjustment(op, hours, minutes); err != nil {
		return s, err
	}
	if s.Task(taskID) == nil {
		return s, newError(ErrNotFound, op, "task %s not found", taskID)
	}
	if !timeutil.IsDateKey(date) {
		return s, newError(ErrValidation, op, "invalid date %q (expected YYYY-MM-DD)", date)
	}

	var onDate []int
	var available int64
	for i, te := range s.TimeEntries {
		if te.TaskID == taskID && timeutil.DateKeyFromMillis(te.StartTime, e.loc()) == date {
			onDate = append(onDate, i)
			available += te.Duration
		}
	}
	remaining := timeutil.HoursMinutes(hours, minutes)
	if remaining > available {
		return s, newError(ErrInsufficientTime, op, "cannot subtract %s, only %s logged directly to this task on %s",
			timeutil.FormatDuration(remaining), timeutil.FormatDuration(available), date)
	}

	sort.SliceStable(onDate, func(a, b int) bool {
		return s.TimeEntries[onDate[a]].StartTime > s.TimeEntries[onDate[b]].StartTime
	})

	ns := s.Clone()
	drop := make(map[int]bool)
	for _, i := range onDate {
		if remaining <= 0 {
			break
		}
		te := &ns.TimeEntries[i]
		if te.Duration > remaining {
			te.Duration -= remaining
			te.EndTime = te.StartTime + te.Duration
			te.Notes += adjustedSuffix
			remaining = 0
			break
		}
		remaining -= te.Duration
		drop[i] = true
	}

	kept := make([]model.TimeEntry, 0, len(ns.TimeEntries))
	for i, te := range ns.TimeEntries {
		if !drop[i] {
			kept = append(kept, te)
		}
	}
	ns.TimeEntries = kept
	return ns, nil
}
