package tracker

import (
	"time"

	"github.com/xolan/tally/internal/model"
)

// StopResult describes the time logged by stopping a timer.
type StopResult struct {
	TaskID    string
	SubTaskID string
	Duration  int64
	// Entry is set when a main-task timer produced a time entry.
	Entry *model.TimeEntry
}

// StartTimer starts the global timer on a task, or on one of its sub-tasks
// when subTaskID is non-empty.
func (e *Engine) StartTimer(s State, taskID, subTaskID string) (State, error) {
	const op = "start timer"
	task := s.Task(taskID)
	if task == nil {
		return s, newError(ErrNotFound, op, "task %s not found", taskID)
	}
	if task.IsCompleted {
		return s, newError(ErrInvalidState, op, "cannot start a timer on completed task %q", task.Name)
	}
	if subTaskID != "" {
		st := task.SubTask(subTaskID)
		if st == nil {
			return s, newError(ErrNotFound, op, "sub-task %s not found", subTaskID)
		}
		if st.IsCompleted {
			return s, newError(ErrInvalidState, op, "cannot start a timer on completed sub-task %q", st.Name)
		}
	}
	if s.ActiveTimer != nil {
		return s, newError(ErrConflict, op, "another timer is already running")
	}

	ns := s.Clone()
	ns.ActiveTimer = &model.ActiveTimer{
		TaskID:    taskID,
		SubTaskID: subTaskID,
		StartTime: e.nowMillis(),
	}
	return ns, nil
}

// StopTimer stops the running timer, which must belong to taskID. A sub-task
// timer adds to the sub-task's logged time; a main timer appends an entry.
func (e *Engine) StopTimer(s State, taskID string) (State, StopResult, error) {
	if s.ActiveTimer == nil {
		return s, StopResult{}, newError(ErrPrecondition, "stop timer", "no timer is running")
	}
	if s.ActiveTimer.TaskID != taskID {
		return s, StopResult{}, newError(ErrPrecondition, "stop timer", "the running timer belongs to another task")
	}
	ns := s.Clone()
	res := e.stopActive(&ns)
	return ns, res, nil
}

// StopSubTaskTimer stops the timer only when it runs on exactly that sub-task.
func (e *Engine) StopSubTaskTimer(s State, taskID, subTaskID string) (State, StopResult, error) {
	if !s.ActiveTimer.Targets(taskID, subTaskID) {
		return s, StopResult{}, newError(ErrPrecondition, "stop sub-task timer", "no timer is running on that sub-task")
	}
	return e.StopTimer(s, taskID)
}

// CancelTimer discards the running timer without logging anything.
func (e *Engine) CancelTimer(s State) (State, model.ActiveTimer, error) {
	if s.ActiveTimer == nil {
		return s, model.ActiveTimer{}, newError(ErrPrecondition, "cancel timer", "no timer is running")
	}
	ns := s.Clone()
	cancelled := *ns.ActiveTimer
	ns.ActiveTimer = nil
	return ns, cancelled, nil
}

// Elapsed returns how long the active timer has been running.
func (e *Engine) Elapsed(s State) time.Duration {
	if s.ActiveTimer == nil {
		return 0
	}
	d := time.Duration(e.nowMillis()-s.ActiveTimer.StartTime) * time.Millisecond
	if d < 0 {
		return 0
	}
	return d
}

// stopActive logs the running timer into ns and clears it.
func (e *Engine) stopActive(ns *State) StopResult {
	at := ns.ActiveTimer
	ns.ActiveTimer = nil
	end := e.nowMillis()
	duration := end - at.StartTime
	if duration < 0 {
		duration = 0
	}
	res := StopResult{TaskID: at.TaskID, SubTaskID: at.SubTaskID, Duration: duration}

	if at.SubTaskID != "" {
		if task := ns.Task(at.TaskID); task != nil {
			if st := task.SubTask(at.SubTaskID); st != nil {
				st.TimeLogged += duration
			}
		}
		return res
	}

	entry := model.TimeEntry{
		ID:        e.NewID(),
		TaskID:    at.TaskID,
		StartTime: at.StartTime,
		EndTime:   end,
		Duration:  duration,
	}
	ns.TimeEntries = append(ns.TimeEntries, entry)
	res.Entry = &entry
	return res
}
