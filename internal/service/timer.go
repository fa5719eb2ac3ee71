package service

import (
	"context"
	"errors"

	"github.com/xolan/tally/internal/tracker"
)

// TimerService provides operations for managing the timer
type TimerService struct {
	session *Session
}

// NewTimerService creates a new TimerService
func NewTimerService(session *Session) *TimerService {
	return &TimerService{session: session}
}

// timerStatus describes the active timer of st.
func timerStatus(session *Session, st tracker.State) *TimerStatus {
	if st.ActiveTimer == nil {
		return &TimerStatus{}
	}
	status := &TimerStatus{
		Running: true,
		Timer:   *st.ActiveTimer,
		Elapsed: session.engine.Elapsed(st),
	}
	if t := st.Task(st.ActiveTimer.TaskID); t != nil {
		status.Task = *t
		if sub := t.SubTask(st.ActiveTimer.SubTaskID); sub != nil {
			c := *sub
			status.SubTask = &c
		}
	}
	return status
}

// Status returns the current timer status.
func (s *TimerService) Status(ctx context.Context) (*TimerStatus, error) {
	st, err := s.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	return timerStatus(s.session, st), nil
}

// Start starts the timer on a task, or on one of its sub-tasks when subRef
// is set. If another timer runs, Start fails with tracker.ErrConflict unless
// force is set, in which case the running timer is stopped and logged first.
func (s *TimerService) Start(ctx context.Context, taskRef, subRef string, force bool) (*StartResult, error) {
	var replaced *tracker.StopResult
	ns, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		taskID, err := ResolveTask(st, taskRef)
		if err != nil {
			return st, err
		}
		subID := ""
		if subRef != "" {
			if subID, err = ResolveSubTask(*st.Task(taskID), subRef); err != nil {
				return st, err
			}
		}
		if force && st.ActiveTimer != nil && !st.ActiveTimer.Targets(taskID, subID) {
			next, res, err := s.session.engine.StopTimer(st, st.ActiveTimer.TaskID)
			if err != nil {
				return st, err
			}
			replaced = &res
			st = next
		}
		return s.session.engine.StartTimer(st, taskID, subID)
	})
	if err != nil {
		return &StartResult{Status: timerStatus(s.session, ns)}, err
	}
	return &StartResult{Status: timerStatus(s.session, ns), Replaced: replaced}, nil
}

// Stop stops the running timer, whatever task it belongs to, and logs its time.
func (s *TimerService) Stop(ctx context.Context) (*StopInfo, error) {
	var info StopInfo
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		if st.ActiveTimer == nil {
			_, _, err := s.session.engine.StopTimer(st, "")
			return st, err
		}
		next, res, err := s.session.engine.StopTimer(st, st.ActiveTimer.TaskID)
		if err != nil {
			return st, err
		}
		info = stopInfo(next, res)
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Toggle stops the timer when it runs on exactly the given task or
// sub-task, and starts it there otherwise.
func (s *TimerService) Toggle(ctx context.Context, taskRef, subRef string) (*StartResult, *StopInfo, error) {
	st, err := s.session.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	taskID, err := ResolveTask(st, taskRef)
	if err != nil {
		return nil, nil, err
	}
	subID := ""
	if subRef != "" {
		if subID, err = ResolveSubTask(*st.Task(taskID), subRef); err != nil {
			return nil, nil, err
		}
	}
	if !st.ActiveTimer.Targets(taskID, subID) {
		res, err := s.Start(ctx, taskID, subID, false)
		return res, nil, err
	}

	var info StopInfo
	_, err = s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		var next tracker.State
		var res tracker.StopResult
		var err error
		if subID != "" {
			next, res, err = s.session.engine.StopSubTaskTimer(st, taskID, subID)
		} else {
			next, res, err = s.session.engine.StopTimer(st, taskID)
		}
		if err != nil {
			return st, err
		}
		info = stopInfo(next, res)
		return next, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, &info, nil
}

// Cancel discards the running timer without logging any time.
func (s *TimerService) Cancel(ctx context.Context) (*TimerStatus, error) {
	var cancelled *TimerStatus
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		cancelled = timerStatus(s.session, st)
		next, _, err := s.session.engine.CancelTimer(st)
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func stopInfo(st tracker.State, res tracker.StopResult) StopInfo {
	info := StopInfo{Result: res}
	if t := st.Task(res.TaskID); t != nil {
		info.Task = *t
		if sub := t.SubTask(res.SubTaskID); sub != nil {
			c := *sub
			info.SubTask = &c
		}
	}
	return info
}

// IsConflict reports whether err means another timer is already running.
func IsConflict(err error) bool {
	return errors.Is(err, tracker.ErrConflict)
}
