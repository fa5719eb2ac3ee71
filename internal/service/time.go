package service

import (
	"context"

	"github.com/xolan/tally/internal/entry"
	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/tracker"
)

// TimeService adjusts logged time by hand
type TimeService struct {
	session *Session
}

// NewTimeService creates a new TimeService
func NewTimeService(session *Session) *TimeService {
	return &TimeService{session: session}
}

// Add logs amount (e.g. "1h30m") on a task. An empty date means the task's
// own date.
func (s *TimeService) Add(ctx context.Context, taskRef, date, amount string) (model.TimeEntry, model.Task, error) {
	hours, minutes, err := entry.ParseAmount(amount)
	if err != nil {
		return model.TimeEntry{}, model.Task{}, err
	}

	var added model.TimeEntry
	var task model.Task
	_, err = s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, key, err := s.target(st, taskRef, date)
		if err != nil {
			return st, err
		}
		ns, e, err := s.session.engine.AddTime(st, id, key, hours, minutes)
		added, task = e, *st.Task(id)
		return ns, err
	})
	return added, task, err
}

// Subtract removes amount from the task's own entries on a date. An empty
// date means the task's own date.
func (s *TimeService) Subtract(ctx context.Context, taskRef, date, amount string) (model.Task, error) {
	hours, minutes, err := entry.ParseAmount(amount)
	if err != nil {
		return model.Task{}, err
	}

	var task model.Task
	_, err = s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, key, err := s.target(st, taskRef, date)
		if err != nil {
			return st, err
		}
		task = *st.Task(id)
		return s.session.engine.SubtractTime(st, id, key, hours, minutes)
	})
	return task, err
}

// Entries lists the time entries of a task in stored order.
func (s *TimeService) Entries(ctx context.Context, taskRef string) ([]model.TimeEntry, error) {
	st, err := s.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	id, err := ResolveTask(st, taskRef)
	if err != nil {
		return nil, err
	}
	return st.EntriesFor(id), nil
}

func (s *TimeService) target(st tracker.State, taskRef, date string) (string, string, error) {
	id, err := ResolveTask(st, taskRef)
	if err != nil {
		return "", "", err
	}
	if date == "" {
		return id, st.Task(id).Date, nil
	}
	key, err := s.session.DateKey(date)
	if err != nil {
		return "", "", err
	}
	return id, key, nil
}
