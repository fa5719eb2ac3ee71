package tracker

import (
	"strings"

	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/timeutil"
)

// TaskInput carries the editable fields of a task. An empty ID creates a
// new task.
type TaskInput struct {
	ID            string
	Name          string
	Description   string
	Date          string
	ProjectID     string
	BillingCodeID string
	// Order places an edited task at a position on its new date when the
	// date changes. Nil appends it.
	Order *int
}

// SaveTask creates a task or updates an existing one. Changing the date of
// an existing task relocates it to the target date like a move, except that
// its time entries stay where they are.
func (e *Engine) SaveTask(s State, in TaskInput) (State, model.Task, error) {
	const op = "save task"
	name := strings.TrimSpace(in.Name)
	if in.ProjectID == "" {
		return s, model.Task{}, newError(ErrValidation, op, "a project must be selected for the task")
	}
	if name == "" {
		return s, model.Task{}, newError(ErrValidation, op, "task name cannot be empty")
	}
	if !timeutil.IsDateKey(in.Date) {
		return s, model.Task{}, newError(ErrValidation, op, "invalid date %q (expected YYYY-MM-DD)", in.Date)
	}
	if s.Project(in.ProjectID) == nil {
		return s, model.Task{}, newError(ErrNotFound, op, "project %s not found", in.ProjectID)
	}
	if in.BillingCodeID != "" && s.BillingCode(in.BillingCodeID) == nil {
		return s, model.Task{}, newError(ErrNotFound, op, "billing code %s not found", in.BillingCodeID)
	}

	if in.ID == "" {
		t := model.Task{
			ID:            e.NewID(),
			Name:          name,
			Description:   in.Description,
			CreatedAt:     e.nowMillis(),
			Date:          in.Date,
			ProjectID:     in.ProjectID,
			BillingCodeID: in.BillingCodeID,
			Order:         s.countOn(in.Date),
			SubTasks:      []model.SubTask{},
		}
		ns := s.Clone()
		ns.Tasks = append(ns.Tasks, t)
		return ns, t, nil
	}

	if s.Task(in.ID) == nil {
		return s, model.Task{}, newError(ErrNotFound, op, "task %s not found", in.ID)
	}
	ns := s.Clone()
	t := ns.Task(in.ID)
	t.Name = name
	t.Description = in.Description
	t.ProjectID = in.ProjectID
	t.BillingCodeID = in.BillingCodeID
	if t.Date != in.Date {
		pos := -1
		if in.Order != nil {
			pos = *in.Order
		}
		e.relocate(&ns, in.ID, in.Date, pos)
	}
	return ns, *ns.Task(in.ID), nil
}

// UpdateTaskInline replaces the name and/or description of a task. Nil
// arguments leave the field unchanged.
func (e *Engine) UpdateTaskInline(s State, taskID string, name, description *string) (State, error) {
	const op = "update task"
	if s.Task(taskID) == nil {
		return s, newError(ErrNotFound, op, "task %s not found", taskID)
	}
	if name != nil && strings.TrimSpace(*name) == "" {
		return s, newError(ErrValidation, op, "task name cannot be empty")
	}
	ns := s.Clone()
	t := ns.Task(taskID)
	if name != nil {
		t.Name = strings.TrimSpace(*name)
	}
	if description != nil {
		t.Description = *description
	}
	return ns, nil
}

// ToggleTaskComplete flips the completion flag. Completing a task whose
// main or sub-task timer is running stops that timer first, logging its time.
func (e *Engine) ToggleTaskComplete(s State, taskID string) (State, *StopResult, error) {
	task := s.Task(taskID)
	if task == nil {
		return s, nil, newError(ErrNotFound, "complete task", "task %s not found", taskID)
	}
	ns := s.Clone()
	var stopped *StopResult
	if !task.IsCompleted && ns.ActiveTimer != nil && ns.ActiveTimer.TaskID == taskID {
		res := e.stopActive(&ns)
		stopped = &res
	}
	t := ns.Task(taskID)
	t.IsCompleted = !t.IsCompleted
	return ns, stopped, nil
}
