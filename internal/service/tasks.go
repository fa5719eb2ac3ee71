package service

import (
	"context"

	"github.com/xolan/tally/internal/entry"
	"github.com/xolan/tally/internal/filter"
	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/stats"
	"github.com/xolan/tally/internal/tracker"
)

// TaskService provides operations on tasks and their sub-tasks
type TaskService struct {
	session *Session
}

// NewTaskService creates a new TaskService
func NewTaskService(session *Session) *TaskService {
	return &TaskService{session: session}
}

// NewTask holds user input for creating a task. Project and Code accept a
// name or an id prefix.
type NewTask struct {
	Name        string
	Description string
	Date        string
	Project     string
	Code        string
}

// TaskChanges holds optional edits. Nil fields are left unchanged; an empty
// Code clears the billing code.
type TaskChanges struct {
	Name        *string
	Description *string
	Date        *string
	Project     *string
	Code        *string
	Order       *int
}

func (c TaskChanges) inlineOnly() bool {
	return c.Date == nil && c.Project == nil && c.Code == nil && c.Order == nil
}

// Day returns the tasks of a day in display order, optionally filtered.
func (s *TaskService) Day(ctx context.Context, date string, f *filter.Filter) (*DayResult, error) {
	key, err := s.session.DateKey(date)
	if err != nil {
		return nil, err
	}
	st, err := s.session.Load(ctx)
	if err != nil {
		return nil, err
	}

	in := stats.FromState(st, s.session.Location())
	result := &DayResult{Date: key, Warnings: s.session.Warnings()}
	for _, t := range filter.FilterTasks(st.TasksOn(key), f) {
		v := viewOf(st, in, t)
		result.Total += v.Duration
		result.Tasks = append(result.Tasks, v)
	}
	result.Timer = timerStatus(s.session, st)
	return result, nil
}

func viewOf(st tracker.State, in stats.Input, t model.Task) TaskView {
	v := TaskView{Task: t, Duration: stats.TaskTotal(in, t, t.Date)}
	if p := st.Project(t.ProjectID); p != nil {
		v.ProjectName, v.ProjectColor = p.Name, p.Color
	}
	if c := st.BillingCode(t.BillingCodeID); c != nil {
		v.Code = c.Code
	}
	if at := st.ActiveTimer; at != nil && at.TaskID == t.ID {
		if at.SubTaskID == "" {
			v.Running = true
		} else {
			v.RunningSubID = at.SubTaskID
		}
	}
	return v
}

// Get returns a single task view.
func (s *TaskService) Get(ctx context.Context, ref string) (*TaskView, error) {
	st, err := s.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	id, err := ResolveTask(st, ref)
	if err != nil {
		return nil, err
	}
	v := viewOf(st, stats.FromState(st, s.session.Location()), *st.Task(id))
	return &v, nil
}

// Add creates a task appended to the end of its day.
func (s *TaskService) Add(ctx context.Context, in NewTask) (model.Task, error) {
	date, err := s.session.DateKey(in.Date)
	if err != nil {
		return model.Task{}, err
	}
	var created model.Task
	_, err = s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		var err error
		input := tracker.TaskInput{Name: in.Name, Description: in.Description, Date: date}
		if in.Project != "" {
			if input.ProjectID, err = ResolveProject(st, in.Project); err != nil {
				return st, err
			}
		}
		if in.Code != "" {
			if input.BillingCodeID, err = ResolveBillingCode(st, in.Code); err != nil {
				return st, err
			}
		}
		ns, task, err := s.session.engine.SaveTask(st, input)
		created = task
		return ns, err
	})
	return created, err
}

// QuickAdd creates a task from text such as "review PR @work #ABC-1". When
// the text names no project, defaultProject is used, falling back to the
// first project.
func (s *TaskService) QuickAdd(ctx context.Context, text, date, defaultProject string) (model.Task, error) {
	q := entry.ParseQuickAdd(text)
	project := q.Project
	if project == "" {
		project = defaultProject
	}
	if project == "" {
		st, err := s.session.Load(ctx)
		if err != nil {
			return model.Task{}, err
		}
		if len(st.Projects) > 0 {
			project = st.Projects[0].ID
		}
	}
	return s.Add(ctx, NewTask{Name: q.Name, Date: date, Project: project, Code: q.Code})
}

// Edit applies changes to a task. Name and description edits alone update
// the task in place; other edits go through a full save, so a date change
// relocates the task.
func (s *TaskService) Edit(ctx context.Context, ref string, c TaskChanges) (model.Task, error) {
	var newDate string
	if c.Date != nil {
		key, err := s.session.DateKey(*c.Date)
		if err != nil {
			return model.Task{}, err
		}
		newDate = key
	}

	var id string
	ns, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		var err error
		if id, err = ResolveTask(st, ref); err != nil {
			return st, err
		}
		if c.inlineOnly() {
			return s.session.engine.UpdateTaskInline(st, id, c.Name, c.Description)
		}

		t := st.Task(id)
		input := tracker.TaskInput{
			ID:            id,
			Name:          t.Name,
			Description:   t.Description,
			Date:          t.Date,
			ProjectID:     t.ProjectID,
			BillingCodeID: t.BillingCodeID,
			Order:         c.Order,
		}
		if c.Name != nil {
			input.Name = *c.Name
		}
		if c.Description != nil {
			input.Description = *c.Description
		}
		if c.Date != nil {
			input.Date = newDate
		}
		if c.Project != nil {
			if input.ProjectID, err = ResolveProject(st, *c.Project); err != nil {
				return st, err
			}
		}
		if c.Code != nil {
			input.BillingCodeID = ""
			if *c.Code != "" {
				if input.BillingCodeID, err = ResolveBillingCode(st, *c.Code); err != nil {
					return st, err
				}
			}
		}
		ns, _, err := s.session.engine.SaveTask(st, input)
		return ns, err
	})
	if err != nil {
		return model.Task{}, err
	}
	return *ns.Task(id), nil
}

// Delete removes a task with its time entries. A timer running on it is
// discarded.
func (s *TaskService) Delete(ctx context.Context, ref string) (model.Task, error) {
	var deleted model.Task
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, err := ResolveTask(st, ref)
		if err != nil {
			return st, err
		}
		deleted = *st.Task(id)
		return s.session.engine.DeleteTask(st, id)
	})
	return deleted, err
}

// ToggleComplete flips completion, stopping the task's timer when completing.
func (s *TaskService) ToggleComplete(ctx context.Context, ref string) (model.Task, *tracker.StopResult, error) {
	var id string
	var stopped *tracker.StopResult
	ns, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		var err error
		if id, err = ResolveTask(st, ref); err != nil {
			return st, err
		}
		next, res, err := s.session.engine.ToggleTaskComplete(st, id)
		stopped = res
		return next, err
	})
	if err != nil {
		return model.Task{}, nil, err
	}
	return *ns.Task(id), stopped, nil
}

// ToggleImportant flips importance. Marking moves the task to the top of its day.
func (s *TaskService) ToggleImportant(ctx context.Context, ref string) (model.Task, error) {
	return s.mutate(ctx, ref, s.session.engine.ToggleImportant)
}

// MoveUp swaps a task with the one above it.
func (s *TaskService) MoveUp(ctx context.Context, ref string) (model.Task, error) {
	return s.mutate(ctx, ref, s.session.engine.MoveUp)
}

// MoveDown swaps a task with the one below it.
func (s *TaskService) MoveDown(ctx context.Context, ref string) (model.Task, error) {
	return s.mutate(ctx, ref, s.session.engine.MoveDown)
}

func (s *TaskService) mutate(ctx context.Context, ref string, op func(tracker.State, string) (tracker.State, error)) (model.Task, error) {
	var id string
	ns, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		var err error
		if id, err = ResolveTask(st, ref); err != nil {
			return st, err
		}
		return op(st, id)
	})
	if err != nil {
		return model.Task{}, err
	}
	return *ns.Task(id), nil
}

// Reorder drops a task onto another task of the same day, or at the end of
// the day when dropRef is empty.
func (s *TaskService) Reorder(ctx context.Context, ref, dropRef string) (model.Task, error) {
	return s.mutate(ctx, ref, func(st tracker.State, id string) (tracker.State, error) {
		dropID := ""
		if dropRef != "" {
			var err error
			if dropID, err = ResolveTask(st, dropRef); err != nil {
				return st, err
			}
		}
		return s.session.engine.Reorder(st, id, dropID, st.Task(id).Date)
	})
}

// Move relocates a task and its time entries to another day.
func (s *TaskService) Move(ctx context.Context, ref, date string) (model.Task, error) {
	key, err := s.session.DateKey(date)
	if err != nil {
		return model.Task{}, err
	}
	return s.mutate(ctx, ref, func(st tracker.State, id string) (tracker.State, error) {
		return s.session.engine.MoveTaskToDate(st, id, key)
	})
}

// Copy duplicates a task onto another day without its time.
func (s *TaskService) Copy(ctx context.Context, ref, date string) (model.Task, error) {
	key, err := s.session.DateKey(date)
	if err != nil {
		return model.Task{}, err
	}
	var copied model.Task
	_, err = s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, err := ResolveTask(st, ref)
		if err != nil {
			return st, err
		}
		ns, task, err := s.session.engine.CopyTaskToDate(st, id, key)
		copied = task
		return ns, err
	})
	return copied, err
}

// AddSubTask appends a sub-task.
func (s *TaskService) AddSubTask(ctx context.Context, taskRef, name string) (model.SubTask, error) {
	var added model.SubTask
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, err := ResolveTask(st, taskRef)
		if err != nil {
			return st, err
		}
		ns, sub, err := s.session.engine.AddSubTask(st, id, name)
		added = sub
		return ns, err
	})
	return added, err
}

// ToggleSubTask flips a sub-task's completion, stopping its timer when completing.
func (s *TaskService) ToggleSubTask(ctx context.Context, taskRef, subRef string) (model.SubTask, *tracker.StopResult, error) {
	var taskID, subID string
	var stopped *tracker.StopResult
	ns, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		var err error
		if taskID, subID, err = resolveSub(st, taskRef, subRef); err != nil {
			return st, err
		}
		next, res, err := s.session.engine.ToggleSubTaskComplete(st, taskID, subID)
		stopped = res
		return next, err
	})
	if err != nil {
		return model.SubTask{}, nil, err
	}
	return *ns.Task(taskID).SubTask(subID), stopped, nil
}

// DeleteSubTask removes a sub-task. A timer running on it is discarded.
func (s *TaskService) DeleteSubTask(ctx context.Context, taskRef, subRef string) (model.SubTask, error) {
	var deleted model.SubTask
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		taskID, subID, err := resolveSub(st, taskRef, subRef)
		if err != nil {
			return st, err
		}
		deleted = *st.Task(taskID).SubTask(subID)
		return s.session.engine.DeleteSubTask(st, taskID, subID)
	})
	return deleted, err
}

func resolveSub(st tracker.State, taskRef, subRef string) (string, string, error) {
	taskID, err := ResolveTask(st, taskRef)
	if err != nil {
		return "", "", err
	}
	subID, err := ResolveSubTask(*st.Task(taskID), subRef)
	if err != nil {
		return "", "", err
	}
	return taskID, subID, nil
}
