package tracker

import (
	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/timeutil"
)

// Reorder moves draggedID within its date. Dropping on a task that sits
// above the dragged one inserts before it; dropping on one below inserts
// after it. An empty or unknown dropOnID appends the task to the end.
func (e *Engine) Reorder(s State, draggedID, dropOnID, date string) (State, error) {
	const op = "reorder"
	day := s.TasksOn(date)
	dragged := -1
	for i, t := range day {
		if t.ID == draggedID {
			dragged = i
		}
	}
	if dragged < 0 {
		return s, newError(ErrNotFound, op, "task %s is not scheduled on %s", draggedID, date)
	}
	if dropOnID == draggedID {
		return s, nil
	}

	draggedTask := day[dragged]
	rest := make([]string, 0, len(day)-1)
	for _, t := range day {
		if t.ID != draggedID {
			rest = append(rest, t.ID)
		}
	}

	insertAt := len(rest)
	for i, id := range rest {
		if id != dropOnID {
			continue
		}
		target := day[indexOf(day, id)]
		if draggedTask.Order > target.Order {
			insertAt = i
		} else {
			insertAt = i + 1
		}
		break
	}

	ids := make([]string, 0, len(day))
	ids = append(ids, rest[:insertAt]...)
	ids = append(ids, draggedID)
	ids = append(ids, rest[insertAt:]...)

	ns := s.Clone()
	ns.applyDateOrder(ids)
	return ns, nil
}

// MoveUp swaps a task with its predecessor on the same date.
func (e *Engine) MoveUp(s State, taskID string) (State, error) {
	return e.shift(s, taskID, -1)
}

// MoveDown swaps a task with its successor on the same date.
func (e *Engine) MoveDown(s State, taskID string) (State, error) {
	return e.shift(s, taskID, 1)
}

func (e *Engine) shift(s State, taskID string, delta int) (State, error) {
	task := s.Task(taskID)
	if task == nil {
		return s, newError(ErrNotFound, "reorder", "task %s not found", taskID)
	}
	day := s.TasksOn(task.Date)
	i := indexOf(day, taskID)
	j := i + delta
	if j < 0 || j >= len(day) {
		return s, nil
	}
	// Dropping on the neighbour yields a single-step swap in either direction.
	return e.Reorder(s, taskID, day[j].ID, task.Date)
}

// SetImportant marks or unmarks a task as important. Marking pulls the task
// to the top of its date and shifts the others down; unmarking only clears
// the flag.
func (e *Engine) SetImportant(s State, taskID string, important bool) (State, error) {
	task := s.Task(taskID)
	if task == nil {
		return s, newError(ErrNotFound, "set important", "task %s not found", taskID)
	}

	ns := s.Clone()
	t := ns.Task(taskID)
	t.IsImportant = important
	if !important {
		ns.reindexDate(t.Date)
		return ns, nil
	}

	ids := []string{taskID}
	for _, other := range ns.TasksOn(t.Date) {
		if other.ID != taskID {
			ids = append(ids, other.ID)
		}
	}
	ns.applyDateOrder(ids)
	return ns, nil
}

// ToggleImportant flips the important flag of a task.
func (e *Engine) ToggleImportant(s State, taskID string) (State, error) {
	task := s.Task(taskID)
	if task == nil {
		return s, newError(ErrNotFound, "toggle important", "task %s not found", taskID)
	}
	return e.SetImportant(s, taskID, !task.IsImportant)
}

// MoveTaskToDate relocates a task to target, appending it there, and shifts
// its time entries onto the target day keeping their time of day.
func (e *Engine) MoveTaskToDate(s State, taskID, target string) (State, error) {
	const op = "move task"
	task := s.Task(taskID)
	if task == nil {
		return s, newError(ErrNotFound, op, "task %s not found", taskID)
	}
	if !timeutil.IsDateKey(target) {
		return s, newError(ErrValidation, op, "invalid date %q (expected YYYY-MM-DD)", target)
	}
	if task.Date == target {
		return s, nil
	}

	ns := s.Clone()
	e.relocate(&ns, taskID, target, -1)

	for i := range ns.TimeEntries {
		te := &ns.TimeEntries[i]
		if te.TaskID != taskID {
			continue
		}
		start, err := timeutil.RebaseMillis(te.StartTime, target, e.loc())
		if err != nil {
			return s, newError(ErrValidation, op, "%v", err)
		}
		te.StartTime = start
		te.EndTime = start + te.Duration
	}
	return ns, nil
}

// relocate moves a task to another date inside ns. The origin date is
// re-indexed; the task lands at position order on the target, or at the end
// when order is negative or past the end.
func (e *Engine) relocate(ns *State, taskID, target string, order int) {
	t := ns.Task(taskID)
	origin := t.Date

	var ids []string
	for _, other := range ns.TasksOn(target) {
		ids = append(ids, other.ID)
	}
	if order < 0 || order > len(ids) {
		order = len(ids)
	}
	ids = append(ids[:order], append([]string{taskID}, ids[order:]...)...)

	t.Date = target
	ns.reindexDate(origin)
	ns.applyDateOrder(ids)
}

// CopyTaskToDate creates a fresh copy of a task at the end of target. The
// copy starts incomplete and unimportant, its sub-tasks get new ids with no
// logged time, and no time entries are copied.
func (e *Engine) CopyTaskToDate(s State, taskID, target string) (State, model.Task, error) {
	const op = "copy task"
	task := s.Task(taskID)
	if task == nil {
		return s, model.Task{}, newError(ErrNotFound, op, "task %s not found", taskID)
	}
	if !timeutil.IsDateKey(target) {
		return s, model.Task{}, newError(ErrValidation, op, "invalid date %q (expected YYYY-MM-DD)", target)
	}

	cp := task.Clone()
	cp.ID = e.NewID()
	cp.Date = target
	cp.CreatedAt = e.nowMillis()
	cp.IsCompleted = false
	cp.IsImportant = false
	cp.Order = s.countOn(target)
	cp.SubTasks = make([]model.SubTask, len(task.SubTasks))
	for i, st := range task.SubTasks {
		st.ID = e.NewID()
		st.TimeLogged = 0
		st.IsCompleted = false
		cp.SubTasks[i] = st
	}

	ns := s.Clone()
	ns.Tasks = append(ns.Tasks, cp)
	return ns, cp, nil
}

// DeleteTask removes a task and its time entries. A timer running on the
// task or any of its sub-tasks is discarded without logging.
func (e *Engine) DeleteTask(s State, taskID string) (State, error) {
	task := s.Task(taskID)
	if task == nil {
		return s, newError(ErrNotFound, "delete task", "task %s not found", taskID)
	}
	date := task.Date

	ns := s.Clone()
	kept := ns.Tasks[:0]
	for _, t := range ns.Tasks {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	ns.Tasks = kept
	ns.reindexDate(date)
	ns.removeEntriesFor(taskID)
	if ns.ActiveTimer != nil && ns.ActiveTimer.TaskID == taskID {
		ns.ActiveTimer = nil
	}
	return ns, nil
}

func indexOf(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
