package tracker

import (
	"strings"

	"github.com/xolan/tally/internal/model"
)

// DefaultProjectColor is used when a project is saved without a color.
const DefaultProjectColor = "#888888"

// SaveProject creates a project (empty ID) or replaces an existing one.
func (e *Engine) SaveProject(s State, p model.Project) (State, model.Project, error) {
	const op = "save project"
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return s, model.Project{}, newError(ErrValidation, op, "project name cannot be empty")
	}
	if p.Color == "" {
		p.Color = DefaultProjectColor
	}

	if p.ID == "" {
		p.ID = e.NewID()
		ns := s.Clone()
		ns.Projects = append(ns.Projects, p)
		return ns, p, nil
	}
	if s.Project(p.ID) == nil {
		return s, model.Project{}, newError(ErrNotFound, op, "project %s not found", p.ID)
	}
	ns := s.Clone()
	*ns.Project(p.ID) = p
	return ns, p, nil
}

// DeleteProject removes a project that no task references.
func (e *Engine) DeleteProject(s State, projectID string) (State, error) {
	const op = "delete project"
	if s.Project(projectID) == nil {
		return s, newError(ErrNotFound, op, "project %s not found", projectID)
	}
	if n := countTasks(s, func(t model.Task) bool { return t.ProjectID == projectID }); n > 0 {
		return s, newError(ErrReferentialIntegrity, op, "project is used by %d task(s); reassign or delete them first", n)
	}
	ns := s.Clone()
	kept := ns.Projects[:0]
	for _, p := range ns.Projects {
		if p.ID != projectID {
			kept = append(kept, p)
		}
	}
	ns.Projects = kept
	return ns, nil
}

// SaveBillingCode creates a billing code (empty ID) or replaces one.
func (e *Engine) SaveBillingCode(s State, c model.BillingCode) (State, model.BillingCode, error) {
	const op = "save billing code"
	c.Code = strings.TrimSpace(c.Code)
	if c.Code == "" {
		return s, model.BillingCode{}, newError(ErrValidation, op, "billing code cannot be empty")
	}
	if c.ID == "" {
		c.ID = e.NewID()
		ns := s.Clone()
		ns.BillingCodes = append(ns.BillingCodes, c)
		return ns, c, nil
	}
	if s.BillingCode(c.ID) == nil {
		return s, model.BillingCode{}, newError(ErrNotFound, op, "billing code %s not found", c.ID)
	}
	ns := s.Clone()
	*ns.BillingCode(c.ID) = c
	return ns, c, nil
}

// DeleteBillingCode removes a billing code that no task references.
func (e *Engine) DeleteBillingCode(s State, codeID string) (State, error) {
	const op = "delete billing code"
	if s.BillingCode(codeID) == nil {
		return s, newError(ErrNotFound, op, "billing code %s not found", codeID)
	}
	if n := countTasks(s, func(t model.Task) bool { return t.BillingCodeID == codeID }); n > 0 {
		return s, newError(ErrReferentialIntegrity, op, "billing code is used by %d task(s); remove it from them first", n)
	}
	ns := s.Clone()
	kept := ns.BillingCodes[:0]
	for _, c := range ns.BillingCodes {
		if c.ID != codeID {
			kept = append(kept, c)
		}
	}
	ns.BillingCodes = kept
	return ns, nil
}

// SaveTaskAsFavorite stores a template built from a task. A template with
// the same name, project and billing code must not already exist.
func (e *Engine) SaveTaskAsFavorite(s State, taskID string) (State, model.FavoriteTemplate, error) {
	const op = "save favorite"
	task := s.Task(taskID)
	if task == nil {
		return s, model.FavoriteTemplate{}, newError(ErrNotFound, op, "task %s not found", taskID)
	}
	for _, f := range s.Favorites {
		if f.Name == task.Name && f.ProjectID == task.ProjectID && f.BillingCodeID == task.BillingCodeID {
			return s, model.FavoriteTemplate{}, newError(ErrConflict, op, "a similar favorite template already exists")
		}
	}
	fav := model.FavoriteTemplate{
		ID:            e.NewID(),
		Name:          task.Name,
		Description:   task.Description,
		ProjectID:     task.ProjectID,
		BillingCodeID: task.BillingCodeID,
	}
	ns := s.Clone()
	ns.Favorites = append(ns.Favorites, fav)
	return ns, fav, nil
}

// DeleteFavorite removes a favorite template.
func (e *Engine) DeleteFavorite(s State, favoriteID string) (State, error) {
	if s.Favorite(favoriteID) == nil {
		return s, newError(ErrNotFound, "delete favorite", "favorite %s not found", favoriteID)
	}
	ns := s.Clone()
	kept := ns.Favorites[:0]
	for _, f := range ns.Favorites {
		if f.ID != favoriteID {
			kept = append(kept, f)
		}
	}
	ns.Favorites = kept
	return ns, nil
}

// TaskFromFavorite prefills a new task on date from a template. Pass the
// result to SaveTask to create it.
func TaskFromFavorite(s State, favoriteID, date string) (TaskInput, error) {
	f := s.Favorite(favoriteID)
	if f == nil {
		return TaskInput{}, newError(ErrNotFound, "use favorite", "favorite %s not found", favoriteID)
	}
	return TaskInput{
		Name:          f.Name,
		Description:   f.Description,
		Date:          date,
		ProjectID:     f.ProjectID,
		BillingCodeID: f.BillingCodeID,
	}, nil
}

// AddSubTask appends a sub-task to a task.
func (e *Engine) AddSubTask(s State, taskID, name string) (State, model.SubTask, error) {
	const op = "add sub-task"
	name = strings.TrimSpace(name)
	if name == "" {
		return s, model.SubTask{}, newError(ErrValidation, op, "sub-task name cannot be empty")
	}
	if s.Task(taskID) == nil {
		return s, model.SubTask{}, newError(ErrNotFound, op, "task %s not found", taskID)
	}
	ns := s.Clone()
	t := ns.Task(taskID)
	st := model.SubTask{
		ID:        e.NewID(),
		Name:      name,
		Order:     len(t.SubTasks),
		CreatedAt: e.nowMillis(),
	}
	t.SubTasks = append(t.SubTasks, st)
	return ns, st, nil
}

// ToggleSubTaskComplete flips a sub-task's completion. Completing it while
// its timer runs stops the timer first, logging the time.
func (e *Engine) ToggleSubTaskComplete(s State, taskID, subTaskID string) (State, *StopResult, error) {
	const op = "complete sub-task"
	task := s.Task(taskID)
	if task == nil {
		return s, nil, newError(ErrNotFound, op, "task %s not found", taskID)
	}
	st := task.SubTask(subTaskID)
	if st == nil {
		return s, nil, newError(ErrNotFound, op, "sub-task %s not found", subTaskID)
	}
	ns := s.Clone()
	var stopped *StopResult
	if !st.IsCompleted && ns.ActiveTimer.Targets(taskID, subTaskID) {
		res := e.stopActive(&ns)
		stopped = &res
	}
	nst := ns.Task(taskID).SubTask(subTaskID)
	nst.IsCompleted = !nst.IsCompleted
	return ns, stopped, nil
}

// DeleteSubTask removes a sub-task and re-indexes the rest. A timer running
// on it is discarded without logging.
func (e *Engine) DeleteSubTask(s State, taskID, subTaskID string) (State, error) {
	const op = "delete sub-task"
	task := s.Task(taskID)
	if task == nil {
		return s, newError(ErrNotFound, op, "task %s not found", taskID)
	}
	if task.SubTask(subTaskID) == nil {
		return s, newError(ErrNotFound, op, "sub-task %s not found", subTaskID)
	}
	ns := s.Clone()
	t := ns.Task(taskID)
	kept := t.SubTasks[:0]
	for _, st := range t.SubTasks {
		if st.ID != subTaskID {
			kept = append(kept, st)
		}
	}
	t.SubTasks = kept
	reindexSubTasks(t)
	if ns.ActiveTimer.Targets(taskID, subTaskID) {
		ns.ActiveTimer = nil
	}
	return ns, nil
}

func countTasks(s State, match func(model.Task) bool) int {
	n := 0
	for _, t := range s.Tasks {
		if match(t) {
			n++
		}
	}
	return n
}
