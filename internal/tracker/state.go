package tracker

import (
	"sort"

	"github.com/xolan/tally/internal/model"
)

// State is the complete in-memory entity store. Operations never modify a
// State in place; they return a new one.
type State struct {
	Projects     []model.Project
	BillingCodes []model.BillingCode
	Tasks        []model.Task
	TimeEntries  []model.TimeEntry
	Favorites    []model.FavoriteTemplate
	ActiveTimer  *model.ActiveTimer
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := State{
		Projects:     append([]model.Project(nil), s.Projects...),
		BillingCodes: append([]model.BillingCode(nil), s.BillingCodes...),
		TimeEntries:  append([]model.TimeEntry(nil), s.TimeEntries...),
		Favorites:    append([]model.FavoriteTemplate(nil), s.Favorites...),
	}
	if s.Tasks != nil {
		c.Tasks = make([]model.Task, len(s.Tasks))
		for i, t := range s.Tasks {
			c.Tasks[i] = t.Clone()
		}
	}
	if s.ActiveTimer != nil {
		at := *s.ActiveTimer
		c.ActiveTimer = &at
	}
	return c
}

// Task returns a pointer into s.Tasks for the given id, or nil.
func (s *State) Task(id string) *model.Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// Project returns the project with the given id, or nil.
func (s *State) Project(id string) *model.Project {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return &s.Projects[i]
		}
	}
	return nil
}

// BillingCode returns the billing code with the given id, or nil.
func (s *State) BillingCode(id string) *model.BillingCode {
	for i := range s.BillingCodes {
		if s.BillingCodes[i].ID == id {
			return &s.BillingCodes[i]
		}
	}
	return nil
}

// Favorite returns the favorite template with the given id, or nil.
func (s *State) Favorite(id string) *model.FavoriteTemplate {
	for i := range s.Favorites {
		if s.Favorites[i].ID == id {
			return &s.Favorites[i]
		}
	}
	return nil
}

// TasksOn returns the tasks scheduled on date sorted by order.
func (s State) TasksOn(date string) []model.Task {
	var out []model.Task
	for _, t := range s.Tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// EntriesFor returns the time entries of a task in storage order.
func (s State) EntriesFor(taskID string) []model.TimeEntry {
	var out []model.TimeEntry
	for _, e := range s.TimeEntries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out
}

// countOn returns how many tasks are scheduled on date.
func (s State) countOn(date string) int {
	n := 0
	for _, t := range s.Tasks {
		if t.Date == date {
			n++
		}
	}
	return n
}

// reindexDate assigns orders 0..n-1 to the tasks of date, keeping their
// current relative order. Unset orders sort last, ties by createdAt.
func (s *State) reindexDate(date string) {
	var idx []int
	for i := range s.Tasks {
		if s.Tasks[i].Date == date {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ta, tb := s.Tasks[idx[a]], s.Tasks[idx[b]]
		oa, ob := sortableOrder(ta.Order), sortableOrder(tb.Order)
		if oa != ob {
			return oa < ob
		}
		return ta.CreatedAt < tb.CreatedAt
	})
	for pos, i := range idx {
		s.Tasks[i].Order = pos
	}
}

// applyDateOrder writes the given id sequence as the dense order of a date.
func (s *State) applyDateOrder(ids []string) {
	for pos, id := range ids {
		if t := s.Task(id); t != nil {
			t.Order = pos
		}
	}
}

func sortableOrder(o int) int {
	if o < 0 {
		return int(^uint(0) >> 1)
	}
	return o
}

// reindexSubTasks assigns sub-task orders 0..n-1 keeping relative order.
func reindexSubTasks(t *model.Task) {
	sort.SliceStable(t.SubTasks, func(a, b int) bool {
		oa, ob := sortableOrder(t.SubTasks[a].Order), sortableOrder(t.SubTasks[b].Order)
		if oa != ob {
			return oa < ob
		}
		return t.SubTasks[a].CreatedAt < t.SubTasks[b].CreatedAt
	})
	for i := range t.SubTasks {
		t.SubTasks[i].Order = i
	}
}

func (s *State) removeEntriesFor(taskID string) {
	kept := s.TimeEntries[:0]
	for _, e := range s.TimeEntries {
		if e.TaskID != taskID {
			kept = append(kept, e)
		}
	}
	s.TimeEntries = kept
}
