// Package model defines the entities persisted by tally.
//
// Timestamps are epoch milliseconds and durations are milliseconds. JSON
// field names follow the storage keys used since the first release so that
// existing data files load unchanged.
package model

import "encoding/json"

// Project groups tasks. Every task references exactly one project.
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// BillingCode is an accounting code that can be attached to tasks.
type BillingCode struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// SubTask is a checklist item owned by a Task. Time tracked on a sub-task
// accumulates in TimeLogged rather than producing time entries.
type SubTask struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsCompleted bool   `json:"isCompleted"`
	Order       int    `json:"order"`
	CreatedAt   int64  `json:"createdAt"`
	TimeLogged  int64  `json:"timeLogged"`
}

// Task is a unit of work scheduled on a calendar date.
type Task struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     int64     `json:"createdAt"`
	Date          string    `json:"date"`
	ProjectID     string    `json:"projectId"`
	BillingCodeID string    `json:"abacusCodeId,omitempty"`
	IsCompleted   bool      `json:"isCompleted"`
	IsImportant   bool      `json:"isImportant"`
	Order         int       `json:"order"`
	SubTasks      []SubTask `json:"subTasks"`
}

// SubTask returns the sub-task with the given id, or nil.
func (t *Task) SubTask(id string) *SubTask {
	for i := range t.SubTasks {
		if t.SubTasks[i].ID == id {
			return &t.SubTasks[i]
		}
	}
	return nil
}

// SubTaskTime returns the time logged across all sub-tasks.
func (t Task) SubTaskTime() int64 {
	var total int64
	for _, st := range t.SubTasks {
		total += st.TimeLogged
	}
	return total
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	if t.SubTasks != nil {
		c.SubTasks = make([]SubTask, len(t.SubTasks))
		copy(c.SubTasks, t.SubTasks)
	}
	return c
}

// TimeEntry records time spent on a task's main timer. An entry is attributed
// to the local calendar date of StartTime.
type TimeEntry struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
	Duration  int64  `json:"duration"`
	Notes     string `json:"notes,omitempty"`
}

// ActiveTimer is the single running timer. SubTaskID is empty for a
// main-task timer.
type ActiveTimer struct {
	TaskID    string `json:"taskId"`
	SubTaskID string `json:"subTaskId,omitempty"`
	StartTime int64  `json:"startTime"`
}

// Targets reports whether the timer runs on the given task or sub-task.
// An empty subTaskID matches only a main-task timer.
func (a *ActiveTimer) Targets(taskID, subTaskID string) bool {
	return a != nil && a.TaskID == taskID && a.SubTaskID == subTaskID
}

// FavoriteTemplate is a reusable blueprint for creating tasks.
type FavoriteTemplate struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	ProjectID     string `json:"projectId"`
	BillingCodeID string `json:"abacusCodeId,omitempty"`
}

// OrderUnset marks a task or sub-task whose stored record carried no order.
// Such records sort after ordered ones until normalized.
const OrderUnset = -1

// UnmarshalJSON decodes a task, mapping a missing order to OrderUnset.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	aux := struct {
		*plain
		Order *int `json:"order"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Order = OrderUnset
	if aux.Order != nil {
		t.Order = *aux.Order
	}
	return nil
}

// UnmarshalJSON decodes a sub-task, mapping a missing order to OrderUnset.
func (s *SubTask) UnmarshalJSON(data []byte) error {
	type plain SubTask
	aux := struct {
		*plain
		Order *int `json:"order"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Order = OrderUnset
	if aux.Order != nil {
		s.Order = *aux.Order
	}
	return nil
}
