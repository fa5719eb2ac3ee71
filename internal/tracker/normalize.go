package tracker

import (
	"fmt"
	"sort"

	"github.com/xolan/tally/internal/timeutil"
)

// Normalize repairs ordering after loading stored data. Tasks of each date
// are sorted by order (unset last, ties by creation time) and renumbered
// densely; sub-tasks get the same treatment per parent. Negative logged
// time is reset to zero.
func Normalize(s State) State {
	ns := s.Clone()
	dates := make(map[string]bool)
	for _, t := range ns.Tasks {
		dates[t.Date] = true
	}
	for date := range dates {
		ns.reindexDate(date)
	}
	for i := range ns.Tasks {
		t := &ns.Tasks[i]
		for j := range t.SubTasks {
			if t.SubTasks[j].Order < 0 {
				t.SubTasks[j].Order = j
			}
			if t.SubTasks[j].TimeLogged < 0 {
				t.SubTasks[j].TimeLogged = 0
			}
		}
		reindexSubTasks(t)
	}
	return ns
}

// Problem is a single invariant violation found by Validate.
type Problem struct {
	Kind    string // order, reference, task, timer or entry
	Subject string // id of the offending record or date key
	Detail  string
}

func (p Problem) String() string {
	return fmt.Sprintf("[%s] %s: %s", p.Kind, p.Subject, p.Detail)
}

// Validate reports invariant violations without changing anything.
func Validate(s State) []Problem {
	var problems []Problem
	add := func(kind, subject, format string, args ...any) {
		problems = append(problems, Problem{Kind: kind, Subject: subject, Detail: fmt.Sprintf(format, args...)})
	}

	byDate := make(map[string][]int)
	taskIDs := make(map[string]bool)
	for _, t := range s.Tasks {
		byDate[t.Date] = append(byDate[t.Date], t.Order)
		taskIDs[t.ID] = true

		if !timeutil.IsDateKey(t.Date) {
			add("task", t.ID, "invalid date %q", t.Date)
		}
		if s.Project(t.ProjectID) == nil {
			add("reference", t.ID, "unknown project %q", t.ProjectID)
		}
		if t.BillingCodeID != "" && s.BillingCode(t.BillingCodeID) == nil {
			add("reference", t.ID, "unknown billing code %q", t.BillingCodeID)
		}
		orders := make([]int, len(t.SubTasks))
		for i, st := range t.SubTasks {
			orders[i] = st.Order
		}
		if !dense(orders) {
			add("order", t.ID, "sub-task orders %v are not 0..%d", orders, len(orders)-1)
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		if !dense(byDate[d]) {
			add("order", d, "task orders %v are not 0..%d", sorted(byDate[d]), len(byDate[d])-1)
		}
	}

	for _, te := range s.TimeEntries {
		if !taskIDs[te.TaskID] {
			add("entry", te.ID, "time entry for unknown task %q", te.TaskID)
		}
		if te.Duration < 0 {
			add("entry", te.ID, "negative duration %d", te.Duration)
		}
	}

	if at := s.ActiveTimer; at != nil {
		task := s.Task(at.TaskID)
		switch {
		case task == nil:
			add("timer", at.TaskID, "active timer on unknown task")
		case task.IsCompleted:
			add("timer", at.TaskID, "active timer on completed task %q", task.Name)
		case at.SubTaskID != "" && task.SubTask(at.SubTaskID) == nil:
			add("timer", at.SubTaskID, "active timer on unknown sub-task")
		}
	}
	return problems
}

func dense(orders []int) bool {
	seen := make([]bool, len(orders))
	for _, o := range orders {
		if o < 0 || o >= len(orders) || seen[o] {
			return false
		}
		seen[o] = true
	}
	return true
}

func sorted(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)
	return out
}
