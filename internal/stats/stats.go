// Package stats computes read-only summaries of tracked time: per-day and
// per-week totals, breakdowns by project and billing code, and the daily
// activity series shown in the weekly dashboard.
package stats

import (
	"sort"
	"time"

	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/timeutil"
	"github.com/xolan/tally/internal/tracker"
)

// Input is the data the aggregations read. Location defines calendar days.
type Input struct {
	Tasks        []model.Task
	TimeEntries  []model.TimeEntry
	Projects     []model.Project
	BillingCodes []model.BillingCode
	Location     *time.Location
}

// FromState builds an Input from an engine state.
func FromState(s tracker.State, loc *time.Location) Input {
	return Input{
		Tasks:        s.Tasks,
		TimeEntries:  s.TimeEntries,
		Projects:     s.Projects,
		BillingCodes: s.BillingCodes,
		Location:     loc,
	}
}

func (in Input) loc() *time.Location {
	if in.Location == nil {
		return time.Local
	}
	return in.Location
}

// entriesByTask groups time entries by task id.
func (in Input) entriesByTask() map[string][]model.TimeEntry {
	m := make(map[string][]model.TimeEntry)
	for _, e := range in.TimeEntries {
		m[e.TaskID] = append(m[e.TaskID], e)
	}
	return m
}

// DailyTotal sums, for the tasks scheduled on date, their time entries that
// start on date plus all time logged on their sub-tasks. Entries of tasks
// scheduled elsewhere never count, even when they start on date.
func DailyTotal(in Input, date string) int64 {
	byTask := in.entriesByTask()
	var total int64
	for _, t := range in.Tasks {
		if t.Date != date {
			continue
		}
		total += directOn(byTask[t.ID], date, in.loc())
		total += t.SubTaskTime()
	}
	return total
}

// TaskTotal returns the time of a single task on date: its entries starting
// on date plus its sub-task time.
func TaskTotal(in Input, task model.Task, date string) int64 {
	var entries []model.TimeEntry
	for _, e := range in.TimeEntries {
		if e.TaskID == task.ID {
			entries = append(entries, e)
		}
	}
	return directOn(entries, date, in.loc()) + task.SubTaskTime()
}

func directOn(entries []model.TimeEntry, date string, loc *time.Location) int64 {
	var total int64
	for _, e := range entries {
		if timeutil.DateKeyFromMillis(e.StartTime, loc) == date {
			total += e.Duration
		}
	}
	return total
}

// WeeklyTotal is the sum of DailyTotal over the seven days from weekStart.
func WeeklyTotal(in Input, weekStart time.Time) int64 {
	var total int64
	for _, key := range timeutil.WeekKeys(weekStart.In(in.loc())) {
		total += DailyTotal(in, key)
	}
	return total
}

// Breakdown is one row of a weekly summary.
type Breakdown struct {
	ID       string
	Name     string
	Color    string // project color; empty for billing codes
	Duration int64
}

// ByProject returns weekly time per project, largest first. Rows with no
// time are omitted.
func ByProject(in Input, weekStart time.Time) []Breakdown {
	names := make(map[string]model.Project, len(in.Projects))
	for _, p := range in.Projects {
		names[p.ID] = p
	}
	return breakdown(in, weekStart, func(t model.Task) string { return t.ProjectID }, func(id string) (string, string) {
		if p, ok := names[id]; ok {
			return p.Name, p.Color
		}
		return "Unknown Project", tracker.DefaultProjectColor
	})
}

// ByBillingCode returns weekly time per billing code, largest first. Tasks
// without a code are not counted.
func ByBillingCode(in Input, weekStart time.Time) []Breakdown {
	codes := make(map[string]string, len(in.BillingCodes))
	for _, c := range in.BillingCodes {
		codes[c.ID] = c.Code
	}
	return breakdown(in, weekStart, func(t model.Task) string { return t.BillingCodeID }, func(id string) (string, string) {
		if c, ok := codes[id]; ok {
			return c, ""
		}
		return "Unknown Code", ""
	})
}

// breakdown sums, per key, the week's tasks' entries that start within the
// week plus their sub-task time.
func breakdown(in Input, weekStart time.Time, key func(model.Task) string, label func(string) (string, string)) []Breakdown {
	keys := timeutil.WeekKeys(weekStart.In(in.loc()))
	inWeek := make(map[string]bool, len(keys))
	for _, k := range keys {
		inWeek[k] = true
	}

	byTask := in.entriesByTask()
	totals := make(map[string]int64)
	for _, t := range in.Tasks {
		id := key(t)
		if id == "" || !inWeek[t.Date] {
			continue
		}
		for _, e := range byTask[t.ID] {
			if inWeek[timeutil.DateKeyFromMillis(e.StartTime, in.loc())] {
				totals[id] += e.Duration
			}
		}
		totals[id] += t.SubTaskTime()
	}

	rows := make([]Breakdown, 0, len(totals))
	for id, d := range totals {
		if d <= 0 {
			continue
		}
		name, color := label(id)
		rows = append(rows, Breakdown{ID: id, Name: name, Color: color, Duration: d})
	}
	sortBreakdowns(rows)
	return rows
}

// sortBreakdowns orders rows by duration descending, then name ascending.
func sortBreakdowns(rows []Breakdown) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Duration != rows[j].Duration {
			return rows[i].Duration > rows[j].Duration
		}
		return rows[i].Name < rows[j].Name
	})
}

// DayActivity is one bar of the daily activity chart.
type DayActivity struct {
	Date  time.Time
	Key   string
	Label string // single-letter weekday
	Total int64
	// Ratio is Total relative to the week's largest day, in [0, 1].
	Ratio float64
}

// DailyActivity returns the seven-day activity series starting at
// weekStart and the value bars are scaled against (never below 1).
func DailyActivity(in Input, weekStart time.Time) ([]DayActivity, int64) {
	days := timeutil.DaysInWeek(weekStart.In(in.loc()))
	series := make([]DayActivity, len(days))
	var peak int64 = 1
	for i, d := range days {
		key := timeutil.DateKey(d)
		total := DailyTotal(in, key)
		series[i] = DayActivity{Date: d, Key: key, Label: timeutil.WeekdayInitial(d), Total: total}
		if total > peak {
			peak = total
		}
	}
	for i := range series {
		series[i].Ratio = float64(series[i].Total) / float64(peak)
	}
	return series, peak
}

// TaskStatus counts the week's tasks by completion.
type TaskStatus struct {
	Completed int
	Active    int
	Total     int
}

// WeekTaskStatus summarizes completion of the tasks scheduled in the week.
func WeekTaskStatus(in Input, weekStart time.Time) TaskStatus {
	inWeek := make(map[string]bool)
	for _, k := range timeutil.WeekKeys(weekStart.In(in.loc())) {
		inWeek[k] = true
	}
	var st TaskStatus
	for _, t := range in.Tasks {
		if !inWeek[t.Date] {
			continue
		}
		st.Total++
		if t.IsCompleted {
			st.Completed++
		} else {
			st.Active++
		}
	}
	return st
}

// TaskSummary is a task with its time on a given day.
type TaskSummary struct {
	Task     model.Task
	Duration int64
}

// DayTaskSummaries lists the tasks of date that have any time, largest
// first, ties in task order.
func DayTaskSummaries(in Input, date string) []TaskSummary {
	byTask := in.entriesByTask()
	var out []TaskSummary
	for _, t := range in.Tasks {
		if t.Date != date {
			continue
		}
		d := directOn(byTask[t.ID], date, in.loc()) + t.SubTaskTime()
		if d > 0 {
			out = append(out, TaskSummary{Task: t, Duration: d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Duration != out[j].Duration {
			return out[i].Duration > out[j].Duration
		}
		return out[i].Task.Order < out[j].Task.Order
	})
	return out
}
