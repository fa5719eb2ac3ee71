// Package service provides the business logic layer for the tally application.
// It wraps the tracker engine, storage, config and stats packages,
// providing a clean API for both CLI and TUI frontends.
package service

import (
	"time"

	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/stats"
	"github.com/xolan/tally/internal/storage"
	"github.com/xolan/tally/internal/tracker"
)

// TaskView is a task with the display data resolved.
type TaskView struct {
	Task         model.Task
	ProjectName  string
	ProjectColor string
	Code         string
	Duration     int64 // time on the task's date, sub-tasks included
	Running      bool  // the main timer runs on this task
	RunningSubID string
}

// DayResult contains the tasks of one day
type DayResult struct {
	Date     string
	Tasks    []TaskView
	Total    int64
	Timer    *TimerStatus
	Warnings []storage.ParseWarning
}

// TimerStatus represents the current state of the timer
type TimerStatus struct {
	Running bool
	Timer   model.ActiveTimer
	Task    model.Task
	SubTask *model.SubTask
	Elapsed time.Duration
}

// StartResult describes a started timer and, when forced, the timer it replaced.
type StartResult struct {
	Status   *TimerStatus
	Replaced *tracker.StopResult
}

// StopInfo describes a stopped timer.
type StopInfo struct {
	Result  tracker.StopResult
	Task    model.Task
	SubTask *model.SubTask
}

// WeekReport contains the weekly dashboard data
type WeekReport struct {
	Start      time.Time
	End        time.Time
	Days       []stats.DayActivity
	Peak       int64
	Total      int64
	ByProject  []stats.Breakdown
	ByCode     []stats.Breakdown
	Status     stats.TaskStatus
	DayTasks   map[string][]stats.TaskSummary
	Warnings   []storage.ParseWarning
	WeekStart  time.Weekday
	ReportedAt time.Time
}

// ProjectSummary is a project with the number of tasks referencing it.
type ProjectSummary struct {
	Project model.Project
	Tasks   int
}

// CodeSummary is a billing code with the number of tasks referencing it.
type CodeSummary struct {
	Code  model.BillingCode
	Tasks int
}

// ExportData is the data selected for export.
type ExportData struct {
	From         string              `json:"from,omitempty" yaml:"from,omitempty"`
	To           string              `json:"to,omitempty" yaml:"to,omitempty"`
	Projects     []model.Project     `json:"projects" yaml:"projects"`
	BillingCodes []model.BillingCode `json:"abacusCodes" yaml:"abacusCodes"`
	Tasks        []model.Task        `json:"tasks" yaml:"tasks"`
	TimeEntries  []model.TimeEntry   `json:"timeEntries" yaml:"timeEntries"`
}
