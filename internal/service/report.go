package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/filter"
	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/stats"
	"github.com/xolan/tally/internal/storage"
	"github.com/xolan/tally/internal/timeutil"
	"github.com/xolan/tally/internal/tracker"
)

// ReportService builds the weekly summary, exports and the data check
type ReportService struct {
	session *Session
	config  config.Config
}

// NewReportService creates a new ReportService
func NewReportService(session *Session, cfg config.Config) *ReportService {
	return &ReportService{session: session, config: cfg}
}

// Week summarizes the week containing date.
func (s *ReportService) Week(ctx context.Context, date string) (*WeekReport, error) {
	key, err := s.session.DateKey(date)
	if err != nil {
		return nil, err
	}
	day, err := timeutil.ParseDateKey(key, s.session.Location())
	if err != nil {
		return nil, err
	}
	st, err := s.session.Load(ctx)
	if err != nil {
		return nil, err
	}

	weekStart := s.config.WeekStart()
	start := timeutil.StartOfWeek(day, weekStart)
	in := stats.FromState(st, s.session.Location())
	days, peak := stats.DailyActivity(in, start)

	report := &WeekReport{
		Start:      start,
		End:        timeutil.EndOfWeek(day, weekStart),
		Days:       days,
		Peak:       peak,
		Total:      stats.WeeklyTotal(in, start),
		ByProject:  stats.ByProject(in, start),
		ByCode:     stats.ByBillingCode(in, start),
		Status:     stats.WeekTaskStatus(in, start),
		DayTasks:   make(map[string][]stats.TaskSummary),
		Warnings:   s.session.Warnings(),
		WeekStart:  weekStart,
		ReportedAt: s.session.Now(),
	}
	for _, d := range days {
		report.DayTasks[d.Key] = stats.DayTaskSummaries(in, d.Key)
	}
	return report, nil
}

// ExportOptions selects what to export. Dates accept the usual date input;
// empty bounds are open.
type ExportOptions struct {
	From    string
	To      string
	Keyword string
	Project string
	Code    string
}

// Export collects the tasks matching opts with their time entries and the
// projects and billing codes they reference.
func (s *ReportService) Export(ctx context.Context, opts ExportOptions) (*ExportData, error) {
	st, err := s.session.Load(ctx)
	if err != nil {
		return nil, err
	}

	f := filter.NewFilter(opts.Keyword, "", "")
	if opts.From != "" {
		if f.From, err = s.session.DateKey(opts.From); err != nil {
			return nil, fmt.Errorf("invalid --from date: %w", err)
		}
	}
	if opts.To != "" {
		if f.To, err = s.session.DateKey(opts.To); err != nil {
			return nil, fmt.Errorf("invalid --to date: %w", err)
		}
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return nil, fmt.Errorf("--from date (%s) is after --to date (%s)", f.From, f.To)
	}
	if opts.Project != "" {
		if f.ProjectID, err = ResolveProject(st, opts.Project); err != nil {
			return nil, err
		}
	}
	if opts.Code != "" {
		if f.BillingCodeID, err = ResolveBillingCode(st, opts.Code); err != nil {
			return nil, err
		}
	}

	tasks := filter.FilterTasks(st.Tasks, f)
	ids := filter.TaskIDs(tasks)
	data := &ExportData{
		From:         f.From,
		To:           f.To,
		Projects:     []model.Project{},
		BillingCodes: []model.BillingCode{},
		Tasks:        append([]model.Task{}, tasks...),
		TimeEntries:  []model.TimeEntry{},
	}
	for _, e := range st.TimeEntries {
		if ids[e.TaskID] {
			data.TimeEntries = append(data.TimeEntries, e)
		}
	}
	usedProjects, usedCodes := make(map[string]bool), make(map[string]bool)
	for _, t := range tasks {
		usedProjects[t.ProjectID] = true
		usedCodes[t.BillingCodeID] = true
	}
	for _, p := range st.Projects {
		if f.IsEmpty() || usedProjects[p.ID] {
			data.Projects = append(data.Projects, p)
		}
	}
	for _, c := range st.BillingCodes {
		if f.IsEmpty() || usedCodes[c.ID] {
			data.BillingCodes = append(data.BillingCodes, c)
		}
	}
	return data, nil
}

// CheckResult is the outcome of a data check.
type CheckResult struct {
	Problems []tracker.Problem
	Warnings []storage.ParseWarning
}

// ErrDataProblems is returned by Check when stored data violates an invariant.
var ErrDataProblems = errors.New("stored data has problems")

// Check validates the stored data as it is on disk, before normalization.
func (s *ReportService) Check(ctx context.Context) (*CheckResult, error) {
	st, err := s.session.LoadRaw(ctx)
	if err != nil {
		return nil, err
	}
	res := &CheckResult{Problems: tracker.Validate(st), Warnings: s.session.Warnings()}
	if len(res.Problems) > 0 || len(res.Warnings) > 0 {
		return res, ErrDataProblems
	}
	return res, nil
}

// Repair normalizes the stored data and saves it back.
func (s *ReportService) Repair(ctx context.Context) error {
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		return st, nil
	})
	return err
}
