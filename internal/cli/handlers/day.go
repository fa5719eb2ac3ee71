package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/filter"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/timeutil"
)

// DayFilter narrows the tasks listed for a day.
type DayFilter struct {
	Search  string
	Project string
	Code    string
}

// ShowDay lists the tasks of a day with their time and the day total.
// An empty date means today.
func ShowDay(deps *cli.Deps, date string, df DayFilter) {
	if !ready(deps) {
		return
	}
	ctx := deps.Context()

	f, err := resolveFilter(deps, df)
	if err != nil {
		fail(deps, err)
		return
	}

	day, err := deps.Services.Tasks.Day(ctx, date, f)
	if err != nil {
		fail(deps, err)
		return
	}
	printWarnings(deps, day.Warnings)

	heading := cli.FormatDateForDisplay(day.Date)
	if !f.IsEmpty() {
		heading = fmt.Sprintf("%s (%s)", heading, describeFilter(df))
	}
	_, _ = fmt.Fprintln(deps.Stdout, cli.Title(heading))

	if len(day.Tasks) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, cli.Faint("  no tasks"))
		if f.IsEmpty() {
			_, _ = fmt.Fprintln(deps.Stdout, "Add one with: tally task add <name> -p <project>")
		}
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, cli.DayTable(day))
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s (%d %s)\n", timeutil.FormatDuration(day.Total),
		len(day.Tasks), cli.Pluralize("task", len(day.Tasks)))

	if day.Timer != nil && day.Timer.Running {
		_, _ = fmt.Fprintf(deps.Stdout, "Running: %s (%s)\n", timerLabel(day.Timer), timeutil.FormatClock(day.Timer.Elapsed))
	}
}

// resolveFilter turns project and code names into ids.
func resolveFilter(deps *cli.Deps, df DayFilter) (*filter.Filter, error) {
	f := filter.NewFilter(df.Search, "", "")
	if df.Project == "" && df.Code == "" {
		return f, nil
	}
	st, err := deps.Services.Session().Load(deps.Context())
	if err != nil {
		return nil, err
	}
	if df.Project != "" {
		if f.ProjectID, err = service.ResolveProject(st, df.Project); err != nil {
			return nil, err
		}
	}
	if df.Code != "" {
		if f.BillingCodeID, err = service.ResolveBillingCode(st, df.Code); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func describeFilter(df DayFilter) string {
	var parts []string
	if meta := cli.FormatProjectAndCode(df.Project, df.Code); meta != "" {
		parts = append(parts, meta)
	}
	if df.Search != "" {
		parts = append(parts, fmt.Sprintf("%q", df.Search))
	}
	return strings.Join(parts, " ")
}

func timerLabel(s *service.TimerStatus) string {
	if s.SubTask != nil {
		return fmt.Sprintf("%s > %s", s.Task.Name, s.SubTask.Name)
	}
	return s.Task.Name
}
