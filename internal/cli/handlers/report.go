package handlers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/report"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/timeutil"
)

// barWidth is the width of the activity bars in the weekly summary.
const barWidth = 30

// ShowWeek prints the weekly summary of the week containing date. When
// pdfPath is set the summary is also written there as a PDF.
func ShowWeek(deps *cli.Deps, date, pdfPath string) {
	if !ready(deps) {
		return
	}
	w, err := deps.Services.Report.Week(deps.Context(), date)
	if err != nil {
		fail(deps, err)
		return
	}
	printWarnings(deps, w.Warnings)

	_, _ = fmt.Fprintln(deps.Stdout, cli.Title("Week of "+cli.FormatDateRangeForDisplay(w.Start, w.End)))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	for _, d := range w.Days {
		_, _ = fmt.Fprintf(deps.Stdout, "%s %s  %s %s\n", d.Label, d.Date.Format("Jan 02"),
			cli.ActivityBar(d.Ratio, barWidth), timeutil.FormatDuration(d.Total))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total:  %s\n", timeutil.FormatDuration(w.Total))
	_, _ = fmt.Fprintf(deps.Stdout, "Tasks:  %d completed, %d active\n", w.Status.Completed, w.Status.Active)

	if len(w.ByProject) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, cli.Title("By project"))
		_, _ = fmt.Fprintln(deps.Stdout, cli.BreakdownTable(w.ByProject, w.Total))
	}
	if len(w.ByCode) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, cli.Title("By billing code"))
		_, _ = fmt.Fprintln(deps.Stdout, cli.BreakdownTable(w.ByCode, w.Total))
	}
	if w.Total == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, cli.Faint("No time logged for this week."))
	}

	if pdfPath == "" {
		return
	}
	if err := report.WritePDF(pdfPath, w); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to write PDF report: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "\nReport written to %s\n", pdfPath)
}

// ExportFlags are the export command's options.
type ExportFlags struct {
	Format  string
	Output  string
	From    string
	To      string
	Last    int
	Keyword string
	Project string
	Code    string
}

// Export writes the selected tasks with their time entries to deps.Stdout
// or to the output file.
func Export(deps *cli.Deps, flags ExportFlags) {
	if !ready(deps) {
		return
	}
	opts := service.ExportOptions{Keyword: flags.Keyword, Project: flags.Project, Code: flags.Code}
	if flags.From != "" || flags.To != "" || flags.Last > 0 {
		start, end, err := timeutil.ParseDateRangeFlags(flags.From, flags.To, flags.Last, deps.Services.Session().Now())
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		if !start.IsZero() {
			opts.From = timeutil.DateKey(start)
		}
		opts.To = timeutil.DateKey(end)
	}

	data, err := deps.Services.Report.Export(deps.Context(), opts)
	if err != nil {
		fail(deps, err)
		return
	}

	var out io.Writer = deps.Stdout
	var file *os.File
	if flags.Output != "" {
		if file, err = os.Create(flags.Output); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to create %s: %v\n", flags.Output, err)
			deps.Exit(1)
			return
		}
		out = file
	}

	err = report.WriteExport(out, flags.Format, data)
	if file != nil {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to export: %v\n", err)
		deps.Exit(1)
		return
	}
	if file != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Exported %d %s to %s\n", len(data.Tasks), cli.Pluralize("task", len(data.Tasks)), flags.Output)
	}
}

// Doctor checks the stored data and, with fix, saves the repaired data.
func Doctor(deps *cli.Deps, fix bool) {
	if !ready(deps) {
		return
	}
	res, err := deps.Services.Report.Check(deps.Context())
	if res == nil {
		fail(deps, err)
		return
	}

	if err == nil {
		_, _ = fmt.Fprintln(deps.Stdout, "Storage is healthy")
		return
	}

	if len(res.Warnings) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "%d unreadable %s:\n", len(res.Warnings), cli.Pluralize("value", len(res.Warnings)))
		for _, w := range res.Warnings {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(w))
		}
	}
	if len(res.Problems) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "%d %s found:\n", len(res.Problems), cli.Pluralize("problem", len(res.Problems)))
		for _, p := range res.Problems {
			_, _ = fmt.Fprintf(deps.Stdout, "  - %s\n", p)
		}
	}

	if !fix {
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'tally doctor --fix' to repair ordering and references, or 'tally restore' to roll back")
		deps.Exit(1)
		return
	}
	if err := deps.Services.Report.Repair(deps.Context()); err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Repaired and saved")
}
