// Package cli provides the CLI presentation layer for the tally application.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/stats"
	"github.com/xolan/tally/internal/storage"
	"github.com/xolan/tally/internal/timeutil"
)

// ShortIDLen is the number of id characters shown in listings.
const ShortIDLen = 8

var (
	idColor        = color.New(color.FgHiYellow, color.Faint)
	importantColor = color.New(color.FgYellow, color.Bold)
	runningColor   = color.New(color.FgGreen, color.Bold)
	doneColor      = color.New(color.Faint)
	titleColor     = color.New(color.Bold, color.Underline)
	faintColor     = color.New(color.Faint, color.Italic)
)

// Markers shown next to tasks.
const (
	MarkImportant = "★"
	MarkRunning   = "●"
	MarkDone      = "✓"
	MarkOpen      = "○"
)

// ShortID returns the leading characters of an id.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

// FormatProjectAndCode formats a project and billing code for display.
// Returns format like: "@project" or "@project #code", or "" when both are empty.
func FormatProjectAndCode(project, code string) string {
	var parts []string
	if project != "" {
		parts = append(parts, "@"+project)
	}
	if code != "" {
		parts = append(parts, "#"+code)
	}
	return strings.Join(parts, " ")
}

// FormatTaskLabel formats a task name with its project and code.
// Returns format like: "name" or "name [@project #code]"
func FormatTaskLabel(name, project, code string) string {
	metadata := FormatProjectAndCode(project, code)
	if metadata == "" {
		return name
	}
	return fmt.Sprintf("%s [%s]", name, metadata)
}

// FormatTaskView formats a task view as a one-line label.
func FormatTaskView(v service.TaskView) string {
	return FormatTaskLabel(v.Task.Name, v.ProjectName, v.Code)
}

// Markers returns the status markers of a task: done or open, then
// running and important when they apply.
func Markers(v service.TaskView) string {
	var b strings.Builder
	if v.Task.IsCompleted {
		b.WriteString(doneColor.Sprint(MarkDone))
	} else {
		b.WriteString(MarkOpen)
	}
	if v.Running || v.RunningSubID != "" {
		b.WriteString(runningColor.Sprint(MarkRunning))
	}
	if v.Task.IsImportant {
		b.WriteString(importantColor.Sprint(MarkImportant))
	}
	return b.String()
}

// DayTable lays out the tasks of a day, one row per task followed by its
// sub-tasks.
func DayTable(day *service.DayResult) *uitable.Table {
	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Separator = "  "

	for _, v := range day.Tasks {
		name := v.Task.Name
		if v.Task.IsCompleted {
			name = doneColor.Sprint(name)
		}
		tbl.AddRow(idColor.Sprint(ShortID(v.Task.ID)), Markers(v), name,
			FormatProjectAndCode(v.ProjectName, v.Code), timeutil.FormatDuration(v.Duration))

		for i, st := range v.Task.SubTasks {
			mark := MarkOpen
			if st.IsCompleted {
				mark = doneColor.Sprint(MarkDone)
			}
			if v.RunningSubID == st.ID {
				mark += runningColor.Sprint(MarkRunning)
			}
			tbl.AddRow("", "", fmt.Sprintf("  %d. %s %s", i+1, mark, st.Name), "", timeutil.FormatDuration(st.TimeLogged))
		}
	}
	return tbl
}

// BreakdownTable lays out report rows with their share of total.
func BreakdownTable(rows []stats.Breakdown, total int64) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, r := range rows {
		tbl.AddRow(r.Name, timeutil.FormatDuration(r.Duration), FormatPercent(r.Duration, total))
	}
	return tbl
}

// FormatPercent formats part as a percentage of total.
func FormatPercent(part, total int64) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(part)*100/float64(total))
}

// ActivityBar renders a horizontal bar of width cells filled by ratio.
func ActivityBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("·", width-filled)
}

// Title formats a section title.
func Title(s string) string {
	return titleColor.Sprint(s)
}

// Faint formats secondary text such as "none".
func Faint(s string) string {
	return faintColor.Sprint(s)
}

// FormatDateForDisplay formats a date key for display, e.g. "Mon, Mar 4, 2024".
// Keys that do not parse are returned unchanged.
func FormatDateForDisplay(key string) string {
	d, err := time.Parse(timeutil.DateLayout, key)
	if err != nil {
		return key
	}
	return d.Format("Mon, Jan 2, 2006")
}

// FormatDateRangeForDisplay formats a date range for human-readable display.
func FormatDateRangeForDisplay(start, end time.Time) string {
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return start.Format("Mon, Jan 2, 2006")
	}
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning storage.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Key %s: %s (error: %s)", warning.Key, content, warning.Error)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// FormatTimerStartTime formats the timer start time relative to now.
func FormatTimerStartTime(startedAt, now time.Time) string {
	startTime := startedAt.Format("3:04 PM")

	isToday := startedAt.Year() == now.Year() &&
		startedAt.Month() == now.Month() &&
		startedAt.Day() == now.Day()

	if isToday {
		return fmt.Sprintf("today at %s", startTime)
	}
	return fmt.Sprintf("%s at %s", startedAt.Format("Mon Jan 2"), startTime)
}
