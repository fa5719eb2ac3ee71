// Package report renders the weekly summary as a PDF and writes data
// exports in JSON, YAML or CSV.
package report

import (
	"fmt"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/stats"
	"github.com/xolan/tally/internal/timeutil"
)

// Title is the heading of the weekly report.
const Title = "Weekly Time Report"

var tableProps = props.TableList{
	HeaderProp: props.TableListContent{
		Size:      10,
		GridSizes: []uint{8, 4},
	},
	ContentProp: props.TableListContent{
		Size:      10,
		GridSizes: []uint{8, 4},
	},
	Align:                consts.Left,
	AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
	HeaderContentSpace:   1,
	Line:                 false,
}

// BuildPDF lays out the weekly report.
func BuildPDF(w *service.WeekReport) pdf.Maroto {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(Title, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text("Period: "+Period(w), props.Text{
					Top:   2,
					Align: consts.Center,
					Size:  11,
				})
			})
		})
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text("Generated on: "+w.ReportedAt.Format("2006-01-02 15:04"), props.Text{
					Top:   1,
					Align: consts.Center,
					Size:  9,
				})
			})
		})
	})

	section(m, "Overall Summary")
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text("Total Hours Logged: "+timeutil.FormatDuration(w.Total), props.Text{Top: 1, Size: 11})
		})
	})
	m.Row(8, func() {
		m.Col(12, func() {
			status := fmt.Sprintf("Tasks: %d completed, %d active, %d total", w.Status.Completed, w.Status.Active, w.Status.Total)
			m.Text(status, props.Text{Top: 1, Size: 10})
		})
	})

	if len(w.Days) > 0 {
		section(m, "Daily Activity")
		m.TableList([]string{"Day", "Hours Logged"}, DayRows(w.Days), tableProps)
	}
	if len(w.ByProject) > 0 {
		section(m, "Project Breakdown")
		m.TableList([]string{"Project Name", "Hours Logged"}, BreakdownRows(w.ByProject), tableProps)
	}
	if len(w.ByCode) > 0 {
		section(m, "Billing Code Breakdown")
		m.TableList([]string{"Billing Code", "Hours Logged"}, BreakdownRows(w.ByCode), tableProps)
	}
	if w.Total == 0 && len(w.ByProject) == 0 && len(w.ByCode) == 0 {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("No time logged for this week.", props.Text{Top: 3, Style: consts.Italic, Size: 10})
			})
		})
	}
	return m
}

// WritePDF writes the weekly report to path.
func WritePDF(path string, w *service.WeekReport) error {
	return BuildPDF(w).OutputFileAndClose(path)
}

func section(m pdf.Maroto, title string) {
	m.Row(12, func() {
		m.Col(12, func() {
			m.Text(title, props.Text{
				Top:   5,
				Style: consts.Bold,
				Size:  13,
			})
		})
	})
}

// Period formats the report's date range.
func Period(w *service.WeekReport) string {
	return fmt.Sprintf("%s - %s", timeutil.DateKey(w.Start), timeutil.DateKey(w.End))
}

// BreakdownRows turns breakdown rows into table cells.
func BreakdownRows(rows []stats.Breakdown) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Name, timeutil.FormatDuration(r.Duration)}
	}
	return out
}

// DayRows turns the activity series into table cells.
func DayRows(days []stats.DayActivity) [][]string {
	out := make([][]string, len(days))
	for i, d := range days {
		out[i] = []string{d.Date.Format("Mon 2006-01-02"), timeutil.FormatDuration(d.Total)}
	}
	return out
}
