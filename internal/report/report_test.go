package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/stats"
)

func sampleExport() *service.ExportData {
	return &service.ExportData{
		From:         "2024-03-04",
		To:           "2024-03-10",
		Projects:     []model.Project{{ID: "p1", Name: "Website", Color: "#ff0000"}},
		BillingCodes: []model.BillingCode{{ID: "c1", Code: "ACME-1"}},
		Tasks: []model.Task{
			{ID: "t2", Name: "Review, PR", Date: "2024-03-05", ProjectID: "p1", Order: 0, SubTasks: []model.SubTask{}},
			{ID: "t1", Name: "Write", Date: "2024-03-04", ProjectID: "p1", BillingCodeID: "c1", Order: 0, IsCompleted: true,
				SubTasks: []model.SubTask{{ID: "s1", Name: "draft", TimeLogged: 15 * 60000}}},
		},
		TimeEntries: []model.TimeEntry{
			{ID: "e1", TaskID: "t1", StartTime: 1, EndTime: 3600001, Duration: 3600000},
			{ID: "e2", TaskID: "t1", StartTime: 2, EndTime: 1800002, Duration: 1800000},
		},
	}
}

func TestWriteExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExport(&buf, "json", sampleExport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded service.ExportData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(decoded.Tasks) != 2 || len(decoded.TimeEntries) != 2 {
		t.Errorf("unexpected decoded export: %+v", decoded)
	}
	if !strings.Contains(buf.String(), `"abacusCodes"`) {
		t.Error("expected billing codes under abacusCodes")
	}
}

func TestWriteExport_DefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExport(&buf, "", sampleExport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestWriteExport_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExport(&buf, "YAML", sampleExport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"projects:", "abacusCodes:", "projectId: p1", "timeEntries:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected YAML to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "{") {
		t.Errorf("expected block style YAML, got:\n%s", out)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	tasks, ok := decoded["tasks"].([]any)
	if !ok || len(tasks) != 2 {
		t.Errorf("expected 2 tasks, got %v", decoded["tasks"])
	}
}

func TestWriteExport_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExport(&buf, "csv", sampleExport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(CSVHeader, ",") {
		t.Errorf("unexpected header: %v", rows[0])
	}

	first := rows[1]
	if first[0] != "2024-03-04" || first[1] != "Write" {
		t.Errorf("expected rows ordered by date, got %v", first)
	}
	if first[2] != "Website" || first[3] != "ACME-1" || first[4] != "true" {
		t.Errorf("unexpected resolved columns: %v", first)
	}
	if first[6] != "1h 30m" || first[7] != "15m" || first[8] != "1h 45m" || first[9] != "105" {
		t.Errorf("unexpected duration columns: %v", first)
	}
	if rows[2][1] != "Review, PR" || rows[2][3] != "" || rows[2][8] != "0s" {
		t.Errorf("unexpected second row: %v", rows[2])
	}
}

func TestWriteExport_UnknownFormat(t *testing.T) {
	err := WriteExport(&bytes.Buffer{}, "xml", sampleExport())
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func sampleWeek() *service.WeekReport {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	return &service.WeekReport{
		Start: start,
		End:   start.AddDate(0, 0, 7).Add(-time.Millisecond),
		Days: []stats.DayActivity{
			{Date: start, Key: "2024-03-04", Label: "M", Total: 5400000, Ratio: 1},
			{Date: start.AddDate(0, 0, 1), Key: "2024-03-05", Label: "T"},
		},
		Total:      5400000,
		ByProject:  []stats.Breakdown{{ID: "p1", Name: "Website", Color: "#ff0000", Duration: 5400000}},
		ByCode:     []stats.Breakdown{{ID: "c1", Name: "ACME-1", Duration: 3600000}},
		Status:     stats.TaskStatus{Completed: 1, Active: 1, Total: 2},
		ReportedAt: start.Add(48 * time.Hour),
	}
}

func TestPeriod(t *testing.T) {
	if got := Period(sampleWeek()); got != "2024-03-04 - 2024-03-10" {
		t.Errorf("Period() = %q", got)
	}
}

func TestBreakdownRows(t *testing.T) {
	rows := BreakdownRows(sampleWeek().ByProject)
	if len(rows) != 1 || rows[0][0] != "Website" || rows[0][1] != "1h 30m" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestDayRows(t *testing.T) {
	rows := DayRows(sampleWeek().Days)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Mon 2024-03-04" || rows[1][1] != "0s" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.pdf")
	if err := WritePDF(path, sampleWeek()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("expected a PDF file, got prefix %q", data[:min(len(data), 8)])
	}
}

func TestWritePDF_EmptyWeek(t *testing.T) {
	w := sampleWeek()
	w.Total = 0
	w.ByProject = nil
	w.ByCode = nil

	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := WritePDF(path, w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected pdf to be written: %v", err)
	}
}
