package tracker

import (
	"strings"
	"testing"
	"time"

	"github.com/xolan/tally/internal/model"
)

func TestAddTime(t *testing.T) {
	e, clock := newTestEngine()
	clock.now = utc(2024, time.March, 9, 16, 45).Add(12 * time.Second)

	s, entry, err := e.AddTime(baseState(), "A", "2024-03-04", 1, 30)
	if err != nil {
		t.Fatalf("AddTime failed: %v", err)
	}
	expectedStart := utc(2024, time.March, 4, 16, 45).Add(12 * time.Second)
	if entry.StartTime != ms(expectedStart) {
		t.Errorf("start = %v, expected %v", time.UnixMilli(entry.StartTime).UTC(), expectedStart)
	}
	if entry.Duration != 5400000 || entry.EndTime != entry.StartTime+5400000 {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Notes != ManualAdditionNote {
		t.Errorf("notes = %q, expected %q", entry.Notes, ManualAdditionNote)
	}
	if len(s.EntriesFor("A")) != 1 {
		t.Error("expected entry to be stored")
	}
}

func TestAdjust_Validation(t *testing.T) {
	e, _ := newTestEngine()
	tests := []struct {
		name    string
		hours   int
		minutes int
	}{
		{"zero and zero", 0, 0},
		{"negative hours", -1, 0},
		{"negative minutes", 1, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := e.AddTime(baseState(), "A", "2024-03-04", tt.hours, tt.minutes)
			mustKind(t, err, ErrValidation)
			_, err = e.SubtractTime(baseState(), "A", "2024-03-04", tt.hours, tt.minutes)
			mustKind(t, err, ErrValidation)
		})
	}

	_, _, err := e.AddTime(baseState(), "zz", "2024-03-04", 1, 0)
	mustKind(t, err, ErrNotFound)
}

func entriesState() State {
	s := baseState()
	day := utc(2024, time.March, 4, 0, 0)
	s.TimeEntries = []model.TimeEntry{
		{ID: "old", TaskID: "A", StartTime: ms(day.Add(8 * time.Hour)), EndTime: ms(day.Add(9 * time.Hour)), Duration: 3600000},
		{ID: "new", TaskID: "A", StartTime: ms(day.Add(13 * time.Hour)), EndTime: ms(day.Add(13*time.Hour + 30*time.Minute)), Duration: 1800000, Notes: "focus"},
		{ID: "other-day", TaskID: "A", StartTime: ms(day.Add(30 * time.Hour)), Duration: 7200000},
		{ID: "other-task", TaskID: "B", StartTime: ms(day.Add(10 * time.Hour)), Duration: 7200000},
	}
	return s
}

func TestSubtractTime_PartialOfNewest(t *testing.T) {
	e, _ := newTestEngine()
	s, err := e.SubtractTime(entriesState(), "A", "2024-03-04", 0, 10)
	if err != nil {
		t.Fatalf("SubtractTime failed: %v", err)
	}
	var newest model.TimeEntry
	for _, te := range s.TimeEntries {
		if te.ID == "new" {
			newest = te
		}
	}
	if newest.Duration != 1200000 {
		t.Errorf("expected newest entry shortened to 20m, got %d", newest.Duration)
	}
	if newest.Notes != "focus Adjusted." {
		t.Errorf("notes = %q", newest.Notes)
	}
	if len(s.TimeEntries) != 4 {
		t.Errorf("expected 4 entries, got %d", len(s.TimeEntries))
	}
}

func TestSubtractTime_ConsumesAcrossEntries(t *testing.T) {
	e, _ := newTestEngine()
	s, err := e.SubtractTime(entriesState(), "A", "2024-03-04", 0, 45)
	if err != nil {
		t.Fatalf("SubtractTime failed: %v", err)
	}
	ids := map[string]model.TimeEntry{}
	for _, te := range s.TimeEntries {
		ids[te.ID] = te
	}
	if _, ok := ids["new"]; ok {
		t.Error("fully consumed entry should be removed")
	}
	old := ids["old"]
	if old.Duration != 2700000 || !strings.HasSuffix(old.Notes, " Adjusted.") {
		t.Errorf("unexpected older entry: %+v", old)
	}
	if ids["other-day"].Duration != 7200000 || ids["other-task"].Duration != 7200000 {
		t.Error("entries outside the date or task must not change")
	}
}

func TestSubtractTime_ExactTotalRemovesAll(t *testing.T) {
	e, _ := newTestEngine()
	s, err := e.SubtractTime(entriesState(), "A", "2024-03-04", 1, 30)
	if err != nil {
		t.Fatalf("SubtractTime failed: %v", err)
	}
	for _, te := range s.TimeEntries {
		if te.ID == "old" || te.ID == "new" {
			t.Errorf("entry %s should have been removed", te.ID)
		}
	}
	if len(s.TimeEntries) != 2 {
		t.Errorf("expected 2 entries left, got %d", len(s.TimeEntries))
	}
}

func TestSubtractTime_Insufficient(t *testing.T) {
	e, _ := newTestEngine()
	base := entriesState()
	s, err := e.SubtractTime(base, "A", "2024-03-04", 1, 31)
	mustKind(t, err, ErrInsufficientTime)
	if len(s.TimeEntries) != len(base.TimeEntries) || s.TimeEntries[1].Duration != 1800000 {
		t.Error("state changed on error")
	}
}

func TestSubtractTime_IgnoresSubTaskTime(t *testing.T) {
	e, _ := newTestEngine()
	s := baseState()
	s.Tasks[0].SubTasks[0].TimeLogged = 10 * 3600000
	_, err := e.SubtractTime(s, "A", "2024-03-04", 1, 0)
	mustKind(t, err, ErrInsufficientTime)
}
