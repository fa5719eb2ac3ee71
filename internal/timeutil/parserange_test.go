package timeutil

import (
	"strings"
	"testing"
	"time"
)

func TestParseDateRangeFlags_LastDays(t *testing.T) {
	now := time.Date(2024, time.March, 6, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		lastDays  int
		wantStart string
	}{
		{"last 1 day", 1, "2024-03-06"},
		{"last 7 days", 7, "2024-02-29"},
		{"last 30 days", 30, "2024-02-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ParseDateRangeFlags("", "", tt.lastDays, now)
			if err != nil {
				t.Fatalf("ParseDateRangeFlags() unexpected error: %v", err)
			}
			if got := DateKey(start); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if !start.Equal(StartOfDay(start)) {
				t.Errorf("start should be midnight, got %v", start)
			}
			if !end.Equal(EndOfDay(now)) {
				t.Errorf("end = %v, want %v", end, EndOfDay(now))
			}
		})
	}
}

func TestParseDateRangeFlags_FromTo(t *testing.T) {
	now := time.Date(2024, time.March, 6, 15, 4, 5, 0, time.UTC)

	start, end, err := ParseDateRangeFlags("2024-03-01", "2024-03-03", 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if DateKey(start) != "2024-03-01" {
		t.Errorf("start = %s, want 2024-03-01", DateKey(start))
	}
	want := EndOfDay(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC))
	if !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
}

func TestParseDateRangeFlags_OpenStart(t *testing.T) {
	now := time.Date(2024, time.March, 6, 15, 4, 5, 0, time.UTC)

	start, end, err := ParseDateRangeFlags("", "", 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.IsZero() {
		t.Errorf("expected zero start for no --from, got %v", start)
	}
	if !end.Equal(EndOfDay(now)) {
		t.Errorf("end = %v, want end of today", end)
	}
}

func TestParseDateRangeFlags_Errors(t *testing.T) {
	now := time.Date(2024, time.March, 6, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		from, to string
		last     int
		wantText string
	}{
		{"last with from", "2024-03-01", "", 3, "cannot use --last"},
		{"last with to", "", "2024-03-01", 3, "cannot use --last"},
		{"bad from", "nope", "", 0, "invalid --from"},
		{"bad to", "", "nope", 0, "invalid --to"},
		{"from after to", "2024-03-05", "2024-03-01", 0, "is after --to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseDateRangeFlags(tt.from, tt.to, tt.last, now)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantText)
			}
		})
	}
}
