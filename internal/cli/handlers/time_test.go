package handlers

import (
	"strings"
	"testing"
)

func TestAddTime(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	id := seedTask(t, deps)
	stdout.Reset()

	AddTime(deps, id, "1h30m", "")

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Added 1h 30m to Write docs on 2024-03-04") {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestAddTime_OtherDate(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	id := seedTask(t, deps)
	stdout.Reset()

	AddTime(deps, id, "30m", "2024-03-06")

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "on 2024-03-06") {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestAddTime_InvalidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"garbage", "soon", "invalid time format"},
		{"zero", "0m", "cannot be zero"},
		{"too large", "25h", "exceeds maximum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _, stderr, exitCode := setupTestDeps(t)
			id := seedTask(t, deps)

			AddTime(deps, id, tt.amount, "")

			if *exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", *exitCode)
			}
			if !strings.Contains(stderr.String(), tt.want) || !strings.Contains(stderr.String(), amountHint) {
				t.Errorf("expected %q with a hint, got %q", tt.want, stderr.String())
			}
		})
	}
}

func TestSubtractTime(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	id := seedTask(t, deps)
	AddTime(deps, id, "1h", "")
	stdout.Reset()

	SubtractTime(deps, id, "20m", "")

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Subtracted 20m from Write docs") {
		t.Errorf("unexpected output %q", stdout.String())
	}
	view, _ := deps.Services.Tasks.Get(deps.Context(), id)
	if view.Duration != 40*60000 {
		t.Errorf("expected 40m left, got %d", view.Duration)
	}
}

func TestSubtractTime_Insufficient(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)
	id := seedTask(t, deps)
	AddTime(deps, id, "10m", "")

	SubtractTime(deps, id, "1h", "")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Hint: See the logged time") {
		t.Errorf("expected insufficient time hint, got %q", stderr.String())
	}
}
