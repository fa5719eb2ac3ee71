package cmd

import (
	"strings"
	"testing"
)

func TestRestoreCmd_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"not a number", "abc", "Invalid backup number 'abc'"},
		{"zero", "0", "must be between 1 and 3"},
		{"too large", "4", "must be between 1 and 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)
			if err := env.run(t, "restore", tt.arg); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if env.exitCode != 1 || !strings.Contains(env.stderr.String(), tt.want) {
				t.Errorf("expected %q, got exit %d: %s", tt.want, env.exitCode, env.stderr.String())
			}
		})
	}
}

func TestRestoreCmd_RestoresMostRecent(t *testing.T) {
	env := setupTestEnv(t)
	env.seed(t)
	// A second write to the tasks key leaves the seeded state as backup 1.
	if err := env.run(t, "task", "important", "id0002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := env.run(t, "restore"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.exitCode != 0 {
		t.Fatalf("unexpected exit %d: %s", env.exitCode, env.stderr.String())
	}
	out := env.stdout.String()
	if !strings.Contains(out, "(most recent)") || !strings.Contains(out, "Successfully restored") {
		t.Errorf("unexpected output: %s", out)
	}

	view, err := env.deps.Services.Tasks.Get(env.deps.Context(), "id0002")
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}
	if view.Task.IsImportant {
		t.Error("expected the restored task to be unmarked")
	}
}
