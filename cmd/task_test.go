package cmd

import (
	"strings"
	"testing"
)

func TestTaskAddCmd_QuickAdd(t *testing.T) {
	env := setupTestEnv(t)
	env.seed(t)

	if err := env.run(t, "task", "add", "review", "PR", "@website"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.exitCode != 0 {
		t.Fatalf("unexpected exit %d: %s", env.exitCode, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Added: review PR on 2024-03-04") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}
}

func TestTaskAddCmd_Flags(t *testing.T) {
	env := setupTestEnv(t)
	env.seed(t)

	err := env.run(t, "task", "add", "planning", "-p", "Website", "-d", "2024-03-05", "--desc", "quarterly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Added: planning on 2024-03-05") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}

	day, err := env.deps.Services.Tasks.Day(env.deps.Context(), "2024-03-05", nil)
	if err != nil {
		t.Fatalf("failed to load day: %v", err)
	}
	if len(day.Tasks) != 1 || day.Tasks[0].Task.Description != "quarterly" {
		t.Errorf("expected one task with description, got %+v", day.Tasks)
	}
}

func TestTaskEditCmd_OnlyChangedFlags(t *testing.T) {
	env := setupTestEnv(t)
	env.seed(t)

	if err := env.run(t, "task", "edit", "id0002", "--name", "Write changelog"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Updated: Write changelog on 2024-03-04") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}

	if err := env.run(t, "task", "edit", "id0002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.exitCode != 1 || !strings.Contains(env.stderr.String(), "At least one change is required") {
		t.Errorf("expected usage error, got exit %d: %s", env.exitCode, env.stderr.String())
	}
}

func TestTaskChanges_Order(t *testing.T) {
	setupTestEnv(t)
	resetFlags(rootCmd)

	if err := taskEditCmd.ParseFlags([]string{"--order", "2", "--code", ""}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	c := taskChanges(taskEditCmd)
	if c.Order == nil || *c.Order != 1 {
		t.Errorf("expected 0-based order 1, got %v", c.Order)
	}
	if c.Code == nil || *c.Code != "" {
		t.Errorf("expected empty code to be set, got %v", c.Code)
	}
	if c.Name != nil || c.Date != nil || c.Project != nil || c.Description != nil {
		t.Errorf("unset flags should stay nil: %+v", c)
	}
}

func TestTaskDoneAndImportantCmds(t *testing.T) {
	env := setupTestEnv(t)
	env.seed(t)

	if err := env.run(t, "task", "done", "id0002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Completed: Write docs") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}

	if err := env.run(t, "task", "important", "id0002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Marked important: Write docs") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}
}

func TestTaskDeleteCmd_Yes(t *testing.T) {
	env := setupTestEnv(t)
	env.seed(t)

	if err := env.run(t, "task", "delete", "id0002", "-y"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.exitCode != 0 {
		t.Fatalf("unexpected exit %d: %s", env.exitCode, env.stderr.String())
	}

	if err := env.run(t, "task", "show", "id0002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.exitCode != 1 {
		t.Errorf("expected deleted task to be missing, got: %s", env.stdout.String())
	}
}

func TestTaskMoveCopyCmds(t *testing.T) {
	env := setupTestEnv(t)
	env.seed(t)

	if err := env.run(t, "task", "copy", "id0002", "2024-03-06"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Copied: Write docs to 2024-03-06") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}

	if err := env.run(t, "task", "move", "id0002", "2024-03-05"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Moved: Write docs to 2024-03-05") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}
}

func TestTaskReorderCmd_Args(t *testing.T) {
	setupTestEnv(t)

	if err := executeCommand("task", "reorder"); err == nil {
		t.Error("expected an error without a task")
	}
	if err := executeCommand("task", "reorder", "a", "b", "c"); err == nil {
		t.Error("expected an error for three arguments")
	}
}

func TestSubCmds(t *testing.T) {
	env := setupTestEnv(t)
	env.seed(t)

	if err := env.run(t, "sub", "add", "id0002", "draft", "outline"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Added sub-task 1: draft outline") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}

	if err := env.run(t, "sub", "done", "id0002", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.exitCode != 0 {
		t.Errorf("unexpected exit %d: %s", env.exitCode, env.stderr.String())
	}

	if err := env.run(t, "sub", "delete", "id0002", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.exitCode != 0 {
		t.Errorf("unexpected exit %d: %s", env.exitCode, env.stderr.String())
	}
}
