package storage

import (
	"os"
	"path/filepath"
	"testing"
)

// Helper to create a temporary data file with content
func createTempDataFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "tasks.json")
	if content != "" {
		if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create temp data file: %v", err)
		}
	}
	return tmpFile
}

// Helper to check if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Helper to read file content
func readFileContent(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func TestBackupPath(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{1, "tasks.json.bak.1"},
		{2, "tasks.json.bak.2"},
		{3, "tasks.json.bak.3"},
	}
	for _, tt := range tests {
		if got := filepath.Base(BackupPath("/data/tasks.json", tt.n)); got != tt.expected {
			t.Errorf("BackupPath(%d) = %q, expected %q", tt.n, got, tt.expected)
		}
	}
}

func TestCreateBackup_NoExistingFile(t *testing.T) {
	path := createTempDataFile(t, "")

	if err := CreateBackup([]string{path}); err != nil {
		t.Fatalf("CreateBackup returned error for missing file: %v", err)
	}
	if fileExists(BackupPath(path, 1)) {
		t.Error("backup should not be created when the data file is missing")
	}
}

func TestCreateBackup_Rotation(t *testing.T) {
	path := createTempDataFile(t, "v1")

	for _, next := range []string{"v2", "v3", "v4", "v5"} {
		if err := CreateBackup([]string{path}); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(next), 0644); err != nil {
			t.Fatal(err)
		}
	}

	// After four backups only the three most recent generations remain.
	expected := map[int]string{1: "v4", 2: "v3", 3: "v2"}
	for n, content := range expected {
		if got := readFileContent(t, BackupPath(path, n)); got != content {
			t.Errorf("backup %d = %q, expected %q", n, got, content)
		}
	}
	if fileExists(BackupPath(path, 4)) {
		t.Error("backup 4 should never exist")
	}
}

func TestCreateBackup_FilesRotateTogether(t *testing.T) {
	dir := t.TempDir()
	tasks := filepath.Join(dir, "tasks.json")
	entries := filepath.Join(dir, "timeEntries.json")
	if err := os.WriteFile(tasks, []byte("t1"), 0644); err != nil {
		t.Fatal(err)
	}

	// entries.json does not exist yet, so generation 1 holds only tasks.
	if err := CreateBackup([]string{tasks, entries}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(entries, []byte("e1"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := CreateBackup([]string{tasks, entries}); err != nil {
		t.Fatal(err)
	}

	if got := readFileContent(t, BackupPath(tasks, 1)); got != "t1" {
		t.Errorf("tasks backup 1 = %q, expected t1", got)
	}
	if got := readFileContent(t, BackupPath(entries, 1)); got != "e1" {
		t.Errorf("entries backup 1 = %q, expected e1", got)
	}
	if got := readFileContent(t, BackupPath(tasks, 2)); got != "t1" {
		t.Errorf("tasks backup 2 = %q, expected t1", got)
	}
	if fileExists(BackupPath(entries, 2)) {
		t.Error("entries had no file in generation 2")
	}
}

func TestReadGeneration(t *testing.T) {
	dir := t.TempDir()
	tasks := filepath.Join(dir, "tasks.json")
	projects := filepath.Join(dir, "projects.json")
	if err := os.WriteFile(BackupPath(tasks, 2), []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	gen, err := readGeneration(map[string]string{"tasks": tasks, "projects": projects}, 2)
	if err != nil {
		t.Fatalf("readGeneration failed: %v", err)
	}
	if string(gen["tasks"]) != "[]" {
		t.Errorf("expected tasks content, got %q", gen["tasks"])
	}
	if data, ok := gen["projects"]; !ok || data != nil {
		t.Errorf("expected projects to map to nil, got %q (present %v)", data, ok)
	}
}

func TestListBackups(t *testing.T) {
	dir := t.TempDir()
	tasks := filepath.Join(dir, "tasks.json")
	projects := filepath.Join(dir, "projects.json")
	for _, p := range []string{BackupPath(tasks, 1), BackupPath(projects, 1), BackupPath(tasks, 3)} {
		if err := os.WriteFile(p, []byte("[]"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	backups := ListBackups(map[string]string{"tasks": tasks, "projects": projects})
	if len(backups) != 2 {
		t.Fatalf("expected 2 generations, got %d: %+v", len(backups), backups)
	}
	if backups[0].Number != 1 || len(backups[0].Keys) != 2 || backups[0].Keys[0] != "projects" {
		t.Errorf("unexpected first generation: %+v", backups[0])
	}
	if backups[1].Number != 3 || len(backups[1].Keys) != 1 || backups[1].Keys[0] != "tasks" {
		t.Errorf("unexpected second generation: %+v", backups[1])
	}
}
