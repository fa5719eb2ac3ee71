package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/storage"
	"github.com/xolan/tally/internal/tracker"
)

// testClock is a settable clock for the engine.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestServices returns services over a json store in a temp dir. The
// clock starts at 2024-03-04 09:00 UTC and ids are id0001, id0002, ...
func newTestServices(t *testing.T) (*Services, *testClock) {
	t.Helper()
	dir := t.TempDir()
	st, err := storage.NewFileStore(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	clock := &testClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
	n := 0
	engine := &tracker.Engine{
		Now: clock.Now,
		NewID: func() string {
			n++
			return fmt.Sprintf("id%04d", n)
		},
		Location: time.UTC,
	}
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"

	svc := NewServicesWithStore(st, filepath.Join(dir, "config.toml"), cfg, engine)
	t.Cleanup(func() { _ = svc.Close() })
	return svc, clock
}

// seedProject creates a project and fails the test on error.
func seedProject(t *testing.T, svc *Services, name string) model.Project {
	t.Helper()
	p, err := svc.Catalog.AddProject(context.Background(), name, "")
	if err != nil {
		t.Fatalf("failed to add project: %v", err)
	}
	return p
}

// seedTask creates a task on date and fails the test on error.
func seedTask(t *testing.T, svc *Services, name, date, project string) model.Task {
	t.Helper()
	task, err := svc.Tasks.Add(context.Background(), NewTask{Name: name, Date: date, Project: project})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	return task
}

func TestNewServicesWithPaths(t *testing.T) {
	for _, backend := range storage.Backends {
		t.Run(backend, func(t *testing.T) {
			tmpDir := t.TempDir()
			cfg := config.DefaultConfig()
			cfg.Storage = backend

			services, err := NewServicesWithPaths(tmpDir, filepath.Join(tmpDir, "config.toml"), cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() { _ = services.Close() }()

			if services.Tasks == nil || services.Timer == nil || services.Time == nil ||
				services.Catalog == nil || services.Report == nil || services.Backup == nil || services.Config == nil {
				t.Fatalf("expected all services to be set: %+v", services)
			}

			// A write through any backend is visible to the next read.
			if _, err := services.Catalog.AddProject(context.Background(), "Work", ""); err != nil {
				t.Fatalf("AddProject failed: %v", err)
			}
			projects, err := services.Catalog.Projects(context.Background())
			if err != nil || len(projects) != 1 {
				t.Errorf("expected one project, got %v (err %v)", projects, err)
			}
		})
	}
}

func TestNewServicesWithPaths_UnknownBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage = "nope"
	if _, err := NewServicesWithPaths(t.TempDir(), "", cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestSession_ApplyDoesNotSaveOnError(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	seedProject(t, svc, "Work")

	_, err := svc.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		st.Projects = nil
		return st, fmt.Errorf("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	projects, _ := svc.Catalog.Projects(ctx)
	if len(projects) != 1 {
		t.Errorf("failed operation must not be persisted, got %v", projects)
	}
}

func TestSession_LoadNormalizesStoredOrder(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	raw := `[{"id":"b","name":"B","date":"2024-03-04","projectId":"p","createdAt":2,"subTasks":[]},
	{"id":"a","name":"A","date":"2024-03-04","projectId":"p","createdAt":1,"order":5,"subTasks":[]}]`
	if err := svc.session.Store().Put(ctx, storage.KeyTasks, []byte(raw)); err != nil {
		t.Fatal(err)
	}

	st, err := svc.session.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	tasks := st.TasksOn("2024-03-04")
	if tasks[0].ID != "a" || tasks[0].Order != 0 || tasks[1].ID != "b" || tasks[1].Order != 1 {
		t.Errorf("expected a(0), b(1), got %+v", tasks)
	}
}
