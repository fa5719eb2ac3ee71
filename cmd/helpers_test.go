package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/storage"
	"github.com/xolan/tally/internal/tracker"
)

func init() {
	color.NoColor = true
}

// testEnv is a CLI environment over a json store in a temp dir. The clock
// is fixed at 2024-03-04 09:00 UTC unless a test moves it.
type testEnv struct {
	deps     *cli.Deps
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode int
	now      time.Time
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tmpDir := t.TempDir()
	st, err := storage.NewFileStore(filepath.Join(tmpDir, "data"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	env := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		now:    time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
	}
	n := 0
	engine := &tracker.Engine{
		Now: func() time.Time { return env.now },
		NewID: func() string {
			n++
			return fmt.Sprintf("id%04d", n)
		},
		Location: time.UTC,
	}
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	services := service.NewServicesWithStore(st, filepath.Join(tmpDir, "config.toml"), cfg, engine)

	env.deps = &cli.Deps{
		Stdout:   env.stdout,
		Stderr:   env.stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { env.exitCode = code },
		Services: services,
		Config:   cfg,
	}
	cli.SetDeps(env.deps)
	t.Cleanup(func() {
		cli.SetDeps(nil)
		_ = services.Close()
	})
	return env
}

// run executes the root command with args and returns cobra's error.
func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	e.stdout.Reset()
	e.stderr.Reset()
	e.exitCode = 0
	return executeCommand(args...)
}

// executeCommand runs rootCmd with args after putting every flag back to
// its default, since cobra keeps parsed values between executions.
func executeCommand(args ...string) error {
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// seed creates the project "Website" (id0001) and the task "Write docs"
// (id0002) on 2024-03-04.
func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	ctx := e.deps.Context()
	if _, err := e.deps.Services.Catalog.AddProject(ctx, "Website", "#ff0000"); err != nil {
		t.Fatalf("failed to add project: %v", err)
	}
	if _, err := e.deps.Services.Tasks.Add(ctx, service.NewTask{Name: "Write docs", Date: "2024-03-04", Project: "Website"}); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
}
