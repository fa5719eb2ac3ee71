package cli

import (
	"context"
	"io"
	"os"

	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services is nil when storage could not be opened; Err says why.
	Services *service.Services
	Err      error

	Config config.Config
	Ctx    context.Context
}

// DefaultDeps creates a new Deps with default values
func DefaultDeps() *Deps {
	cfg := config.DefaultConfig()
	configPath, err := config.GetConfigPath()
	if err == nil {
		if loadedCfg, err := config.LoadOrDefault(configPath); err == nil {
			cfg = loadedCfg
		}
	}

	services, err := service.NewServices()
	d := NewDeps(services, cfg)
	d.Err = err
	return d
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services, cfg config.Config) *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Services: services,
		Config:   cfg,
	}
}

// Context returns the context for service calls.
func (d *Deps) Context() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// Global deps instance for CLI. Built on first use so that commands such as
// help and completion never open storage.
var deps *Deps

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps drops the current deps; the next GetDeps builds fresh defaults.
func ResetDeps() {
	if deps != nil && deps.Services != nil {
		_ = deps.Services.Close()
	}
	deps = nil
}

// GetDeps returns the current deps
func GetDeps() *Deps {
	if deps == nil {
		deps = DefaultDeps()
	}
	return deps
}

// Loaded reports whether the global deps have been built.
func Loaded() bool {
	return deps != nil
}
