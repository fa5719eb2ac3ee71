package service

import (
	"fmt"

	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/storage"
	"github.com/xolan/tally/internal/tracker"
)

// Services holds all service instances used by the application
type Services struct {
	Tasks   *TaskService
	Timer   *TimerService
	Time    *TimeService
	Catalog *CatalogService
	Report  *ReportService
	Backup  *BackupService
	Config  *ConfigService

	session *Session
}

// NewServices creates a new Services instance from the user's config file
func NewServices() (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithPaths(cfg.DataDir, configPath, cfg)
}

// NewServicesWithPaths creates a new Services instance with custom paths (useful for testing).
// An empty dataDir selects the default data directory.
func NewServicesWithPaths(dataDir, configPath string, cfg config.Config) (*Services, error) {
	st, err := storage.Open(cfg.Storage, dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return NewServicesWithStore(st, configPath, cfg, tracker.NewEngine(cfg.Location())), nil
}

// NewServicesWithStore wires the services around an open store and engine.
func NewServicesWithStore(st storage.Store, configPath string, cfg config.Config, engine *tracker.Engine) *Services {
	session := NewSession(st, engine)

	return &Services{
		Tasks:   NewTaskService(session),
		Timer:   NewTimerService(session),
		Time:    NewTimeService(session),
		Catalog: NewCatalogService(session),
		Report:  NewReportService(session, cfg),
		Backup:  NewBackupService(session),
		Config:  NewConfigService(configPath, cfg),
		session: session,
	}
}

// Session returns the shared session.
func (s *Services) Session() *Session {
	return s.session
}

// Close releases the underlying store.
func (s *Services) Close() error {
	return s.session.Close()
}
