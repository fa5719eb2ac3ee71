package service

import (
	"errors"
	"fmt"

	"github.com/xolan/tally/internal/storage"
)

// ErrBackupsUnsupported is returned when the storage backend keeps no backups.
var ErrBackupsUnsupported = errors.New("backups are only kept by the json storage backend")

// BackupService lists and restores the rotating backups of the json backend
type BackupService struct {
	session *Session
}

// NewBackupService creates a new BackupService
func NewBackupService(session *Session) *BackupService {
	return &BackupService{session: session}
}

func (s *BackupService) fileStore() (*storage.FileStore, error) {
	fs, ok := s.session.Store().(*storage.FileStore)
	if !ok {
		return nil, ErrBackupsUnsupported
	}
	return fs, nil
}

// List returns the available backup generations, most recent first.
func (s *BackupService) List() ([]storage.BackupInfo, error) {
	fs, err := s.fileStore()
	if err != nil {
		return nil, err
	}
	return fs.ListBackups(), nil
}

// Restore restores backup generation n and returns the restored keys.
func (s *BackupService) Restore(n int) ([]string, error) {
	fs, err := s.fileStore()
	if err != nil {
		return nil, err
	}
	s.session.mu.Lock()
	defer s.session.mu.Unlock()
	keys, err := fs.RestoreBackup(n)
	if err != nil {
		return keys, fmt.Errorf("failed to restore backup: %w", err)
	}
	return keys, nil
}
