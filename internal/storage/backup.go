package storage

import (
	"fmt"
	"os"
	"sort"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// BackupPath returns the path of backup n of a data file, e.g. tasks.json.bak.2.
// Lower numbers are more recent (.bak.1 is the most recent backup).
func BackupPath(path string, n int) string {
	return fmt.Sprintf("%s%s.%d", path, BackupSuffix, n)
}

// rotateBackups shifts existing backup files to make room for a new backup.
// It renames .bak.1 -> .bak.2, .bak.2 -> .bak.3, and deletes the oldest .bak.3
// if it exists. Missing files are not an error.
func rotateBackups(path string) error {
	if err := os.Remove(BackupPath(path, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}
	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(BackupPath(path, i), BackupPath(path, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// CreateBackup records the current content of a set of data files as backup
// generation 1. All files rotate together, so generation n of every file is
// the same point in time; a file missing at that point has no backup in the
// generation. Nothing happens when none of the files exist.
func CreateBackup(paths []string) error {
	current := make(map[string][]byte, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		current[path] = data
	}
	if len(current) == 0 {
		return nil
	}

	for _, path := range paths {
		if err := rotateBackups(path); err != nil {
			return err
		}
	}
	for path, data := range current {
		if err := os.WriteFile(BackupPath(path, 1), data, 0644); err != nil {
			return err
		}
	}
	return nil
}

// BackupInfo describes one backup generation across the data files.
type BackupInfo struct {
	Number int      // The backup number (1 is the most recent)
	Keys   []string // Keys with a backup file of this generation
}

// ListBackups returns the backup generations available for the given data
// files, most recent first. keyPaths maps storage keys to file paths.
func ListBackups(keyPaths map[string]string) []BackupInfo {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		info := BackupInfo{Number: i}
		for key, path := range keyPaths {
			if _, err := os.Stat(BackupPath(path, i)); err == nil {
				info.Keys = append(info.Keys, key)
			}
		}
		if len(info.Keys) > 0 {
			sort.Strings(info.Keys)
			backups = append(backups, info)
		}
	}
	return backups
}

// readGeneration returns the content of backup generation n for every key.
// Keys without a backup file in the generation map to nil.
func readGeneration(keyPaths map[string]string, n int) (map[string][]byte, error) {
	gen := make(map[string][]byte, len(keyPaths))
	for key, path := range keyPaths {
		data, err := os.ReadFile(BackupPath(path, n))
		if err != nil {
			if os.IsNotExist(err) {
				gen[key] = nil
				continue
			}
			return nil, err
		}
		gen[key] = data
	}
	return gen, nil
}

// writeFileAtomic writes data to a temporary file and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return os.Rename(tmpFile, path)
}
