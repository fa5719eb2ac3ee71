package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileStore keeps each key in its own JSON file inside a directory. Every
// change keeps the previous content of all state files as a backup
// generation, up to MaxBackupCount generations.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file holding key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Put implements Store.
func (s *FileStore) Put(ctx context.Context, key string, data []byte) error {
	return s.PutAll(ctx, map[string][]byte{key: data})
}

// PutAll implements Batcher. Unchanged values are not rewritten, and a batch
// without changes creates no backup generation.
func (s *FileStore) PutAll(ctx context.Context, values map[string][]byte) error {
	changed, err := s.changed(values)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		return nil
	}
	return s.commit(changed)
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }

// changed drops the values equal to what is stored. A nil value stands for
// a missing key and is kept only when the file exists.
func (s *FileStore) changed(values map[string][]byte) (map[string][]byte, error) {
	out := make(map[string][]byte, len(values))
	for key, data := range values {
		current, err := os.ReadFile(s.Path(key))
		switch {
		case os.IsNotExist(err):
			if data != nil {
				out[key] = data
			}
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", key, err)
		case data == nil || !bytes.Equal(current, data):
			out[key] = data
		}
	}
	return out, nil
}

// commit stages every new value in a temporary file, backs up the current
// files and then moves the staged files into place. When a step fails, the
// data files are left as they were.
func (s *FileStore) commit(values map[string][]byte) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	staged := map[string]string{}
	discard := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, key := range keys {
		if values[key] == nil {
			continue
		}
		tmp := s.Path(key) + ".tmp"
		if err := os.WriteFile(tmp, values[key], 0644); err != nil {
			_ = os.Remove(tmp)
			discard()
			return fmt.Errorf("writing %s: %w", key, err)
		}
		staged[key] = tmp
	}

	if err := CreateBackup(s.backupPaths(keys)); err != nil {
		discard()
		return fmt.Errorf("backing up data: %w", err)
	}

	var applied []string
	for _, key := range keys {
		path := s.Path(key)
		var err error
		if tmp, ok := staged[key]; ok {
			err = os.Rename(tmp, path)
			delete(staged, key)
		} else if err = os.Remove(path); os.IsNotExist(err) {
			err = nil
		}
		if err != nil {
			discard()
			s.revert(applied)
			return fmt.Errorf("writing %s: %w", key, err)
		}
		applied = append(applied, key)
	}
	return nil
}

// revert puts back the content the given keys had in backup generation 1.
func (s *FileStore) revert(keys []string) {
	for _, key := range keys {
		path := s.Path(key)
		data, err := os.ReadFile(BackupPath(path, 1))
		if os.IsNotExist(err) {
			_ = os.Remove(path)
			continue
		}
		if err == nil {
			_ = writeFileAtomic(path, data)
		}
	}
}

// backupPaths returns the files of the state keys plus any other key in
// the batch.
func (s *FileStore) backupPaths(keys []string) []string {
	seen := map[string]bool{}
	var paths []string
	for _, key := range append(append([]string{}, Keys...), keys...) {
		if !seen[key] {
			seen[key] = true
			paths = append(paths, s.Path(key))
		}
	}
	return paths
}

func (s *FileStore) keyPaths() map[string]string {
	m := make(map[string]string, len(Keys))
	for _, k := range Keys {
		m[k] = s.Path(k)
	}
	return m
}

// ListBackups returns the available backup generations.
func (s *FileStore) ListBackups() []BackupInfo {
	return ListBackups(s.keyPaths())
}

// RestoreBackup restores the state keys to backup generation n and returns
// the keys whose content changed. backupNum 1 is the most recent,
// MaxBackupCount the oldest. The replaced content becomes the newest backup,
// so a restore can itself be undone.
func (s *FileStore) RestoreBackup(n int) ([]string, error) {
	if n < 1 || n > MaxBackupCount {
		return nil, fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}
	exists := false
	for _, info := range s.ListBackups() {
		if info.Number == n {
			exists = true
			break
		}
	}
	if !exists {
		return nil, fmt.Errorf("backup %d does not exist", n)
	}

	gen, err := readGeneration(s.keyPaths(), n)
	if err != nil {
		return nil, fmt.Errorf("reading backup %d: %w", n, err)
	}
	changed, err := s.changed(gen)
	if err != nil {
		return nil, err
	}
	if len(changed) == 0 {
		return nil, nil
	}
	if err := s.commit(changed); err != nil {
		return nil, err
	}

	restored := make([]string, 0, len(changed))
	for key := range changed {
		restored = append(restored, key)
	}
	sort.Strings(restored)
	return restored, nil
}
