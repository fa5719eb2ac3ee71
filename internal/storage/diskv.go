package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvStore keeps keys as files in a diskv tree. Keys may contain "-" to
// nest them in sub-directories.
type DiskvStore struct {
	d *diskv.Diskv
}

// NewDiskvStore returns a DiskvStore rooted at basePath.
func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}
}

// Get implements Store.
func (s *DiskvStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !s.d.Has(key) {
		return nil, false, nil
	}
	data, err := s.d.Read(key)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, true, nil
}

// Put implements Store.
func (s *DiskvStore) Put(ctx context.Context, key string, data []byte) error {
	return s.d.Write(key, data)
}

// Close implements Store.
func (s *DiskvStore) Close() error { return nil }

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + ".json",
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := strings.TrimSuffix(pathKey.FileName, ".json")
	if len(pathKey.Path) == 0 {
		return name
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), name)
}
