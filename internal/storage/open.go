package storage

import (
	"fmt"
	"path/filepath"

	"github.com/xolan/tally/internal/osutil"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

// DatabaseFile is the SQLite database file name inside the data directory.
const DatabaseFile = "tally.db"

// Backends lists the supported backend names.
var Backends = []string{BackendJSON, BackendDiskv, BackendSQLite}

// DataDir returns the default data directory, <UserConfigDir>/tally/data.
// Creates the directory if it doesn't exist.
func DataDir() (string, error) {
	return osutil.AppDir("data")
}

// Open returns the Store for backend rooted at dir. An empty backend selects
// the JSON file store and an empty dir selects DataDir.
func Open(backend, dir string) (Store, error) {
	if dir == "" {
		d, err := DataDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get data directory: %w", err)
		}
		dir = d
	}

	switch backend {
	case "", BackendJSON:
		return NewFileStore(dir)
	case BackendDiskv:
		return NewDiskvStore(filepath.Join(dir, "kv")), nil
	case BackendSQLite:
		if err := osutil.Provider.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return NewSQLiteStore(filepath.Join(dir, DatabaseFile))
	default:
		return nil, fmt.Errorf("%w: %q (expected one of json, diskv, sqlite)", ErrUnknownBackend, backend)
	}
}
