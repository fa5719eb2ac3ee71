// Package osutil wraps the OS calls used to locate tally's directories so
// tests can replace them.
package osutil

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under the user config directory.
const AppName = "tally"

// PathProvider abstracts OS-level operations for path resolution.
// Used to exercise the error paths of config.GetConfigPath and storage.DataDir.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
}

// DefaultPathProvider uses real OS functions.
type DefaultPathProvider struct{}

// UserConfigDir returns the default root directory for user-specific configuration data.
func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Provider is the package-level path provider instance.
// In production, this is DefaultPathProvider. Tests can replace it.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

// AppDir returns <UserConfigDir>/tally joined with elem, creating the
// directory if it doesn't exist.
func AppDir(elem ...string) (string, error) {
	configDir, err := Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(append([]string{configDir, AppName}, elem...)...)
	if err := Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
