// Package storage persists tally's data as named JSON documents in a
// key/value store. Three backends are available: plain JSON files with
// rotating backups, a diskv tree and a SQLite database.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/tracker"
)

// Storage keys. They match the names used by earlier data files.
const (
	KeyProjects     = "projects"
	KeyBillingCodes = "abacusCodes"
	KeyFavorites    = "favoriteTaskTemplates"
	KeyTasks        = "tasks"
	KeyTimeEntries  = "timeEntries"
	KeyActiveTimer  = "activeTimer"
)

// Keys lists every key a State is stored under.
var Keys = []string{KeyProjects, KeyBillingCodes, KeyFavorites, KeyTasks, KeyTimeEntries, KeyActiveTimer}

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a key/value store of JSON blobs.
type Store interface {
	// Get returns the value of key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put replaces the value of key.
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}

// ParseWarning reports a stored value that could not be decoded. The key is
// loaded with its empty default instead.
type ParseWarning struct {
	Key     string // storage key
	Content string // raw value, possibly truncated
	Error   string // decoding error
}

// Load decodes the value of key into v. It reports false when the key does
// not exist, leaving v untouched.
func Load(ctx context.Context, st Store, key string, v any) (bool, error) {
	data, ok, err := st.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, err
	}
	return true, nil
}

// Save encodes v and stores it under key.
func Save(ctx context.Context, st Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := st.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// LoadState reads the whole State. Values that fail to decode fall back to
// empty defaults and are reported as warnings; only I/O failures are errors.
func LoadState(ctx context.Context, st Store) (tracker.State, []ParseWarning, error) {
	var s tracker.State
	var warnings []ParseWarning

	targets := []struct {
		key   string
		v     any
		reset func()
	}{
		{KeyProjects, &s.Projects, func() { s.Projects = nil }},
		{KeyBillingCodes, &s.BillingCodes, func() { s.BillingCodes = nil }},
		{KeyFavorites, &s.Favorites, func() { s.Favorites = nil }},
		{KeyTasks, &s.Tasks, func() { s.Tasks = nil }},
		{KeyTimeEntries, &s.TimeEntries, func() { s.TimeEntries = nil }},
		{KeyActiveTimer, &s.ActiveTimer, func() { s.ActiveTimer = nil }},
	}
	for _, tgt := range targets {
		data, ok, err := st.Get(ctx, tgt.key)
		if err != nil {
			return tracker.State{}, nil, fmt.Errorf("failed to read %s: %w", tgt.key, err)
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal(data, tgt.v); err != nil {
			warnings = append(warnings, ParseWarning{Key: tgt.key, Content: truncate(string(data), 50), Error: err.Error()})
			tgt.reset()
		}
	}

	for i := range s.Tasks {
		if s.Tasks[i].SubTasks == nil {
			s.Tasks[i].SubTasks = []model.SubTask{}
		}
	}
	return s, warnings, nil
}

// Batcher is implemented by stores that can replace several keys as a
// single change.
type Batcher interface {
	PutAll(ctx context.Context, values map[string][]byte) error
}

// SaveState writes every key of s. Either all keys are written or the store
// keeps its previous content.
func SaveState(ctx context.Context, st Store, s tracker.State) error {
	values, err := encodeState(s)
	if err != nil {
		return err
	}
	if b, ok := st.(Batcher); ok {
		if err := b.PutAll(ctx, values); err != nil {
			return fmt.Errorf("failed to write data: %w", err)
		}
		return nil
	}
	return putEach(ctx, st, values)
}

func encodeState(s tracker.State) (map[string][]byte, error) {
	fields := []struct {
		key string
		v   any
	}{
		{KeyProjects, nonNil(s.Projects)},
		{KeyBillingCodes, nonNil(s.BillingCodes)},
		{KeyFavorites, nonNil(s.Favorites)},
		{KeyTasks, nonNil(s.Tasks)},
		{KeyTimeEntries, nonNil(s.TimeEntries)},
		{KeyActiveTimer, s.ActiveTimer},
	}
	values := make(map[string][]byte, len(fields))
	for _, f := range fields {
		data, err := json.Marshal(f.v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", f.key, err)
		}
		values[f.key] = data
	}
	return values, nil
}

// putEach writes the keys one at a time. When a write fails, the keys
// written so far get their previous values back.
func putEach(ctx context.Context, st Store, values map[string][]byte) error {
	previous := make(map[string][]byte, len(values))
	var written []string

	for _, key := range Keys {
		data, ok := values[key]
		if !ok {
			continue
		}
		old, existed, err := st.Get(ctx, key)
		if err != nil {
			rollback(ctx, st, written, previous)
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !existed {
			// A missing key decodes like null.
			old = []byte("null")
		}
		if err := st.Put(ctx, key, data); err != nil {
			rollback(ctx, st, written, previous)
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		previous[key] = old
		written = append(written, key)
	}
	return nil
}

func rollback(ctx context.Context, st Store, written []string, previous map[string][]byte) {
	for i := len(written) - 1; i >= 0; i-- {
		_ = st.Put(ctx, written[i], previous[written[i]])
	}
}

// nonNil makes empty collections encode as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
