package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xolan/tally/internal/storage"
	"github.com/xolan/tally/internal/timeutil"
	"github.com/xolan/tally/internal/tracker"
)

// Session serializes access to the stored state. Every mutation loads the
// state, applies one engine operation and saves the result.
type Session struct {
	mu       sync.Mutex
	store    storage.Store
	engine   *tracker.Engine
	warnings []storage.ParseWarning
}

// NewSession creates a Session over a store.
func NewSession(st storage.Store, engine *tracker.Engine) *Session {
	return &Session{store: st, engine: engine}
}

// Engine returns the engine used for mutations.
func (s *Session) Engine() *tracker.Engine {
	return s.engine
}

// Now returns the current time in the engine's location.
func (s *Session) Now() time.Time {
	return s.engine.Now().In(s.Location())
}

// Location returns the location that defines calendar days.
func (s *Session) Location() *time.Location {
	if s.engine.Location == nil {
		return time.Local
	}
	return s.engine.Location
}

// Store returns the underlying store.
func (s *Session) Store() storage.Store {
	return s.store
}

// Warnings returns the parse warnings of the most recent load.
func (s *Session) Warnings() []storage.ParseWarning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warnings
}

// Load returns the normalized stored state.
func (s *Session) Load(ctx context.Context) (tracker.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.loadRaw(ctx)
	if err != nil {
		return tracker.State{}, err
	}
	return tracker.Normalize(st), nil
}

// LoadRaw returns the stored state exactly as decoded.
func (s *Session) LoadRaw(ctx context.Context) (tracker.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadRaw(ctx)
}

func (s *Session) loadRaw(ctx context.Context) (tracker.State, error) {
	st, warnings, err := storage.LoadState(ctx, s.store)
	if err != nil {
		return tracker.State{}, fmt.Errorf("failed to load data: %w", err)
	}
	s.warnings = warnings
	return st, nil
}

// Apply runs op against the current state and saves its result. Nothing is
// written when op fails, and a failed save leaves the stored state as it was.
func (s *Session) Apply(ctx context.Context, op func(tracker.State) (tracker.State, error)) (tracker.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.loadRaw(ctx)
	if err != nil {
		return tracker.State{}, err
	}
	current := tracker.Normalize(raw)

	next, err := op(current)
	if err != nil {
		return current, err
	}
	if err := storage.SaveState(ctx, s.store, next); err != nil {
		return current, fmt.Errorf("failed to save data: %w", err)
	}
	return next, nil
}

// Close closes the store.
func (s *Session) Close() error {
	return s.store.Close()
}

// DateKey parses a user date (today, yesterday, YYYY-MM-DD, ...) into a
// date key. Empty input means today.
func (s *Session) DateKey(input string) (string, error) {
	if input == "" {
		return timeutil.DateKey(s.Now()), nil
	}
	return timeutil.ParseDateToKey(input, s.Now())
}
