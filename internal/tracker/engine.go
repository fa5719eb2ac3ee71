// Package tracker implements the task and time-accounting engine.
//
// Every operation takes a State and returns a new State. On error the
// returned State is the input unchanged, so callers can always persist the
// result without checking which path was taken. The engine performs no I/O.
package tracker

import (
	"time"

	"github.com/google/uuid"
)

// Engine carries the collaborators the operations need: a clock, an id
// generator and the location that defines calendar days.
type Engine struct {
	Now      func() time.Time
	NewID    func() string
	Location *time.Location
}

// NewEngine returns an Engine using the wall clock and random UUIDs.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		Now:      time.Now,
		NewID:    uuid.NewString,
		Location: loc,
	}
}

func (e *Engine) now() time.Time {
	return e.Now().In(e.loc())
}

func (e *Engine) nowMillis() int64 {
	return e.Now().UnixMilli()
}

func (e *Engine) loc() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}
