package tracker

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation           = errors.New("validation failed")
	ErrConflict             = errors.New("conflict")
	ErrInvalidState         = errors.New("invalid state")
	ErrPrecondition         = errors.New("precondition failed")
	ErrReferentialIntegrity = errors.New("still referenced")
	ErrInsufficientTime     = errors.New("insufficient time")
	ErrNotFound             = errors.New("not found")
)

// Error describes a rejected engine operation. The state passed to the
// operation is left untouched whenever an Error is returned.
type Error struct {
	Kind error  // one of the Err* kinds above
	Op   string // operation name, e.g. "start timer"
	Msg  string // human readable detail
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Unwrap exposes the kind so errors.Is(err, ErrConflict) works.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Kind returns the kind of an engine error, or nil when err is not one.
func Kind(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
