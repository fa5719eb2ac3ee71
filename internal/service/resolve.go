package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/tracker"
)

// MinIDPrefix is the shortest id prefix accepted in place of a full id.
const MinIDPrefix = 4

// Reference errors
var (
	ErrAmbiguousID = errors.New("ambiguous reference")
	ErrIDTooShort  = errors.New("id prefix too short")
)

// resolveID matches ref against ids: an exact id, otherwise a unique prefix
// of at least MinIDPrefix characters.
func resolveID(kind, ref string, ids []string) (string, error) {
	ref = strings.TrimSpace(ref)
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
	}
	if len(ref) < MinIDPrefix {
		return "", fmt.Errorf("%s %q: %w (use at least %d characters)", kind, ref, ErrIDTooShort, MinIDPrefix)
	}
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %q: %w", kind, ref, tracker.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s %q matches %d records: %w", kind, ref, len(matches), ErrAmbiguousID)
	}
}

// resolveNamed tries a case-insensitive name match before falling back to
// resolveID.
func resolveNamed(kind, ref string, ids, names []string) (string, error) {
	var matches []string
	for i, name := range names {
		if strings.EqualFold(name, strings.TrimSpace(ref)) {
			matches = append(matches, ids[i])
		}
	}
	switch len(matches) {
	case 0:
		return resolveID(kind, ref, ids)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s name %q is used by %d records: %w", kind, ref, len(matches), ErrAmbiguousID)
	}
}

// ResolveTask resolves a task id or id prefix.
func ResolveTask(s tracker.State, ref string) (string, error) {
	ids := make([]string, len(s.Tasks))
	for i, t := range s.Tasks {
		ids[i] = t.ID
	}
	return resolveID("task", ref, ids)
}

// ResolveSubTask resolves a sub-task id or id prefix within a task, or a
// 1-based position in the task's checklist.
func ResolveSubTask(task model.Task, ref string) (string, error) {
	ids := make([]string, len(task.SubTasks))
	for i, st := range task.SubTasks {
		ids[i] = st.ID
	}
	if pos, err := strconv.Atoi(ref); err == nil && pos >= 1 && len(ref) < MinIDPrefix {
		for _, st := range task.SubTasks {
			if st.Order == pos-1 {
				return st.ID, nil
			}
		}
	}
	return resolveID("sub-task", ref, ids)
}

// ResolveProject resolves a project name, id or id prefix.
func ResolveProject(s tracker.State, ref string) (string, error) {
	ids := make([]string, len(s.Projects))
	names := make([]string, len(s.Projects))
	for i, p := range s.Projects {
		ids[i], names[i] = p.ID, p.Name
	}
	return resolveNamed("project", ref, ids, names)
}

// ResolveBillingCode resolves a billing code, id or id prefix.
func ResolveBillingCode(s tracker.State, ref string) (string, error) {
	ids := make([]string, len(s.BillingCodes))
	names := make([]string, len(s.BillingCodes))
	for i, c := range s.BillingCodes {
		ids[i], names[i] = c.ID, c.Code
	}
	return resolveNamed("billing code", ref, ids, names)
}

// ResolveFavorite resolves a favorite name, id or id prefix.
func ResolveFavorite(s tracker.State, ref string) (string, error) {
	ids := make([]string, len(s.Favorites))
	names := make([]string, len(s.Favorites))
	for i, f := range s.Favorites {
		ids[i], names[i] = f.ID, f.Name
	}
	return resolveNamed("favorite", ref, ids, names)
}
