package service

import (
	"context"
	"sort"
	"strings"

	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/tracker"
)

// CatalogService manages projects, billing codes and favorite templates
type CatalogService struct {
	session *Session
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(session *Session) *CatalogService {
	return &CatalogService{session: session}
}

// Projects lists projects by name with their task counts.
func (s *CatalogService) Projects(ctx context.Context) ([]ProjectSummary, error) {
	st, err := s.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, t := range st.Tasks {
		counts[t.ProjectID]++
	}
	out := make([]ProjectSummary, 0, len(st.Projects))
	for _, p := range st.Projects {
		out = append(out, ProjectSummary{Project: p, Tasks: counts[p.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Project.Name) < strings.ToLower(out[j].Project.Name)
	})
	return out, nil
}

// AddProject creates a project. An empty color selects the default.
func (s *CatalogService) AddProject(ctx context.Context, name, color string) (model.Project, error) {
	var created model.Project
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		ns, p, err := s.session.engine.SaveProject(st, model.Project{Name: name, Color: color})
		created = p
		return ns, err
	})
	return created, err
}

// EditProject renames or recolors a project. Nil fields are left unchanged.
func (s *CatalogService) EditProject(ctx context.Context, ref string, name, color *string) (model.Project, error) {
	var saved model.Project
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, err := ResolveProject(st, ref)
		if err != nil {
			return st, err
		}
		p := *st.Project(id)
		if name != nil {
			p.Name = *name
		}
		if color != nil {
			p.Color = *color
		}
		ns, p, err := s.session.engine.SaveProject(st, p)
		saved = p
		return ns, err
	})
	return saved, err
}

// DeleteProject removes a project no task references.
func (s *CatalogService) DeleteProject(ctx context.Context, ref string) (model.Project, error) {
	var deleted model.Project
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, err := ResolveProject(st, ref)
		if err != nil {
			return st, err
		}
		deleted = *st.Project(id)
		return s.session.engine.DeleteProject(st, id)
	})
	return deleted, err
}

// BillingCodes lists billing codes alphabetically with their task counts.
func (s *CatalogService) BillingCodes(ctx context.Context) ([]CodeSummary, error) {
	st, err := s.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, t := range st.Tasks {
		counts[t.BillingCodeID]++
	}
	out := make([]CodeSummary, 0, len(st.BillingCodes))
	for _, c := range st.BillingCodes {
		out = append(out, CodeSummary{Code: c, Tasks: counts[c.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code.Code < out[j].Code.Code })
	return out, nil
}

// AddBillingCode creates a billing code.
func (s *CatalogService) AddBillingCode(ctx context.Context, code string) (model.BillingCode, error) {
	var created model.BillingCode
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		ns, c, err := s.session.engine.SaveBillingCode(st, model.BillingCode{Code: code})
		created = c
		return ns, err
	})
	return created, err
}

// EditBillingCode changes the text of a billing code.
func (s *CatalogService) EditBillingCode(ctx context.Context, ref, code string) (model.BillingCode, error) {
	var saved model.BillingCode
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, err := ResolveBillingCode(st, ref)
		if err != nil {
			return st, err
		}
		ns, c, err := s.session.engine.SaveBillingCode(st, model.BillingCode{ID: id, Code: code})
		saved = c
		return ns, err
	})
	return saved, err
}

// DeleteBillingCode removes a billing code no task references.
func (s *CatalogService) DeleteBillingCode(ctx context.Context, ref string) (model.BillingCode, error) {
	var deleted model.BillingCode
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, err := ResolveBillingCode(st, ref)
		if err != nil {
			return st, err
		}
		deleted = *st.BillingCode(id)
		return s.session.engine.DeleteBillingCode(st, id)
	})
	return deleted, err
}

// Favorites lists favorite templates in stored order.
func (s *CatalogService) Favorites(ctx context.Context) ([]model.FavoriteTemplate, error) {
	st, err := s.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	return st.Favorites, nil
}

// SaveFavorite stores a task as a favorite template.
func (s *CatalogService) SaveFavorite(ctx context.Context, taskRef string) (model.FavoriteTemplate, error) {
	var saved model.FavoriteTemplate
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, err := ResolveTask(st, taskRef)
		if err != nil {
			return st, err
		}
		ns, f, err := s.session.engine.SaveTaskAsFavorite(st, id)
		saved = f
		return ns, err
	})
	return saved, err
}

// UseFavorite creates a task on date from a favorite template.
func (s *CatalogService) UseFavorite(ctx context.Context, favRef, date string) (model.Task, error) {
	key, err := s.session.DateKey(date)
	if err != nil {
		return model.Task{}, err
	}
	var created model.Task
	_, err = s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, err := ResolveFavorite(st, favRef)
		if err != nil {
			return st, err
		}
		input, err := tracker.TaskFromFavorite(st, id, key)
		if err != nil {
			return st, err
		}
		ns, t, err := s.session.engine.SaveTask(st, input)
		created = t
		return ns, err
	})
	return created, err
}

// DeleteFavorite removes a favorite template.
func (s *CatalogService) DeleteFavorite(ctx context.Context, ref string) (model.FavoriteTemplate, error) {
	var deleted model.FavoriteTemplate
	_, err := s.session.Apply(ctx, func(st tracker.State) (tracker.State, error) {
		id, err := ResolveFavorite(st, ref)
		if err != nil {
			return st, err
		}
		deleted = *st.Favorite(id)
		return s.session.engine.DeleteFavorite(st, id)
	})
	return deleted, err
}
