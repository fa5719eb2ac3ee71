package filter

import (
	"strings"

	"github.com/xolan/tally/internal/model"
)

// Filter represents search and filtering criteria for tasks.
// All filter fields are optional - empty values match all tasks.
type Filter struct {
	Keyword       string // Case-insensitive substring search in name, description and sub-task names
	ProjectID     string // Exact project id
	BillingCodeID string // Exact billing code id
	From, To      string // Inclusive YYYY-MM-DD bounds on the task date
}

// NewFilter creates a new Filter with the given criteria.
// All parameters are optional - pass empty values to match all tasks.
func NewFilter(keyword, projectID, codeID string) *Filter {
	return &Filter{
		Keyword:       keyword,
		ProjectID:     projectID,
		BillingCodeID: codeID,
	}
}

// IsEmpty returns true if all filter fields are empty (matches all tasks)
func (f *Filter) IsEmpty() bool {
	return f.Keyword == "" && f.ProjectID == "" && f.BillingCodeID == "" && f.From == "" && f.To == ""
}

// FilterTasks returns a new slice containing only tasks that match the filter criteria.
// If the filter is empty, returns all tasks.
func FilterTasks(tasks []model.Task, f *Filter) []model.Task {
	if f == nil || f.IsEmpty() {
		return tasks
	}

	filtered := make([]model.Task, 0)
	for _, t := range tasks {
		if f.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// TaskIDs returns the ids of tasks as a set.
func TaskIDs(tasks []model.Task) map[string]bool {
	ids := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		ids[t.ID] = true
	}
	return ids
}

// MatchesKeyword returns true if the keyword is found in the task's name,
// description or any sub-task name (case-insensitive).
// An empty keyword matches all tasks.
func (f *Filter) MatchesKeyword(t model.Task) bool {
	if f.Keyword == "" {
		return true
	}
	kw := strings.ToLower(f.Keyword)
	if strings.Contains(strings.ToLower(t.Name), kw) || strings.Contains(strings.ToLower(t.Description), kw) {
		return true
	}
	for _, st := range t.SubTasks {
		if strings.Contains(strings.ToLower(st.Name), kw) {
			return true
		}
	}
	return false
}

// MatchesProject returns true if the task belongs to the filter project.
// An empty project filter matches all tasks.
func (f *Filter) MatchesProject(t model.Task) bool {
	return f.ProjectID == "" || t.ProjectID == f.ProjectID
}

// MatchesBillingCode returns true if the task carries the filter billing code.
// An empty code filter matches all tasks.
func (f *Filter) MatchesBillingCode(t model.Task) bool {
	return f.BillingCodeID == "" || t.BillingCodeID == f.BillingCodeID
}

// MatchesDate returns true if the task date lies within From and To.
// Date keys compare lexically.
func (f *Filter) MatchesDate(t model.Task) bool {
	if f.From != "" && t.Date < f.From {
		return false
	}
	if f.To != "" && t.Date > f.To {
		return false
	}
	return true
}

// Matches returns true if the task satisfies every criterion.
func (f *Filter) Matches(t model.Task) bool {
	return f.MatchesKeyword(t) && f.MatchesProject(t) && f.MatchesBillingCode(t) && f.MatchesDate(t)
}
