package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/xolan/tally/internal/model"
)

// testClock is a settable clock for engine tests.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestEngine returns an engine in UTC at 2024-03-04 09:00 with ids id-1, id-2, ...
func newTestEngine() (*Engine, *testClock) {
	clock := &testClock{now: time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)}
	n := 0
	return &Engine{
		Now: clock.Now,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Location: time.UTC,
	}, clock
}

// baseState has one project, one billing code and three tasks on 2024-03-04.
func baseState() State {
	return State{
		Projects:     []model.Project{{ID: "p1", Name: "Acme", Color: "#ff0000"}, {ID: "p2", Name: "Beta", Color: "#00ff00"}},
		BillingCodes: []model.BillingCode{{ID: "c1", Code: "ABC-1"}},
		Tasks: []model.Task{
			{ID: "A", Name: "Task A", Date: "2024-03-04", ProjectID: "p1", Order: 0, CreatedAt: 1,
				SubTasks: []model.SubTask{{ID: "A1", Name: "sub one", Order: 0}, {ID: "A2", Name: "sub two", Order: 1}}},
			{ID: "B", Name: "Task B", Date: "2024-03-04", ProjectID: "p1", BillingCodeID: "c1", Order: 1, CreatedAt: 2},
			{ID: "C", Name: "Task C", Date: "2024-03-04", ProjectID: "p2", Order: 2, CreatedAt: 3},
		},
	}
}

func ms(t time.Time) int64 { return t.UnixMilli() }

func utc(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

// orderOf returns the task ids of a date in order.
func orderOf(s State, date string) []string {
	var ids []string
	for _, t := range s.TasksOn(date) {
		ids = append(ids, t.ID)
	}
	return ids
}

func assertOrder(t *testing.T, s State, date string, expected ...string) {
	t.Helper()
	got := orderOf(s, date)
	if fmt.Sprint(got) != fmt.Sprint(expected) {
		t.Errorf("order on %s = %v, expected %v", date, got, expected)
	}
	assertDense(t, s)
}

// assertDense fails when any date or sub-task list is not numbered 0..n-1.
func assertDense(t *testing.T, s State) {
	t.Helper()
	for _, p := range Validate(s) {
		if p.Kind == "order" {
			t.Errorf("ordering invariant broken: %s", p)
		}
	}
}

func mustKind(t *testing.T, err error, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	if Kind(err) != kind {
		t.Fatalf("expected %v error, got %v", kind, err)
	}
}
