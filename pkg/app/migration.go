package app

import (
	"time"

	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/state"
	"tableflip.dev/sdvig/pkg/timeutil"
	"tableflip.dev/sdvig/pkg/views"
)

// MigrationCandidate is an open task whose date slipped behind the current
// week, with its subtasks for context.
type MigrationCandidate struct {
	Task     model.Task
	Subtasks []model.Task
	DaysLate int
}

// MigrationCandidates lists overdue tasks, most recently created first.
func (s *Store) MigrationCandidates(today time.Time) []MigrationCandidate {
	st := s.State()
	overdue := views.Overdue(st.Tasks, today)
	todayKey := timeutil.FormatDate(today)
	out := make([]MigrationCandidate, 0, len(overdue))
	for _, t := range overdue {
		out = append(out, MigrationCandidate{
			Task:     t,
			Subtasks: views.Subtasks(st.Tasks, t.ID),
			DaysLate: daysBetween(t.Date, todayKey),
		})
	}
	return out
}

// Migrate moves the given tasks to date ("" clears the date, sending them to
// someday). It returns how many tasks changed.
func (s *Store) Migrate(ids []string, date string) int {
	moved := 0
	for _, id := range ids {
		t, ok := s.State().TaskByID(id)
		if !ok || t.Completed || t.Date == date {
			continue
		}
		t.Date = date
		before := s.State()
		if s.Dispatch(state.UpdateTask{Task: t}) != before {
			moved++
		}
	}
	return moved
}

func daysBetween(from, to string) int {
	a, err := time.Parse(timeutil.LayoutDate, from)
	if err != nil {
		return 0
	}
	b, err := time.Parse(timeutil.LayoutDate, to)
	if err != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}
