// Package views derives presentational aggregates from an AppState. Every
// function is pure: it reads the state slices it is given and a caller
// supplied "today", and never writes back.
package views

import (
	"sort"
	"time"

	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/timeutil"
)

// TaskBuckets partitions open top-level tasks by date.
type TaskBuckets struct {
	Today    []model.Task
	ThisWeek []model.Task
	Someday  []model.Task
}

// Len is the number of tasks across all buckets.
func (b TaskBuckets) Len() int {
	return len(b.Today) + len(b.ThisWeek) + len(b.Someday)
}

// GroupTasks buckets open, non-subtask tasks. A task lands in at most one
// bucket: no date is Someday, today's date is Today, a date inside the
// current Monday-start week or after today is ThisWeek. Tasks dated before
// the current week are left out; see Overdue.
func GroupTasks(tasks []model.Task, today time.Time) TaskBuckets {
	var b TaskBuckets
	todayKey := timeutil.FormatDate(today)
	for _, t := range tasks {
		if t.Completed || t.IsSubtask() {
			continue
		}
		switch {
		case t.Date == "" || !timeutil.ValidDate(t.Date):
			b.Someday = append(b.Someday, t)
		case t.Date == todayKey:
			b.Today = append(b.Today, t)
		case t.Date > todayKey || timeutil.InWeek(t.Date, today):
			b.ThisWeek = append(b.ThisWeek, t)
		}
	}
	SortNewestFirst(b.Today)
	SortNewestFirst(b.ThisWeek)
	SortNewestFirst(b.Someday)
	return b
}

// Overdue returns open top-level tasks dated before the current week.
func Overdue(tasks []model.Task, today time.Time) []model.Task {
	weekStart := timeutil.FormatDate(timeutil.StartOfWeek(today))
	var out []model.Task
	for _, t := range tasks {
		if t.Completed || t.IsSubtask() || !timeutil.ValidDate(t.Date) {
			continue
		}
		if t.Date < weekStart {
			out = append(out, t)
		}
	}
	SortNewestFirst(out)
	return out
}

// Archive returns completed top-level tasks, most recently created first.
func Archive(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Completed && !t.IsSubtask() {
			out = append(out, t)
		}
	}
	SortNewestFirst(out)
	return out
}

// Subtasks returns the direct children of parentID in stored order.
func Subtasks(tasks []model.Task, parentID string) []model.Task {
	if parentID == "" {
		return nil
	}
	var out []model.Task
	for _, t := range tasks {
		if t.ParentID == parentID {
			out = append(out, t)
		}
	}
	return out
}

// SortNewestFirst orders tasks by createdAt descending in place. Timestamps
// share one fixed-width layout, so string order is time order; a missing
// createdAt sorts as "" and ties keep their stored order.
func SortNewestFirst(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt > tasks[j].CreatedAt
	})
}
