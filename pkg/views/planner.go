package views

import (
	"sort"

	"tableflip.dev/sdvig/pkg/model"
)

// EventsOn returns the events scheduled on date, ordered by time. Events
// without a time come first.
func EventsOn(events []model.Event, date string) []model.Event {
	var out []model.Event
	for _, e := range events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

// RoutineDone reports whether the routine was checked off on date.
func RoutineDone(r model.Routine, date string) bool {
	return r.Completed[date]
}
