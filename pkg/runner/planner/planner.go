// Package planner provides the runners behind the event, routine and idea
// commands.
package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/printers"
	"tableflip.dev/sdvig/pkg/state"
	"tableflip.dev/sdvig/pkg/timeutil"
)

var errNoStore = errors.New("planner: no store")

// AddEvent schedules an event.
type AddEvent struct {
	Title string
	Date  string
	Time  string
	Note  string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *AddEvent) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	title := strings.TrimSpace(n.Title)
	if title == "" {
		return errors.New("planner: empty event title")
	}
	now := clock(n.Now)
	date := n.Date
	if date == "" {
		date = timeutil.FormatDate(now)
	}
	if !timeutil.ValidDate(date) {
		return fmt.Errorf("planner: invalid date %q", date)
	}
	if n.Time != "" {
		if _, err := time.Parse("15:04", n.Time); err != nil {
			return fmt.Errorf("planner: invalid time %q", n.Time)
		}
	}
	n.Store.Dispatch(state.AddEvent{Event: model.Event{
		ID:    uuid.NewString(),
		Title: title,
		Date:  date,
		Time:  n.Time,
		Note:  n.Note,
	}})
	return upcoming(n.Store, printers.PrettyPrint{Out: n.Out}, now)
}

// CompleteEvent toggles an event's attended flag.
type CompleteEvent struct {
	ID string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *CompleteEvent) Do(ctx context.Context) error {
	return n.dispatch(state.ToggleEvent{ID: n.ID})
}

// Tomorrow moves an event one day forward.
type Tomorrow struct {
	ID string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *Tomorrow) Do(ctx context.Context) error {
	c := CompleteEvent(*n)
	return c.dispatch(state.MoveEventToTomorrow{ID: n.ID})
}

// RemoveEvent deletes an event.
type RemoveEvent struct {
	ID string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *RemoveEvent) Do(ctx context.Context) error {
	c := CompleteEvent(*n)
	return c.dispatch(state.DeleteEvent{ID: n.ID})
}

func (n *CompleteEvent) dispatch(a state.Action) error {
	if n.Store == nil {
		return errNoStore
	}
	before := n.Store.State()
	if n.Store.Dispatch(a) == before {
		return fmt.Errorf("planner: no event with id %q", n.ID)
	}
	return upcoming(n.Store, printers.PrettyPrint{ShowID: true, Out: n.Out}, clock(n.Now))
}

// ListEvents prints upcoming events, or a month agenda when Month is set
// ("2006-01").
type ListEvents struct {
	ShowID bool
	Month  string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *ListEvents) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	now := clock(n.Now)
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.Month == "" {
		return upcoming(n.Store, pp, now)
	}
	month, err := time.ParseInLocation("2006-01", n.Month, now.Location())
	if err != nil {
		return fmt.Errorf("planner: invalid month %q", n.Month)
	}
	pp.Agenda(month, now, n.Store.State().Events)
	return nil
}

func upcoming(s *app.Store, pp printers.PrettyPrint, now time.Time) error {
	today := timeutil.FormatDate(now)
	var events []model.Event
	for _, e := range s.State().Events {
		if e.Date >= today {
			events = append(events, e)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})
	pp.TitleWithCount("Upcoming", len(events), "event")
	pp.Events(events)
	return nil
}

// AddRoutine creates a daily routine item.
type AddRoutine struct {
	Title string
	Time  string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *AddRoutine) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	title := strings.TrimSpace(n.Title)
	if title == "" {
		return errors.New("planner: empty routine title")
	}
	n.Store.Dispatch(state.AddRoutine{Routine: model.Routine{
		ID:        uuid.NewString(),
		Title:     title,
		Time:      n.Time,
		Completed: map[string]bool{},
	}})
	return routines(n.Store, printers.PrettyPrint{Out: n.Out}, clock(n.Now))
}

// CheckRoutine toggles a routine for today.
type CheckRoutine struct {
	ID string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *CheckRoutine) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	now := clock(n.Now)
	before := n.Store.State()
	if n.Store.Dispatch(state.ToggleRoutine{ID: n.ID, Date: timeutil.FormatDate(now)}) == before {
		return fmt.Errorf("planner: no routine with id %q", n.ID)
	}
	return routines(n.Store, printers.PrettyPrint{ShowID: true, Out: n.Out}, now)
}

// ListRoutines prints routines checked against today.
type ListRoutines struct {
	ShowID bool

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *ListRoutines) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	return routines(n.Store, printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}, clock(n.Now))
}

func routines(s *app.Store, pp printers.PrettyPrint, now time.Time) error {
	list := s.State().Routines
	pp.TitleWithCount("Routine", len(list), "item")
	pp.Routines(list, timeutil.FormatDate(now))
	return nil
}

// AddIdea drops a note into the inbox.
type AddIdea struct {
	Text string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *AddIdea) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	text := strings.TrimSpace(n.Text)
	if text == "" {
		return errors.New("planner: empty idea")
	}
	n.Store.Dispatch(state.AddIdea{Idea: model.Idea{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: timeutil.Timestamp(clock(n.Now)),
	}})
	return ideas(n.Store, printers.PrettyPrint{Out: n.Out})
}

// RemoveIdea deletes an inbox note.
type RemoveIdea struct {
	ID string

	Store *app.Store
	Out   io.Writer
}

func (n *RemoveIdea) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	before := n.Store.State()
	if n.Store.Dispatch(state.DeleteIdea{ID: n.ID}) == before {
		return fmt.Errorf("planner: no idea with id %q", n.ID)
	}
	return ideas(n.Store, printers.PrettyPrint{ShowID: true, Out: n.Out})
}

// ListIdeas prints the inbox, newest first.
type ListIdeas struct {
	ShowID bool
	Width  int

	Store *app.Store
	Out   io.Writer
}

func (n *ListIdeas) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	return ideas(n.Store, printers.PrettyPrint{ShowID: n.ShowID, Width: n.Width, Out: n.Out})
}

func ideas(s *app.Store, pp printers.PrettyPrint) error {
	list := s.State().Ideas
	pp.TitleWithCount("Ideas", len(list), "idea")
	pp.Ideas(list)
	return nil
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
