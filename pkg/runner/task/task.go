// Package task provides the runners behind the task commands.
package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/printers"
	"tableflip.dev/sdvig/pkg/state"
	"tableflip.dev/sdvig/pkg/timeutil"
	"tableflip.dev/sdvig/pkg/views"
)

var errNoStore = errors.New("task: no store")

// Add creates a task and prints the task list.
type Add struct {
	Title     string
	Date      string
	Important bool
	ParentID  string
	// Estimate is in minutes.
	Estimate int

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	title := strings.TrimSpace(n.Title)
	if title == "" {
		return errors.New("task: empty title")
	}
	if n.Date != "" && !timeutil.ValidDate(n.Date) {
		return fmt.Errorf("task: invalid date %q", n.Date)
	}
	now := clock(n.Now)
	t := model.Task{
		ID:           uuid.NewString(),
		Title:        title,
		Date:         n.Date,
		Priority:     model.PriorityNormal,
		ParentID:     n.ParentID,
		TimeEstimate: n.Estimate,
		CreatedAt:    timeutil.Timestamp(now),
	}
	if n.Important {
		t.Priority = model.PriorityImportant
	}
	if t.ParentID != "" {
		parent, ok := n.Store.State().TaskByID(t.ParentID)
		if !ok {
			return fmt.Errorf("task: no task with id %q", t.ParentID)
		}
		if t.Date == "" {
			t.Date = parent.Date
		}
	}
	n.Store.Dispatch(state.AddTask{Task: t})

	return list(n.Store, printers.PrettyPrint{Out: n.Out}, now)
}

// Breakdown splits a task into subtasks that share its date.
type Breakdown struct {
	ParentID string
	Titles   []string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *Breakdown) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	parent, ok := n.Store.State().TaskByID(n.ParentID)
	if !ok {
		return fmt.Errorf("task: no task with id %q", n.ParentID)
	}
	now := clock(n.Now)
	for _, title := range n.Titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		n.Store.Dispatch(state.AddTask{Task: model.Task{
			ID:        uuid.NewString(),
			Title:     title,
			Date:      parent.Date,
			Priority:  model.PriorityNormal,
			ParentID:  parent.ID,
			CreatedAt: timeutil.Timestamp(now),
		}})
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.Title(parent.Title)
	all := n.Store.State().Tasks
	pp.Tasks(all, views.Subtasks(all, parent.ID))
	return nil
}

// Complete toggles a task between open and done.
type Complete struct {
	ID string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *Complete) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	if _, ok := n.Store.State().TaskByID(n.ID); !ok {
		return fmt.Errorf("task: no task with id %q", n.ID)
	}
	n.Store.Dispatch(state.ToggleTask{ID: n.ID})
	return list(n.Store, printers.PrettyPrint{ShowID: true, Out: n.Out}, clock(n.Now))
}

// Remove deletes a task and its subtasks.
type Remove struct {
	ID string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	if _, ok := n.Store.State().TaskByID(n.ID); !ok {
		return fmt.Errorf("task: no task with id %q", n.ID)
	}
	n.Store.Dispatch(state.DeleteTask{ID: n.ID})
	return list(n.Store, printers.PrettyPrint{ShowID: true, Out: n.Out}, clock(n.Now))
}

// List prints the dated buckets, or the archive of completed tasks.
type List struct {
	ShowID  bool
	Archive bool

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *List) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.Archive {
		all := n.Store.State().Tasks
		done := views.Archive(all)
		pp.TitleWithCount("Archive", len(done), "task")
		pp.Tasks(all, done)
		return nil
	}
	return list(n.Store, pp, clock(n.Now))
}

func list(s *app.Store, pp printers.PrettyPrint, now time.Time) error {
	all := s.State().Tasks
	pp.Buckets(all, views.GroupTasks(all, now), views.Overdue(all, now))
	return nil
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
