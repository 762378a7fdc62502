// Package habit provides the runners behind the habit commands.
package habit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
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

var errNoStore = errors.New("habit: no store")

// ParseFrequency reads "daily", "weekdays", "weekly:3" or a comma list of
// days such as "mon,wed,fri".
func ParseFrequency(raw string) (model.Frequency, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch raw {
	case "", "daily":
		return model.Daily(), nil
	case "weekdays":
		return model.Weekdays(), nil
	}
	if times, ok := strings.CutPrefix(raw, "weekly"); ok {
		times = strings.TrimPrefix(times, ":")
		if times == "" {
			return model.Weekly(1), nil
		}
		n, err := strconv.Atoi(times)
		if err != nil || n < 1 || n > 7 {
			return model.Frequency{}, fmt.Errorf("habit: invalid weekly count %q", times)
		}
		return model.Weekly(n), nil
	}
	var days []model.Weekday
	for _, part := range strings.Split(raw, ",") {
		d, err := model.ParseWeekday(part)
		if err != nil {
			return model.Frequency{}, err
		}
		days = append(days, d)
	}
	return model.Specific(days...), nil
}

// Add creates a habit.
type Add struct {
	Title     string
	Frequency string
	MinAmount string
	Time      string

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
		return errors.New("habit: empty title")
	}
	freq, err := ParseFrequency(n.Frequency)
	if err != nil {
		return err
	}
	n.Store.Dispatch(state.AddHabit{Habit: model.Habit{
		ID:             uuid.NewString(),
		Title:          title,
		Frequency:      freq,
		MinAmount:      n.MinAmount,
		Time:           n.Time,
		CompletedDates: []string{},
	}})
	return list(n.Store, printers.PrettyPrint{Out: n.Out}, clock(n.Now))
}

// Check toggles a habit's check-in for Date, today when empty.
type Check struct {
	ID   string
	Date string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *Check) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	if _, ok := n.Store.State().HabitByID(n.ID); !ok {
		return fmt.Errorf("habit: no habit with id %q", n.ID)
	}
	now := clock(n.Now)
	date := n.Date
	if date == "" {
		date = timeutil.FormatDate(now)
	}
	if !timeutil.ValidDate(date) {
		return fmt.Errorf("habit: invalid date %q", date)
	}
	n.Store.Dispatch(state.ToggleHabit{ID: n.ID, Date: date})
	return list(n.Store, printers.PrettyPrint{ShowID: true, Out: n.Out}, now)
}

// Remove deletes a habit.
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
	if _, ok := n.Store.State().HabitByID(n.ID); !ok {
		return fmt.Errorf("habit: no habit with id %q", n.ID)
	}
	n.Store.Dispatch(state.DeleteHabit{ID: n.ID})
	return list(n.Store, printers.PrettyPrint{ShowID: true, Out: n.Out}, clock(n.Now))
}

// List prints the habit table. DueOnly limits it to habits due today.
type List struct {
	ShowID  bool
	DueOnly bool

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *List) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	now := clock(n.Now)
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.DueOnly {
		due := views.DueHabits(n.Store.State().Habits, now)
		pp.TitleWithCount("Due today", len(due), "habit")
		pp.Habits(summarize(due, now))
		return nil
	}
	return list(n.Store, pp, now)
}

// Show prints one habit's check-ins for the current month.
type Show struct {
	ID string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *Show) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	h, ok := n.Store.State().HabitByID(n.ID)
	if !ok {
		return fmt.Errorf("habit: no habit with id %q", n.ID)
	}
	now := clock(n.Now)
	stats := views.Summarize(h, now)
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Title(fmt.Sprintf("%s · %s · streak %d · week %d%%", h.Title, h.Frequency, stats.Streak, stats.WeekPercent))
	pp.NewLine()
	pp.HabitMonth(now, h)
	return nil
}

func list(s *app.Store, pp printers.PrettyPrint, now time.Time) error {
	habits := s.State().Habits
	pp.TitleWithCount("Habits", len(habits), "habit")
	pp.Habits(summarize(habits, now))
	return nil
}

func summarize(habits []model.Habit, now time.Time) []views.HabitStats {
	out := make([]views.HabitStats, 0, len(habits))
	for _, h := range habits {
		out = append(out, views.Summarize(h, now))
	}
	return out
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
