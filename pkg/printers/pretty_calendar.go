package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sdvig/pkg/glyph"
	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/timeutil"
	"tableflip.dev/sdvig/pkg/views"
)

const width = len("11 12 13 14 15 16 17") // an example week

// HabitMonth prints the month containing then as a Monday-first grid with
// the habit's completed days highlighted.
func (pp *PrettyPrint) HabitMonth(then time.Time, h model.Habit) {
	done := make([]bool, DaysIn(then))
	prefix := then.Format("2006-01-")
	for _, d := range h.CompletedDates {
		if !strings.HasPrefix(d, prefix) {
			continue
		}
		if t, err := time.Parse(timeutil.LayoutDate, d); err == nil {
			done[t.Day()-1] = true
		}
	}
	pp.PrintMonth(then, done)
}

// PrintMonth prints a month grid; marked days are bold.
func (pp *PrettyPrint) PrintMonth(then time.Time, marked []bool) {
	w := pp.out()
	tf := color.New(color.FgWhite, color.Italic)
	m := then.Format("January 2006")
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = color.New(color.Faint).Fprintln(w, "Mo Tu We Th Fr Sa Su")

	// Pad out the start of the month.
	d := StartDay(then)
	_, _ = fmt.Fprint(w, strings.Repeat("   ", d))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	days := DaysIn(then)
	for i := 0; i < days; i++ {
		if i < len(marked) && marked[i] {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		}
		d++
		if d == 7 {
			d = 0
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

// Agenda prints every day of the month containing then with the events on
// it. today is underlined.
func (pp *PrettyPrint) Agenda(then time.Time, today time.Time, events []model.Event) {
	w := pp.out()
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)

	first := time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, then.Location())
	todayKey := timeutil.FormatDate(today)
	for i := 0; i < DaysIn(then); i++ {
		day := first.AddDate(0, 0, i)
		key := timeutil.FormatDate(day)
		printer := p
		if day.Weekday() == time.Sunday {
			printer = b
		}
		if key == todayKey {
			printer = s
		}
		_, _ = printer.Fprintf(w, "%2d %s", day.Day(), day.Weekday().String()[0:2])

		on := views.EventsOn(events, key)
		if len(on) == 0 {
			_, _ = fmt.Fprintln(w)
			continue
		}
		for j, e := range on {
			if j > 0 {
				_, _ = fmt.Fprint(w, "     ")
			}
			bullet := glyph.Event
			if e.Completed {
				bullet = glyph.EventDone
			}
			title := e.Title
			if e.Time != "" {
				title = e.Time + " " + title
			}
			_, _ = p.Fprintf(w, "  %s %s\n", bullet, title)
		}
	}
	_, _ = fmt.Fprintln(w)
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay is the Monday-based column (0..6) of the first of the month.
func StartDay(then time.Time) int {
	wd := time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}
