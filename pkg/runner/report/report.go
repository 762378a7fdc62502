// Package report renders what got done over a recent window.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/glyph"
	"tableflip.dev/sdvig/pkg/timeutil"
)

// Report prints completed tasks grouped by their top-level task, plus habit,
// focus and money totals.
type Report struct {
	// Window is a day window such as "3d" or "1w2d".
	Window string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *Report) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("report: no store")
	}
	days, label, err := timeutil.ParseWindow(n.Window)
	if err != nil {
		return err
	}
	until := time.Now()
	if n.Now != nil {
		until = n.Now()
	}
	since := timeutil.StartOfDay(until).AddDate(0, 0, -(days - 1))
	result := n.Store.Report(since, until)

	w := n.Out
	if w == nil {
		w = color.Output
	}
	render(w, result, label)
	return nil
}

func render(w io.Writer, result app.ReportResult, label string) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	_, _ = bold.Fprintf(w, "Report · last %s (%s → %s)\n", label,
		result.Since.Format("2006-01-02"), result.Until.Format("2006-01-02"))

	if result.Total == 0 {
		_, _ = fmt.Fprintln(w, "  No completed tasks in this window.")
	}
	for _, section := range result.Sections {
		title := section.Root
		if title == "" {
			title = "Standalone"
		}
		_, _ = color.New(color.Underline).Fprintf(w, "\n%s\n", title)
		depth := map[string]int{}
		for _, item := range section.Items {
			d := 0
			if item.Task.ParentID != "" {
				if pd, ok := depth[item.Task.ParentID]; ok {
					d = pd + 1
				}
			}
			depth[item.Task.ID] = d
			bullet := glyph.Task
			if item.Completed {
				bullet = glyph.Completed
			}
			line := fmt.Sprintf("  %s%s %s", strings.Repeat("  ", d), bullet, item.Task.Title)
			if !item.Completed {
				_, _ = faint.Fprintln(w, line)
				continue
			}
			_, _ = fmt.Fprint(w, line)
			_, _ = faint.Fprintf(w, "  (completed %s)\n", item.CompletedAt.Local().Format("2006-01-02 15:04"))
		}
	}

	_, _ = fmt.Fprintln(w)
	if len(result.Habits) > 0 {
		_, _ = bold.Fprintln(w, "Habits")
		for _, h := range result.Habits {
			_, _ = fmt.Fprintf(w, "  %s %s  %d days\n", glyph.HabitDone, h.Habit.Title, h.Days)
		}
		_, _ = fmt.Fprintln(w)
	}
	_, _ = fmt.Fprintf(w, "Focus    %s\n", timeutil.FormatMinutes(result.FocusMinutes))
	_, _ = fmt.Fprintf(w, "Income   %s\n", result.Income.StringFixed(2))
	_, _ = fmt.Fprintf(w, "Expense  %s\n", result.Expense.StringFixed(2))
	_, _ = fmt.Fprintln(w)
}
