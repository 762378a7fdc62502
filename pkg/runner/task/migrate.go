package task

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/glyph"
	"tableflip.dev/sdvig/pkg/printers"
	"tableflip.dev/sdvig/pkg/timeutil"
)

// Migrate moves overdue tasks forward. With no IDs and All unset it only
// lists the candidates.
type Migrate struct {
	IDs []string
	All bool
	// To is the target date; empty means today. Someday clears the date.
	To      string
	Someday bool
	ShowID  bool

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *Migrate) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	now := clock(n.Now)
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	w := n.Out
	if w == nil {
		w = color.Output
	}

	candidates := n.Store.MigrationCandidates(now)
	ids := n.IDs
	if n.All {
		ids = ids[:0:0]
		for _, c := range candidates {
			ids = append(ids, c.Task.ID)
		}
	}
	if len(ids) == 0 {
		pp.TitleWithCount("Migration candidates", len(candidates), "task")
		faint := color.New(color.Faint)
		for _, c := range candidates {
			if n.ShowID {
				_, _ = faint.Fprintf(w, "%-38s", c.Task.ID)
			}
			_, _ = fmt.Fprintf(w, "%s %s %s", glyph.Overdue, glyph.Task, c.Task.Title)
			_, _ = faint.Fprintf(w, "  (%s, %d days late", c.Task.Date, c.DaysLate)
			if len(c.Subtasks) > 0 {
				_, _ = faint.Fprintf(w, ", %d subtasks", len(c.Subtasks))
			}
			_, _ = faint.Fprintln(w, ")")
		}
		pp.NewLine()
		return nil
	}

	to := n.To
	switch {
	case n.Someday:
		to = ""
	case to == "":
		to = timeutil.FormatDate(now)
	case !timeutil.ValidDate(to):
		return fmt.Errorf("task: invalid date %q", to)
	}
	moved := n.Store.Migrate(ids, to)
	_, _ = fmt.Fprintf(w, "migrated %d of %d\n\n", moved, len(ids))
	return list(n.Store, pp, now)
}
