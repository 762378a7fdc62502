package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/shopspring/decimal"

	"tableflip.dev/sdvig/pkg/glyph"
	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/timeutil"
	"tableflip.dev/sdvig/pkg/views"
)

// PrettyPrint renders state for humans.
type PrettyPrint struct {
	ShowID bool
	// Width wraps long text; 0 means 80 columns.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

const idWidth = 36 // a uuid

var spacing = strings.Repeat(" ", idWidth+2)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return 80
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = fmt.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = fmt.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = fmt.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(id string) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	pad := len(spacing) - len(id)
	if pad < 1 {
		pad = 1
	}
	_, _ = y.Fprint(pp.out(), id+strings.Repeat(" ", pad))
}

// Tasks prints one line per task with its subtasks indented below it.
func (pp *PrettyPrint) Tasks(all []model.Task, tasks []model.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}
	for _, t := range tasks {
		pp.task(t, 0)
		for _, sub := range views.Subtasks(all, t.ID) {
			pp.task(sub, 1)
		}
	}
	pp.NewLine()
}

func (pp *PrettyPrint) task(t model.Task, depth int) {
	p := color.New()
	if t.Completed {
		p = color.New(color.Faint)
	}
	pp.id(t.ID)
	bullet := glyph.Task
	if t.Completed {
		bullet = glyph.Completed
	}
	marker := glyph.None
	if t.Priority == model.PriorityImportant {
		marker = glyph.Priority
	}
	prefix := ""
	if depth > 0 {
		prefix = strings.Repeat("  ", depth-1) + glyph.Subtask.String() + " "
	}
	line := fmt.Sprintf("%s%s %s %s", prefix, marker, bullet, t.Title)
	var extra []string
	if t.Date != "" {
		extra = append(extra, t.Date)
	}
	if t.TimeEstimate > 0 {
		extra = append(extra, timeutil.FormatMinutes(t.TimeEstimate))
	}
	_, _ = p.Fprint(pp.out(), line)
	if len(extra) > 0 {
		_, _ = color.New(color.Faint).Fprintf(pp.out(), "  (%s)", strings.Join(extra, ", "))
	}
	_, _ = fmt.Fprintln(pp.out())
}

// Buckets prints the today / this week / someday view, plus overdue tasks
// when there are any.
func (pp *PrettyPrint) Buckets(all []model.Task, b views.TaskBuckets, overdue []model.Task) {
	if len(overdue) > 0 {
		pp.TitleWithCount(glyph.Overdue.String()+" Overdue", len(overdue), "task")
		pp.Tasks(all, overdue)
	}
	pp.TitleWithCount("Today", len(b.Today), "task")
	pp.Tasks(all, b.Today)
	pp.TitleWithCount("This week", len(b.ThisWeek), "task")
	pp.Tasks(all, b.ThisWeek)
	pp.TitleWithCount("Someday", len(b.Someday), "task")
	pp.Tasks(all, b.Someday)
}

// Habits prints a table of habit stats.
func (pp *PrettyPrint) Habits(stats []views.HabitStats) {
	if len(stats) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{"", bold.Sprint("Habit"), bold.Sprint("Schedule"), bold.Sprint("Streak"), bold.Sprint("Week")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, s := range stats {
		bullet := glyph.HabitRest
		switch {
		case s.DoneToday:
			bullet = glyph.HabitDone
		case s.Due:
			bullet = glyph.HabitDue
		}
		title := s.Habit.Title
		if s.Habit.MinAmount != "" {
			title += " (" + s.Habit.MinAmount + ")"
		}
		row := []interface{}{bullet, title, s.Habit.Frequency, s.Streak, fmt.Sprintf("%d%%", s.WeekPercent)}
		if pp.ShowID {
			row = append([]interface{}{s.Habit.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(len(tbl.Rows[0].Cells) - 1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Wallets prints balances and their sum.
func (pp *PrettyPrint) Wallets(wallets []model.Wallet) {
	if len(wallets) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, w := range wallets {
		row := []interface{}{w.Name, money(w.Balance), w.Currency}
		if pp.ShowID {
			row = append([]interface{}{w.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	total := []interface{}{bold.Sprint("Total"), bold.Sprint(money(views.TotalBalance(wallets))), ""}
	if pp.ShowID {
		total = append([]interface{}{""}, total...)
	}
	tbl.AddRow(total...)
	tbl.RightAlign(len(total) - 2)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Transactions prints a ledger with signed amounts.
func (pp *PrettyPrint) Transactions(txs []model.Transaction) {
	if len(txs) == 0 {
		pp.none()
		return
	}
	in := color.New(color.FgGreen)
	out := color.New(color.FgRed)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() / 2)
	tbl.Wrap = true
	for _, tx := range txs {
		amount := in.Sprint("+" + money(tx.Amount))
		if tx.Type == model.Expense {
			amount = out.Sprint("-" + money(tx.Amount))
		}
		day := tx.Date
		if day == "" && len(tx.CreatedAt) >= 10 {
			day = tx.CreatedAt[:10]
		}
		row := []interface{}{day, amount, tx.Category, tx.Note}
		if pp.ShowID {
			row = append([]interface{}{tx.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Totals prints a period roll-up.
func (pp *PrettyPrint) Totals(label string, t views.Totals) {
	pp.Title(label)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("income", money(t.Income))
	tbl.AddRow("expense", money(t.Expense))
	tbl.AddRow(color.New(color.Bold).Sprint("net"), color.New(color.Bold).Sprint(money(t.Net())))
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Events prints events with their time and note.
func (pp *PrettyPrint) Events(events []model.Event) {
	if len(events) == 0 {
		pp.none()
		return
	}
	for _, e := range events {
		pp.id(e.ID)
		bullet := glyph.Event
		p := color.New()
		if e.Completed {
			bullet = glyph.EventDone
			p = color.New(color.Faint)
		}
		when := e.Date
		if e.Time != "" {
			when += " " + e.Time
		}
		_, _ = p.Fprintf(pp.out(), "  %s %s  %s\n", bullet, when, e.Title)
		if e.Note != "" {
			pp.wrapped(e.Note, 6)
		}
	}
	pp.NewLine()
}

// Routines prints routines checked against date.
func (pp *PrettyPrint) Routines(routines []model.Routine, date string) {
	if len(routines) == 0 {
		pp.none()
		return
	}
	for _, r := range routines {
		pp.id(r.ID)
		bullet := glyph.Routine
		if views.RoutineDone(r, date) {
			bullet = glyph.RoutineDone
		}
		line := fmt.Sprintf("  %s %s", bullet, r.Title)
		if r.Time != "" {
			line += "  " + color.New(color.Faint).Sprint(r.Time)
		}
		_, _ = fmt.Fprintln(pp.out(), line)
	}
	pp.NewLine()
}

// Ideas prints ideas newest first with wrapped text.
func (pp *PrettyPrint) Ideas(ideas []model.Idea) {
	if len(ideas) == 0 {
		pp.none()
		return
	}
	left := 4
	if pp.ShowID {
		left += len(spacing)
	}
	for i := len(ideas) - 1; i >= 0; i-- {
		idea := ideas[i]
		pp.id(idea.ID)
		lines := strings.Split(wordwrap.String(idea.Text, pp.width()-left), "\n")
		_, _ = fmt.Fprintf(pp.out(), "  %s %s\n", glyph.Idea, lines[0])
		for _, l := range lines[1:] {
			_, _ = fmt.Fprintln(pp.out(), strings.Repeat(" ", left)+l)
		}
	}
	pp.NewLine()
}

func (pp *PrettyPrint) wrapped(text string, pad int) {
	left := pad
	if pp.ShowID {
		left += len(spacing)
	}
	body := wordwrap.String(text, pp.width()-left)
	_, _ = color.New(color.Faint).Fprintln(pp.out(), indent.String(body, uint(left)))
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
