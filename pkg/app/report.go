package app

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/timeutil"
)

// ReportItem is a task in a report. Completed is false for parents that are
// listed only to give completed subtasks their context.
type ReportItem struct {
	Task        model.Task
	Completed   bool
	CompletedAt time.Time
}

// ReportSection groups a top-level task with its subtasks. Standalone tasks
// share the section with an empty Root.
type ReportSection struct {
	Root  string
	Items []ReportItem
}

// HabitCount is the number of check-ins of a habit inside the window.
type HabitCount struct {
	Habit model.Habit
	Days  int
}

// ReportResult summarises what got done between Since and Until.
type ReportResult struct {
	Since        time.Time
	Until        time.Time
	Sections     []ReportSection
	Total        int
	Habits       []HabitCount
	FocusMinutes int
	Income       decimal.Decimal
	Expense      decimal.Decimal
}

// Report builds a ReportResult from the current state.
func (s *Store) Report(since, until time.Time) ReportResult {
	return BuildReport(s.State(), since, until)
}

// BuildReport collects completed tasks, habit check-ins, focus time and money
// movement inside [since, until].
func BuildReport(st *model.AppState, since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	res := ReportResult{Since: since, Until: until, Income: decimal.Zero, Expense: decimal.Zero}
	if st == nil {
		return res
	}
	within := func(ts string) (time.Time, bool) {
		t, err := time.Parse(timeutil.LayoutTimestamp, ts)
		if err != nil {
			return time.Time{}, false
		}
		return t, !t.Before(since) && !t.After(until)
	}
	fromDay := timeutil.FormatDate(since)
	toDay := timeutil.FormatDate(until)
	dayWithin := func(d string) bool {
		return timeutil.ValidDate(d) && d >= fromDay && d <= toDay
	}

	byID := make(map[string]model.Task, len(st.Tasks))
	parents := map[string]bool{}
	for _, t := range st.Tasks {
		byID[t.ID] = t
		if t.ParentID != "" {
			parents[t.ParentID] = true
		}
	}
	grouped := map[string]map[string]*ReportItem{}
	ensure := func(root string, t model.Task) *ReportItem {
		bucket, ok := grouped[root]
		if !ok {
			bucket = map[string]*ReportItem{}
			grouped[root] = bucket
		}
		if item, ok := bucket[t.ID]; ok {
			return item
		}
		item := &ReportItem{Task: t}
		bucket[t.ID] = item
		return item
	}
	for _, t := range st.Tasks {
		if !t.Completed {
			continue
		}
		at, ok := within(t.CompletedAt)
		if !ok {
			continue
		}
		chain := ancestors(byID, t)
		root := ""
		switch {
		case len(chain) > 0:
			root = chain[len(chain)-1].ID
		case parents[t.ID]:
			root = t.ID
		}
		item := ensure(root, t)
		item.Completed = true
		item.CompletedAt = at
		res.Total++
		for _, parent := range chain {
			ensure(root, parent)
		}
	}

	roots := make([]string, 0, len(grouped))
	for root := range grouped {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	for _, root := range roots {
		section := ReportSection{Root: root}
		if root != "" {
			section.Root = byID[root].Title
		}
		// Stored order keeps parents ahead of the children added after them.
		for _, t := range st.Tasks {
			if item, ok := grouped[root][t.ID]; ok {
				section.Items = append(section.Items, *item)
			}
		}
		res.Sections = append(res.Sections, section)
	}

	for _, h := range st.Habits {
		n := 0
		for _, d := range h.CompletedDates {
			if dayWithin(d) {
				n++
			}
		}
		if n > 0 {
			res.Habits = append(res.Habits, HabitCount{Habit: h, Days: n})
		}
	}

	for _, f := range st.FocusSessions {
		if _, ok := within(f.StartedAt); ok {
			res.FocusMinutes += f.Minutes
		}
	}

	for _, tx := range st.Transactions {
		day := tx.Date
		if day == "" && len(tx.CreatedAt) >= 10 {
			day = tx.CreatedAt[:10]
		}
		if !dayWithin(day) {
			continue
		}
		switch tx.Type {
		case model.Income:
			res.Income = res.Income.Add(tx.Amount)
		case model.Expense:
			res.Expense = res.Expense.Add(tx.Amount)
		}
	}
	return res
}

// ancestors walks parent links upward, nearest first, stopping on cycles and
// dangling ids.
func ancestors(byID map[string]model.Task, t model.Task) []model.Task {
	var chain []model.Task
	visited := map[string]bool{t.ID: true}
	for id := t.ParentID; id != "" && !visited[id]; {
		visited[id] = true
		parent, ok := byID[id]
		if !ok {
			break
		}
		chain = append(chain, parent)
		id = parent.ParentID
	}
	return chain
}
