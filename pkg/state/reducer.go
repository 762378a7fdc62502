package state

import (
	"maps"
	"slices"
	"strings"
	"time"

	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/timeutil"
)

// Reducer applies actions to AppState snapshots. Now supplies the timestamp
// for completion stamps; time.Now is used when it is nil.
type Reducer struct {
	Now func() time.Time
}

// NewReducer returns a Reducer on the wall clock.
func NewReducer() *Reducer {
	return &Reducer{Now: time.Now}
}

func (r *Reducer) now() time.Time {
	if r == nil || r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

var (
	taskKey     = func(t model.Task) string { return t.ID }
	habitKey    = func(h model.Habit) string { return h.ID }
	routineKey  = func(r model.Routine) string { return r.ID }
	eventKey    = func(e model.Event) string { return e.ID }
	dayTaskKey  = func(t model.DayTask) string { return t.ID }
	walletKey   = func(w model.Wallet) string { return w.ID }
	txKey       = func(t model.Transaction) string { return t.ID }
	ideaKey     = func(i model.Idea) string { return i.ID }
	documentKey = func(d model.Document) string { return d.ID }
	focusKey    = func(f model.FocusSession) string { return f.ID }
)

// Apply returns the state that results from applying a to s. It never
// mutates s and never panics. When a is unknown or references something that
// does not exist, s itself is returned.
func (r *Reducer) Apply(s *model.AppState, a Action) *model.AppState {
	if s == nil {
		if load, ok := a.(LoadState); ok && load.State != nil && load.State.Validate() == nil {
			return load.State
		}
		return s
	}

	switch a := a.(type) {
	// Routines
	case AddRoutine:
		if list, ok := add(s.Routines, a.Routine, routineKey); ok {
			next := *s
			next.Routines = list
			return &next
		}
	case UpdateRoutine:
		if list, ok := update(s.Routines, a.Routine, routineKey); ok {
			next := *s
			next.Routines = list
			return &next
		}
	case DeleteRoutine:
		if list, ok := remove(s.Routines, a.ID, routineKey); ok {
			next := *s
			next.Routines = list
			return &next
		}
	case ToggleRoutine:
		i := indexWhere(s.Routines, byID(a.ID, routineKey))
		if i < 0 || a.Date == "" {
			return s
		}
		routine := s.Routines[i]
		done := maps.Clone(routine.Completed)
		if done == nil {
			done = map[string]bool{}
		}
		done[a.Date] = !done[a.Date]
		routine.Completed = done
		next := *s
		next.Routines = replaceAt(s.Routines, i, routine)
		return &next

	// Events
	case AddEvent:
		if a.Event.Validate() != nil {
			return s
		}
		if list, ok := add(s.Events, a.Event, eventKey); ok {
			next := *s
			next.Events = list
			return &next
		}
	case UpdateEvent:
		if a.Event.Validate() != nil {
			return s
		}
		if list, ok := update(s.Events, a.Event, eventKey); ok {
			next := *s
			next.Events = list
			return &next
		}
	case DeleteEvent:
		if list, ok := remove(s.Events, a.ID, eventKey); ok {
			next := *s
			next.Events = list
			return &next
		}
	case ToggleEvent:
		i := indexWhere(s.Events, byID(a.ID, eventKey))
		if i < 0 {
			return s
		}
		event := s.Events[i]
		event.Completed = !event.Completed
		next := *s
		next.Events = replaceAt(s.Events, i, event)
		return &next
	case MoveEventToTomorrow:
		i := indexWhere(s.Events, byID(a.ID, eventKey))
		if i < 0 {
			return s
		}
		event := s.Events[i]
		date, err := timeutil.AddDays(event.Date, 1)
		if err != nil {
			return s
		}
		event.Date = date
		next := *s
		next.Events = replaceAt(s.Events, i, event)
		return &next

	// Day tasks
	case SetDayTasks:
		if !timeutil.ValidDate(a.Date) || !distinctIDs(a.Tasks, dayTaskKey) {
			return s
		}
		tasks := slices.Clone(a.Tasks)
		if tasks == nil {
			tasks = []model.DayTask{}
		}
		return withDayTasks(s, a.Date, tasks)
	case ToggleDayTask:
		list := s.DayTasks[a.Date]
		i := indexWhere(list, byID(a.TaskID, dayTaskKey))
		if i < 0 {
			return s
		}
		task := list[i]
		task.Completed = !task.Completed
		return withDayTasks(s, a.Date, replaceAt(list, i, task))
	case UpdateDayTask:
		if list, ok := update(s.DayTasks[a.Date], a.Task, dayTaskKey); ok {
			return withDayTasks(s, a.Date, list)
		}
	case DeleteDayTask:
		if list, ok := remove(s.DayTasks[a.Date], a.TaskID, dayTaskKey); ok {
			return withDayTasks(s, a.Date, list)
		}

	// Finance
	case AddWallet:
		if list, ok := add(s.Wallets, a.Wallet, walletKey); ok {
			next := *s
			next.Wallets = list
			return &next
		}
	case UpdateWallet:
		if list, ok := update(s.Wallets, a.Wallet, walletKey); ok {
			next := *s
			next.Wallets = list
			return &next
		}
	case DeleteWallet:
		if list, ok := remove(s.Wallets, a.ID, walletKey); ok {
			next := *s
			next.Wallets = list
			next.Transactions = removeWhere(s.Transactions, func(t model.Transaction) bool {
				return t.WalletID == a.ID
			})
			return &next
		}
	case AddTransaction:
		return r.addTransaction(s, a.Transaction)
	case DeleteTransaction:
		return r.deleteTransaction(s, a.ID)
	case AddCategory:
		name := strings.TrimSpace(a.Name)
		if name == "" || s.HasCategory(name) {
			return s
		}
		next := *s
		next.Categories = appendItem(s.Categories, name)
		return &next

	// Tasks
	case AddTask:
		if a.Task.Validate() != nil {
			return s
		}
		if list, ok := add(s.Tasks, a.Task, taskKey); ok {
			next := *s
			next.Tasks = list
			return &next
		}
	case UpdateTask:
		if a.Task.Validate() != nil {
			return s
		}
		if list, ok := update(s.Tasks, a.Task, taskKey); ok {
			next := *s
			next.Tasks = list
			return &next
		}
	case DeleteTask:
		return r.deleteTask(s, a.ID)
	case ToggleTask:
		return r.toggleTask(s, a.ID)

	// Habits
	case AddHabit:
		if a.Habit.Validate() != nil {
			return s
		}
		if list, ok := add(s.Habits, a.Habit, habitKey); ok {
			next := *s
			next.Habits = list
			return &next
		}
	case UpdateHabit:
		if a.Habit.Validate() != nil {
			return s
		}
		if list, ok := update(s.Habits, a.Habit, habitKey); ok {
			next := *s
			next.Habits = list
			return &next
		}
	case DeleteHabit:
		if list, ok := remove(s.Habits, a.ID, habitKey); ok {
			next := *s
			next.Habits = list
			return &next
		}
	case ToggleHabit:
		i := indexWhere(s.Habits, byID(a.ID, habitKey))
		if i < 0 || !timeutil.ValidDate(a.Date) {
			return s
		}
		habit := s.Habits[i]
		if habit.DoneOn(a.Date) {
			habit.CompletedDates = removeWhere(habit.CompletedDates, func(d string) bool { return d == a.Date })
		} else {
			habit.CompletedDates = appendItem(habit.CompletedDates, a.Date)
		}
		next := *s
		next.Habits = replaceAt(s.Habits, i, habit)
		return &next

	// Inbox
	case AddIdea:
		if list, ok := add(s.Ideas, a.Idea, ideaKey); ok {
			next := *s
			next.Ideas = list
			return &next
		}
	case UpdateIdea:
		if list, ok := update(s.Ideas, a.Idea, ideaKey); ok {
			next := *s
			next.Ideas = list
			return &next
		}
	case DeleteIdea:
		if list, ok := remove(s.Ideas, a.ID, ideaKey); ok {
			next := *s
			next.Ideas = list
			return &next
		}

	case UpdateProfile:
		next := *s
		next.Profile = a.Profile
		return &next

	case AddDocument:
		if list, ok := add(s.Documents, a.Document, documentKey); ok {
			next := *s
			next.Documents = list
			return &next
		}
	case DeleteDocument:
		if list, ok := remove(s.Documents, a.ID, documentKey); ok {
			next := *s
			next.Documents = list
			return &next
		}

	case AddFocusSession:
		if list, ok := add(s.FocusSessions, a.Session, focusKey); ok {
			next := *s
			next.FocusSessions = list
			return &next
		}

	case SetTheme:
		if !a.Theme.Valid() || a.Theme == s.Settings.Theme {
			return s
		}
		next := *s
		next.Settings.Theme = a.Theme
		return &next

	case LoadState:
		if a.State != nil && a.State.Validate() == nil {
			return a.State
		}
	}
	return s
}

func (r *Reducer) toggleTask(s *model.AppState, id string) *model.AppState {
	i := indexWhere(s.Tasks, byID(id, taskKey))
	if i < 0 {
		return s
	}
	stamp := timeutil.Timestamp(r.now())
	tasks := slices.Clone(s.Tasks)

	task := tasks[i]
	task.Completed = !task.Completed
	if task.Completed {
		task.CompletedAt = stamp
	} else {
		task.CompletedAt = ""
	}
	tasks[i] = task

	// One level only: the parent is completed once its last open subtask is,
	// and is never reopened here.
	if task.IsSubtask() {
		allDone := true
		for _, sibling := range tasks {
			if sibling.ParentID == task.ParentID && !sibling.Completed {
				allDone = false
				break
			}
		}
		if allDone {
			if p := indexWhere(tasks, byID(task.ParentID, taskKey)); p >= 0 && !tasks[p].Completed {
				parent := tasks[p]
				parent.Completed = true
				parent.CompletedAt = stamp
				tasks[p] = parent
			}
		}
	}

	next := *s
	next.Tasks = tasks
	return &next
}

func (r *Reducer) deleteTask(s *model.AppState, id string) *model.AppState {
	if indexWhere(s.Tasks, byID(id, taskKey)) < 0 {
		return s
	}
	doomed := map[string]bool{id: true}
	for grew := true; grew; {
		grew = false
		for _, t := range s.Tasks {
			if t.IsSubtask() && doomed[t.ParentID] && !doomed[t.ID] {
				doomed[t.ID] = true
				grew = true
			}
		}
	}
	next := *s
	next.Tasks = removeWhere(s.Tasks, func(t model.Task) bool { return doomed[t.ID] })
	return &next
}

func (r *Reducer) addTransaction(s *model.AppState, tx model.Transaction) *model.AppState {
	if tx.Validate() != nil {
		return s
	}
	if indexWhere(s.Transactions, byID(tx.ID, txKey)) >= 0 {
		return s
	}
	w := indexWhere(s.Wallets, byID(tx.WalletID, walletKey))
	if w < 0 {
		return s
	}
	wallet := s.Wallets[w]
	wallet.Balance = wallet.Balance.Add(tx.Signed())

	next := *s
	next.Wallets = replaceAt(s.Wallets, w, wallet)
	next.Transactions = appendItem(s.Transactions, tx)
	return &next
}

func (r *Reducer) deleteTransaction(s *model.AppState, id string) *model.AppState {
	t := indexWhere(s.Transactions, byID(id, txKey))
	if t < 0 {
		return s
	}
	tx := s.Transactions[t]
	w := indexWhere(s.Wallets, byID(tx.WalletID, walletKey))
	if w < 0 {
		return s
	}
	wallet := s.Wallets[w]
	wallet.Balance = wallet.Balance.Sub(tx.Signed())

	next := *s
	next.Wallets = replaceAt(s.Wallets, w, wallet)
	next.Transactions = removeWhere(s.Transactions, byID(id, txKey))
	return &next
}

func withDayTasks(s *model.AppState, date string, tasks []model.DayTask) *model.AppState {
	days := maps.Clone(s.DayTasks)
	if days == nil {
		days = map[string][]model.DayTask{}
	}
	days[date] = tasks
	next := *s
	next.DayTasks = days
	return &next
}

// distinctIDs reports whether every item has its own non-empty id.
func distinctIDs[T any](list []T, key func(T) string) bool {
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		id := key(v)
		if _, dup := seen[id]; dup || id == "" {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

func add[T any](list []T, v T, key func(T) string) ([]T, bool) {
	id := key(v)
	if id == "" || indexWhere(list, byID(id, key)) >= 0 {
		return list, false
	}
	return appendItem(list, v), true
}

func update[T any](list []T, v T, key func(T) string) ([]T, bool) {
	i := indexWhere(list, byID(key(v), key))
	if i < 0 {
		return list, false
	}
	return replaceAt(list, i, v), true
}

func remove[T any](list []T, id string, key func(T) string) ([]T, bool) {
	if indexWhere(list, byID(id, key)) < 0 {
		return list, false
	}
	return removeWhere(list, byID(id, key)), true
}
