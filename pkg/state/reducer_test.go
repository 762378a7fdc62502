package state

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/sdvig/pkg/model"
)

type bogus struct{}

func (bogus) Type() ActionType { return "BOGUS" }

var fixedNow = time.Date(2024, 6, 12, 10, 30, 0, 0, time.UTC)

func newTestReducer() *Reducer {
	return &Reducer{Now: func() time.Time { return fixedNow }}
}

func seeded() *model.AppState {
	s := model.InitialState()
	s.Tasks = []model.Task{
		{ID: "p", Title: "Move house", Priority: model.PriorityNormal},
		{ID: "c1", Title: "Pack", ParentID: "p"},
		{ID: "c2", Title: "Book van", ParentID: "p"},
		{ID: "g1", Title: "Buy boxes", ParentID: "c1"},
		{ID: "solo", Title: "Call mom"},
	}
	s.Habits = []model.Habit{{ID: "h", Title: "Run", Frequency: model.Daily(), CompletedDates: []string{}}}
	s.Wallets = []model.Wallet{{ID: "w", Name: "Cash", Balance: decimal.NewFromInt(100)}}
	s.Events = []model.Event{{ID: "e", Title: "Dentist", Date: "2024-01-31"}}
	s.Routines = []model.Routine{{ID: "r", Title: "Stretch", Completed: map[string]bool{}}}
	return s
}

func TestUnknownActionReturnsSameState(t *testing.T) {
	r := newTestReducer()
	s := seeded()
	assert.Same(t, s, r.Apply(s, bogus{}))
	assert.Same(t, s, r.Apply(s, nil))
}

func TestReferentialNoOps(t *testing.T) {
	r := newTestReducer()
	s := seeded()
	noops := []Action{
		ToggleTask{ID: "missing"},
		DeleteTask{ID: "missing"},
		UpdateTask{Task: model.Task{ID: "missing"}},
		AddTask{Task: model.Task{ID: "p"}},
		AddTask{Task: model.Task{}},
		ToggleHabit{ID: "missing", Date: "2024-06-12"},
		ToggleHabit{ID: "h", Date: "not-a-date"},
		AddTransaction{Transaction: model.Transaction{ID: "t", WalletID: "gone", Type: model.Income, Amount: decimal.NewFromInt(5)}},
		AddTransaction{Transaction: model.Transaction{ID: "t", WalletID: "w", Type: "gift", Amount: decimal.NewFromInt(5)}},
		AddTransaction{Transaction: model.Transaction{ID: "t", WalletID: "w", Type: model.Income, Amount: decimal.NewFromInt(-5)}},
		DeleteTransaction{ID: "missing"},
		DeleteWallet{ID: "missing"},
		MoveEventToTomorrow{ID: "missing"},
		ToggleDayTask{Date: "2024-06-12", TaskID: "missing"},
		SetDayTasks{Date: "someday"},
		AddCategory{Name: "food"},
		AddCategory{Name: "  "},
		SetTheme{Theme: "neon"},
		SetTheme{Theme: model.ThemeLight},
		LoadState{},
	}
	for _, a := range noops {
		assert.Same(t, s, r.Apply(s, a), "%T should be a no-op", a)
	}
}

func TestWalletBalanceTracksTransactions(t *testing.T) {
	r := newTestReducer()
	s := seeded()

	s = r.Apply(s, AddTransaction{Transaction: model.Transaction{ID: "t1", WalletID: "w", Type: model.Income, Amount: decimal.RequireFromString("50.25")}})
	s = r.Apply(s, AddTransaction{Transaction: model.Transaction{ID: "t2", WalletID: "w", Type: model.Expense, Amount: decimal.RequireFromString("20.10")}})
	s = r.Apply(s, AddTransaction{Transaction: model.Transaction{ID: "t3", WalletID: "w", Type: model.Expense, Amount: decimal.NewFromInt(5)}})
	s = r.Apply(s, DeleteTransaction{ID: "t2"})

	w, ok := s.WalletByID("w")
	require.True(t, ok)
	want := decimal.NewFromInt(100).Add(decimal.RequireFromString("50.25")).Sub(decimal.NewFromInt(5))
	assert.True(t, want.Equal(w.Balance), "balance %s, want %s", w.Balance, want)
	assert.Len(t, s.Transactions, 2)

	// Balance equals start + signed sum of the live transactions.
	sum := decimal.NewFromInt(100)
	for _, tx := range s.Transactions {
		sum = sum.Add(tx.Signed())
	}
	assert.True(t, sum.Equal(w.Balance))
}

func TestDeleteWalletCascadesTransactions(t *testing.T) {
	r := newTestReducer()
	s := seeded()
	s = r.Apply(s, AddWallet{Wallet: model.Wallet{ID: "card", Name: "Card"}})
	s = r.Apply(s, AddTransaction{Transaction: model.Transaction{ID: "t1", WalletID: "w", Type: model.Income, Amount: decimal.NewFromInt(1)}})
	s = r.Apply(s, AddTransaction{Transaction: model.Transaction{ID: "t2", WalletID: "card", Type: model.Income, Amount: decimal.NewFromInt(1)}})

	s = r.Apply(s, DeleteWallet{ID: "w"})
	require.Len(t, s.Wallets, 1)
	require.Len(t, s.Transactions, 1)
	assert.Equal(t, "t2", s.Transactions[0].ID)
	assert.True(t, decimal.NewFromInt(1).Equal(s.Wallets[0].Balance))
}

func TestToggleTaskTwiceRestoresTask(t *testing.T) {
	r := newTestReducer()
	s := seeded()
	before, _ := s.TaskByID("solo")

	once := r.Apply(s, ToggleTask{ID: "solo"})
	done, _ := once.TaskByID("solo")
	assert.True(t, done.Completed)
	assert.Equal(t, "2024-06-12T10:30:00.000Z", done.CompletedAt)

	twice := r.Apply(once, ToggleTask{ID: "solo"})
	after, _ := twice.TaskByID("solo")
	assert.Equal(t, before, after)
}

func TestToggleLastSubtaskCompletesParent(t *testing.T) {
	r := newTestReducer()
	s := seeded()

	s = r.Apply(s, ToggleTask{ID: "c1"})
	parent, _ := s.TaskByID("p")
	assert.False(t, parent.Completed, "parent must wait for every sibling")

	s = r.Apply(s, ToggleTask{ID: "c2"})
	parent, _ = s.TaskByID("p")
	assert.True(t, parent.Completed)
	assert.Equal(t, "2024-06-12T10:30:00.000Z", parent.CompletedAt)

	// Propagation is one-directional.
	s = r.Apply(s, ToggleTask{ID: "c2"})
	parent, _ = s.TaskByID("p")
	assert.True(t, parent.Completed)
}

func TestToggleSubtaskPropagatesOneLevelOnly(t *testing.T) {
	r := newTestReducer()
	s := seeded()
	s = r.Apply(s, ToggleTask{ID: "c2"})

	// g1 is the only child of c1: completing it completes c1, but p is not
	// re-evaluated in the same toggle.
	s = r.Apply(s, ToggleTask{ID: "g1"})
	c1, _ := s.TaskByID("c1")
	p, _ := s.TaskByID("p")
	assert.True(t, c1.Completed)
	assert.False(t, p.Completed)
}

func TestDeleteTaskCascades(t *testing.T) {
	r := newTestReducer()
	s := r.Apply(seeded(), DeleteTask{ID: "p"})
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, "solo", s.Tasks[0].ID)
}

func TestToggleHabitIsSetMembership(t *testing.T) {
	r := newTestReducer()
	s := seeded()
	s = r.Apply(s, ToggleHabit{ID: "h", Date: "2024-06-11"})
	s1 := r.Apply(s, ToggleHabit{ID: "h", Date: "2024-06-12"})
	h, _ := s1.HabitByID("h")
	assert.ElementsMatch(t, []string{"2024-06-11", "2024-06-12"}, h.CompletedDates)

	s2 := r.Apply(s1, ToggleHabit{ID: "h", Date: "2024-06-12"})
	h, _ = s2.HabitByID("h")
	assert.Equal(t, []string{"2024-06-11"}, h.CompletedDates)
}

func TestMoveEventToTomorrowUsesCalendarDays(t *testing.T) {
	r := newTestReducer()
	s := r.Apply(seeded(), MoveEventToTomorrow{ID: "e"})
	assert.Equal(t, "2024-02-01", s.Events[0].Date)

	s = r.Apply(s, UpdateEvent{Event: model.Event{ID: "e", Title: "NYE", Date: "2024-12-31"}})
	s = r.Apply(s, MoveEventToTomorrow{ID: "e"})
	assert.Equal(t, "2025-01-01", s.Events[0].Date)
}

func TestRoutineAndDayTasks(t *testing.T) {
	r := newTestReducer()
	s := seeded()
	s = r.Apply(s, ToggleRoutine{ID: "r", Date: "2024-06-12"})
	assert.True(t, s.Routines[0].Completed["2024-06-12"])
	s = r.Apply(s, ToggleRoutine{ID: "r", Date: "2024-06-12"})
	assert.False(t, s.Routines[0].Completed["2024-06-12"])

	s = r.Apply(s, SetDayTasks{Date: "2024-06-12", Tasks: []model.DayTask{{ID: "d1", Title: "Water plants"}, {ID: "d2", Title: "Laundry"}}})
	s = r.Apply(s, ToggleDayTask{Date: "2024-06-12", TaskID: "d1"})
	s = r.Apply(s, UpdateDayTask{Date: "2024-06-12", Task: model.DayTask{ID: "d2", Title: "Laundry x2"}})
	s = r.Apply(s, DeleteDayTask{Date: "2024-06-12", TaskID: "d1"})
	assert.Equal(t, []model.DayTask{{ID: "d2", Title: "Laundry x2"}}, s.DayTasks["2024-06-12"])
}

func TestApplyDoesNotMutatePreviousState(t *testing.T) {
	r := newTestReducer()
	s := seeded()
	snapshot := seeded()

	next := r.Apply(s, ToggleTask{ID: "c1"})
	next = r.Apply(next, ToggleHabit{ID: "h", Date: "2024-06-12"})
	next = r.Apply(next, ToggleRoutine{ID: "r", Date: "2024-06-12"})
	next = r.Apply(next, AddTransaction{Transaction: model.Transaction{ID: "t", WalletID: "w", Type: model.Expense, Amount: decimal.NewFromInt(3)}})
	next = r.Apply(next, AddCategory{Name: "travel"})
	require.NotSame(t, s, next)

	if diff := cmp.Diff(snapshot, s); diff != "" {
		t.Fatalf("previous state mutated (-want +got):\n%s", diff)
	}
	// Untouched collections are shared, not copied.
	assert.Same(t, &s.Events[0], &next.Events[0])
}

func TestLoadStateReplacesEverything(t *testing.T) {
	r := newTestReducer()
	loaded := model.InitialState()
	loaded.Profile.Name = "Ann"
	assert.Same(t, loaded, r.Apply(seeded(), LoadState{State: loaded}))
	assert.Same(t, loaded, r.Apply(nil, LoadState{State: loaded}))
}

func TestSetThemeAndProfile(t *testing.T) {
	r := newTestReducer()
	s := r.Apply(seeded(), SetTheme{Theme: model.ThemeDark})
	assert.Equal(t, model.ThemeDark, s.Settings.Theme)
	s = r.Apply(s, UpdateProfile{Profile: model.Profile{Name: "Ann"}})
	assert.Equal(t, "Ann", s.Profile.Name)
}

func TestRejectsEntitiesThatWouldNotLoad(t *testing.T) {
	r := newTestReducer()
	s := seeded()
	broken := model.InitialState()
	broken.Tasks = []model.Task{{Title: "no id"}}

	rejected := map[string]Action{
		"event with a bad date":       AddEvent{Event: model.Event{ID: "e2", Date: "soon"}},
		"event update to a bad date":  UpdateEvent{Event: model.Event{ID: "e", Date: "2024-13-01"}},
		"task with unknown priority":  AddTask{Task: model.Task{ID: "t2", Priority: "urgent"}},
		"task update with bad date":   UpdateTask{Task: model.Task{ID: "solo", Date: "someday"}},
		"task with negative estimate": AddTask{Task: model.Task{ID: "t3", TimeEstimate: -5}},
		"habit with repeated dates": AddHabit{Habit: model.Habit{ID: "h2", Frequency: model.Daily(),
			CompletedDates: []string{"2026-01-01", "2026-01-01"}}},
		"habit update with bad date": UpdateHabit{Habit: model.Habit{ID: "h", Frequency: model.Daily(),
			CompletedDates: []string{"yesterday"}}},
		"transaction with bad date": AddTransaction{Transaction: model.Transaction{ID: "t", WalletID: "w",
			Type: model.Income, Amount: decimal.NewFromInt(1), Date: "june"}},
		"day tasks without ids":      SetDayTasks{Date: "2024-06-12", Tasks: []model.DayTask{{Title: "x"}}},
		"day tasks with repeated id": SetDayTasks{Date: "2024-06-12", Tasks: []model.DayTask{{ID: "d"}, {ID: "d"}}},
		"state that fails validation": LoadState{State: broken},
	}
	for name, a := range rejected {
		t.Run(name, func(t *testing.T) {
			assert.Same(t, s, r.Apply(s, a))
		})
	}
	assert.Nil(t, r.Apply(nil, LoadState{State: broken}))
	require.NoError(t, s.Validate())
}
