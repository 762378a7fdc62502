package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tableflip.dev/sdvig/pkg/model"
)

func reportState() *model.AppState {
	s := model.InitialState()
	s.Tasks = []model.Task{
		{ID: "p", Title: "Move house"},
		{ID: "c1", Title: "Pack", ParentID: "p", Completed: true, CompletedAt: "2024-06-11T10:00:00.000Z"},
		{ID: "c2", Title: "Old chore", ParentID: "p", Completed: true, CompletedAt: "2024-05-01T10:00:00.000Z"},
		{ID: "solo", Title: "Call mom", Completed: true, CompletedAt: "2024-06-12T08:00:00.000Z"},
		{ID: "open", Title: "Taxes", Date: "2024-05-20"},
		{ID: "open-sub", Title: "Find receipts", ParentID: "open"},
	}
	s.Habits = []model.Habit{
		{ID: "h", Title: "Run", Frequency: model.Daily(), CompletedDates: []string{"2024-06-10", "2024-06-11", "2024-05-01"}},
		{ID: "idle", Title: "Idle", Frequency: model.Daily(), CompletedDates: []string{}},
	}
	s.FocusSessions = []model.FocusSession{
		{ID: "f1", Minutes: 25, StartedAt: "2024-06-11T09:00:00.000Z"},
		{ID: "f2", Minutes: 50, StartedAt: "2024-04-01T09:00:00.000Z"},
	}
	s.Wallets = []model.Wallet{{ID: "w", Name: "Cash"}}
	s.Transactions = []model.Transaction{
		{ID: "x1", WalletID: "w", Type: model.Income, Amount: decimal.NewFromInt(100), Date: "2024-06-10"},
		{ID: "x2", WalletID: "w", Type: model.Expense, Amount: decimal.NewFromInt(30), CreatedAt: "2024-06-12T07:00:00.000Z"},
		{ID: "x3", WalletID: "w", Type: model.Expense, Amount: decimal.NewFromInt(99), Date: "2024-01-01"},
	}
	return s
}

func TestBuildReport(t *testing.T) {
	until := time.Date(2024, 6, 12, 23, 59, 59, 0, time.UTC)
	since := until.AddDate(0, 0, -7)
	res := BuildReport(reportState(), until, since)

	if !res.Since.Equal(since) {
		t.Fatalf("bounds not normalised: %v", res.Since)
	}
	if res.Total != 2 {
		t.Fatalf("Total = %d, want 2", res.Total)
	}
	if len(res.Sections) != 2 {
		t.Fatalf("sections = %+v", res.Sections)
	}
	standalone, house := res.Sections[0], res.Sections[1]
	if standalone.Root != "" || len(standalone.Items) != 1 || standalone.Items[0].Task.ID != "solo" {
		t.Errorf("standalone section = %+v", standalone)
	}
	if house.Root != "Move house" || len(house.Items) != 2 {
		t.Fatalf("house section = %+v", house)
	}
	if house.Items[0].Task.ID != "p" || house.Items[0].Completed {
		t.Errorf("parent context item = %+v", house.Items[0])
	}
	if house.Items[1].Task.ID != "c1" || !house.Items[1].Completed {
		t.Errorf("completed item = %+v", house.Items[1])
	}

	if len(res.Habits) != 1 || res.Habits[0].Days != 2 {
		t.Errorf("habits = %+v", res.Habits)
	}
	if res.FocusMinutes != 25 {
		t.Errorf("FocusMinutes = %d", res.FocusMinutes)
	}
	if !res.Income.Equal(decimal.NewFromInt(100)) || !res.Expense.Equal(decimal.NewFromInt(30)) {
		t.Errorf("money = +%s -%s", res.Income, res.Expense)
	}
}

func TestBuildReportNilState(t *testing.T) {
	res := BuildReport(nil, time.Now().Add(-time.Hour), time.Now())
	if res.Total != 0 || res.Sections != nil {
		t.Fatalf("unexpected report %+v", res)
	}
}

func TestMigrateOverdueTasks(t *testing.T) {
	p := newMemoryPersistence(reportState())
	s := newTestStore(p)
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	today := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)

	got := s.MigrationCandidates(today)
	if len(got) != 1 || got[0].Task.ID != "open" {
		t.Fatalf("candidates = %+v", got)
	}
	if got[0].DaysLate != 23 || len(got[0].Subtasks) != 1 {
		t.Errorf("candidate = %+v", got[0])
	}

	if n := s.Migrate([]string{"open", "solo", "missing"}, "2024-06-12"); n != 1 {
		t.Fatalf("Migrate() = %d, want 1", n)
	}
	if len(s.MigrationCandidates(today)) != 0 {
		t.Fatal("task still overdue after migration")
	}
	task, _ := s.State().TaskByID("open")
	if task.Date != "2024-06-12" {
		t.Fatalf("date = %q", task.Date)
	}
}
