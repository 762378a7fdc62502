package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/views"
)

func init() {
	color.NoColor = true
}

func TestCalendarMath(t *testing.T) {
	tests := []struct {
		month time.Time
		days  int
		start int
	}{
		{time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 29, 3}, // Thu
		{time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), 28, 2},  // Wed
		{time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC), 30, 6}, // Sun
		{time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC), 31, 0},  // Mon
	}
	for _, tt := range tests {
		if got := DaysIn(tt.month); got != tt.days {
			t.Errorf("DaysIn(%s) = %d, want %d", tt.month.Format("2006-01"), got, tt.days)
		}
		if got := StartDay(tt.month); got != tt.start {
			t.Errorf("StartDay(%s) = %d, want %d", tt.month.Format("2006-01"), got, tt.start)
		}
	}
	if got := NextMonth(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)); got.Format("2006-01-02") != "2025-01-01" {
		t.Errorf("NextMonth = %s", got)
	}
}

func TestHabitMonth(t *testing.T) {
	var out bytes.Buffer
	pp := PrettyPrint{Out: &out}
	h := model.Habit{Title: "Run", CompletedDates: []string{"2024-06-01", "2024-05-31", "garbage"}}
	pp.HabitMonth(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), h)

	lines := strings.Split(out.String(), "\n")
	if !strings.Contains(lines[0], "June 2024") {
		t.Fatalf("title line = %q", lines[0])
	}
	// June 2024 opens on a Saturday.
	if want := strings.Repeat("   ", 5) + " 1  2 "; lines[2] != want {
		t.Errorf("first week = %q, want %q", lines[2], want)
	}
}

func TestAgenda(t *testing.T) {
	var out bytes.Buffer
	pp := PrettyPrint{Out: &out}
	events := []model.Event{
		{ID: "b", Title: "Dinner", Date: "2024-06-03", Time: "19:00"},
		{ID: "a", Title: "Gym", Date: "2024-06-03", Time: "07:00", Completed: true},
		{ID: "c", Title: "Elsewhere", Date: "2024-07-03"},
	}
	pp.Agenda(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), events)

	got := out.String()
	gym := strings.Index(got, "◉ 07:00 Gym")
	dinner := strings.Index(got, "○ 19:00 Dinner")
	if gym < 0 || dinner < 0 || gym > dinner {
		t.Errorf("agenda out of order:\n%s", got)
	}
	if strings.Contains(got, "Elsewhere") {
		t.Errorf("agenda leaked another month:\n%s", got)
	}
	if n := strings.Count(got, "\n"); n != 32 {
		t.Errorf("agenda has %d lines, want 32", n)
	}
}

func TestTasksAndBuckets(t *testing.T) {
	var out bytes.Buffer
	pp := PrettyPrint{Out: &out}
	tasks := []model.Task{
		{ID: "p", Title: "Parent", Date: "2024-06-12", Priority: model.PriorityImportant, TimeEstimate: 90},
		{ID: "c", Title: "Child", ParentID: "p", Completed: true},
	}
	today := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	pp.Buckets(tasks, views.GroupTasks(tasks, today), nil)

	got := out.String()
	for _, want := range []string{"Today - 1 task\n", "✷ ● Parent  (2024-06-12, 1h30m)", "└   ✘ Child", "Someday - 0 tasks"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestWalletsAndIdeas(t *testing.T) {
	var out bytes.Buffer
	pp := PrettyPrint{Out: &out, Width: 20}
	pp.Wallets([]model.Wallet{
		{ID: "a", Name: "Cash", Balance: decimal.RequireFromString("10.5")},
		{ID: "b", Name: "Card", Balance: decimal.RequireFromString("-2")},
	})
	pp.Ideas([]model.Idea{{ID: "i", Text: "a rather long idea that has to wrap"}})

	got := out.String()
	if !strings.Contains(got, "8.50") {
		t.Errorf("missing total in:\n%s", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "idea") || strings.Contains(line, "wrap") {
			if len([]rune(strings.TrimRight(line, " "))) > 20 {
				t.Errorf("line not wrapped: %q", line)
			}
		}
	}
}
