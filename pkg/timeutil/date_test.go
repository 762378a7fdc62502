package timeutil

import (
	"testing"
	"time"
)

func TestAddDaysCrossesBoundaries(t *testing.T) {
	cases := map[string]string{
		"2024-01-31": "2024-02-01",
		"2024-02-28": "2024-02-29",
		"2023-12-31": "2024-01-01",
		"2024-03-30": "2024-03-31",
	}
	for in, want := range cases {
		got, err := AddDays(in, 1)
		if err != nil {
			t.Fatalf("AddDays(%s): %v", in, err)
		}
		if got != want {
			t.Fatalf("AddDays(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestAddDaysRejectsGarbage(t *testing.T) {
	if _, err := AddDays("31/01/2024", 1); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestStartOfWeekIsMonday(t *testing.T) {
	// 2024-06-16 is a Sunday.
	sunday := time.Date(2024, 6, 16, 18, 30, 0, 0, time.UTC)
	got := StartOfWeek(sunday)
	if FormatDate(got) != "2024-06-10" {
		t.Fatalf("expected Monday 2024-06-10, got %s", FormatDate(got))
	}
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if FormatDate(StartOfWeek(monday)) != "2024-06-10" {
		t.Fatalf("monday should start its own week")
	}
}

func TestInWeek(t *testing.T) {
	wednesday := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	for _, d := range []string{"2024-06-10", "2024-06-12", "2024-06-16"} {
		if !InWeek(d, wednesday) {
			t.Fatalf("expected %s in week", d)
		}
	}
	for _, d := range []string{"2024-06-09", "2024-06-17", "", "soon"} {
		if InWeek(d, wednesday) {
			t.Fatalf("did not expect %q in week", d)
		}
	}
}

func TestTimestampIsUTCMillis(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	ts := Timestamp(time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, loc))
	if ts != "2024-01-02T00:04:05.006Z" {
		t.Fatalf("unexpected timestamp %s", ts)
	}
}
