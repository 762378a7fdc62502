package views

import (
	"math"
	"time"

	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/timeutil"
)

const streakLookback = 365

// IsDue reports whether the habit's recurrence rule expects it on day.
// Weekly habits are count based and are shown as due every day.
func IsDue(h model.Habit, day time.Time) bool {
	wd := model.WeekdayOf(day.Weekday())
	switch h.Frequency.Kind {
	case model.FrequencyWeekdays:
		return wd.IsWorkday()
	case model.FrequencySpecific:
		return h.Frequency.Includes(wd)
	default:
		return true
	}
}

// Streak counts consecutive completed days walking back from today, or from
// yesterday when today is not done yet. The walk stops at the first gap and
// never looks back more than a year.
func Streak(h model.Habit, today time.Time) int {
	done := completedSet(h)
	day := timeutil.StartOfDay(today)
	if !done[timeutil.FormatDate(day)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for i := 0; i < streakLookback; i++ {
		if !done[timeutil.FormatDate(day)] {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// WeekPercent is the share of due days completed over the seven days ending
// today, rounded to a whole percent. It is 0 when nothing was due.
func WeekPercent(h model.Habit, today time.Time) int {
	done := completedSet(h)
	day := timeutil.StartOfDay(today)
	total, completed := 0, 0
	for i := 0; i < 7; i++ {
		d := day.AddDate(0, 0, -i)
		if !IsDue(h, d) {
			continue
		}
		total++
		if done[timeutil.FormatDate(d)] {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// HabitStats is the per-habit summary row.
type HabitStats struct {
	Habit       model.Habit
	Due         bool
	DoneToday   bool
	Streak      int
	WeekPercent int
}

func Summarize(h model.Habit, today time.Time) HabitStats {
	return HabitStats{
		Habit:       h,
		Due:         IsDue(h, today),
		DoneToday:   h.DoneOn(timeutil.FormatDate(today)),
		Streak:      Streak(h, today),
		WeekPercent: WeekPercent(h, today),
	}
}

// DueHabits returns the habits expected today, in stored order.
func DueHabits(habits []model.Habit, today time.Time) []model.Habit {
	var out []model.Habit
	for _, h := range habits {
		if IsDue(h, today) {
			out = append(out, h)
		}
	}
	return out
}

func completedSet(h model.Habit) map[string]bool {
	set := make(map[string]bool, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		set[d] = true
	}
	return set
}
