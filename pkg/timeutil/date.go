package timeutil

import (
	"fmt"
	"time"
)

const (
	// LayoutDate is the calendar-date layout used for every date key.
	LayoutDate = "2006-01-02"
	// LayoutTimestamp matches the millisecond ISO-8601 form stored for
	// createdAt/completedAt fields.
	LayoutTimestamp = "2006-01-02T15:04:05.000Z07:00"
)

// FormatDate renders t as a local calendar date key.
func FormatDate(t time.Time) string {
	return t.Format(LayoutDate)
}

// ParseDate parses a date key in the given location (time.Local when nil).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(LayoutDate, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: invalid date %q: %w", s, err)
	}
	return t, nil
}

// ValidDate reports whether s is a well-formed date key.
func ValidDate(s string) bool {
	_, err := time.Parse(LayoutDate, s)
	return err == nil
}

// Timestamp renders t in UTC with millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format(LayoutTimestamp)
}

// AddDays shifts a date key by n calendar days. Calendar arithmetic is done on
// the date itself, so month/year boundaries and DST changes are irrelevant.
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(LayoutDate, date)
	if err != nil {
		return "", fmt.Errorf("timeutil: invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, n).Format(LayoutDate), nil
}

// StartOfDay truncates t to local midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday that opens the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// InWeek reports whether the date key falls in the Monday-start week that
// contains today.
func InWeek(date string, today time.Time) bool {
	start := FormatDate(StartOfWeek(today))
	end := FormatDate(StartOfWeek(today).AddDate(0, 0, 6))
	if !ValidDate(date) {
		return false
	}
	return date >= start && date <= end
}
