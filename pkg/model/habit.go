package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekday is the short code used in recurrence rules.
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

var weekdayAliases = map[string]Weekday{
	"mon": Monday, "monday": Monday, "пн": Monday,
	"tue": Tuesday, "tuesday": Tuesday, "вт": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday, "ср": Wednesday,
	"thu": Thursday, "thursday": Thursday, "чт": Thursday,
	"fri": Friday, "friday": Friday, "пт": Friday,
	"sat": Saturday, "saturday": Saturday, "сб": Saturday,
	"sun": Sunday, "sunday": Sunday, "вс": Sunday,
}

// ParseWeekday accepts short codes, English day names and the legacy Russian
// two-letter codes found in old backups.
func ParseWeekday(raw string) (Weekday, error) {
	if d, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return d, nil
	}
	return "", fmt.Errorf("model: unknown weekday %q", raw)
}

// WeekdayOf maps a time.Weekday to its code.
func WeekdayOf(d time.Weekday) Weekday {
	return [...]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}[d]
}

// IsWorkday reports whether d is Monday through Friday.
func (d Weekday) IsWorkday() bool {
	return d != Saturday && d != Sunday && d != ""
}

func (d *Weekday) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseWeekday(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FrequencyKind tags a Frequency variant.
type FrequencyKind string

const (
	FrequencyDaily    FrequencyKind = "daily"
	FrequencyWeekdays FrequencyKind = "weekdays"
	FrequencySpecific FrequencyKind = "specific"
	FrequencyWeekly   FrequencyKind = "weekly"
)

// Frequency is the recurrence rule of a habit. Days is only meaningful for
// FrequencySpecific and Times only for FrequencyWeekly.
type Frequency struct {
	Kind  FrequencyKind
	Days  []Weekday
	Times int
}

// Daily, Weekdays, Specific and Weekly build the four variants.
func Daily() Frequency    { return Frequency{Kind: FrequencyDaily} }
func Weekdays() Frequency { return Frequency{Kind: FrequencyWeekdays} }
func Specific(days ...Weekday) Frequency {
	return Frequency{Kind: FrequencySpecific, Days: days}
}
func Weekly(times int) Frequency { return Frequency{Kind: FrequencyWeekly, Times: times} }

// Includes reports whether d is one of the configured specific days.
func (f Frequency) Includes(d Weekday) bool {
	for _, day := range f.Days {
		if day == d {
			return true
		}
	}
	return false
}

func (f Frequency) String() string {
	switch f.Kind {
	case FrequencySpecific:
		days := make([]string, len(f.Days))
		for i, d := range f.Days {
			days[i] = string(d)
		}
		return "on " + strings.Join(days, ",")
	case FrequencyWeekly:
		return fmt.Sprintf("%dx weekly", f.Times)
	}
	return string(f.Kind)
}

type frequencyJSON struct {
	Type  FrequencyKind `json:"type"`
	Days  []Weekday     `json:"days,omitempty"`
	Times int           `json:"times,omitempty"`
}

func (f Frequency) MarshalJSON() ([]byte, error) {
	out := frequencyJSON{Type: f.Kind}
	switch f.Kind {
	case FrequencySpecific:
		out.Days = f.Days
	case FrequencyWeekly:
		out.Times = f.Times
	}
	return json.Marshal(out)
}

func (f *Frequency) UnmarshalJSON(b []byte) error {
	var in frequencyJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	switch in.Type {
	case FrequencyDaily, FrequencyWeekdays:
		*f = Frequency{Kind: in.Type}
	case FrequencySpecific:
		*f = Frequency{Kind: in.Type, Days: in.Days}
	case FrequencyWeekly:
		*f = Frequency{Kind: in.Type, Times: in.Times}
	default:
		return fmt.Errorf("model: unknown frequency type %q", in.Type)
	}
	return nil
}

// Habit is a recurring practice tracked per calendar date.
type Habit struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Frequency      Frequency `json:"frequency"`
	MinAmount      string    `json:"minAmount,omitempty"`
	Time           string    `json:"time,omitempty"`
	CompletedDates []string  `json:"completedDates"`
}

// DoneOn reports whether date is in CompletedDates.
func (h Habit) DoneOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}
