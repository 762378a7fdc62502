package model

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"tableflip.dev/sdvig/pkg/timeutil"
)

// Validate reports what keeps t from being stored.
func (t Task) Validate() error {
	var err error
	if t.ID == "" {
		err = multierr.Append(err, errMissingID)
	}
	if !t.Priority.Valid() {
		err = multierr.Append(err, fmt.Errorf("unknown priority %q", t.Priority))
	}
	err = multierr.Append(err, checkDate(t.Date))
	if t.TimeEstimate < 0 {
		err = multierr.Append(err, errors.New("negative time estimate"))
	}
	return err
}

// Validate reports what keeps h from being stored. Completed dates must be
// valid and distinct.
func (h Habit) Validate() error {
	var err error
	if h.ID == "" {
		err = multierr.Append(err, errMissingID)
	}
	if h.Frequency.Kind == FrequencyWeekly && h.Frequency.Times < 0 {
		err = multierr.Append(err, errors.New("negative weekly times"))
	}
	dates := make(map[string]struct{}, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		if !timeutil.ValidDate(d) {
			err = multierr.Append(err, fmt.Errorf("invalid completed date %q", d))
		}
		if _, dup := dates[d]; dup {
			err = multierr.Append(err, fmt.Errorf("duplicate completed date %q", d))
		}
		dates[d] = struct{}{}
	}
	return err
}

// Validate reports what keeps e from being stored.
func (e Event) Validate() error {
	var err error
	if e.ID == "" {
		err = multierr.Append(err, errMissingID)
	}
	return multierr.Append(err, checkDate(e.Date))
}

// Validate reports what keeps t from being stored.
func (t Transaction) Validate() error {
	var err error
	if t.ID == "" {
		err = multierr.Append(err, errMissingID)
	}
	if !t.Type.Valid() {
		err = multierr.Append(err, fmt.Errorf("unknown type %q", t.Type))
	}
	if t.Amount.IsNegative() {
		err = multierr.Append(err, errors.New("negative amount"))
	}
	return multierr.Append(err, checkDate(t.Date))
}

// Validate checks the structural invariants a decoded state must hold before
// it is trusted. All problems are reported together.
func (s *AppState) Validate() error {
	var err error

	seen := make(map[string]struct{}, len(s.Tasks))
	for i, t := range s.Tasks {
		err = multierr.Append(err, at("tasks", i, t.Validate()))
		err = multierr.Append(err, checkDuplicate("tasks", i, t.ID, seen))
	}

	seen = make(map[string]struct{}, len(s.Habits))
	for i, h := range s.Habits {
		err = multierr.Append(err, at("habits", i, h.Validate()))
		err = multierr.Append(err, checkDuplicate("habits", i, h.ID, seen))
	}

	seen = make(map[string]struct{}, len(s.Routines))
	for i, r := range s.Routines {
		err = multierr.Append(err, checkID("routines", i, r.ID, seen))
	}

	seen = make(map[string]struct{}, len(s.Events))
	for i, e := range s.Events {
		err = multierr.Append(err, at("events", i, e.Validate()))
		err = multierr.Append(err, checkDuplicate("events", i, e.ID, seen))
	}

	for date, tasks := range s.DayTasks {
		if !timeutil.ValidDate(date) {
			err = multierr.Append(err, fmt.Errorf("dayTasks: invalid date key %q", date))
		}
		seen = make(map[string]struct{}, len(tasks))
		for i, t := range tasks {
			err = multierr.Append(err, checkID("dayTasks."+date, i, t.ID, seen))
		}
	}

	seen = make(map[string]struct{}, len(s.Wallets))
	for i, w := range s.Wallets {
		err = multierr.Append(err, checkID("wallets", i, w.ID, seen))
	}

	seen = make(map[string]struct{}, len(s.Transactions))
	for i, t := range s.Transactions {
		err = multierr.Append(err, at("transactions", i, t.Validate()))
		err = multierr.Append(err, checkDuplicate("transactions", i, t.ID, seen))
	}

	seen = make(map[string]struct{}, len(s.Ideas))
	for i, idea := range s.Ideas {
		err = multierr.Append(err, checkID("ideas", i, idea.ID, seen))
	}
	seen = make(map[string]struct{}, len(s.Documents))
	for i, d := range s.Documents {
		err = multierr.Append(err, checkID("documents", i, d.ID, seen))
	}
	seen = make(map[string]struct{}, len(s.FocusSessions))
	for i, f := range s.FocusSessions {
		err = multierr.Append(err, checkID("focusSessions", i, f.ID, seen))
	}

	if !s.Settings.Theme.Valid() {
		err = multierr.Append(err, fmt.Errorf("settings: unknown theme %q", s.Settings.Theme))
	}
	return err
}

var errMissingID = errors.New("missing id")

// at prefixes every error in err with its position in collection.
func at(collection string, i int, err error) error {
	var out error
	for _, e := range multierr.Errors(err) {
		out = multierr.Append(out, fmt.Errorf("%s[%d]: %w", collection, i, e))
	}
	return out
}

func checkID(collection string, i int, id string, seen map[string]struct{}) error {
	if id == "" {
		return at(collection, i, errMissingID)
	}
	return checkDuplicate(collection, i, id, seen)
}

// checkDuplicate ignores empty ids; those are reported as missing.
func checkDuplicate(collection string, i int, id string, seen map[string]struct{}) error {
	if id == "" {
		return nil
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("%s[%d]: duplicate id %q", collection, i, id)
	}
	seen[id] = struct{}{}
	return nil
}

func checkDate(date string) error {
	if date == "" || timeutil.ValidDate(date) {
		return nil
	}
	return fmt.Errorf("invalid date %q", date)
}
