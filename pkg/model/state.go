// Package model defines the entities held by the sdvig state and the
// aggregate AppState that owns all of them.
package model

// AppState is the single persisted aggregate. Every entity lives in exactly
// one of its collections. Values are treated as immutable snapshots: the
// reducer copies the struct and swaps only the collections it touches.
type AppState struct {
	Tasks         []Task               `json:"tasks"`
	Habits        []Habit              `json:"habits"`
	Routines      []Routine            `json:"routines"`
	Events        []Event              `json:"events"`
	DayTasks      map[string][]DayTask `json:"dayTasks"`
	Wallets       []Wallet             `json:"wallets"`
	Transactions  []Transaction        `json:"transactions"`
	Ideas         []Idea               `json:"ideas"`
	Documents     []Document           `json:"documents"`
	FocusSessions []FocusSession       `json:"focusSessions"`
	Categories    []string             `json:"categories"`
	Profile       Profile              `json:"profile"`
	Settings      Settings             `json:"settings"`
}

// DefaultCategories seeds the transaction category set.
var DefaultCategories = []string{
	"food",
	"transport",
	"housing",
	"health",
	"entertainment",
	"shopping",
	"salary",
	"other",
}

// InitialState returns a fresh default state. Each call allocates new
// collections so callers may not observe each other's edits.
func InitialState() *AppState {
	return &AppState{
		Tasks:         []Task{},
		Habits:        []Habit{},
		Routines:      []Routine{},
		Events:        []Event{},
		DayTasks:      map[string][]DayTask{},
		Wallets:       []Wallet{},
		Transactions:  []Transaction{},
		Ideas:         []Idea{},
		Documents:     []Document{},
		FocusSessions: []FocusSession{},
		Categories:    append([]string(nil), DefaultCategories...),
		Profile:       Profile{},
		Settings:      Settings{Theme: ThemeLight},
	}
}

// Normalize replaces nil collections with empty ones and fills a missing
// theme, so decoded states have the same shape as InitialState.
func (s *AppState) Normalize() {
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	for i := range s.Habits {
		if s.Habits[i].CompletedDates == nil {
			s.Habits[i].CompletedDates = []string{}
		}
	}
	if s.Routines == nil {
		s.Routines = []Routine{}
	}
	for i := range s.Routines {
		if s.Routines[i].Completed == nil {
			s.Routines[i].Completed = map[string]bool{}
		}
	}
	if s.Events == nil {
		s.Events = []Event{}
	}
	if s.DayTasks == nil {
		s.DayTasks = map[string][]DayTask{}
	}
	if s.Wallets == nil {
		s.Wallets = []Wallet{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Ideas == nil {
		s.Ideas = []Idea{}
	}
	if s.Documents == nil {
		s.Documents = []Document{}
	}
	if s.FocusSessions == nil {
		s.FocusSessions = []FocusSession{}
	}
	if s.Categories == nil {
		s.Categories = []string{}
	}
	if s.Settings.Theme == "" {
		s.Settings.Theme = ThemeLight
	}
}

// TaskByID returns the task with the given id.
func (s *AppState) TaskByID(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// HabitByID returns the habit with the given id.
func (s *AppState) HabitByID(id string) (Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// WalletByID returns the wallet with the given id.
func (s *AppState) WalletByID(id string) (Wallet, bool) {
	for _, w := range s.Wallets {
		if w.ID == id {
			return w, true
		}
	}
	return Wallet{}, false
}

// HasCategory reports whether name is already in the category set.
func (s *AppState) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}
