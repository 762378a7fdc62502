package model

// Routine is a repeating checklist item with a per-date completion flag.
type Routine struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Time      string          `json:"time,omitempty"`
	Completed map[string]bool `json:"completed"`
}

// Event is a dated appointment.
type Event struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	Completed bool   `json:"completed"`
	Note      string `json:"note,omitempty"`
}

// Idea is an inbox note.
type Idea struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Document is a stored reference document.
type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Kind      string `json:"type,omitempty"`
	Content   string `json:"content,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// FocusSession records a finished focus interval.
type FocusSession struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId,omitempty"`
	Minutes   int    `json:"duration"`
	StartedAt string `json:"startedAt,omitempty"`
}

// Profile is the owner's profile.
type Profile struct {
	Name  string   `json:"name"`
	Bio   string   `json:"bio,omitempty"`
	Goals []string `json:"goals,omitempty"`
}

// Theme is the UI color theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Settings holds application preferences.
type Settings struct {
	Theme Theme `json:"theme"`
}
