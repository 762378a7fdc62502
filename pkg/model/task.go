package model

// Priority marks how urgent a task is.
type Priority string

const (
	PriorityNormal    Priority = "normal"
	PriorityImportant Priority = "important"
)

// Valid reports whether p is a known priority. The empty value is accepted
// and treated as normal.
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityNormal, PriorityImportant:
		return true
	}
	return false
}

// Task is a to-do item. A task with ParentID set is a subtask of the task with
// that id and never appears in top-level groupings.
type Task struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Completed    bool     `json:"completed"`
	CompletedAt  string   `json:"completedAt,omitempty"`
	Date         string   `json:"date,omitempty"`
	Priority     Priority `json:"priority"`
	ParentID     string   `json:"parentId,omitempty"`
	TimeEstimate int      `json:"timeEstimate,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
}

// IsSubtask reports whether the task belongs to a parent.
func (t Task) IsSubtask() bool {
	return t.ParentID != ""
}

// DayTask is an ad-hoc item scoped to a single calendar date.
type DayTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
