// Package glyph holds the symbols the CLI prints in front of items.
package glyph

// Glyph is one legend entry.
type Glyph struct {
	Symbol  string
	Meaning string
	// Marker glyphs decorate an item instead of leading it.
	Marker bool
}

func (g Glyph) String() string {
	return g.Symbol
}

// Bullet leads a printed item.
type Bullet int

// Marker decorates a printed item.
type Marker int

const (
	Task Bullet = iota
	Completed
	Event
	EventDone
	Idea
	HabitDone
	HabitDue
	HabitRest
	Routine
	RoutineDone
)

const (
	Priority Marker = iota
	Overdue
	Subtask
	None
)

var bullets = []Glyph{
	Task:        {Symbol: "●", Meaning: "task"},
	Completed:   {Symbol: "✘", Meaning: "task completed"},
	Event:       {Symbol: "○", Meaning: "event"},
	EventDone:   {Symbol: "◉", Meaning: "event attended"},
	Idea:        {Symbol: "⁃", Meaning: "idea"},
	HabitDone:   {Symbol: "■", Meaning: "habit done today"},
	HabitDue:    {Symbol: "□", Meaning: "habit due today"},
	HabitRest:   {Symbol: "·", Meaning: "habit not due today"},
	Routine:     {Symbol: "◇", Meaning: "routine"},
	RoutineDone: {Symbol: "◆", Meaning: "routine done"},
}

var markers = []Glyph{
	Priority: {Symbol: "✷", Meaning: "important", Marker: true},
	Overdue:  {Symbol: "‹", Meaning: "overdue, dated before this week", Marker: true},
	Subtask:  {Symbol: "└", Meaning: "subtask", Marker: true},
	None:     {Symbol: " ", Meaning: "none", Marker: true},
}

// DefaultGlyphs returns every bullet followed by every marker.
func DefaultGlyphs() []Glyph {
	g := make([]Glyph, 0, len(bullets)+len(markers))
	g = append(g, bullets...)
	return append(g, markers...)
}

func (b Bullet) Glyph() Glyph {
	return bullets[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}

func (m Marker) Glyph() Glyph {
	return markers[m]
}

func (m Marker) String() string {
	return m.Glyph().String()
}
