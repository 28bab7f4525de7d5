package store

import "time"

type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Tag       string    `json:"tag,omitempty"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
}

type Habit struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// HabitCheck is unique per (HabitID, Date).
type HabitCheck struct {
	ID      string `json:"id"`
	HabitID string `json:"habitId"`
	Date    string `json:"date"` // YYYY-MM-DD
	Value   bool   `json:"value"`
}

type BookStatus string

const (
	BookInProgress BookStatus = "in-progress"
	BookCompleted  BookStatus = "completed"
)

func (s BookStatus) Valid() bool {
	return s == BookInProgress || s == BookCompleted
}

type Book struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author,omitempty"`
	StartDate string     `json:"startDate,omitempty"`
	EndDate   string     `json:"endDate,omitempty"`
	Status    BookStatus `json:"status"`
	Notes     string     `json:"notes,omitempty"`
}

// BookInput carries the fields of a new book. An empty Status means
// in-progress.
type BookInput struct {
	Title     string
	Author    string
	StartDate string
	EndDate   string
	Status    BookStatus
	Notes     string
}

// BookPatch applies only the non-nil fields.
type BookPatch struct {
	Title     *string
	Author    *string
	StartDate *string
	EndDate   *string
	Status    *BookStatus
	Notes     *string
}

type EventType string

const (
	EventTask    EventType = "Task"
	EventHabit   EventType = "Habit"
	EventReading EventType = "Reading"
	EventSystem  EventType = "System"
)

type ProgressEvent struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Detail    string         `json:"detail"`
	Meta      map[string]any `json:"meta,omitempty"`
}

type EventInput struct {
	Type   EventType
	Detail string
	Meta   map[string]any
}

type Theme string

const (
	ThemePorscheDark   Theme = "porsche-dark"
	ThemeOldMoneyLight Theme = "oldmoney-light"
)

var Themes = []Theme{ThemePorscheDark, ThemeOldMoneyLight}

func (t Theme) Valid() bool {
	for _, v := range Themes {
		if v == t {
			return true
		}
	}
	return false
}

type Profile struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type ProfilePatch struct {
	Name      *string
	AvatarURL *string
}

const DefaultProfileName = "Kike Silla"

// State is everything persisted under StorageKey.
type State struct {
	Tasks       []Task          `json:"tasks"`
	Habits      []Habit         `json:"habits"`
	HabitChecks []HabitCheck    `json:"habitChecks"`
	Books       []Book          `json:"books"`
	Progress    []ProgressEvent `json:"progress"`
	Theme       Theme           `json:"theme"`
	Profile     Profile         `json:"profile"`
}

func (s State) clone() State {
	return State{
		Tasks:       cloneSlice(s.Tasks),
		Habits:      cloneSlice(s.Habits),
		HabitChecks: cloneSlice(s.HabitChecks),
		Books:       cloneSlice(s.Books),
		Progress:    cloneSlice(s.Progress),
		Theme:       s.Theme,
		Profile:     s.Profile,
	}
}

// resetState is what ResetAll leaves behind.
func resetState() State {
	return State{
		Tasks:       []Task{},
		Habits:      []Habit{},
		HabitChecks: []HabitCheck{},
		Books:       []Book{},
		Progress:    []ProgressEvent{},
		Theme:       ThemePorscheDark,
		Profile:     Profile{Name: DefaultProfileName},
	}
}

// cloneSlice copies s into a non-nil slice so empty lists encode as [].
func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
