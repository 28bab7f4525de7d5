package store

import (
	"time"

	"kikehq/internal/utils"
)

// AddHabit appends an active habit. Habits are not logged.
func (s *Store) AddHabit(label string) {
	label = trimmed(label)
	if label == "" {
		return
	}
	s.apply("add_habit", func(cur State, _ time.Time) (State, bool) {
		cur.Habits = append(append([]Habit(nil), cur.Habits...), Habit{
			ID:     s.newID(),
			Label:  label,
			Active: true,
		})
		return cur, true
	})
}

func (s *Store) ToggleHabitActive(id string) {
	s.apply("toggle_habit", func(cur State, _ time.Time) (State, bool) {
		i := habitIndex(cur.Habits, id)
		if i < 0 {
			return cur, false
		}
		habits := append([]Habit(nil), cur.Habits...)
		habits[i].Active = !habits[i].Active
		cur.Habits = habits
		return cur, true
	})
}

// CheckHabitToday records value for habitID on today's UTC date,
// updating the existing record for that day if there is one. It is
// logged either way.
func (s *Store) CheckHabitToday(habitID string, value bool) {
	habitID = trimmed(habitID)
	if habitID == "" {
		return
	}

	s.apply("check_habit", func(cur State, now time.Time) (State, bool) {
		today := utils.DateKey(now)

		checks := append([]HabitCheck(nil), cur.HabitChecks...)
		found := false
		for i := range checks {
			if checks[i].HabitID == habitID && checks[i].Date == today {
				checks[i].Value = value
				found = true
			}
		}
		if !found {
			checks = append(checks, HabitCheck{
				ID:      s.newID(),
				HabitID: habitID,
				Date:    today,
				Value:   value,
			})
		}
		cur.HabitChecks = checks

		name := habitID
		if i := habitIndex(cur.Habits, habitID); i >= 0 {
			name = cur.Habits[i].Label
		}
		mark := "✖"
		if value {
			mark = "✔"
		}
		cur.Progress = s.appendEvent(cur.Progress, now, EventInput{
			Type:   EventHabit,
			Detail: "Check " + mark + " on " + name,
			Meta:   map[string]any{"habitId": habitID, "date": today},
		})
		return cur, true
	})
}

func (s *Store) Habits() []Habit {
	return cloneSlice(s.slot.Get().Habits)
}

func (s *Store) HabitChecks() []HabitCheck {
	return cloneSlice(s.slot.Get().HabitChecks)
}

// HabitChecksOn returns the checks recorded for date, keyed by habit id.
func (s *Store) HabitChecksOn(date string) map[string]bool {
	out := make(map[string]bool)
	for _, c := range s.slot.Get().HabitChecks {
		if c.Date == date {
			out[c.HabitID] = c.Value
		}
	}
	return out
}

func habitIndex(habits []Habit, id string) int {
	for i, h := range habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}
