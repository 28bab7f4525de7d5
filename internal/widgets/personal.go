package widgets

import (
	"strings"
	"time"

	"kikehq/internal/persist"
	"kikehq/internal/storage"
	"kikehq/internal/utils"
)

type DayHabit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Done bool   `json:"done"`
}

type Journal struct {
	Answers []string `json:"answers"`
}

type PersonalState struct {
	HabitsByDate  map[string][]DayHabit `json:"habitsByDate"`
	JournalByDate map[string]Journal    `json:"journalByDate"`
}

// HabitTemplate is what every day starts with.
var HabitTemplate = []DayHabit{
	{ID: "h1", Name: "Read 10 min"},
	{ID: "h2", Name: "Train"},
	{ID: "h3", Name: "Meditate"},
}

// JournalQuestions are answered in order, one answer per question.
var JournalQuestions = []string{
	"What did I learn today?",
	"What am I grateful for today?",
	"What do I want to improve tomorrow?",
	"How did I feel overall?",
}

// Personal is the personal dashboard: per-day habit ticks and a daily
// journal.
type Personal struct {
	slot *persist.Slot[PersonalState]
}

func NewPersonal(st storage.Storage, o Options) *Personal {
	o = o.withDefaults()
	return &Personal{slot: slot(st, KeyPersonal, emptyPersonal, o)}
}

func emptyPersonal() PersonalState {
	return PersonalState{
		HabitsByDate:  map[string][]DayHabit{},
		JournalByDate: map[string]Journal{},
	}
}

// Habits returns date's habits, or a fresh copy of the template when
// nothing was ticked that day.
func (p *Personal) Habits(date string) []DayHabit {
	if hs, ok := p.slot.Get().HabitsByDate[date]; ok {
		return append([]DayHabit(nil), hs...)
	}
	return append([]DayHabit(nil), HabitTemplate...)
}

func (p *Personal) ToggleHabit(date, id string) {
	p.slot.Update(func(cur PersonalState) (PersonalState, bool) {
		day, ok := cur.HabitsByDate[date]
		if !ok {
			day = HabitTemplate
		}
		updated := append([]DayHabit(nil), day...)
		found := false
		for i := range updated {
			if updated[i].ID == id {
				updated[i].Done = !updated[i].Done
				found = true
			}
		}
		if !found {
			return cur, false
		}

		next := cur.copy()
		next.HabitsByDate[date] = updated
		return next, true
	})
}

// DoneCounts maps each recorded date to the number of habits ticked.
func (p *Personal) DoneCounts() map[string]int {
	out := make(map[string]int)
	for date, hs := range p.slot.Get().HabitsByDate {
		n := 0
		for _, h := range hs {
			if h.Done {
				n++
			}
		}
		out[date] = n
	}
	return out
}

// FullDay reports whether every template habit was ticked on date.
func (p *Personal) FullDay(date string) bool {
	return len(HabitTemplate) > 0 && p.DoneCounts()[date] >= len(HabitTemplate)
}

// Week returns the ticked count for Monday..Sunday of t's week.
func (p *Personal) Week(t time.Time) map[string]int {
	counts := p.DoneCounts()
	out := make(map[string]int, 7)
	for _, d := range utils.WeekDays(t) {
		out[d] = counts[d]
	}
	return out
}

// AnswerJournal stores the answer to the next unanswered question of
// date. Blank answers and answers past the last question are ignored.
func (p *Personal) AnswerJournal(date, answer string) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return
	}
	p.slot.Update(func(cur PersonalState) (PersonalState, bool) {
		answers := cur.JournalByDate[date].Answers
		if len(answers) >= len(JournalQuestions) {
			return cur, false
		}
		next := cur.copy()
		next.JournalByDate[date] = Journal{Answers: append(append([]string(nil), answers...), answer)}
		return next, true
	})
}

func (p *Personal) Journal(date string) []string {
	return cloneSlice(p.slot.Get().JournalByDate[date].Answers)
}

// NextQuestion returns the question awaiting an answer on date, or false
// once the journal is complete.
func (p *Personal) NextQuestion(date string) (string, bool) {
	n := len(p.slot.Get().JournalByDate[date].Answers)
	if n >= len(JournalQuestions) {
		return "", false
	}
	return JournalQuestions[n], true
}

func (p *Personal) JournalComplete(date string) bool {
	_, pending := p.NextQuestion(date)
	return !pending
}

// copy duplicates the top-level maps so a new state never aliases the
// current one.
func (s PersonalState) copy() PersonalState {
	out := emptyPersonal()
	for k, v := range s.HabitsByDate {
		out.HabitsByDate[k] = v
	}
	for k, v := range s.JournalByDate {
		out.JournalByDate[k] = v
	}
	return out
}
