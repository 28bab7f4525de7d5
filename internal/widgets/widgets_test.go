package widgets

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kikehq/internal/storage"
)

func testOptions(now *time.Time) Options {
	seq := 0
	return Options{
		Now: func() time.Time { return *now },
		NewID: func() string {
			seq++
			return fmt.Sprintf("w-%d", seq)
		},
		Rand: func(int) int { return 2 },
	}
}

func TestOpen_EmptyStorageGivesDefaults(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	set := Open(storage.NewMemory(), testOptions(&now))

	assert.Empty(t, set.Planner.All())
	assert.Empty(t, set.Goals.List())
	assert.Equal(t, "", set.Notes.Text())
	assert.Empty(t, set.Finances.Entries())
	assert.Empty(t, set.DailyTasks.List())
	assert.Len(t, set.Milestones.List(), 4)
	assert.Len(t, set.ProjectTasks.List(), 4)
	assert.Equal(t, HabitTemplate, set.Personal.Habits("2025-10-01"))
}

func TestOpen_UnparsableValuesGiveDefaults(t *testing.T) {
	mem := storage.NewMemory()
	for _, k := range []string{KeyPlanner, KeyGoals, KeyFinances, KeyPersonal, KeyMilestones, KeyProjectTasks, KeyDailyTasks} {
		require.NoError(t, mem.Set(k, "{{{"))
	}
	now := time.Now()

	var set *Set
	require.NotPanics(t, func() { set = Open(mem, testOptions(&now)) })
	assert.Empty(t, set.Planner.All())
	assert.Empty(t, set.Goals.List())
	assert.Len(t, set.Milestones.List(), 4)
}

func TestPlanner(t *testing.T) {
	now := time.Now()
	mem := storage.NewMemory()
	p := NewPlanner(mem, testOptions(&now))

	p.Add(PlannerEvent{Day: 2, Title: "Gym", Time: "18:30"})
	p.Add(PlannerEvent{Day: 2, Title: "Standup", Time: "09:00", Color: "sky"})
	p.Add(PlannerEvent{Day: 2, Title: "Call", Time: "9am"})
	p.Add(PlannerEvent{Day: 7, Title: "Nope"})
	p.Add(PlannerEvent{Day: 1, Title: "  "})

	wed := p.Day(2)
	require.Len(t, wed, 3)
	assert.Equal(t, []string{"08:00", "09:00", "18:30"}, []string{wed[0].Time, wed[1].Time, wed[2].Time})
	assert.Equal(t, "Call", wed[0].Title)
	assert.Equal(t, "pink", wed[2].Color, "palette pick")
	assert.Equal(t, "sky", wed[1].Color)

	week := p.Week()
	assert.Len(t, week, 7)
	assert.Len(t, week[2], 3)
	assert.Empty(t, week[0])

	p.Remove(wed[1].ID)
	assert.Len(t, NewPlanner(mem, testOptions(&now)).Day(2), 2, "removal persisted")
}

func TestGoals(t *testing.T) {
	now := time.Now()
	mem := storage.NewMemory()
	g := NewGoals(mem, testOptions(&now))

	g.Add("Run 10k")
	g.Add(" ")
	g.Add("Read 20 books")
	g.Toggle(0)
	g.Toggle(9)

	assert.Equal(t, []Goal{{Text: "Run 10k", Done: true}, {Text: "Read 20 books"}}, g.List())

	g.Remove(0)
	assert.Equal(t, []Goal{{Text: "Read 20 books"}}, NewGoals(mem, testOptions(&now)).List())
}

func TestNotes_StoredAsPlainText(t *testing.T) {
	now := time.Now()
	mem := storage.NewMemory()
	n := NewNotes(mem, testOptions(&now))

	n.SetText("ideas:\n- \"quoted\"")
	raw, ok, err := mem.Get(KeyNotes)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ideas:\n- \"quoted\"", raw)
	assert.Equal(t, raw, NewNotes(mem, testOptions(&now)).Text())

	n.Clear()
	assert.Equal(t, "", n.Text())
	_, ok, err = mem.Get(KeyNotes)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFinances(t *testing.T) {
	now := time.Now()
	mem := storage.NewMemory()
	f := NewFinances(mem, testOptions(&now))

	f.Add(Income, "Salary", "2500.50", Card)
	f.Add(Expense, "Groceries", " 120 ", Cash)
	f.Add("", "Refund", "30", "")
	f.Add(Expense, "", "10", Cash)
	f.Add(Expense, "Coffee", "abc", Cash)
	f.Add(Expense, "Coffee", "NaN", Cash)
	f.Add(Expense, "Coffee", "Inf", Cash)
	f.Add("gift", "Coffee", "3", Cash)
	f.Add(Expense, "Coffee", "3", "crypto")

	entries := f.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, FinanceEntry{Kind: Income, Description: "Refund", Amount: 30, Method: Card}, entries[0])
	assert.Equal(t, "Salary", entries[2].Description)

	totals := f.Totals()
	assert.InDelta(t, 2530.50, totals.Income, 1e-9)
	assert.InDelta(t, 120.0, totals.Expense, 1e-9)
	assert.InDelta(t, 2410.50, totals.Balance, 1e-9)

	f.Remove(1)
	assert.InDelta(t, 0.0, NewFinances(mem, testOptions(&now)).Totals().Expense, 1e-9)
}

func TestPersonal_Habits(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	mem := storage.NewMemory()
	p := NewPersonal(mem, testOptions(&now))

	p.ToggleHabit("2025-10-01", "h2")
	p.ToggleHabit("2025-10-01", "missing")

	hs := p.Habits("2025-10-01")
	assert.True(t, hs[1].Done)
	assert.False(t, hs[0].Done)
	assert.False(t, HabitTemplate[1].Done, "template untouched")
	assert.Equal(t, HabitTemplate, p.Habits("2025-10-02"))

	for _, id := range []string{"h1", "h3"} {
		p.ToggleHabit("2025-10-01", id)
	}
	assert.True(t, p.FullDay("2025-10-01"))
	assert.False(t, p.FullDay("2025-10-02"))

	week := p.Week(now)
	assert.Len(t, week, 7)
	assert.Equal(t, 3, week["2025-10-01"])
	assert.Equal(t, 0, week["2025-09-29"])

	reloaded := NewPersonal(mem, testOptions(&now))
	assert.Equal(t, map[string]int{"2025-10-01": 3}, reloaded.DoneCounts())
}

func TestPersonal_Journal(t *testing.T) {
	now := time.Now()
	p := NewPersonal(storage.NewMemory(), testOptions(&now))
	date := "2025-10-01"

	q, ok := p.NextQuestion(date)
	require.True(t, ok)
	assert.Equal(t, JournalQuestions[0], q)

	p.AnswerJournal(date, "  ")
	assert.Empty(t, p.Journal(date))

	for i := 0; i < len(JournalQuestions)+2; i++ {
		p.AnswerJournal(date, fmt.Sprintf(" answer %d ", i))
	}
	answers := p.Journal(date)
	require.Len(t, answers, len(JournalQuestions))
	assert.Equal(t, "answer 0", answers[0])
	assert.True(t, p.JournalComplete(date))
	assert.False(t, p.JournalComplete("2025-10-02"))
}

func TestDailyTasks_ExpireAtMidnight(t *testing.T) {
	now := time.Date(2025, 10, 1, 20, 0, 0, 0, time.UTC)
	mem := storage.NewMemory()
	d := NewDailyTasks(mem, testOptions(&now))

	d.Add("Buy milk")
	d.Add("")
	d.Add("Call mom")
	d.Toggle(1)
	d.Toggle(5)
	assert.Equal(t, []DailyTask{{Text: "Buy milk"}, {Text: "Call mom", Done: true}}, d.List())
	assert.Len(t, NewDailyTasks(mem, testOptions(&now)).List(), 2)

	now = now.Add(6 * time.Hour)
	assert.Empty(t, d.List())
	assert.Empty(t, NewDailyTasks(mem, testOptions(&now)).List())
	for _, k := range []string{KeyDailyTasks, KeyDailyDate} {
		_, ok, err := mem.Get(k)
		require.NoError(t, err)
		assert.False(t, ok, "stale %s dropped", k)
	}

	d.Add("Fresh")
	assert.Equal(t, []DailyTask{{Text: "Fresh"}}, d.List())
}

func TestMilestones(t *testing.T) {
	now := time.Now()
	mem := storage.NewMemory()
	m := NewMilestones(mem, testOptions(&now))

	assert.Equal(t, 50, m.Completion())
	next, ok := m.Next()
	require.True(t, ok)
	assert.Equal(t, "3", next.ID)

	m.SetStatus("3", MilestoneDone)
	m.SetStatus("4", "bogus")
	assert.Equal(t, 75, m.Completion())
	next, _ = m.Next()
	assert.Equal(t, "4", next.ID)

	m.SetStatus("4", MilestoneDone)
	_, ok = NewMilestones(mem, testOptions(&now)).Next()
	assert.False(t, ok)
	assert.Equal(t, 100, NewMilestones(mem, testOptions(&now)).Completion())

	require.NoError(t, mem.Set(KeyMilestones, "[]"))
	assert.Equal(t, 0, NewMilestones(mem, testOptions(&now)).Completion())
}

func TestProjectTasks(t *testing.T) {
	now := time.Now()
	p := NewProjectTasks(storage.NewMemory(), testOptions(&now))

	p.Add("Ship it", "Release")
	p.Add("", "x")
	list := p.List()
	require.Len(t, list, 5)
	assert.Equal(t, ProjectTask{ID: "w-1", Title: "Ship it", Tag: "Release"}, list[4])

	p.Toggle("t1")
	assert.False(t, p.List()[0].Done)
}

func TestQuote(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Quotes[2], Quote(day))
}

func TestParseWeekday(t *testing.T) {
	tests := map[string]struct {
		day int
		ok  bool
	}{
		"1":        {0, true},
		"7":        {6, true},
		"wed":      {2, true},
		" Sunday ": {6, true},
		"FRI":      {4, true},
		"8":        {0, false},
		"mo":       {0, false},
		"weekend":  {0, false},
		"":         {0, false},
	}
	for in, want := range tests {
		day, ok := ParseWeekday(in)
		assert.Equal(t, want.ok, ok, in)
		if want.ok {
			assert.Equal(t, want.day, day, in)
		}
	}
}
