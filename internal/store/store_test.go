package store

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kikehq/internal/storage"
)

type fixture struct {
	mem   *storage.Memory
	store *Store
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		mem: storage.NewMemory(),
		now: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
	}
	f.store = f.open()
	return f
}

func (f *fixture) open() *Store {
	seq := 0
	return New(f.mem,
		WithClock(func() time.Time { return f.now }),
		WithIDs(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
}

// persisted decodes what is currently under StorageKey.
func (f *fixture) persisted(t *testing.T) State {
	t.Helper()
	raw, ok, err := f.mem.Get(StorageKey)
	require.NoError(t, err)
	require.True(t, ok, "nothing persisted")
	var st State
	require.NoError(t, json.Unmarshal([]byte(raw), &st))
	return st
}

func TestNew_FirstRunSeedsInitialState(t *testing.T) {
	f := newFixture(t)
	st := f.store.Snapshot()

	require.Len(t, st.Tasks, 1)
	assert.Equal(t, "Prospect 15 leads", st.Tasks[0].Title)
	assert.Equal(t, "Agency", st.Tasks[0].Tag)
	require.Len(t, st.Habits, 2)
	assert.True(t, st.Habits[0].Active)
	assert.Empty(t, st.Progress)
	assert.Equal(t, ThemePorscheDark, st.Theme)
	assert.Equal(t, DefaultProfileName, st.Profile.Name)
}

func TestNew_UnparsableFallsBackToInitial(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(StorageKey, "]]] not json"))

	var s *Store
	require.NotPanics(t, func() { s = New(mem) })
	assert.Len(t, s.Tasks(), 1)
	assert.Equal(t, ThemePorscheDark, s.Theme())
}

func TestNew_PartialStateKeepsDefaults(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(StorageKey, `{"theme":"oldmoney-light","tasks":[]}`))

	s := New(mem)
	assert.Equal(t, ThemeOldMoneyLight, s.Theme())
	assert.Empty(t, s.Tasks())
	assert.Len(t, s.Habits(), 2)
	assert.Equal(t, DefaultProfileName, s.Profile().Name)
}

func TestAddTask(t *testing.T) {
	f := newFixture(t)
	f.store.ResetAll()

	f.store.AddTask("  Call supplier ", "Ops")
	f.store.AddTask("Send invoice", "")

	tasks := f.store.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Send invoice", tasks[0].Title, "newest first")
	assert.Equal(t, "Call supplier", tasks[1].Title)
	assert.Equal(t, "Ops", tasks[1].Tag)
	assert.Equal(t, f.now, tasks[1].CreatedAt)
	assert.False(t, tasks[1].Done)
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)

	log := f.store.Progress(0)
	require.Len(t, log, 2)
	assert.Equal(t, EventTask, log[0].Type)
	assert.Equal(t, "Created: Send invoice", log[0].Detail)
}

func TestAddTask_BlankIsNoop(t *testing.T) {
	f := newFixture(t)
	f.store.ResetAll()
	before := f.store.Snapshot()

	f.store.AddTask("", "x")
	f.store.AddTask("   ", "x")

	assert.Equal(t, before, f.store.Snapshot())
	assert.Empty(t, f.store.Tasks())
	assert.Empty(t, f.store.Progress(0))
}

func TestToggleTask(t *testing.T) {
	f := newFixture(t)
	f.store.ResetAll()
	f.store.AddTask("Write report", "")
	id := f.store.Tasks()[0].ID

	f.store.ToggleTask(id)
	task, ok := f.store.Task(id)
	require.True(t, ok)
	assert.True(t, task.Done)
	assert.Equal(t, "Completed: Write report", f.store.Progress(1)[0].Detail)

	f.store.ToggleTask(id)
	task, _ = f.store.Task(id)
	assert.False(t, task.Done)
	assert.Equal(t, "Reopened: Write report", f.store.Progress(1)[0].Detail)

	f.store.ToggleTask("nope")
	assert.Len(t, f.store.Progress(0), 3)
}

func TestRemoveTask(t *testing.T) {
	f := newFixture(t)
	f.store.ResetAll()
	f.store.AddTask("a", "")
	f.store.AddTask("b", "")
	id := f.store.Tasks()[1].ID

	f.store.RemoveTask(id)
	tasks := f.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].Title)
	assert.Equal(t, "Deleted: a", f.store.Progress(1)[0].Detail)

	f.store.RemoveTask(id)
	assert.Len(t, f.store.Progress(0), 3)
}

func TestTaskOperations_RoundTripThroughStorage(t *testing.T) {
	f := newFixture(t)
	f.store.AddTask("one", "x")
	f.store.AddTask("two", "")
	f.store.AddTask("three", "y")
	tasks := f.store.Tasks()
	f.store.ToggleTask(tasks[0].ID)
	f.store.RemoveTask(tasks[1].ID)
	f.store.ToggleTask(tasks[2].ID)
	f.store.ToggleTask(tasks[2].ID)

	assert.Equal(t, f.store.Tasks(), f.persisted(t).Tasks)

	reloaded := f.open()
	assert.Equal(t, f.store.Snapshot(), reloaded.Snapshot())
}

func TestHabits(t *testing.T) {
	f := newFixture(t)
	f.store.ResetAll()

	f.store.AddHabit("  Read  ")
	f.store.AddHabit(" ")
	habits := f.store.Habits()
	require.Len(t, habits, 1)
	assert.Equal(t, "Read", habits[0].Label)
	assert.True(t, habits[0].Active)

	f.store.ToggleHabitActive(habits[0].ID)
	assert.False(t, f.store.Habits()[0].Active)
	f.store.ToggleHabitActive("missing")

	assert.Empty(t, f.store.Progress(0), "habit create/toggle is not logged")
}

func TestCheckHabitToday_Upserts(t *testing.T) {
	f := newFixture(t)
	f.store.ResetAll()
	f.store.AddHabit("Gym")
	h := f.store.Habits()[0]

	f.store.CheckHabitToday(h.ID, true)
	f.store.CheckHabitToday(h.ID, true)

	checks := f.store.HabitChecks()
	require.Len(t, checks, 1)
	assert.Equal(t, HabitCheck{ID: checks[0].ID, HabitID: h.ID, Date: "2025-10-01", Value: true}, checks[0])

	f.store.CheckHabitToday(h.ID, false)
	checks = f.store.HabitChecks()
	require.Len(t, checks, 1)
	assert.False(t, checks[0].Value)

	log := f.store.Progress(0)
	require.Len(t, log, 3, "every check is logged")
	assert.Equal(t, EventHabit, log[0].Type)
	assert.Equal(t, "Check ✖ on Gym", log[0].Detail)
	assert.Equal(t, "Check ✔ on Gym", log[1].Detail)
	assert.Equal(t, map[string]any{"habitId": h.ID, "date": "2025-10-01"}, log[0].Meta)

	f.now = f.now.Add(24 * time.Hour)
	f.store.CheckHabitToday(h.ID, true)
	assert.Len(t, f.store.HabitChecks(), 2)
	assert.Equal(t, map[string]bool{h.ID: true}, f.store.HabitChecksOn("2025-10-02"))
}

func TestCheckHabitToday_UnknownHabitUsesID(t *testing.T) {
	f := newFixture(t)
	f.store.CheckHabitToday("ghost", true)
	assert.Equal(t, "Check ✔ on ghost", f.store.Progress(1)[0].Detail)

	f.store.CheckHabitToday("  ", true)
	assert.Len(t, f.store.Progress(0), 1)
}

func TestBooks(t *testing.T) {
	f := newFixture(t)
	f.store.ResetAll()

	f.store.AddBook(BookInput{Title: "Dune", Author: "Herbert", StartDate: "2025-10-01"})
	f.store.AddBook(BookInput{Title: " "})
	f.store.AddBook(BookInput{Title: "Bad", Status: "abandoned"})

	books := f.store.Books()
	require.Len(t, books, 1)
	dune := books[0]
	assert.Equal(t, BookInProgress, dune.Status)
	assert.Equal(t, "Added: Dune", f.store.Progress(1)[0].Detail)

	done := BookCompleted
	end := "2025-10-03"
	f.store.UpdateBook(dune.ID, BookPatch{Status: &done, EndDate: &end})
	dune, _ = f.store.Book(dune.ID)
	assert.Equal(t, BookCompleted, dune.Status)
	assert.Equal(t, "2025-10-03", dune.EndDate)
	assert.Equal(t, "Herbert", dune.Author, "absent fields untouched")
	assert.Equal(t, "Updated: Dune", f.store.Progress(1)[0].Detail)
	assert.Len(t, f.store.BooksByStatus(BookCompleted), 1)
	assert.Empty(t, f.store.BooksByStatus(BookInProgress))

	logged := len(f.store.Progress(0))
	bad := BookStatus("lost")
	f.store.UpdateBook(dune.ID, BookPatch{Status: &bad})
	f.store.UpdateBook("missing", BookPatch{EndDate: &end})
	assert.Len(t, f.store.Progress(0), logged)

	f.store.RemoveBook(dune.ID)
	assert.Empty(t, f.store.Books())
	assert.Equal(t, "Deleted: Dune", f.store.Progress(1)[0].Detail)
	f.store.RemoveBook(dune.ID)
	assert.Len(t, f.store.Progress(0), logged+1)
}

func TestProgressLogIsCapped(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < MaxProgress+25; i++ {
		f.store.Log(EventInput{Type: EventSystem, Detail: fmt.Sprintf("event %d", i)})
	}

	log := f.store.Progress(0)
	require.Len(t, log, MaxProgress)
	assert.Equal(t, fmt.Sprintf("event %d", MaxProgress+24), log[0].Detail)
	assert.Equal(t, "event 25", log[MaxProgress-1].Detail, "oldest 25 evicted")
	assert.Len(t, f.persisted(t).Progress, MaxProgress)

	assert.Len(t, f.store.Progress(10), 10)
}

func TestLog_DefaultsToSystem(t *testing.T) {
	f := newFixture(t)
	f.store.Log(EventInput{Detail: "booted"})
	ev := f.store.Progress(1)[0]
	assert.Equal(t, EventSystem, ev.Type)
	assert.Equal(t, f.now, ev.Timestamp)
}

func TestSettings(t *testing.T) {
	f := newFixture(t)

	f.store.SetTheme(ThemeOldMoneyLight)
	assert.Equal(t, ThemeOldMoneyLight, f.store.Theme())
	f.store.SetTheme("neon")
	assert.Equal(t, ThemeOldMoneyLight, f.store.Theme())

	avatar := "https://example.com/a.png"
	f.store.SetProfile(ProfilePatch{AvatarURL: &avatar})
	assert.Equal(t, Profile{Name: DefaultProfileName, AvatarURL: avatar}, f.store.Profile())

	blank := "  "
	f.store.SetProfile(ProfilePatch{Name: &blank})
	assert.Equal(t, DefaultProfileName, f.store.Profile().Name)

	name := "Kike"
	f.store.SetProfile(ProfilePatch{Name: &name})
	assert.Equal(t, "Kike", f.persisted(t).Profile.Name)
	assert.Equal(t, ThemeOldMoneyLight, f.persisted(t).Theme)
}

func TestResetAll(t *testing.T) {
	f := newFixture(t)
	f.store.AddTask("x", "")
	f.store.AddBook(BookInput{Title: "y"})
	f.store.CheckHabitToday(f.store.Habits()[0].ID, true)
	f.store.SetTheme(ThemeOldMoneyLight)
	name := "Someone"
	f.store.SetProfile(ProfilePatch{Name: &name})

	f.store.ResetAll()

	st := f.store.Snapshot()
	assert.Empty(t, st.Tasks)
	assert.Empty(t, st.Habits)
	assert.Empty(t, st.HabitChecks)
	assert.Empty(t, st.Books)
	assert.Empty(t, st.Progress)
	assert.Equal(t, ThemePorscheDark, st.Theme)
	assert.Equal(t, Profile{Name: "Kike Silla"}, st.Profile)

	reloaded := f.open()
	assert.Empty(t, reloaded.Tasks())
	assert.Empty(t, reloaded.Habits(), "reset state is persisted, not reseeded")
}

func TestPersistFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	var failures int
	s := New(f.mem, WithWriteHook(func(err error) {
		if err != nil {
			failures++
		}
	}))
	f.mem.FailWrites = true

	require.NotPanics(t, func() { s.AddTask("unsaved", "") })
	assert.Equal(t, 1, failures)
	assert.Equal(t, "unsaved", s.Tasks()[0].Title)
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t)
	var seen []int
	cancel := f.store.Subscribe(func(st State) { seen = append(seen, len(st.Tasks)) })

	f.store.AddTask("a", "")
	f.store.AddTask("", "")
	f.store.ToggleTask("missing")
	f.store.AddTask("b", "")
	cancel()
	f.store.AddTask("c", "")

	assert.Equal(t, []int{2, 3}, seen)
}

func TestSnapshotIsDetached(t *testing.T) {
	f := newFixture(t)
	snap := f.store.Snapshot()
	snap.Tasks[0].Title = "mutated"
	assert.Equal(t, "Prospect 15 leads", f.store.Tasks()[0].Title)
}

func TestReads_EmptyListsAreNotNil(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.mem.Set(StorageKey, `{"tasks":null,"habits":null,"habitChecks":null,"books":null,"progress":null}`))
	s := f.open()

	lists := map[string]any{
		"tasks":       s.Tasks(),
		"habits":      s.Habits(),
		"habitChecks": s.HabitChecks(),
		"books":       s.Books(),
		"progress":    s.Progress(0),
		"snapshot":    s.Snapshot().Tasks,
	}
	for name, v := range lists {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(raw), name)
	}
}
