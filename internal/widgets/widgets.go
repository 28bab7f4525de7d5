// Package widgets holds the small self-contained collections of the
// personal and business views. Each one lives under its own storage key,
// loads once and is rewritten whole on every change. None of them talks
// to the central store.
package widgets

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"kikehq/internal/persist"
	"kikehq/internal/storage"
)

const (
	KeyPlanner      = "planner-events"
	KeyGoals        = "goals"
	KeyNotes        = "notes"
	KeyFinances     = "finances"
	KeyPersonal     = "personal"
	KeyDailyTasks   = "personal-tasks"
	KeyDailyDate    = "personal-tasks-date"
	KeyMilestones   = "milestones"
	KeyProjectTasks = "project-tasks"
)

// Options are shared by every widget. Zero fields get real defaults.
type Options struct {
	Now    func() time.Time
	NewID  func() string
	Rand   func(n int) int
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Rand == nil {
		o.Rand = rand.IntN
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func slot[T any](st storage.Storage, key string, def func() T, o Options, extra ...persist.Option[T]) *persist.Slot[T] {
	opts := append([]persist.Option[T]{persist.WithLogger[T](o.Logger.With("widget", key))}, extra...)
	return persist.New(st, key, def, opts...)
}

// Set bundles every widget over one storage backend.
type Set struct {
	Planner      *Planner
	Goals        *Goals
	Notes        *Notes
	Finances     *Finances
	Personal     *Personal
	DailyTasks   *DailyTasks
	Milestones   *Milestones
	ProjectTasks *ProjectTasks
}

func Open(st storage.Storage, o Options) *Set {
	o = o.withDefaults()
	return &Set{
		Planner:      NewPlanner(st, o),
		Goals:        NewGoals(st, o),
		Notes:        NewNotes(st, o),
		Finances:     NewFinances(st, o),
		Personal:     NewPersonal(st, o),
		DailyTasks:   NewDailyTasks(st, o),
		Milestones:   NewMilestones(st, o),
		ProjectTasks: NewProjectTasks(st, o),
	}
}

// cloneSlice copies s into a non-nil slice so empty lists encode as [].
func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
