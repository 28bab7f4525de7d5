// Package store is the single source of truth for tasks, habits, habit
// checks, books, the progress log and the theme/profile settings.
//
// Every mutation replaces the in-memory State and rewrites the whole of it
// under StorageKey before subscribers are told. Invalid input is a silent
// no-op; nothing here returns an error.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"kikehq/internal/metrics"
	"kikehq/internal/persist"
	"kikehq/internal/storage"
)

const StorageKey = "kikehq-store"

type Store struct {
	slot   *persist.Slot[State]
	now    func() time.Time
	newID  func() string
	logger *slog.Logger

	writeHook func(error)

	subMu  sync.Mutex
	subs   map[int]func(State)
	nextID int
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithWriteHook observes the outcome of every storage write.
func WithWriteHook(fn func(error)) Option {
	return func(s *Store) { s.writeHook = fn }
}

// New loads the persisted state from st. A missing or unreadable value
// yields the first-run state; a partial one is merged over it.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
		subs:   make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}

	slotOpts := []persist.Option[State]{persist.WithLogger[State](s.logger)}
	if s.writeHook != nil {
		slotOpts = append(slotOpts, persist.WithWriteHook[State](s.writeHook))
	}
	s.slot = persist.New(st, StorageKey, s.initialState, slotOpts...)
	metrics.ProgressEvents.Set(float64(len(s.slot.Get().Progress)))
	return s
}

// initialState seeds a first run.
func (s *Store) initialState() State {
	st := resetState()
	st.Tasks = []Task{{
		ID:        s.newID(),
		Title:     "Prospect 15 leads",
		Tag:       "Agency",
		CreatedAt: s.now(),
	}}
	st.Habits = []Habit{
		{ID: s.newID(), Label: "Sleep 22:00-06:00", Active: true},
		{ID: s.newID(), Label: "Gym", Active: true},
	}
	return st
}

// Subscribe registers fn to receive the new state after every change.
// The returned func removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st.clone())
	}
}

// apply runs fn against the current state under the slot lock. fn reports
// whether anything changed; unchanged states are neither written nor
// broadcast.
func (s *Store) apply(op string, fn func(cur State, now time.Time) (State, bool)) {
	var next State
	var changed bool
	s.slot.Update(func(cur State) (State, bool) {
		next, changed = fn(cur, s.now())
		return next, changed
	})
	if !changed {
		return
	}

	metrics.Mutations.WithLabelValues(op).Inc()
	metrics.ProgressEvents.Set(float64(len(next.Progress)))
	s.logger.Debug("store mutation", "op", op)
	s.notify(next)
}

func (s *Store) Snapshot() State {
	return s.slot.Get().clone()
}

func (s *Store) Theme() Theme {
	return s.slot.Get().Theme
}

func (s *Store) Profile() Profile {
	return s.slot.Get().Profile
}

func (s *Store) SetTheme(t Theme) {
	if !t.Valid() {
		return
	}
	s.apply("set_theme", func(cur State, _ time.Time) (State, bool) {
		if cur.Theme == t {
			return cur, false
		}
		cur.Theme = t
		return cur, true
	})
}

// SetProfile merges the present fields. A blank name is ignored.
func (s *Store) SetProfile(p ProfilePatch) {
	s.apply("set_profile", func(cur State, _ time.Time) (State, bool) {
		next := cur.Profile
		if p.Name != nil && trimmed(*p.Name) != "" {
			next.Name = trimmed(*p.Name)
		}
		if p.AvatarURL != nil {
			next.AvatarURL = trimmed(*p.AvatarURL)
		}
		if next == cur.Profile {
			return cur, false
		}
		cur.Profile = next
		return cur, true
	})
}

// ResetAll empties every collection and restores default settings in a
// single write.
func (s *Store) ResetAll() {
	s.apply("reset_all", func(State, time.Time) (State, bool) {
		return resetState(), true
	})
}
