// Package persist mirrors one in-memory value into one storage key.
//
// A Slot loads its key once when created, falling back to a default when
// the key is absent or cannot be decoded, and rewrites the whole value on
// every change. Write failures are logged and swallowed: the in-memory
// value stays authoritative for the rest of the session.
package persist

import (
	"log/slog"
	"sync"

	"kikehq/internal/metrics"
	"kikehq/internal/storage"
)

type Slot[T any] struct {
	mu      sync.Mutex
	store   storage.Storage
	key     string
	codec   Codec[T]
	value   T
	def     func() T
	logger  *slog.Logger
	onWrite func(error)
}

type Option[T any] func(*Slot[T])

func WithCodec[T any](c Codec[T]) Option[T] {
	return func(s *Slot[T]) { s.codec = c }
}

func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(s *Slot[T]) { s.logger = l }
}

// WithWriteHook is called after every write attempt with its outcome.
func WithWriteHook[T any](fn func(error)) Option[T] {
	return func(s *Slot[T]) { s.onWrite = fn }
}

// New loads key from st. def must return a fresh value on every call; the
// decoder writes into it, so fields missing from the stored value keep
// their default.
func New[T any](st storage.Storage, key string, def func() T, opts ...Option[T]) *Slot[T] {
	s := &Slot[T]{
		store:  st,
		key:    key,
		codec:  JSON[T]{},
		def:    def,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("key", key)
	s.value = s.load(def)
	return s
}

func (s *Slot[T]) load(def func() T) T {
	raw, ok, err := s.store.Get(s.key)
	if err != nil {
		s.logger.Warn("⚠️ load failed, using default", "error", err)
		return def()
	}
	if !ok {
		return def()
	}

	v := def()
	if err := s.codec.Decode(raw, &v); err != nil {
		s.logger.Warn("⚠️ stored value unreadable, using default", "error", err)
		return def()
	}
	return v
}

// Get returns the current value. Reference types inside it are shared
// with the slot; callers must not mutate them.
func (s *Slot[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *Slot[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.write()
}

// Update replaces the value with fn(current). Returning changed=false
// skips the write.
func (s *Slot[T]) Update(fn func(cur T) (next T, changed bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := fn(s.value)
	if !changed {
		return
	}
	s.value = next
	s.write()
}

// Clear drops the key from storage and puts the default value back. The
// next load sees an absent key.
func (s *Slot[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = s.def()
	s.report(s.store.Remove(s.key))
}

func (s *Slot[T]) write() {
	raw, err := s.codec.Encode(s.value)
	if err == nil {
		err = s.store.Set(s.key, raw)
	}
	s.report(err)
}

func (s *Slot[T]) report(err error) {
	if err != nil {
		metrics.PersistFailures.WithLabelValues(s.key).Inc()
		s.logger.Warn("⚠️ persist failed, keeping in-memory state", "error", err)
	} else {
		metrics.PersistWrites.WithLabelValues(s.key).Inc()
	}
	if s.onWrite != nil {
		s.onWrite(err)
	}
}
