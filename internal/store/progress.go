package store

import "time"

// MaxProgress caps the progress log; the oldest entries go first.
const MaxProgress = 500

// Log records a progress event directly.
func (s *Store) Log(e EventInput) {
	s.apply("log", func(cur State, now time.Time) (State, bool) {
		cur.Progress = s.appendEvent(cur.Progress, now, e)
		return cur, true
	})
}

// appendEvent returns a new slice with e at the front, trimmed to
// MaxProgress. log is not modified.
func (s *Store) appendEvent(log []ProgressEvent, now time.Time, e EventInput) []ProgressEvent {
	if e.Type == "" {
		e.Type = EventSystem
	}
	ev := ProgressEvent{
		ID:        s.newID(),
		Timestamp: now,
		Type:      e.Type,
		Detail:    e.Detail,
		Meta:      e.Meta,
	}

	n := len(log) + 1
	if n > MaxProgress {
		n = MaxProgress
	}
	out := make([]ProgressEvent, 0, n)
	out = append(out, ev)
	out = append(out, log[:n-1]...)
	return out
}

// Progress returns the n most recent events, newest first. n <= 0
// returns all of them.
func (s *Store) Progress(n int) []ProgressEvent {
	log := s.slot.Get().Progress
	if n <= 0 || n > len(log) {
		n = len(log)
	}
	return cloneSlice(log[:n])
}
