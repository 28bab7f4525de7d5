package services

import (
	"log/slog"
	"sync"
	"time"
)

// Feedback fires success and failure cues without waiting for them. A
// cue can never change store state and its errors are only logged.
type Feedback struct {
	sender NotificationSender
	wg     sync.WaitGroup
}

func NewFeedback(sender NotificationSender) *Feedback {
	return &Feedback{sender: sender}
}

func (f *Feedback) Success(text string) { f.fire("✅ " + text) }

func (f *Feedback) Failure(text string) { f.fire("❌ " + text) }

func (f *Feedback) fire(text string) {
	if f == nil || f.sender == nil {
		return
	}
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Warn("⚠️ feedback panicked", "panic", r)
			}
		}()
		if err := f.sender.SendMessage(text); err != nil {
			slog.Debug("feedback not delivered", "error", err)
		}
	}()
}

// Drain gives outstanding cues up to d to finish, for short-lived
// processes about to exit.
func (f *Feedback) Drain(d time.Duration) {
	if f == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
	}
}
