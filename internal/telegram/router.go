package telegram

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode"

	"kikehq/internal/services"
)

// Router turns one chat message into one reply. It holds no network
// state so the whole command set can be driven from tests.
type Router struct {
	services *services.ServiceManager
	now      func() time.Time
	handlers map[string]func(args string) string
}

func NewRouter(sm *services.ServiceManager) *Router {
	r := &Router{
		services: sm,
		now:      time.Now,
		handlers: make(map[string]func(string) string),
	}
	r.registerHandlers()
	return r
}

func (r *Router) registerHandlers() {
	r.handlers["/start"] = r.handleStart
	r.handlers["/help"] = r.handleStart
	r.handlers["/tasks"] = r.handleTasks
	r.handlers["/add"] = r.handleAddTask
	r.handlers["/done"] = r.handleDone
	r.handlers["/rm"] = r.handleRemoveTask
	r.handlers["/habits"] = r.handleHabits
	r.handlers["/habit"] = r.handleHabit
	r.handlers["/check"] = r.handleCheck
	r.handlers["/books"] = r.handleBooks
	r.handlers["/book"] = r.handleAddBook
	r.handlers["/finish"] = r.handleFinish
	r.handlers["/log"] = r.handleLog
	r.handlers["/theme"] = r.handleTheme
	r.handlers["/profile"] = r.handleProfile
	r.handlers["/reset"] = r.handleReset
	r.handlers["/plan"] = r.handlePlan
	r.handlers["/goals"] = r.handleGoals
	r.handlers["/goal"] = r.handleGoal
	r.handlers["/notes"] = r.handleNotes
	r.handlers["/money"] = r.handleMoney
	r.handlers["/summary"] = r.handleSummary
	r.handlers["/week"] = r.handleWeek
}

// Handle returns the reply for text, or "" when text is not a command.
func (r *Router) Handle(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}

	command, args := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		command, args = text[:i], text[i:]
	}
	// "/tasks@kikehq_bot" in group chats
	command, _, _ = strings.Cut(strings.ToLower(command), "@")

	handler, exists := r.handlers[command]
	if !exists {
		return "❌ Unknown command. Use /help"
	}
	return handler(strings.TrimSpace(args))
}

func esc(s string) string { return html.EscapeString(s) }

// HandleCallback applies an inline button press. Buttons carry store
// ids rather than positions since the list may have changed since the
// keyboard was sent.
func (r *Router) HandleCallback(data string) string {
	switch {
	case strings.HasPrefix(data, "toggle_"):
		task, ok := r.services.Store.Task(strings.TrimPrefix(data, "toggle_"))
		if !ok {
			return "❌ Task no longer exists"
		}
		r.services.Store.ToggleTask(task.ID)
		if task.Done {
			return fmt.Sprintf("↩️ Reopened: %s", esc(task.Title))
		}
		return fmt.Sprintf("✅ Completed: %s", esc(task.Title))
	case strings.HasPrefix(data, "check_"):
		id := strings.TrimPrefix(data, "check_")
		for _, h := range r.services.Store.Habits() {
			if h.ID == id {
				r.services.Store.CheckHabitToday(id, true)
				return fmt.Sprintf("✔ %s checked for today", esc(h.Label))
			}
		}
		return "❌ Habit no longer exists"
	}
	return ""
}
