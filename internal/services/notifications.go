package services

import (
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"
)

// NotificationSender delivers a message to the user.
type NotificationSender interface {
	SendMessage(text string) error
}

type NotificationService struct {
	sender    NotificationSender
	analytics *AnalyticsService
	tasks     *TaskService
	now       func() time.Time
}

func NewNotificationService(sender NotificationSender, analytics *AnalyticsService, tasks *TaskService) *NotificationService {
	return &NotificationService{
		sender:    sender,
		analytics: analytics,
		tasks:     tasks,
		now:       time.Now,
	}
}

const summaryOpenTasks = 5

// SendDailySummary sends the end-of-day summary.
func (ns *NotificationService) SendDailySummary() {
	sum := ns.analytics.Daily(ns.now())
	message := fmt.Sprintf(
		"📊 <b>Day summary %s</b>\n\n"+
			"✅ Tasks done: %d (open: %d)\n"+
			"🔁 Habits checked: %d/%d\n"+
			"📝 Events logged: %d\n",
		sum.Date,
		sum.DoneTasks, sum.OpenTasks,
		sum.CheckedHabits, sum.ActiveHabits,
		sum.Events,
	)

	if open := ns.tasks.OpenTasks(); len(open) > 0 {
		message += "\n<b>Still open:</b>\n"
		for i, t := range open {
			if i == summaryOpenTasks {
				message += fmt.Sprintf("… and %d more\n", len(open)-summaryOpenTasks)
				break
			}
			message += fmt.Sprintf("⬜ %s\n", html.EscapeString(t.Title))
		}
	}
	message += "\nTomorrow is a new day! 🌅"

	if err := ns.sender.SendMessage(message); err != nil {
		slog.Warn("⚠️ daily summary not sent", "error", err)
	}
}

// SendHabitReminder lists today's unchecked habits. Nothing is sent when
// every active habit is already checked.
func (ns *NotificationService) SendHabitReminder() {
	pending := ns.analytics.PendingHabits(ns.now())
	if len(pending) == 0 {
		slog.Debug("no pending habits")
		return
	}

	var message strings.Builder
	message.WriteString("🔔 <b>Habits still open today</b>\n\n")
	for _, h := range pending {
		message.WriteString(fmt.Sprintf("⬜ %s\n", html.EscapeString(h.Label)))
	}
	message.WriteString("\nUse /check [n] to mark one done.")

	if err := ns.sender.SendMessage(message.String()); err != nil {
		slog.Warn("⚠️ habit reminder not sent", "error", err)
	}
}
