package telegram

import "log/slog"

func (b *Bot) SendMessageOrLogError(message string) {
	if err := b.SendMessage(message); err != nil {
		slog.Error("❌ telegram send failed", "error", err)
	}
}
