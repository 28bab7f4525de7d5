package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kikehq/internal/services"
	"kikehq/internal/utils"
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	services *services.ServiceManager
	router   *Router
}

func NewBot(token string, chatID int64, serviceManager *services.ServiceManager) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	bot := &Bot{
		bot:      botAPI,
		chatID:   chatID,
		services: serviceManager,
		router:   NewRouter(serviceManager),
	}

	slog.Info("🤖 bot initialized", "username", botAPI.Self.UserName)
	return bot, nil
}

func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML"
	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) GetUsername() string {
	return b.bot.Self.UserName
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)
	defer b.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.Chat.ID != b.chatID {
		reply := tgbotapi.NewMessage(update.Message.Chat.ID, "⛔ Access denied")
		if _, err := b.bot.Send(reply); err != nil {
			slog.Debug("denied reply not sent", "chat_id", update.Message.Chat.ID, "error", err)
		}
		return
	}

	b.handleMessage(update.Message)
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	reply := b.router.Handle(msg.Text)
	if reply == "" {
		return
	}

	out := tgbotapi.NewMessage(b.chatID, reply)
	out.ParseMode = "HTML"

	command, _, _ := strings.Cut(strings.TrimSpace(msg.Text), " ")
	command, _, _ = strings.Cut(command, "@")
	switch command {
	case "/tasks":
		if kb, ok := b.taskKeyboard(); ok {
			out.ReplyMarkup = kb
		}
	case "/habits":
		if kb, ok := b.habitKeyboard(); ok {
			out.ReplyMarkup = kb
		}
	}

	if _, err := b.bot.Send(out); err != nil {
		slog.Error("❌ telegram send failed", "error", err)
	}
}

// taskKeyboard offers one toggle button per task, by position.
func (b *Bot) taskKeyboard() (tgbotapi.InlineKeyboardMarkup, bool) {
	tasks := b.services.Store.Tasks()
	if len(tasks) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, t := range tasks {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %d", utils.CheckMark(!t.Done), i+1),
				"toggle_"+t.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func (b *Bot) habitKeyboard() (tgbotapi.InlineKeyboardMarkup, bool) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, h := range b.services.Store.Habits() {
		if !h.Active {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✔ "+h.Label, "check_"+h.ID),
		))
	}
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := b.bot.Request(tgbotapi.NewCallback(callback.ID, "✅")); err != nil {
			slog.Warn("⚠️ callback answer failed", "error", err)
		}
	}()

	if callback.Message == nil || callback.Message.Chat.ID != b.chatID {
		return
	}

	data := callback.Data
	slog.Debug("received callback", "data", data)

	reply := b.router.HandleCallback(data)
	if reply != "" {
		b.SendMessageOrLogError(reply)
	}
}
