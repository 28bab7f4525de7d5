package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"kikehq/internal/config"
	"kikehq/internal/metrics"
	"kikehq/internal/services"
	"kikehq/internal/storage"
	"kikehq/internal/store"
	"kikehq/internal/telegram"
	"kikehq/internal/widgets"
)

type Application struct {
	config      *config.Config
	storage     storage.Storage
	bot         *telegram.Bot
	services    *services.ServiceManager
	cron        *cron.Cron
	metrics     *http.Server
	unsubscribe func()
	cancelFunc  context.CancelFunc
	ctx         context.Context
}

// New opens the configured storage and loads every state slice. The bot,
// cron jobs and metrics endpoint only start with Start.
func New(cfg *config.Config) (*Application, error) {
	st, err := storage.Open(storage.Backend(cfg.Storage.Backend), cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	logger := slog.Default()
	core := store.New(st, store.WithLogger(logger))
	w := widgets.Open(st, widgets.Options{Logger: logger})

	ctx, cancel := context.WithCancel(context.Background())
	app := &Application{
		config:     cfg,
		storage:    st,
		services:   services.NewServiceManager(core, w),
		cron:       cron.New(cron.WithLocation(time.UTC)),
		cancelFunc: cancel,
		ctx:        ctx,
	}

	app.unsubscribe = core.Subscribe(func(s store.State) {
		if len(s.Progress) > 0 {
			slog.Debug("progress", "type", s.Progress[0].Type, "detail", s.Progress[0].Detail)
		}
	})

	return app, nil
}

func (a *Application) Services() *services.ServiceManager {
	return a.services
}

// Start brings up the Telegram bot, the scheduled notifications and, if
// an address is configured, the metrics endpoint.
func (a *Application) Start() error {
	slog.Info("🚀 starting application...")

	if !a.config.BotEnabled() {
		return errors.New("serve needs TG_TOKEN and TG_CHAT_ID")
	}

	bot, err := telegram.NewBot(a.config.Telegram.Token, a.config.Telegram.ChatID, a.services)
	if err != nil {
		return err
	}
	a.bot = bot
	a.services.SetNotificationSender(bot)

	if err := a.setupCronJobs(); err != nil {
		return err
	}

	go a.bot.Start(a.ctx)
	a.cron.Start()

	if a.config.Metrics.Addr != "" {
		a.startMetrics()
	}

	a.sendWelcomeMessage()

	slog.Info("✅ application started", "bot", "@"+a.bot.GetUsername(), "storage", a.config.Storage.Backend)
	return nil
}

// Stop is safe to call whether or not Start ran.
func (a *Application) Stop() error {
	slog.Info("🛑 stopping application...")

	<-a.cron.Stop().Done()

	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.metrics.Shutdown(ctx); err != nil {
			slog.Warn("⚠️ metrics server shutdown", "error", err)
		}
	}

	if err := a.Close(); err != nil {
		return err
	}

	slog.Info("✅ application stopped")
	return nil
}

// Close releases the storage without the lifecycle logging of Stop, for
// one-shot commands.
func (a *Application) Close() error {
	a.cancelFunc()
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if err := a.storage.Close(); err != nil {
		slog.Warn("⚠️ closing storage", "error", err)
		return err
	}
	return nil
}

func (a *Application) setupCronJobs() error {
	_, err := a.cron.AddFunc(a.config.Schedule.DailySummary, func() {
		a.services.Notification.SendDailySummary()
	})
	if err != nil {
		return fmt.Errorf("daily summary schedule: %w", err)
	}

	_, err = a.cron.AddFunc(a.config.Schedule.HabitReminder, func() {
		a.services.Notification.SendHabitReminder()
	})
	if err != nil {
		return fmt.Errorf("habit reminder schedule: %w", err)
	}
	return nil
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func (a *Application) startMetrics() {
	a.metrics = &http.Server{
		Addr:              a.config.Metrics.Addr,
		Handler:           metricsMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("🌐 metrics listening", "addr", a.config.Metrics.Addr)
		if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ metrics server", "error", err)
		}
	}()
}

func (a *Application) sendWelcomeMessage() {
	message := `🎯 <b>kikehq</b>

Your control center is up.

Today: ` + time.Now().UTC().Format("2006-01-02") + `

/tasks - tasks
/habits - habits and today's checks
/summary - today
/week - this week
/help - all commands`

	a.bot.SendMessageOrLogError(message)
}
