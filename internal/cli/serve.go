package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"kikehq/internal/app"
)

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot, scheduled notifications and metrics",
		Long: `Run the Telegram bot until interrupted.

Needs TG_TOKEN and TG_CHAT_ID. The daily summary and habit reminder run
on the cron schedules from the config file; /metrics is served when
KIKEHQ_METRICS_ADDR is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return WrapExitError(ExitCommandError, "load config", err)
			}

			application, err := app.New(cfg)
			if err != nil {
				return WrapExitError(ExitCommandError, "create application", err)
			}
			defer application.Stop()

			if err := application.Start(); err != nil {
				return WrapExitError(ExitCommandError, "start application", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
}
