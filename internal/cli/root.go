package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kikehq/internal/app"
	"kikehq/internal/config"
	"kikehq/internal/services"
	"kikehq/internal/store"
	"kikehq/internal/ui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Config overrides config.Load when set.
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

const feedbackWait = 250 * time.Millisecond

var timeNow = time.Now

// NewRootCommand creates the root command for the kikehq CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kikehq",
		Short: "kikehq - personal and business control center",
		Long:  "Tasks, habits, reading, planner, goals, notes and finances from the terminal or Telegram.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewTaskCommand(opts))
	cmd.AddCommand(NewHabitCommand(opts))
	cmd.AddCommand(NewBookCommand(opts))
	cmd.AddCommand(NewLogCommand(opts))
	cmd.AddCommand(NewThemeCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewGoalCommand(opts))
	cmd.AddCommand(NewNotesCommand(opts))
	cmd.AddCommand(NewMoneyCommand(opts))
	cmd.AddCommand(NewDayCommand(opts))
	cmd.AddCommand(NewProjectCommand(opts))
	cmd.AddCommand(NewWeekCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	if o.Config != nil {
		return o.Config, nil
	}
	return config.Load()
}

// session is one command's view of the application.
type session struct {
	sm  *services.ServiceManager
	out *OutputFormatter
}

// run opens the application for the length of one command. Text output
// rings the terminal bell on success or failure.
func (o *RootOptions) run(cmd *cobra.Command, fn func(s *session) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "open application", err)
	}
	defer a.Close()

	sm := a.Services()
	styles := ui.For(sm.Store.Theme())
	if o.Format == "text" {
		sm.SetFeedbackSender(ui.NewBell(cmd.ErrOrStderr(), styles))
	}

	s := &session{
		sm: sm,
		out: &OutputFormatter{
			Format:    o.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   o.Verbose,
			Styles:    styles,
		},
	}

	s.out.VerboseLog("storage: %s %s", cfg.Storage.Backend, cfg.Storage.Path)
	defer sm.Store.Subscribe(func(st store.State) {
		s.out.VerboseLog("saved %s: %d tasks, %d habits, %d books, %d events",
			store.StorageKey, len(st.Tasks), len(st.Habits), len(st.Books), len(st.Progress))
	})()

	err = fn(s)
	if err != nil {
		sm.Feedback.Failure(err.Error())
	}
	sm.Feedback.Drain(feedbackWait)
	return err
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.ErrOrStderr(), Styles: ui.For(store.ThemePorscheDark)}
	if !isValidFormat(f.Format) {
		f.Format = "text"
	}
	code := GetExitCode(err)
	_ = f.Error(fmt.Sprintf("E%03d", code), err.Error())
	return code
}
