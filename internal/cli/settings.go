package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kikehq/internal/store"
	"kikehq/internal/ui"
	"kikehq/internal/utils"
)

func NewLogCommand(opts *RootOptions) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the latest progress events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				events := s.sm.Store.Progress(n)
				var b strings.Builder
				b.WriteString(s.out.Styles.Heading("📝", "Activity"))
				for _, ev := range events {
					b.WriteString(fmt.Sprintf("\n%s %s %s",
						s.out.Styles.Muted.Render(ev.Timestamp.Local().Format("2006-01-02 15:04")),
						utils.GetEventName(string(ev.Type)),
						ev.Detail))
				}
				return s.out.Emit(events, b.String())
			})
		},
	}
	cmd.Flags().IntVarP(&n, "limit", "n", 20, "number of events, 0 for all")
	return cmd
}

func NewThemeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [name]",
		Short: "Show or set the theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				if len(args) == 1 {
					t := store.Theme(strings.ToLower(args[0]))
					if !t.Valid() {
						return NewExitError(ExitFailure, fmt.Sprintf("unknown theme %q, want one of %v", args[0], store.Themes))
					}
					s.sm.Store.SetTheme(t)
					s.out.Styles = ui.For(t)
					s.sm.Feedback.Success("Theme set")
				}
				t := s.sm.Store.Theme()
				return s.out.Emit(map[string]any{"theme": t, "available": store.Themes},
					s.out.Styles.LabelValue(ui.IconTheme+" Theme", t))
			})
		},
	}
}

func NewProfileCommand(opts *RootOptions) *cobra.Command {
	var name, avatar string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				var patch store.ProfilePatch
				if cmd.Flags().Changed("name") {
					patch.Name = &name
				}
				if cmd.Flags().Changed("avatar") {
					patch.AvatarURL = &avatar
				}
				if patch.Name != nil || patch.AvatarURL != nil {
					s.sm.Store.SetProfile(patch)
					s.sm.Feedback.Success("Profile saved")
				}

				p := s.sm.Store.Profile()
				text := s.out.Styles.LabelValue(ui.IconProfile+" Name", p.Name)
				if p.AvatarURL != "" {
					text += "\n" + s.out.Styles.LabelValue("Avatar", p.AvatarURL)
				}
				return s.out.Emit(p, text)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar URL")
	return cmd
}

func NewResetCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe tasks, habits, books, the log and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return NewExitError(ExitFailure, "refusing to reset without --yes")
			}
			return opts.run(cmd, func(s *session) error {
				s.sm.Store.ResetAll()
				s.sm.Feedback.Success("Reset")
				return s.out.Emit(s.sm.Store.Snapshot(), s.out.Styles.Warn.Render("Everything reset"))
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	return cmd
}

func NewWeekCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Weekly analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				a := s.sm.Analytics.Weekly(timeNow())
				st := s.out.Styles

				var b strings.Builder
				b.WriteString(st.Heading(ui.IconWeek, fmt.Sprintf("Week %d  %s..%s", a.WeekNumber, a.StartDate, a.EndDate)))
				b.WriteString("\n" + st.LabelValue("Tasks done", fmt.Sprintf("%d/%d", a.TasksDone, a.TasksCreated)))
				b.WriteString("\n" + st.LabelValue("Books finished", a.BooksCompleted))
				b.WriteString("\n" + st.LabelValue("Full habit days", a.FullHabitDays))
				b.WriteString("\n" + st.LabelValue("Events", a.Events))
				b.WriteString("\n" + st.LabelValue("Balance", st.Amount(a.Finances.Balance)))

				for _, stat := range a.HabitStats {
					b.WriteString(fmt.Sprintf("\n  %s %s %d/%d", ui.IconHabit, stat.Label, stat.Checked, stat.Days))
				}
				b.WriteString("\n\n" + st.Panel.Render(a.Insights))
				return s.out.Emit(a, b.String())
			})
		},
	}
}
