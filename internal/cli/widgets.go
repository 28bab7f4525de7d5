package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kikehq/internal/services"
	"kikehq/internal/ui"
	"kikehq/internal/utils"
	"kikehq/internal/widgets"
)

func parseDay(arg string) (int, error) {
	day, ok := widgets.ParseWeekday(arg)
	if !ok {
		return 0, NewExitError(ExitFailure, fmt.Sprintf("unknown day %q", arg))
	}
	return day, nil
}

func NewPlanCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Weekly planner",
	}

	var ev widgets.PlannerEvent
	add := &cobra.Command{
		Use:   "add <day> <title...>",
		Short: "Add a weekly event (day is 1-7 or a name)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(s *session) error {
				e := ev
				e.Day = day
				e.Title = strings.Join(args[1:], " ")
				before := len(s.sm.Widgets.Planner.All())
				s.sm.Widgets.Planner.Add(e)
				all := s.sm.Widgets.Planner.All()
				if len(all) == before {
					return NewExitError(ExitFailure, "title is empty")
				}
				s.sm.Feedback.Success("Event added")
				return s.out.Emit(all[0], fmt.Sprintf("%s %s %s", widgets.Weekdays[day], all[0].Time, all[0].Title))
			})
		},
	}
	add.Flags().StringVar(&ev.Time, "time", "", "HH:MM, default 08:00")
	add.Flags().StringVar(&ev.Note, "note", "", "note")
	add.Flags().StringVar(&ev.Color, "color", "", "one of "+strings.Join(widgets.PlannerColors, ", "))

	ls := &cobra.Command{
		Use:   "ls [day]",
		Short: "Show the week or one day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := []int{0, 1, 2, 3, 4, 5, 6}
			if len(args) == 1 {
				day, err := parseDay(args[0])
				if err != nil {
					return err
				}
				days = []int{day}
			}
			return opts.run(cmd, func(s *session) error {
				st := s.out.Styles
				var b strings.Builder
				b.WriteString(st.Heading(ui.IconPlan, "Planner"))
				data := map[string][]widgets.PlannerEvent{}
				for _, d := range days {
					events := s.sm.Widgets.Planner.Day(d)
					data[widgets.Weekdays[d]] = events
					b.WriteString("\n" + st.H2.Render(widgets.Weekdays[d]))
					for i, e := range events {
						line := fmt.Sprintf("\n  %d. %s %s", i+1, st.Muted.Render(e.Time), e.Title)
						if e.Note != "" {
							line += st.Muted.Render("  " + e.Note)
						}
						b.WriteString(line)
					}
				}
				return s.out.Emit(data, b.String())
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <day> <n>",
		Short: "Remove event n of a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(s *session) error {
				events := s.sm.Widgets.Planner.Day(day)
				i := services.Index(args[1])
				if i < 0 || i >= len(events) {
					return noPosition("event", args[1])
				}
				s.sm.Widgets.Planner.Remove(events[i].ID)
				s.sm.Feedback.Success("Event removed")
				return s.out.Emit(events[i], s.out.Styles.Muted.Render("Removed: ")+events[i].Title)
			})
		},
	}

	cmd.AddCommand(add, ls, rm)
	return cmd
}

func NewGoalCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Goals",
	}

	list := func(s *session) error {
		goals := s.sm.Widgets.Goals.List()
		var b strings.Builder
		b.WriteString(s.out.Styles.Heading(ui.IconGoal, "Goals"))
		for i, g := range goals {
			b.WriteString(fmt.Sprintf("\n%2d. %s %s", i+1, s.out.Styles.Check(g.Done), g.Text))
		}
		return s.out.Emit(goals, b.String())
	}

	add := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				s.sm.Widgets.Goals.Add(strings.Join(args, " "))
				s.sm.Feedback.Success("Goal added")
				return list(s)
			})
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, list)
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <n>",
		Short: "Toggle goal n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				i := services.Index(args[0])
				if i < 0 || i >= len(s.sm.Widgets.Goals.List()) {
					return noPosition("goal", args[0])
				}
				s.sm.Widgets.Goals.Toggle(i)
				s.sm.Feedback.Success("Goal updated")
				return list(s)
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <n>",
		Short: "Remove goal n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				i := services.Index(args[0])
				if i < 0 || i >= len(s.sm.Widgets.Goals.List()) {
					return noPosition("goal", args[0])
				}
				s.sm.Widgets.Goals.Remove(i)
				s.sm.Feedback.Success("Goal removed")
				return list(s)
			})
		},
	}

	cmd.AddCommand(add, ls, toggle, rm)
	return cmd
}

func NewNotesCommand(opts *RootOptions) *cobra.Command {
	var wipe bool
	cmd := &cobra.Command{
		Use:   "notes [text...]",
		Short: "Show or replace the free-form notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				notes := s.sm.Widgets.Notes
				switch {
				case wipe:
					notes.Clear()
					s.sm.Feedback.Success("Notes cleared")
				case len(args) > 0:
					notes.SetText(strings.Join(args, " "))
					s.sm.Feedback.Success("Notes saved")
				}
				return s.out.Emit(map[string]string{"notes": notes.Text()},
					s.out.Styles.Heading(ui.IconNotes, "Notes")+"\n"+notes.Text())
			})
		},
	}
	cmd.Flags().BoolVar(&wipe, "clear", false, "empty the notes")
	return cmd
}

func NewMoneyCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "money",
		Short: "Income and expenses",
	}

	list := func(s *session) error {
		f := s.sm.Widgets.Finances
		entries, totals := f.Entries(), f.Totals()
		st := s.out.Styles

		var b strings.Builder
		b.WriteString(st.Heading(ui.IconMoney, "Finances"))
		b.WriteString("\n" + st.LabelValue("Income", fmt.Sprintf("%.2f", totals.Income)))
		b.WriteString("\n" + st.LabelValue("Expense", fmt.Sprintf("%.2f", totals.Expense)))
		b.WriteString("\n" + st.LabelValue("Balance", st.Amount(totals.Balance)))
		for i, e := range entries {
			v := e.Amount
			if e.Kind == widgets.Expense {
				v = -v
			}
			b.WriteString(fmt.Sprintf("\n%2d. %s %s %s", i+1, st.Amount(v), e.Description, st.Muted.Render(string(e.Method))))
		}
		return s.out.Emit(map[string]any{"entries": entries, "totals": totals}, b.String())
	}

	var method string
	add := &cobra.Command{
		Use:   "add <income|expense> <amount> <description...>",
		Short: "Record an entry",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				f := s.sm.Widgets.Finances
				before := len(f.Entries())
				f.Add(widgets.EntryKind(args[0]), strings.Join(args[2:], " "), args[1], widgets.PaymentMethod(method))
				if len(f.Entries()) == before {
					return NewExitError(ExitFailure, "entry rejected: check kind, amount and method")
				}
				s.sm.Feedback.Success("Entry recorded")
				return list(s)
			})
		},
	}
	add.Flags().StringVar(&method, "method", "card", "cash or card")

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List entries and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, list)
		},
	}

	rm := &cobra.Command{
		Use:   "rm <n>",
		Short: "Remove entry n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				i := services.Index(args[0])
				if i < 0 || i >= len(s.sm.Widgets.Finances.Entries()) {
					return noPosition("entry", args[0])
				}
				s.sm.Widgets.Finances.Remove(i)
				s.sm.Feedback.Success("Entry removed")
				return list(s)
			})
		},
	}

	cmd.AddCommand(add, ls, rm)
	return cmd
}

// NewDayCommand covers the personal dashboard: today's throwaway to-dos,
// the fixed daily habits and the journal.
func NewDayCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Today's to-dos, daily habits and journal",
	}

	show := func(s *session) error {
		w := s.sm.Widgets
		today := utils.DateKey(timeNow())
		st := s.out.Styles

		todos := w.DailyTasks.List()
		habits := w.Personal.Habits(today)
		answers := w.Personal.Journal(today)

		var b strings.Builder
		b.WriteString(st.Heading("☀️", "Today "+today))
		b.WriteString("\n" + st.Muted.Render(widgets.Quote(timeNow())))
		b.WriteString("\n" + st.H2.Render("To-do"))
		for i, t := range todos {
			b.WriteString(fmt.Sprintf("\n%2d. %s %s", i+1, st.Check(t.Done), t.Text))
		}
		b.WriteString("\n" + st.H2.Render("Habits"))
		for _, h := range habits {
			b.WriteString(fmt.Sprintf("\n  %s %s %s", st.Check(h.Done), st.Muted.Render(h.ID), h.Name))
		}
		b.WriteString("\n" + st.H2.Render("Journal"))
		for i, a := range answers {
			b.WriteString(fmt.Sprintf("\n  %s\n    %s", st.Muted.Render(widgets.JournalQuestions[i]), a))
		}
		if q, ok := w.Personal.NextQuestion(today); ok {
			b.WriteString("\n  " + st.Warn.Render("Next: ") + q)
		}

		return s.out.Emit(map[string]any{
			"date":    today,
			"todos":   todos,
			"habits":  habits,
			"journal": answers,
		}, b.String())
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "Show today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, show)
		},
	}

	add := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a to-do for today",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				s.sm.Widgets.DailyTasks.Add(strings.Join(args, " "))
				s.sm.Feedback.Success("To-do added")
				return show(s)
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <n>",
		Short: "Toggle today's to-do n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				i := services.Index(args[0])
				if i < 0 || i >= len(s.sm.Widgets.DailyTasks.List()) {
					return noPosition("to-do", args[0])
				}
				s.sm.Widgets.DailyTasks.Toggle(i)
				return show(s)
			})
		},
	}

	habit := &cobra.Command{
		Use:   "habit <id>",
		Short: "Tick a daily habit (h1, h2, h3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				today := utils.DateKey(timeNow())
				s.sm.Widgets.Personal.ToggleHabit(today, args[0])
				if s.sm.Widgets.Personal.FullDay(today) {
					s.sm.Feedback.Success("Full day!")
				}
				return show(s)
			})
		},
	}

	journal := &cobra.Command{
		Use:   "journal <answer...>",
		Short: "Answer the next journal question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				today := utils.DateKey(timeNow())
				if s.sm.Widgets.Personal.JournalComplete(today) {
					return NewExitError(ExitFailure, "today's journal is complete")
				}
				s.sm.Widgets.Personal.AnswerJournal(today, strings.Join(args, " "))
				return show(s)
			})
		},
	}

	cmd.AddCommand(ls, add, toggle, habit, journal)
	return cmd
}

// NewProjectCommand covers the business view: milestones and the
// project task board.
func NewProjectCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Milestones and project tasks",
	}

	show := func(s *session) error {
		w := s.sm.Widgets
		st := s.out.Styles
		milestones := w.Milestones.List()
		tasks := w.ProjectTasks.List()

		var b strings.Builder
		b.WriteString(st.Heading("🚀", fmt.Sprintf("Project %d%%", w.Milestones.Completion())))
		for _, m := range milestones {
			b.WriteString(fmt.Sprintf("\n  %s %s %s %s", st.Muted.Render(m.ID), m.Date, m.Title, st.Muted.Render(string(m.Status))))
		}
		if next, ok := w.Milestones.Next(); ok {
			b.WriteString("\n" + st.LabelValue("Next", next.Title))
		}
		b.WriteString("\n" + st.H2.Render("Tasks"))
		for _, t := range tasks {
			b.WriteString(fmt.Sprintf("\n  %s %s %s %s", st.Check(t.Done), st.Muted.Render(t.ID), t.Title, st.Tag(t.Tag)))
		}
		return s.out.Emit(map[string]any{
			"completion": w.Milestones.Completion(),
			"milestones": milestones,
			"tasks":      tasks,
		}, b.String())
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "Show milestones and tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, show)
		},
	}

	var tag string
	add := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a project task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				s.sm.Widgets.ProjectTasks.Add(strings.Join(args, " "), tag)
				return show(s)
			})
		},
	}
	add.Flags().StringVarP(&tag, "tag", "t", "", "tag")

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle a project task by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				s.sm.Widgets.ProjectTasks.Toggle(args[0])
				return show(s)
			})
		},
	}

	milestone := &cobra.Command{
		Use:   "milestone <id> <pending|in_progress|done>",
		Short: "Set a milestone's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := widgets.MilestoneStatus(args[1])
			if !status.Valid() {
				return NewExitError(ExitFailure, fmt.Sprintf("unknown status %q", args[1]))
			}
			return opts.run(cmd, func(s *session) error {
				s.sm.Widgets.Milestones.SetStatus(args[0], status)
				return show(s)
			})
		},
	}

	cmd.AddCommand(ls, add, toggle, milestone)
	return cmd
}
