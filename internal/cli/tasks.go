package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kikehq/internal/store"
	"kikehq/internal/ui"
	"kikehq/internal/utils"
)

func noPosition(kind, arg string) error {
	return NewExitError(ExitFailure, fmt.Sprintf("no %s at position %q", kind, arg))
}

func NewTaskCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	var tag string
	add := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				title := strings.Join(args, " ")
				if strings.TrimSpace(title) == "" {
					return NewExitError(ExitFailure, "title is empty")
				}
				s.sm.Store.AddTask(title, tag)
				task := s.sm.Store.Tasks()[0]
				s.sm.Feedback.Success("Task added")
				return s.out.Emit(task, s.out.Styles.Good.Render("Added: ")+task.Title)
			})
		},
	}
	add.Flags().StringVarP(&tag, "tag", "t", "", "tag")

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				tasks := s.sm.Store.Tasks()
				return s.out.Emit(tasks, renderTasks(s.out.Styles, tasks))
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <n>",
		Short: "Mark task n done or open again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				task, ok := s.sm.Task.TaskAt(args[0])
				if !ok {
					return noPosition("task", args[0])
				}
				s.out.VerboseLog("task %s -> %s", args[0], task.ID)
				s.sm.Store.ToggleTask(task.ID)
				task, _ = s.sm.Store.Task(task.ID)
				s.sm.Feedback.Success("Task updated")
				return s.out.Emit(task, fmt.Sprintf("%s %s", s.out.Styles.Check(task.Done), task.Title))
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <n>",
		Short: "Delete task n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				task, ok := s.sm.Task.TaskAt(args[0])
				if !ok {
					return noPosition("task", args[0])
				}
				s.out.VerboseLog("task %s -> %s", args[0], task.ID)
				s.sm.Store.RemoveTask(task.ID)
				s.sm.Feedback.Success("Task deleted")
				return s.out.Emit(task, s.out.Styles.Muted.Render("Deleted: ")+task.Title)
			})
		},
	}

	cmd.AddCommand(add, ls, toggle, rm)
	return cmd
}

func renderTasks(st ui.Styles, tasks []store.Task) string {
	var b strings.Builder
	b.WriteString(st.Heading(ui.IconTask, "Tasks"))
	if len(tasks) == 0 {
		b.WriteString("\n" + st.Muted.Render("nothing yet"))
	}
	for i, t := range tasks {
		b.WriteString(fmt.Sprintf("\n%2d. %s %s %s", i+1, st.Check(t.Done), t.Title, st.Tag(t.Tag)))
	}
	return b.String()
}

func NewHabitCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits and today's checks",
	}

	add := &cobra.Command{
		Use:   "add <label...>",
		Short: "Add a habit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				before := len(s.sm.Store.Habits())
				s.sm.Store.AddHabit(strings.Join(args, " "))
				habits := s.sm.Store.Habits()
				if len(habits) == before {
					return NewExitError(ExitFailure, "label is empty")
				}
				h := habits[len(habits)-1]
				s.sm.Feedback.Success("Habit added")
				return s.out.Emit(h, s.out.Styles.Good.Render("Added: ")+h.Label)
			})
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List habits with today's checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				habits := s.sm.Store.Habits()
				checks := s.sm.Store.HabitChecksOn(utils.DateKey(timeNow()))

				type row struct {
					store.Habit
					CheckedToday bool `json:"checkedToday"`
				}
				rows := make([]row, len(habits))
				var b strings.Builder
				b.WriteString(s.out.Styles.Heading(ui.IconHabit, "Habits"))
				for i, h := range habits {
					rows[i] = row{Habit: h, CheckedToday: checks[h.ID]}
					line := fmt.Sprintf("\n%2d. %s %s", i+1, s.out.Styles.Check(checks[h.ID]), h.Label)
					if !h.Active {
						line += " " + s.out.Styles.Muted.Render("(paused)")
					}
					b.WriteString(line)
				}
				return s.out.Emit(rows, b.String())
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <n>",
		Short: "Pause or resume habit n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				h, ok := s.sm.Task.HabitAt(args[0])
				if !ok {
					return noPosition("habit", args[0])
				}
				s.out.VerboseLog("habit %s -> %s", args[0], h.ID)
				s.sm.Store.ToggleHabitActive(h.ID)
				h.Active = !h.Active
				state := "resumed"
				if !h.Active {
					state = "paused"
				}
				s.sm.Feedback.Success("Habit " + state)
				return s.out.Emit(h, fmt.Sprintf("%s %s", h.Label, s.out.Styles.Muted.Render(state)))
			})
		},
	}

	var unset bool
	check := &cobra.Command{
		Use:   "check <n>",
		Short: "Check habit n for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				h, ok := s.sm.Task.HabitAt(args[0])
				if !ok {
					return noPosition("habit", args[0])
				}
				s.out.VerboseLog("habit %s -> %s", args[0], h.ID)
				s.sm.Store.CheckHabitToday(h.ID, !unset)
				s.sm.Feedback.Success("Habit checked")
				return s.out.Emit(
					map[string]any{"habitId": h.ID, "date": utils.DateKey(timeNow()), "value": !unset},
					fmt.Sprintf("%s %s", s.out.Styles.Check(!unset), h.Label))
			})
		},
	}
	check.Flags().BoolVar(&unset, "no", false, "record the habit as not done")

	cmd.AddCommand(add, ls, toggle, check)
	return cmd
}
