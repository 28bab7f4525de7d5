package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kikehq/internal/store"
	"kikehq/internal/ui"
	"kikehq/internal/utils"
)

type bookFlags struct {
	title, author, start, end, status, notes string
}

func (f *bookFlags) register(cmd *cobra.Command, withTitle bool) {
	if withTitle {
		cmd.Flags().StringVar(&f.title, "title", "", "title")
	}
	cmd.Flags().StringVar(&f.author, "author", "", "author")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.status, "status", "", "in-progress or completed")
	cmd.Flags().StringVar(&f.notes, "notes", "", "notes")
}

// patch keeps only the flags given on the command line.
func (f *bookFlags) patch(cmd *cobra.Command) store.BookPatch {
	var p store.BookPatch
	set := func(name string, v *string) *string {
		if cmd.Flags().Changed(name) {
			return v
		}
		return nil
	}
	p.Title = set("title", &f.title)
	p.Author = set("author", &f.author)
	p.StartDate = set("start", &f.start)
	p.EndDate = set("end", &f.end)
	p.Notes = set("notes", &f.notes)
	if cmd.Flags().Changed("status") {
		status := store.BookStatus(f.status)
		p.Status = &status
	}
	return p
}

func NewBookCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Manage the reading log",
	}

	addFlags := &bookFlags{}
	add := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a book",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := store.BookStatus(addFlags.status)
			if status != "" && !status.Valid() {
				return NewExitError(ExitFailure, fmt.Sprintf("unknown status %q", addFlags.status))
			}
			return opts.run(cmd, func(s *session) error {
				before := len(s.sm.Store.Books())
				start := addFlags.start
				if start == "" {
					start = utils.DateKey(timeNow())
				}
				s.sm.Store.AddBook(store.BookInput{
					Title:     strings.Join(args, " "),
					Author:    addFlags.author,
					StartDate: start,
					EndDate:   addFlags.end,
					Status:    status,
					Notes:     addFlags.notes,
				})
				books := s.sm.Store.Books()
				if len(books) == before {
					return NewExitError(ExitFailure, "title is empty")
				}
				s.sm.Feedback.Success("Book added")
				return s.out.Emit(books[0], s.out.Styles.Good.Render("Added: ")+books[0].Title)
			})
		},
	}
	addFlags.register(add, false)

	var status string
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				books := s.sm.Store.Books()
				if status != "" {
					books = s.sm.Store.BooksByStatus(store.BookStatus(status))
				}
				return s.out.Emit(books, renderBooks(s.out.Styles, books))
			})
		},
	}
	ls.Flags().StringVar(&status, "status", "", "only books with this status")

	updateFlags := &bookFlags{}
	update := &cobra.Command{
		Use:   "update <n>",
		Short: "Change fields of book n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := updateFlags.patch(cmd)
			switch {
			case patch == (store.BookPatch{}):
				return NewExitError(ExitFailure, "nothing to update")
			case patch.Title != nil && strings.TrimSpace(*patch.Title) == "":
				return NewExitError(ExitFailure, "title is empty")
			case patch.Status != nil && !patch.Status.Valid():
				return NewExitError(ExitFailure, fmt.Sprintf("unknown status %q", *patch.Status))
			}
			return opts.run(cmd, func(s *session) error {
				b, ok := s.sm.Task.BookAt(args[0])
				if !ok {
					return noPosition("book", args[0])
				}
				s.out.VerboseLog("book %s -> %s", args[0], b.ID)
				s.sm.Store.UpdateBook(b.ID, patch)
				b, _ = s.sm.Store.Book(b.ID)
				s.sm.Feedback.Success("Book updated")
				return s.out.Emit(b, s.out.Styles.Good.Render("Updated: ")+b.Title)
			})
		},
	}
	updateFlags.register(update, true)

	rm := &cobra.Command{
		Use:   "rm <n>",
		Short: "Delete book n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(s *session) error {
				b, ok := s.sm.Task.BookAt(args[0])
				if !ok {
					return noPosition("book", args[0])
				}
				s.out.VerboseLog("book %s -> %s", args[0], b.ID)
				s.sm.Store.RemoveBook(b.ID)
				s.sm.Feedback.Success("Book deleted")
				return s.out.Emit(b, s.out.Styles.Muted.Render("Deleted: ")+b.Title)
			})
		},
	}

	cmd.AddCommand(add, ls, update, rm)
	return cmd
}

func renderBooks(st ui.Styles, books []store.Book) string {
	var b strings.Builder
	b.WriteString(st.Heading(ui.IconBook, "Reading"))
	if len(books) == 0 {
		b.WriteString("\n" + st.Muted.Render("nothing yet"))
	}
	for i, book := range books {
		line := fmt.Sprintf("\n%2d. %s %s", i+1, book.Title, st.BookStatus(book.Status))
		if book.Author != "" {
			line += st.Muted.Render(" by " + book.Author)
		}
		if days, ok := utils.DayCount(book.StartDate, book.EndDate); ok {
			line += st.Muted.Render(fmt.Sprintf(" %d days", days))
		}
		b.WriteString(line)
	}
	return b.String()
}
