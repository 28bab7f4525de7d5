package store

import "time"

// AddBook prepends a book. A blank title or an unknown status is
// ignored.
func (s *Store) AddBook(in BookInput) {
	title := trimmed(in.Title)
	if title == "" {
		return
	}
	status := in.Status
	if status == "" {
		status = BookInProgress
	}
	if !status.Valid() {
		return
	}

	s.apply("add_book", func(cur State, now time.Time) (State, bool) {
		b := Book{
			ID:        s.newID(),
			Title:     title,
			Author:    trimmed(in.Author),
			StartDate: trimmed(in.StartDate),
			EndDate:   trimmed(in.EndDate),
			Status:    status,
			Notes:     in.Notes,
		}
		cur.Books = append([]Book{b}, cur.Books...)
		cur.Progress = s.appendEvent(cur.Progress, now, EventInput{
			Type:   EventReading,
			Detail: "Added: " + b.Title,
			Meta: map[string]any{
				"bookId": b.ID,
				"title":  b.Title,
				"status": string(b.Status),
			},
		})
		return cur, true
	})
}

// UpdateBook applies the present fields of patch. Unknown ids, blank
// titles and unknown statuses leave the book untouched.
func (s *Store) UpdateBook(id string, patch BookPatch) {
	if patch.Status != nil && !patch.Status.Valid() {
		return
	}
	if patch.Title != nil && trimmed(*patch.Title) == "" {
		return
	}

	s.apply("update_book", func(cur State, now time.Time) (State, bool) {
		i := bookIndex(cur.Books, id)
		if i < 0 {
			return cur, false
		}
		books := append([]Book(nil), cur.Books...)
		b := &books[i]
		if patch.Title != nil {
			b.Title = trimmed(*patch.Title)
		}
		if patch.Author != nil {
			b.Author = trimmed(*patch.Author)
		}
		if patch.StartDate != nil {
			b.StartDate = trimmed(*patch.StartDate)
		}
		if patch.EndDate != nil {
			b.EndDate = trimmed(*patch.EndDate)
		}
		if patch.Status != nil {
			b.Status = *patch.Status
		}
		if patch.Notes != nil {
			b.Notes = *patch.Notes
		}
		cur.Books = books
		cur.Progress = s.appendEvent(cur.Progress, now, EventInput{
			Type:   EventReading,
			Detail: "Updated: " + b.Title,
		})
		return cur, true
	})
}

func (s *Store) RemoveBook(id string) {
	s.apply("remove_book", func(cur State, now time.Time) (State, bool) {
		i := bookIndex(cur.Books, id)
		if i < 0 {
			return cur, false
		}
		removed := cur.Books[i]

		books := make([]Book, 0, len(cur.Books)-1)
		books = append(books, cur.Books[:i]...)
		books = append(books, cur.Books[i+1:]...)
		cur.Books = books
		cur.Progress = s.appendEvent(cur.Progress, now, EventInput{
			Type:   EventReading,
			Detail: "Deleted: " + removed.Title,
		})
		return cur, true
	})
}

func (s *Store) Books() []Book {
	return cloneSlice(s.slot.Get().Books)
}

func (s *Store) Book(id string) (Book, bool) {
	books := s.slot.Get().Books
	if i := bookIndex(books, id); i >= 0 {
		return books[i], true
	}
	return Book{}, false
}

func (s *Store) BooksByStatus(status BookStatus) []Book {
	out := []Book{}
	for _, b := range s.slot.Get().Books {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

func bookIndex(books []Book, id string) int {
	for i, b := range books {
		if b.ID == id {
			return i
		}
	}
	return -1
}
