package services

import (
	"strconv"
	"strings"

	"kikehq/internal/store"
)

// TaskService resolves the 1-based list positions users type in chat and
// on the command line to store ids.
type TaskService struct {
	store *store.Store
}

func NewTaskService(st *store.Store) *TaskService {
	return &TaskService{store: st}
}

func position(arg string, n int) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}

func (ts *TaskService) TaskAt(arg string) (store.Task, bool) {
	tasks := ts.store.Tasks()
	i, ok := position(arg, len(tasks))
	if !ok {
		return store.Task{}, false
	}
	return tasks[i], true
}

func (ts *TaskService) HabitAt(arg string) (store.Habit, bool) {
	habits := ts.store.Habits()
	i, ok := position(arg, len(habits))
	if !ok {
		return store.Habit{}, false
	}
	return habits[i], true
}

func (ts *TaskService) BookAt(arg string) (store.Book, bool) {
	books := ts.store.Books()
	i, ok := position(arg, len(books))
	if !ok {
		return store.Book{}, false
	}
	return books[i], true
}

// Index parses a 1-based position for index-addressed widgets. It
// returns -1 for anything that is not a positive integer.
func Index(arg string) int {
	i, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || i < 1 {
		return -1
	}
	return i - 1
}

// OpenTasks returns the tasks not yet done.
func (ts *TaskService) OpenTasks() []store.Task {
	out := []store.Task{}
	for _, t := range ts.store.Tasks() {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out
}
