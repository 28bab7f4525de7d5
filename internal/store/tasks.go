package store

import (
	"strings"
	"time"
)

func trimmed(s string) string { return strings.TrimSpace(s) }

// AddTask prepends a task. Blank titles are ignored.
func (s *Store) AddTask(title, tag string) {
	title = trimmed(title)
	if title == "" {
		return
	}
	tag = trimmed(tag)

	s.apply("add_task", func(cur State, now time.Time) (State, bool) {
		t := Task{ID: s.newID(), Title: title, Tag: tag, CreatedAt: now}
		cur.Tasks = append([]Task{t}, cur.Tasks...)
		cur.Progress = s.appendEvent(cur.Progress, now, EventInput{
			Type:   EventTask,
			Detail: "Created: " + title,
		})
		return cur, true
	})
}

func (s *Store) ToggleTask(id string) {
	s.apply("toggle_task", func(cur State, now time.Time) (State, bool) {
		i := taskIndex(cur.Tasks, id)
		if i < 0 {
			return cur, false
		}
		tasks := append([]Task(nil), cur.Tasks...)
		tasks[i].Done = !tasks[i].Done

		verb := "Reopened"
		if tasks[i].Done {
			verb = "Completed"
		}
		cur.Tasks = tasks
		cur.Progress = s.appendEvent(cur.Progress, now, EventInput{
			Type:   EventTask,
			Detail: verb + ": " + tasks[i].Title,
		})
		return cur, true
	})
}

func (s *Store) RemoveTask(id string) {
	s.apply("remove_task", func(cur State, now time.Time) (State, bool) {
		i := taskIndex(cur.Tasks, id)
		if i < 0 {
			return cur, false
		}
		removed := cur.Tasks[i]

		tasks := make([]Task, 0, len(cur.Tasks)-1)
		tasks = append(tasks, cur.Tasks[:i]...)
		tasks = append(tasks, cur.Tasks[i+1:]...)
		cur.Tasks = tasks
		cur.Progress = s.appendEvent(cur.Progress, now, EventInput{
			Type:   EventTask,
			Detail: "Deleted: " + removed.Title,
		})
		return cur, true
	})
}

// Tasks returns the tasks newest first.
func (s *Store) Tasks() []Task {
	return cloneSlice(s.slot.Get().Tasks)
}

func (s *Store) Task(id string) (Task, bool) {
	tasks := s.slot.Get().Tasks
	if i := taskIndex(tasks, id); i >= 0 {
		return tasks[i], true
	}
	return Task{}, false
}

func taskIndex(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
