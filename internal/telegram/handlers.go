package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"kikehq/internal/services"
	"kikehq/internal/store"
	"kikehq/internal/utils"
	"kikehq/internal/widgets"
)

const helpText = `🎯 <b>kikehq control center</b>

<b>Tasks</b>
/tasks - List tasks
/add [title] #tag - Add a task
/done [n] - Toggle task n
/rm [n] - Delete task n

<b>Habits</b>
/habits - Habits and today's checks
/habit [label] - Add a habit
/habit toggle [n] - Pause or resume habit n
/check [n] [no] - Check habit n for today

<b>Reading</b>
/books - Reading list
/book [title] | [author] - Start a book
/finish [n] - Mark book n completed

<b>Planner &amp; notes</b>
/plan - Weekly planner
/plan [day] [HH:MM] [title] - Add an event
/plan rm [day] [n] - Remove an event
/goals - Goals
/goal [text] | done [n] | rm [n]
/notes [text] - Show or replace notes
/money - Balance
/money +|- [amount] [description] [cash|card]

<b>Other</b>
/log [n] - Latest activity
/summary - Today
/week - This week
/theme [name] - Show or set theme
/profile [name] - Show or set name
/reset confirm - Wipe everything

Example:
/add Prospect 15 leads #Agency`

func (r *Router) handleStart(string) string {
	return helpText
}

func (r *Router) handleTasks(string) string {
	tasks := r.services.Store.Tasks()
	if len(tasks) == 0 {
		return "📭 No tasks"
	}

	var message strings.Builder
	message.WriteString("📋 <b>Tasks</b>\n\n")
	for i, t := range tasks {
		message.WriteString(fmt.Sprintf("%d. %s %s", i+1, utils.CheckMark(t.Done), esc(t.Title)))
		if t.Tag != "" {
			message.WriteString(fmt.Sprintf(" <i>#%s</i>", esc(t.Tag)))
		}
		message.WriteString("\n")
	}
	return message.String()
}

// splitTag pulls a trailing "#tag" off text.
func splitTag(text string) (title, tag string) {
	fields := strings.Fields(text)
	if n := len(fields); n > 1 && strings.HasPrefix(fields[n-1], "#") && len(fields[n-1]) > 1 {
		return strings.Join(fields[:n-1], " "), fields[n-1][1:]
	}
	return text, ""
}

func (r *Router) handleAddTask(args string) string {
	title, tag := splitTag(args)
	if strings.TrimSpace(title) == "" {
		return "❌ Usage: /add [title] #tag"
	}
	r.services.Store.AddTask(title, tag)
	return fmt.Sprintf("✅ Task added: %s", esc(strings.TrimSpace(title)))
}

func (r *Router) handleDone(args string) string {
	task, ok := r.services.Task.TaskAt(args)
	if !ok {
		return "❌ No such task. See /tasks"
	}
	r.services.Store.ToggleTask(task.ID)
	if task.Done {
		return fmt.Sprintf("↩️ Reopened: %s", esc(task.Title))
	}
	return fmt.Sprintf("✅ Completed: %s", esc(task.Title))
}

func (r *Router) handleRemoveTask(args string) string {
	task, ok := r.services.Task.TaskAt(args)
	if !ok {
		return "❌ No such task. See /tasks"
	}
	r.services.Store.RemoveTask(task.ID)
	return fmt.Sprintf("🗑 Deleted: %s", esc(task.Title))
}

func (r *Router) handleHabits(string) string {
	habits := r.services.Store.Habits()
	if len(habits) == 0 {
		return "📭 No habits"
	}

	checks := r.services.Store.HabitChecksOn(utils.DateKey(r.now()))
	var message strings.Builder
	message.WriteString("🔁 <b>Habits today</b>\n\n")
	for i, h := range habits {
		message.WriteString(fmt.Sprintf("%d. %s %s", i+1, utils.CheckMark(checks[h.ID]), esc(h.Label)))
		if !h.Active {
			message.WriteString(" <i>(paused)</i>")
		}
		message.WriteString("\n")
	}
	return message.String()
}

func (r *Router) handleHabit(args string) string {
	if pos, ok := strings.CutPrefix(args, "toggle "); ok {
		habit, found := r.services.Task.HabitAt(pos)
		if !found {
			return "❌ No such habit. See /habits"
		}
		r.services.Store.ToggleHabitActive(habit.ID)
		if habit.Active {
			return fmt.Sprintf("⏸ Paused: %s", esc(habit.Label))
		}
		return fmt.Sprintf("▶️ Resumed: %s", esc(habit.Label))
	}

	if args == "" {
		return "❌ Usage: /habit [label]"
	}
	r.services.Store.AddHabit(args)
	return fmt.Sprintf("✅ Habit added: %s", esc(args))
}

func (r *Router) handleCheck(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "❌ Usage: /check [n] [no]"
	}
	habit, ok := r.services.Task.HabitAt(fields[0])
	if !ok {
		return "❌ No such habit. See /habits"
	}

	value := true
	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "no", "off", "false", "0":
			value = false
		}
	}
	r.services.Store.CheckHabitToday(habit.ID, value)
	if value {
		return fmt.Sprintf("✔ %s checked for today", esc(habit.Label))
	}
	return fmt.Sprintf("✖ %s unchecked for today", esc(habit.Label))
}

func (r *Router) handleBooks(string) string {
	books := r.services.Store.Books()
	if len(books) == 0 {
		return "📭 No books"
	}

	var message strings.Builder
	message.WriteString("📚 <b>Reading</b>\n\n")
	for i, b := range books {
		mark := "📖"
		if b.Status == store.BookCompleted {
			mark = "✅"
		}
		message.WriteString(fmt.Sprintf("%d. %s <b>%s</b>", i+1, mark, esc(b.Title)))
		if b.Author != "" {
			message.WriteString(fmt.Sprintf(" by %s", esc(b.Author)))
		}
		if days, ok := utils.DayCount(b.StartDate, b.EndDate); ok {
			message.WriteString(fmt.Sprintf(" <i>(%d days)</i>", days))
		}
		message.WriteString("\n")
	}
	return message.String()
}

func (r *Router) handleAddBook(args string) string {
	title, author, _ := strings.Cut(args, "|")
	title = strings.TrimSpace(title)
	if title == "" {
		return "❌ Usage: /book [title] | [author]"
	}
	r.services.Store.AddBook(store.BookInput{
		Title:     title,
		Author:    author,
		StartDate: utils.DateKey(r.now()),
	})
	return fmt.Sprintf("📖 Started: %s", esc(title))
}

func (r *Router) handleFinish(args string) string {
	book, ok := r.services.Task.BookAt(args)
	if !ok {
		return "❌ No such book. See /books"
	}
	status := store.BookCompleted
	end := utils.DateKey(r.now())
	r.services.Store.UpdateBook(book.ID, store.BookPatch{Status: &status, EndDate: &end})

	message := fmt.Sprintf("🏁 Finished: %s", esc(book.Title))
	if days, ok := utils.DayCount(book.StartDate, end); ok {
		message += fmt.Sprintf(" in %d days", days)
	}
	return message
}

func (r *Router) handleLog(args string) string {
	n := 10
	if args != "" {
		v, err := strconv.Atoi(args)
		if err != nil || v < 1 {
			return "❌ Usage: /log [n]"
		}
		n = v
	}

	events := r.services.Store.Progress(n)
	if len(events) == 0 {
		return "📭 No activity yet"
	}

	var message strings.Builder
	message.WriteString("📝 <b>Latest activity</b>\n\n")
	for _, ev := range events {
		message.WriteString(fmt.Sprintf("%s %s <i>%s</i>\n",
			utils.GetEventEmoji(string(ev.Type)),
			esc(ev.Detail),
			ev.Timestamp.UTC().Format("02 Jan 15:04")))
	}
	return message.String()
}

func (r *Router) handleTheme(args string) string {
	if args == "" {
		names := make([]string, len(store.Themes))
		for i, t := range store.Themes {
			names[i] = string(t)
		}
		return fmt.Sprintf("🎨 Theme: %s\nAvailable: %s", r.services.Store.Theme(), strings.Join(names, ", "))
	}

	theme := store.Theme(strings.ToLower(args))
	if !theme.Valid() {
		return "❌ Unknown theme. See /theme"
	}
	r.services.Store.SetTheme(theme)
	return fmt.Sprintf("🎨 Theme set to %s", theme)
}

func (r *Router) handleProfile(args string) string {
	if args == "" {
		p := r.services.Store.Profile()
		message := fmt.Sprintf("👤 %s", esc(p.Name))
		if p.AvatarURL != "" {
			message += "\n" + esc(p.AvatarURL)
		}
		return message
	}
	r.services.Store.SetProfile(store.ProfilePatch{Name: &args})
	return fmt.Sprintf("👤 Name set to %s", esc(r.services.Store.Profile().Name))
}

func (r *Router) handleReset(args string) string {
	if args != "confirm" {
		return "⚠️ This wipes tasks, habits, books and the log. Send /reset confirm"
	}
	r.services.Store.ResetAll()
	return "🧹 Everything reset"
}

func (r *Router) handlePlan(args string) string {
	p := r.services.Widgets.Planner
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return formatWeek(p.Week())
	}

	if fields[0] == "rm" {
		if len(fields) != 3 {
			return "❌ Usage: /plan rm [day] [n]"
		}
		day, ok := widgets.ParseWeekday(fields[1])
		if !ok {
			return "❌ Unknown day"
		}
		events := p.Day(day)
		i := services.Index(fields[2])
		if i < 0 || i >= len(events) {
			return "❌ No such event"
		}
		p.Remove(events[i].ID)
		return fmt.Sprintf("🗑 Removed: %s", esc(events[i].Title))
	}

	day, ok := widgets.ParseWeekday(fields[0])
	if !ok || len(fields) < 2 {
		return "❌ Usage: /plan [day] [HH:MM] [title]"
	}
	ev := widgets.PlannerEvent{Day: day}
	rest := fields[1:]
	if utils.IsClock(rest[0]) {
		ev.Time, rest = rest[0], rest[1:]
	}
	ev.Title = strings.Join(rest, " ")
	if ev.Title == "" {
		return "❌ Usage: /plan [day] [HH:MM] [title]"
	}
	p.Add(ev)
	return fmt.Sprintf("🗓 %s: %s", widgets.Weekdays[day], esc(ev.Title))
}

func formatWeek(week [][]widgets.PlannerEvent) string {
	var message strings.Builder
	message.WriteString("🗓 <b>This week</b>\n")
	for d, events := range week {
		message.WriteString(fmt.Sprintf("\n<b>%s</b>\n", widgets.Weekdays[d]))
		if len(events) == 0 {
			message.WriteString("  -\n")
			continue
		}
		for i, ev := range events {
			message.WriteString(fmt.Sprintf("  %d. %s %s\n", i+1, ev.Time, esc(ev.Title)))
		}
	}
	return message.String()
}

func (r *Router) handleGoals(string) string {
	goals := r.services.Widgets.Goals.List()
	if len(goals) == 0 {
		return "📭 No goals"
	}
	var message strings.Builder
	message.WriteString("🎯 <b>Goals</b>\n\n")
	for i, g := range goals {
		message.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, utils.CheckMark(g.Done), esc(g.Text)))
	}
	return message.String()
}

func (r *Router) handleGoal(args string) string {
	g := r.services.Widgets.Goals
	if pos, ok := strings.CutPrefix(args, "done "); ok {
		i := services.Index(pos)
		if i < 0 || i >= len(g.List()) {
			return "❌ No such goal. See /goals"
		}
		g.Toggle(i)
		return r.handleGoals("")
	}
	if pos, ok := strings.CutPrefix(args, "rm "); ok {
		i := services.Index(pos)
		if i < 0 || i >= len(g.List()) {
			return "❌ No such goal. See /goals"
		}
		g.Remove(i)
		return r.handleGoals("")
	}
	if args == "" {
		return "❌ Usage: /goal [text]"
	}
	g.Add(args)
	return fmt.Sprintf("🎯 Goal added: %s", esc(args))
}

func (r *Router) handleNotes(args string) string {
	n := r.services.Widgets.Notes
	if args == "" {
		if n.Text() == "" {
			return "📝 No notes"
		}
		return "📝 " + esc(n.Text())
	}
	n.SetText(args)
	return "📝 Notes saved"
}

func (r *Router) handleMoney(args string) string {
	f := r.services.Widgets.Finances
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return formatFinances(f.Entries(), f.Totals())
	}

	if fields[0] == "rm" && len(fields) == 2 {
		i := services.Index(fields[1])
		if i < 0 || i >= len(f.Entries()) {
			return "❌ No such entry"
		}
		f.Remove(i)
		return formatFinances(f.Entries(), f.Totals())
	}

	const usage = "❌ Usage: /money +|- [amount] [description] [cash|card]"
	var kind widgets.EntryKind
	switch fields[0] {
	case "+":
		kind = widgets.Income
	case "-":
		kind = widgets.Expense
	default:
		return usage
	}
	if len(fields) < 3 {
		return usage
	}

	desc := fields[2:]
	method := widgets.Card
	if last := widgets.PaymentMethod(strings.ToLower(desc[len(desc)-1])); len(desc) > 1 && (last == widgets.Cash || last == widgets.Card) {
		method, desc = last, desc[:len(desc)-1]
	}

	before := len(f.Entries())
	f.Add(kind, strings.Join(desc, " "), fields[1], method)
	if len(f.Entries()) == before {
		return usage
	}
	return fmt.Sprintf("💰 Recorded. Balance: %.2f", f.Totals().Balance)
}

func formatFinances(entries []widgets.FinanceEntry, totals widgets.Totals) string {
	var message strings.Builder
	message.WriteString(fmt.Sprintf(
		"💰 <b>Finances</b>\n\n"+
			"⬆️ Income: %.2f\n"+
			"⬇️ Expense: %.2f\n"+
			"⚖️ Balance: %.2f\n",
		totals.Income, totals.Expense, totals.Balance))

	if len(entries) > 10 {
		entries = entries[:10]
	}
	if len(entries) > 0 {
		message.WriteString("\n")
	}
	for i, e := range entries {
		sign := "+"
		if e.Kind == widgets.Expense {
			sign = "-"
		}
		message.WriteString(fmt.Sprintf("%d. %s%.2f %s <i>(%s)</i>\n", i+1, sign, e.Amount, esc(e.Description), e.Method))
	}
	return message.String()
}

func (r *Router) handleSummary(string) string {
	sum := r.services.Analytics.Daily(r.now())
	return fmt.Sprintf(
		"📊 <b>Today %s</b>\n\n"+
			"✅ Tasks done: %d (open: %d)\n"+
			"🔁 Habits checked: %d/%d\n"+
			"📝 Events logged: %d\n\n"+
			"💬 <i>%s</i>",
		sum.Date,
		sum.DoneTasks, sum.OpenTasks,
		sum.CheckedHabits, sum.ActiveHabits,
		sum.Events,
		widgets.Quote(r.now()),
	)
}

func (r *Router) handleWeek(string) string {
	analytics := r.services.Analytics.Weekly(r.now())

	rate := 0.0
	if analytics.TasksCreated > 0 {
		rate = float64(analytics.TasksDone) / float64(analytics.TasksCreated) * 100
	}
	message := fmt.Sprintf(
		"📈 <b>Week %d</b>\n\n"+
			"📅 %s - %s\n\n"+
			"✅ Tasks done: %d/%d (%.0f%%)\n"+
			"📚 Books finished: %d\n"+
			"🌟 Full habit days: %d\n"+
			"📝 Events logged: %d\n",
		analytics.WeekNumber,
		analytics.StartDate,
		analytics.EndDate,
		analytics.TasksDone,
		analytics.TasksCreated,
		rate,
		analytics.BooksCompleted,
		analytics.FullHabitDays,
		analytics.Events,
	)

	if len(analytics.HabitStats) > 0 {
		message += "\n<b>Habits:</b>\n"
		for _, stats := range analytics.HabitStats {
			message += fmt.Sprintf("🔁 %s: %d/%d\n", esc(stats.Label), stats.Checked, stats.Days)
		}
	}

	message += fmt.Sprintf("\n💰 Balance: %.2f\n", analytics.Finances.Balance)

	if analytics.Insights != "" {
		message += fmt.Sprintf("\n<b>💡 Insights:</b>\n%s", esc(analytics.Insights))
	}
	return message
}
