package services

import (
	"fmt"
	"strings"
	"time"

	"kikehq/internal/store"
	"kikehq/internal/utils"
	"kikehq/internal/widgets"
)

// HabitStat is one active habit's checks over a week. Labels may repeat,
// so the id identifies the habit.
type HabitStat struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked int    `json:"checked"`
	Days    int    `json:"days"`
}

type WeeklyAnalytics struct {
	WeekNumber     int                  `json:"week_number"`
	StartDate      string               `json:"start_date"`
	EndDate        string               `json:"end_date"`
	TasksCreated   int                  `json:"tasks_created"`
	TasksDone      int                  `json:"tasks_done"`
	HabitStats     []HabitStat          `json:"habit_stats"`
	BooksCompleted int                  `json:"books_completed"`
	FullHabitDays  int                  `json:"full_habit_days"`
	Events         int                  `json:"events"`
	Finances       widgets.Totals       `json:"finances"`
	Insights       string               `json:"insights"`
}

type DailySummary struct {
	Date          string `json:"date"`
	OpenTasks     int    `json:"open_tasks"`
	DoneTasks     int    `json:"done_tasks"`
	ActiveHabits  int    `json:"active_habits"`
	CheckedHabits int    `json:"checked_habits"`
	Events        int    `json:"events"`
}

type AnalyticsService struct {
	store   *store.Store
	widgets *widgets.Set
}

func NewAnalyticsService(st *store.Store, w *widgets.Set) *AnalyticsService {
	return &AnalyticsService{store: st, widgets: w}
}

func (as *AnalyticsService) Daily(now time.Time) DailySummary {
	today := utils.DateKey(now)
	sum := DailySummary{Date: today}

	for _, t := range as.store.Tasks() {
		if t.Done {
			sum.DoneTasks++
		} else {
			sum.OpenTasks++
		}
	}

	checks := as.store.HabitChecksOn(today)
	for _, h := range as.store.Habits() {
		if !h.Active {
			continue
		}
		sum.ActiveHabits++
		if checks[h.ID] {
			sum.CheckedHabits++
		}
	}

	for _, ev := range as.store.Progress(0) {
		if utils.DateKey(ev.Timestamp) == today {
			sum.Events++
		}
	}
	return sum
}

// PendingHabits lists active habits not checked on now's date.
func (as *AnalyticsService) PendingHabits(now time.Time) []store.Habit {
	checks := as.store.HabitChecksOn(utils.DateKey(now))
	out := []store.Habit{}
	for _, h := range as.store.Habits() {
		if h.Active && !checks[h.ID] {
			out = append(out, h)
		}
	}
	return out
}

func (as *AnalyticsService) Weekly(now time.Time) *WeeklyAnalytics {
	year, week := now.UTC().ISOWeek()
	start := utils.FirstDayOfISOWeek(year, week)
	end := start.AddDate(0, 0, 6)
	startKey, endKey := start.Format(utils.DateLayout), end.Format(utils.DateLayout)
	inWeek := func(date string) bool { return date >= startKey && date <= endKey }

	a := &WeeklyAnalytics{
		WeekNumber: week,
		StartDate:  startKey,
		EndDate:    endKey,
		HabitStats: []HabitStat{},
	}

	for _, t := range as.store.Tasks() {
		if inWeek(utils.DateKey(t.CreatedAt)) {
			a.TasksCreated++
			if t.Done {
				a.TasksDone++
			}
		}
	}

	pos := make(map[string]int)
	for _, h := range as.store.Habits() {
		if h.Active {
			pos[h.ID] = len(a.HabitStats)
			a.HabitStats = append(a.HabitStats, HabitStat{ID: h.ID, Label: h.Label, Days: 7})
		}
	}
	for _, c := range as.store.HabitChecks() {
		i, ok := pos[c.HabitID]
		if !ok || !c.Value || !inWeek(c.Date) {
			continue
		}
		a.HabitStats[i].Checked++
	}

	for _, b := range as.store.BooksByStatus(store.BookCompleted) {
		if end, ok := utils.ParseDate(b.EndDate); ok && inWeek(utils.DateKey(end)) {
			a.BooksCompleted++
		}
	}

	for _, ev := range as.store.Progress(0) {
		if inWeek(utils.DateKey(ev.Timestamp)) {
			a.Events++
		}
	}

	if as.widgets != nil {
		for _, d := range utils.WeekDays(start) {
			if as.widgets.Personal.FullDay(d) {
				a.FullHabitDays++
			}
		}
		a.Finances = as.widgets.Finances.Totals()
	}

	a.Insights = as.generateInsights(a)
	return a
}

// generateInsights returns plain text; callers rendering HTML escape it.
func (as *AnalyticsService) generateInsights(a *WeeklyAnalytics) string {
	var insights []string

	if a.TasksCreated > 0 {
		rate := float64(a.TasksDone) / float64(a.TasksCreated) * 100
		if rate < 50 {
			insights = append(insights, "💪 More focus on finishing tasks")
		} else if rate > 80 {
			insights = append(insights, "🎯 Great week, keep it going")
		} else {
			insights = append(insights, "📈 Good progress, room to grow")
		}
	}

	for _, stat := range a.HabitStats {
		rate := float64(stat.Checked) / float64(stat.Days) * 100
		if rate < 40 {
			insights = append(insights, fmt.Sprintf("⚠️ %s needs attention: %.0f%% of days", stat.Label, rate))
		}
	}

	if a.BooksCompleted > 0 {
		insights = append(insights, fmt.Sprintf("📚 %d book(s) finished", a.BooksCompleted))
	}

	if a.Finances.Balance < 0 {
		insights = append(insights, "💸 Expenses exceed income")
	}

	if len(insights) == 0 {
		return "📊 Not enough data yet. Keep tracking!"
	}

	return strings.Join(insights, "\n")
}
