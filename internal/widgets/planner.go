package widgets

import (
	"sort"
	"strings"

	"kikehq/internal/persist"
	"kikehq/internal/storage"
	"kikehq/internal/utils"
)

var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var PlannerColors = []string{"emerald", "sky", "pink", "violet", "amber"}

const defaultEventTime = "08:00"

// PlannerEvent is a recurring weekly slot. Day 0 is Monday.
type PlannerEvent struct {
	ID    string `json:"id"`
	Day   int    `json:"day"`
	Title string `json:"title"`
	Time  string `json:"time"`
	Note  string `json:"note"`
	Color string `json:"color"`
}

type Planner struct {
	slot *persist.Slot[[]PlannerEvent]
	opts Options
}

func NewPlanner(st storage.Storage, o Options) *Planner {
	o = o.withDefaults()
	return &Planner{
		slot: slot(st, KeyPlanner, func() []PlannerEvent { return []PlannerEvent{} }, o),
		opts: o,
	}
}

// Add prepends ev with a fresh id. A blank title or a day outside 0..6
// is ignored; a malformed time becomes 08:00 and a missing color is
// picked from the palette.
func (p *Planner) Add(ev PlannerEvent) {
	ev.Title = strings.TrimSpace(ev.Title)
	if ev.Title == "" || ev.Day < 0 || ev.Day >= len(Weekdays) {
		return
	}
	if !utils.IsClock(ev.Time) {
		ev.Time = defaultEventTime
	}
	if ev.Color == "" {
		ev.Color = PlannerColors[p.opts.Rand(len(PlannerColors))]
	}
	ev.ID = p.opts.NewID()

	p.slot.Update(func(cur []PlannerEvent) ([]PlannerEvent, bool) {
		return append([]PlannerEvent{ev}, cur...), true
	})
}

func (p *Planner) Remove(id string) {
	p.slot.Update(func(cur []PlannerEvent) ([]PlannerEvent, bool) {
		out := make([]PlannerEvent, 0, len(cur))
		for _, e := range cur {
			if e.ID != id {
				out = append(out, e)
			}
		}
		return out, len(out) != len(cur)
	})
}

func (p *Planner) All() []PlannerEvent {
	return cloneSlice(p.slot.Get())
}

// Day returns the events of one weekday ordered by time.
func (p *Planner) Day(day int) []PlannerEvent {
	out := []PlannerEvent{}
	for _, e := range p.slot.Get() {
		if e.Day == day {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

func (p *Planner) Week() [][]PlannerEvent {
	week := make([][]PlannerEvent, len(Weekdays))
	for d := range week {
		week[d] = p.Day(d)
	}
	return week
}

// ParseWeekday reads a day as 1..7 (Monday first) or an English day name
// of at least three letters.
func ParseWeekday(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 && s[0] >= '1' && s[0] <= '7' {
		return int(s[0] - '1'), true
	}
	if len(s) < 3 {
		return 0, false
	}
	for i, name := range Weekdays {
		if strings.HasPrefix(strings.ToLower(name), s) {
			return i, true
		}
	}
	return 0, false
}
