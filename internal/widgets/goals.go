package widgets

import (
	"strings"

	"kikehq/internal/persist"
	"kikehq/internal/storage"
)

type Goal struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Goals are addressed by their position in the list.
type Goals struct {
	slot *persist.Slot[[]Goal]
}

func NewGoals(st storage.Storage, o Options) *Goals {
	o = o.withDefaults()
	return &Goals{slot: slot(st, KeyGoals, func() []Goal { return []Goal{} }, o)}
}

func (g *Goals) Add(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	g.slot.Update(func(cur []Goal) ([]Goal, bool) {
		return append(append([]Goal(nil), cur...), Goal{Text: text}), true
	})
}

func (g *Goals) Toggle(i int) {
	g.slot.Update(func(cur []Goal) ([]Goal, bool) {
		if i < 0 || i >= len(cur) {
			return cur, false
		}
		out := append([]Goal(nil), cur...)
		out[i].Done = !out[i].Done
		return out, true
	})
}

func (g *Goals) Remove(i int) {
	g.slot.Update(func(cur []Goal) ([]Goal, bool) {
		if i < 0 || i >= len(cur) {
			return cur, false
		}
		out := make([]Goal, 0, len(cur)-1)
		out = append(out, cur[:i]...)
		return append(out, cur[i+1:]...), true
	})
}

func (g *Goals) List() []Goal {
	return cloneSlice(g.slot.Get())
}
