package widgets

import (
	"strings"
	"time"

	"kikehq/internal/persist"
	"kikehq/internal/storage"
	"kikehq/internal/utils"
)

type DailyTask struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// DailyTasks is a to-do list that only lives for the day it was written
// on. The date it belongs to is kept under its own key.
type DailyTasks struct {
	tasks *persist.Slot[[]DailyTask]
	date  *persist.Slot[string]
	now   func() time.Time
}

// NewDailyTasks drops a list left over from an earlier day.
func NewDailyTasks(st storage.Storage, o Options) *DailyTasks {
	o = o.withDefaults()
	d := &DailyTasks{
		tasks: slot(st, KeyDailyTasks, func() []DailyTask { return []DailyTask{} }, o),
		date:  slot(st, KeyDailyDate, func() string { return "" }, o, persist.WithCodec[string](persist.Text{})),
		now:   o.Now,
	}
	if date := d.date.Get(); date != "" && date != d.today() {
		d.tasks.Clear()
		d.date.Clear()
	}
	return d
}

func (d *DailyTasks) today() string { return utils.DateKey(d.now()) }

// current returns the list if it belongs to today.
func (d *DailyTasks) current(list []DailyTask) []DailyTask {
	if d.date.Get() != d.today() {
		return nil
	}
	return list
}

func (d *DailyTasks) List() []DailyTask {
	return cloneSlice(d.current(d.tasks.Get()))
}

func (d *DailyTasks) Add(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	d.tasks.Update(func(cur []DailyTask) ([]DailyTask, bool) {
		return append(append([]DailyTask(nil), d.current(cur)...), DailyTask{Text: text}), true
	})
	d.date.Set(d.today())
}

func (d *DailyTasks) Toggle(i int) {
	changed := false
	d.tasks.Update(func(cur []DailyTask) ([]DailyTask, bool) {
		list := d.current(cur)
		if i < 0 || i >= len(list) {
			return cur, false
		}
		out := append([]DailyTask(nil), list...)
		out[i].Done = !out[i].Done
		changed = true
		return out, true
	})
	if changed {
		d.date.Set(d.today())
	}
}
