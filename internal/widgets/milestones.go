package widgets

import (
	"math"
	"strings"

	"kikehq/internal/persist"
	"kikehq/internal/storage"
)

type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneDone       MilestoneStatus = "done"
)

func (s MilestoneStatus) Valid() bool {
	return s == MilestonePending || s == MilestoneInProgress || s == MilestoneDone
}

type Milestone struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	Status      MilestoneStatus `json:"status"`
}

func defaultMilestones() []Milestone {
	return []Milestone{
		{ID: "1", Title: "Project kickoff", Date: "2025-09-20", Status: MilestoneDone,
			Description: "Base repo structure and conventions."},
		{ID: "2", Title: "Reading module", Date: "2025-10-09", Status: MilestoneDone,
			Description: "List, read/pending status and details."},
		{ID: "3", Title: "Progress timeline", Date: "2025-10-11", Status: MilestoneInProgress,
			Description: "Vertical view with milestones and completion."},
		{ID: "4", Title: "Metrics and insights", Date: "2025-10-14", Status: MilestonePending,
			Description: "KPIs and trend cards."},
	}
}

type Milestones struct {
	slot *persist.Slot[[]Milestone]
}

func NewMilestones(st storage.Storage, o Options) *Milestones {
	o = o.withDefaults()
	return &Milestones{slot: slot(st, KeyMilestones, defaultMilestones, o)}
}

func (m *Milestones) List() []Milestone {
	return cloneSlice(m.slot.Get())
}

func (m *Milestones) SetStatus(id string, status MilestoneStatus) {
	if !status.Valid() {
		return
	}
	m.slot.Update(func(cur []Milestone) ([]Milestone, bool) {
		for i := range cur {
			if cur[i].ID == id && cur[i].Status != status {
				out := append([]Milestone(nil), cur...)
				out[i].Status = status
				return out, true
			}
		}
		return cur, false
	})
}

// Completion is the rounded percentage of done milestones, 0 for an
// empty list.
func (m *Milestones) Completion() int {
	list := m.slot.Get()
	if len(list) == 0 {
		return 0
	}
	done := 0
	for _, ms := range list {
		if ms.Status == MilestoneDone {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(list)) * 100))
}

// Next is the first in-progress milestone, else the first pending one.
func (m *Milestones) Next() (Milestone, bool) {
	list := m.slot.Get()
	for _, want := range []MilestoneStatus{MilestoneInProgress, MilestonePending} {
		for _, ms := range list {
			if ms.Status == want {
				return ms, true
			}
		}
	}
	return Milestone{}, false
}

type ProjectTask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tag   string `json:"tag,omitempty"`
	Done  bool   `json:"done"`
}

func defaultProjectTasks() []ProjectTask {
	return []ProjectTask{
		{ID: "t1", Title: "Define the progress data schema", Tag: "Progress", Done: true},
		{ID: "t2", Title: "Sync state with backend (mock)", Tag: "Integration"},
		{ID: "t3", Title: "Final design of metric cards", Tag: "UI"},
		{ID: "t4", Title: "Keyboard accessibility QA", Tag: "A11y"},
	}
}

type ProjectTasks struct {
	slot  *persist.Slot[[]ProjectTask]
	newID func() string
}

func NewProjectTasks(st storage.Storage, o Options) *ProjectTasks {
	o = o.withDefaults()
	return &ProjectTasks{
		slot:  slot(st, KeyProjectTasks, defaultProjectTasks, o),
		newID: o.NewID,
	}
}

func (p *ProjectTasks) List() []ProjectTask {
	return cloneSlice(p.slot.Get())
}

func (p *ProjectTasks) Add(title, tag string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	t := ProjectTask{ID: p.newID(), Title: title, Tag: strings.TrimSpace(tag)}
	p.slot.Update(func(cur []ProjectTask) ([]ProjectTask, bool) {
		return append(append([]ProjectTask(nil), cur...), t), true
	})
}

func (p *ProjectTasks) Toggle(id string) {
	p.slot.Update(func(cur []ProjectTask) ([]ProjectTask, bool) {
		for i := range cur {
			if cur[i].ID == id {
				out := append([]ProjectTask(nil), cur...)
				out[i].Done = !out[i].Done
				return out, true
			}
		}
		return cur, false
	})
}
