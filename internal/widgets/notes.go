package widgets

import (
	"kikehq/internal/persist"
	"kikehq/internal/storage"
)

// Notes is a single free-text scratchpad stored as plain text.
type Notes struct {
	slot *persist.Slot[string]
}

func NewNotes(st storage.Storage, o Options) *Notes {
	o = o.withDefaults()
	return &Notes{
		slot: slot(st, KeyNotes, func() string { return "" }, o, persist.WithCodec[string](persist.Text{})),
	}
}

func (n *Notes) Text() string { return n.slot.Get() }

func (n *Notes) SetText(s string) {
	n.slot.Update(func(cur string) (string, bool) { return s, s != cur })
}

// Clear removes the notes from storage.
func (n *Notes) Clear() { n.slot.Clear() }
