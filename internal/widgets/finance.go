package widgets

import (
	"math"
	"strconv"
	"strings"

	"kikehq/internal/persist"
	"kikehq/internal/storage"
)

type EntryKind string

const (
	Income  EntryKind = "income"
	Expense EntryKind = "expense"
)

type PaymentMethod string

const (
	Cash PaymentMethod = "cash"
	Card PaymentMethod = "card"
)

type FinanceEntry struct {
	Kind        EntryKind     `json:"kind"`
	Description string        `json:"description"`
	Amount      float64       `json:"amount"`
	Method      PaymentMethod `json:"method"`
}

type Totals struct {
	Income  float64
	Expense float64
	Balance float64
}

type Finances struct {
	slot *persist.Slot[[]FinanceEntry]
}

func NewFinances(st storage.Storage, o Options) *Finances {
	o = o.withDefaults()
	return &Finances{slot: slot(st, KeyFinances, func() []FinanceEntry { return []FinanceEntry{} }, o)}
}

// Add prepends an entry. amount is parsed as a decimal; a blank
// description, an unparsable or non-finite amount, or an unknown kind or
// method is ignored. Empty kind and method default to income and card.
func (f *Finances) Add(kind EntryKind, description, amount string, method PaymentMethod) {
	description = strings.TrimSpace(description)
	if description == "" {
		return
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return
	}
	if kind == "" {
		kind = Income
	}
	if method == "" {
		method = Card
	}
	if (kind != Income && kind != Expense) || (method != Cash && method != Card) {
		return
	}

	e := FinanceEntry{Kind: kind, Description: description, Amount: val, Method: method}
	f.slot.Update(func(cur []FinanceEntry) ([]FinanceEntry, bool) {
		return append([]FinanceEntry{e}, cur...), true
	})
}

func (f *Finances) Remove(i int) {
	f.slot.Update(func(cur []FinanceEntry) ([]FinanceEntry, bool) {
		if i < 0 || i >= len(cur) {
			return cur, false
		}
		out := make([]FinanceEntry, 0, len(cur)-1)
		out = append(out, cur[:i]...)
		return append(out, cur[i+1:]...), true
	})
}

// Entries are newest first.
func (f *Finances) Entries() []FinanceEntry {
	return cloneSlice(f.slot.Get())
}

func (f *Finances) Totals() Totals {
	var t Totals
	for _, e := range f.slot.Get() {
		switch e.Kind {
		case Income:
			t.Income += e.Amount
		case Expense:
			t.Expense += e.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}
