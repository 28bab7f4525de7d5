package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kikehq/internal/storage"
)

type settings struct {
	Mode  string   `json:"mode"`
	Pins  []string `json:"pins"`
	Level int      `json:"level"`
}

func defaultSettings() settings {
	return settings{Mode: "business", Level: 1}
}

func TestSlot_MissingKeyUsesDefault(t *testing.T) {
	s := New(storage.NewMemory(), "settings", defaultSettings)
	assert.Equal(t, defaultSettings(), s.Get())
}

func TestSlot_UnparsableUsesDefault(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set("settings", "{not json"))

	s := New(mem, "settings", defaultSettings)
	assert.Equal(t, defaultSettings(), s.Get())
}

func TestSlot_PartialValueMergesOverDefault(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set("settings", `{"pins":["a"]}`))

	s := New(mem, "settings", defaultSettings)
	assert.Equal(t, settings{Mode: "business", Pins: []string{"a"}, Level: 1}, s.Get())
}

func TestSlot_SetWritesThrough(t *testing.T) {
	mem := storage.NewMemory()
	s := New(mem, "settings", defaultSettings)

	s.Set(settings{Mode: "personal", Level: 3})

	raw, ok, err := mem.Get("settings")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"mode":"personal","pins":null,"level":3}`, raw)

	reloaded := New(mem, "settings", defaultSettings)
	assert.Equal(t, s.Get(), reloaded.Get())
}

func TestSlot_UpdateSkipsUnchanged(t *testing.T) {
	mem := storage.NewMemory()
	writes := 0
	s := New(mem, "settings", defaultSettings, WithWriteHook[settings](func(error) { writes++ }))

	s.Update(func(cur settings) (settings, bool) { return cur, false })
	assert.Equal(t, 0, writes)
	_, ok, _ := mem.Get("settings")
	assert.False(t, ok)

	s.Update(func(cur settings) (settings, bool) {
		cur.Level++
		return cur, true
	})
	assert.Equal(t, 1, writes)
	assert.Equal(t, 2, s.Get().Level)
}

func TestSlot_WriteFailureKeepsMemory(t *testing.T) {
	mem := storage.NewMemory()
	mem.FailWrites = true

	var lastErr error
	s := New(mem, "settings", defaultSettings, WithWriteHook[settings](func(err error) { lastErr = err }))
	s.Set(settings{Mode: "personal"})

	assert.Error(t, lastErr)
	assert.Equal(t, "personal", s.Get().Mode)
}

func TestSlot_TextCodec(t *testing.T) {
	mem := storage.NewMemory()
	notes := New(mem, "notes", func() string { return "" }, WithCodec[string](Text{}))
	notes.Set("plain {not json}")

	raw, _, _ := mem.Get("notes")
	assert.Equal(t, "plain {not json}", raw)
	assert.Equal(t, "plain {not json}", New(mem, "notes", func() string { return "" }, WithCodec[string](Text{})).Get())
}

func TestSlot_ClosedStorageFallsBack(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set("settings", `{"mode":"personal"}`))
	require.NoError(t, mem.Close())

	s := New(mem, "settings", defaultSettings)
	assert.Equal(t, "business", s.Get().Mode)
}

func TestSlot_ClearRemovesKey(t *testing.T) {
	mem := storage.NewMemory()
	s := New(mem, "settings", defaultSettings)
	s.Set(settings{Mode: "personal", Level: 5})

	s.Clear()
	assert.Equal(t, defaultSettings(), s.Get())
	_, ok, err := mem.Get("settings")
	require.NoError(t, err)
	assert.False(t, ok)
}
