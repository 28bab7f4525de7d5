package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]func() Storage {
	t.Helper()
	return map[string]func() Storage{
		"memory": func() Storage { return NewMemory() },
		"sqlite": func() Storage {
			s, err := NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
			require.NoError(t, err)
			return s
		},
		"badger": func() Storage {
			s, err := NewBadgerInMemory()
			require.NoError(t, err)
			return s
		},
	}
}

func TestStorage_RoundTrip(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()

			_, ok, err := s.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("notes", "héllo ✔"))
			v, ok, err := s.Get("notes")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "héllo ✔", v)

			require.NoError(t, s.Set("notes", "second"))
			v, _, err = s.Get("notes")
			require.NoError(t, err)
			assert.Equal(t, "second", v)

			require.NoError(t, s.Remove("notes"))
			_, ok, err = s.Get("notes")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStorage_ClosedRejectsWrites(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			require.NoError(t, s.Close())
			assert.ErrorIs(t, s.Set("k", "v"), ErrClosed)
			require.NoError(t, s.Close())
		})
	}
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("kikehq-store", `{"theme":"oldmoney-light"}`))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("kikehq-store")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"theme":"oldmoney-light"}`, v)
}

func TestBadger_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	b, err := NewBadger(dir)
	require.NoError(t, err)
	require.NoError(t, b.Set("goals", `[]`))
	require.NoError(t, b.Close())

	b, err = NewBadger(dir)
	require.NoError(t, err)
	defer b.Close()

	v, ok, err := b.Get("goals")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("postgres", "")
	assert.Error(t, err)

	s, err := Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)
}

func TestMemory_FailWrites(t *testing.T) {
	m := NewMemory()
	m.FailWrites = true
	assert.Error(t, m.Set("k", "v"))
	_, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}
