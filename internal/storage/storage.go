// Package storage holds the key-value backends every state slice is
// persisted to. Values are UTF-8 text; the caller picks the encoding.
package storage

import (
	"errors"
	"fmt"
)

var ErrClosed = errors.New("storage closed")

// Storage is a string-keyed text store. Get reports ok=false for a key
// that was never written or has been removed.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendBadger Backend = "badger"
	BackendMemory Backend = "memory"
)

// Open picks a backend by name. path is a file for sqlite and a
// directory for badger; memory ignores it.
func Open(backend Backend, path string) (Storage, error) {
	switch backend {
	case BackendSQLite, "":
		return NewSQLite(path)
	case BackendBadger:
		return NewBadger(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
