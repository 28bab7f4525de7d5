package persist

import (
	"encoding/json"
	"fmt"
)

type Codec[T any] interface {
	Encode(v T) (string, error)
	Decode(raw string, into *T) error
}

type JSON[T any] struct{}

func (JSON[T]) Encode(v T) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return string(b), nil
}

func (JSON[T]) Decode(raw string, into *T) error {
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Text stores a string as-is.
type Text struct{}

func (Text) Encode(v string) (string, error) { return v, nil }

func (Text) Decode(raw string, into *string) error {
	*into = raw
	return nil
}
