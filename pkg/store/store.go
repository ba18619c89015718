package store

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyKey is returned when a blank key is passed to a Store.
var ErrEmptyKey = errors.New("store: key required")

// Store is a durable key/value store holding serialized JSON documents.
// Implementations must make Set visible to Get once Set returns.
type Store interface {
	// Get returns the value for key. The bool is false when key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}
	return key, nil
}
