package store

import (
	"context"
)

// Reserved keys that live next to item entries but are never entries themselves.
const (
	DataVersionKey = "DATA_VERSION"
	ModeKey        = "tracker-mode"
)

// Store is a flat namespace of string keys holding string values.
// It performs no validation; values are passed through untouched.
type Store interface {
	// Read returns the raw value for key, or an error wrapping ErrNotFound
	// when the key is absent.
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys returns every key in ascending order.
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
	Close() error
}

// IsReserved reports whether key is a bookkeeping key rather than an item entry.
func IsReserved(key string) bool {
	return key == DataVersionKey || key == ModeKey
}
