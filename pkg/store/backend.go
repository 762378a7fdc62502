package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Backend.Get for a missing key.
var ErrNotFound = errors.New("store: key not found")

// Backend is a flat string-keyed byte store.
type Backend interface {
	Keys(ctx context.Context) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Replace swaps the whole contents for entries. It either fully applies
	// or leaves the previous contents in place.
	Replace(ctx context.Context, entries map[string][]byte) error
	Close() error
}
