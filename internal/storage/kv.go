// Package storage is the typed persistence layer for the hub's state blobs
// (history, readiness, badges, leaderboard, streak, tracker). Every key is an
// independent JSON document; absence and corruption both degrade to a caller
// supplied default so no stateful component ever fails a read.
package storage

import (
	"context"
	"encoding/json"
)

// Store is a raw blob store keyed by name.
type Store interface {
	// Get returns the stored blob and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set persists the blob, replacing any prior value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key; deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

// Get reads and decodes the value at key. A missing key, a backend read
// failure, or an undecodable blob all yield fallback.
func Get[T any](ctx context.Context, s Store, key string, fallback T) T {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback
	}
	return v
}

// Set encodes and persists value at key.
func Set[T any](ctx context.Context, s Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
