// Package storage persists the client's few durable keys (session tokens,
// user record, active pet) in an embedded SQLite database.
//
// Each key has exactly one writing store; everything else reads through that
// store's in-memory snapshot, never through this package directly.
package storage

import "context"

// Repository is a small key/value store over the state table.
//
// Get returns (nil, nil) when the key is absent, so callers can distinguish
// "missing" from real failures without a sentinel.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
