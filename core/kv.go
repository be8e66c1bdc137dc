package core

import "context"

// KVStore is any durable key-value store. The session store persists the
// authenticated user record through it so the in-memory dev store can be
// swapped for redis without touching domain logic.
//
// Get returns (nil, nil) when the key is absent; a missing key is not an error.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
