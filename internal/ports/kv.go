package ports

import (
	"context"
	"errors"
)

// KV errors returned by backend implementations.
var (
	// ErrKeyNotFound is returned by Get when the key has never been written.
	ErrKeyNotFound = errors.New("key not found")
	// ErrCapacityExceeded is returned by Set when a write would exceed the
	// backend's configured byte budget.
	ErrCapacityExceeded = errors.New("storage capacity exceeded")
)

// KV is the durable key-value backend the store persists into. Values are
// opaque serialized records; the store owns the encoding.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
