package repository

import (
	"context"
)

// KeyValueStore persists opaque blobs under string keys. Get returns
// app_errors.ErrStorageMiss when the key has never been written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
