package redis

import (
	"context"
	"errors"

	app_errors "chat-animation/pkg/errors"

	goredis "github.com/redis/go-redis/v9"
)

// SettingsStore is a key-value store backed by plain Redis strings. Keys are
// written without a TTL; an optional prefix namespaces them per deployment.
type SettingsStore struct {
	client *goredis.Client
	prefix string
}

func NewSettingsStore(client *goredis.Client, prefix string) *SettingsStore {
	return &SettingsStore{client: client, prefix: prefix}
}

func (s *SettingsStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, app_errors.ErrStorageMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *SettingsStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}
