package redis

import (
	"context"
	"errors"
	"time"

	"chat-animation/internal/repository"

	goredis "github.com/redis/go-redis/v9"
)

// Cache key pattern: {prefix}cache:{storage key}, expiring after TTL.

type CacheConfig struct {
	Prefix string
	TTL    time.Duration
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Prefix: "anim:",
		TTL:    5 * time.Minute,
	}
}

// CachedStore is a read-through, write-through Redis cache in front of a
// slower key-value store. Cache failures fall through to the backing store.
type CachedStore struct {
	client  *goredis.Client
	backing repository.KeyValueStore
	config  CacheConfig
}

func NewCachedStore(client *goredis.Client, backing repository.KeyValueStore, config CacheConfig) *CachedStore {
	return &CachedStore{
		client:  client,
		backing: backing,
		config:  config,
	}
}

func (c *CachedStore) cacheKey(key string) string {
	return c.config.Prefix + "cache:" + key
}

func (c *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.cacheKey(key)).Bytes()
	if err == nil {
		return data, nil
	}

	if !errors.Is(err, goredis.Nil) {
		// Redis is unavailable; serve from the backing store.
		return c.backing.Get(ctx, key)
	}

	data, err = c.backing.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = c.client.Set(ctx, c.cacheKey(key), data, c.config.TTL).Err()
	return data, nil
}

// Set writes the backing store first; the cache only ever holds values the
// backing store accepted.
func (c *CachedStore) Set(ctx context.Context, key string, value []byte) error {
	if err := c.backing.Set(ctx, key, value); err != nil {
		c.client.Del(ctx, c.cacheKey(key))
		return err
	}
	_ = c.client.Set(ctx, c.cacheKey(key), value, c.config.TTL).Err()
	return nil
}

// Invalidate drops the cached copy of key.
func (c *CachedStore) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.cacheKey(key)).Err()
}
