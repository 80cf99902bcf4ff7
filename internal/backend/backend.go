// Package backend opens the key-value store selected by STORE_BACKEND along
// with the pieces that come with it.
package backend

import (
	"context"
	"fmt"
	"time"

	"chat-animation/config"
	"chat-animation/internal/events"
	"chat-animation/internal/redis"
	"chat-animation/internal/repository"
	"chat-animation/pkg/database"

	goredis "github.com/redis/go-redis/v9"
)

type Backend struct {
	Store repository.KeyValueStore
	// Publisher is Redis pub/sub on the redis backend, otherwise the local
	// publisher passed to Open.
	Publisher  events.Publisher
	Subscriber events.Subscriber
	Limiter    *redis.RateLimiter
	Health     func(ctx context.Context) error
	Close      func()
}

// Open connects to the configured store. local receives settings events
// when the store cannot carry them; it may be nil.
func Open(ctx context.Context, cfg *config.Config, local events.Publisher) (*Backend, error) {
	if local == nil {
		local = events.NopPublisher{}
	}

	switch cfg.StoreBackend {
	case config.StoreRedis:
		client, err := connectRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b := withRedis(&Backend{Store: redis.NewSettingsStore(client, cfg.RedisKeyPrefix)}, client, cfg)
		b.Close = func() { _ = client.Close() }
		return b, nil

	case config.StorePostgres:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureKeyValueSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		b := &Backend{
			Store:     repository.NewPostgresKeyValueStore(db),
			Publisher: local,
			Health:    func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
			Close:     func() { _ = db.Close() },
		}
		if !cfg.SettingsCache {
			return b, nil
		}

		client, err := connectRedis(ctx, cfg)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		b = withRedis(b, client, cfg)
		b.Store = redis.NewCachedStore(client, b.Store, redis.CacheConfig{
			Prefix: cfg.RedisKeyPrefix,
			TTL:    time.Duration(cfg.SettingsCacheTTLSec) * time.Second,
		})
		b.Close = func() {
			_ = client.Close()
			_ = db.Close()
		}
		return b, nil

	case config.StoreMemory, "":
		return &Backend{
			Store:     repository.NewMemoryKeyValueStore(),
			Publisher: local,
			Close:     func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func connectRedis(ctx context.Context, cfg *config.Config) (*goredis.Client, error) {
	client := redis.Initialize(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redis.Ping(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// withRedis routes events and write throttling through Redis so every
// instance sharing the store sees them.
func withRedis(b *Backend, client *goredis.Client, cfg *config.Config) *Backend {
	b.Publisher = redis.NewPublisher(client)
	b.Subscriber = redis.NewSubscriber(client)
	limits := redis.DefaultRateLimitConfig()
	if cfg.WriteRateLimit > 0 {
		limits.WriteLimit = cfg.WriteRateLimit
	}
	b.Limiter = redis.NewRateLimiter(client, limits)
	if b.Health == nil {
		b.Health = func(ctx context.Context) error { return redis.Ping(ctx, client) }
	}
	return b
}
