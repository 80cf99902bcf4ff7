package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Key pattern: ratelimit:{client}:writes, expiring with the window.

type RateLimitConfig struct {
	WriteLimit  int           // Max mutating requests per window
	WriteWindow time.Duration // Window length
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		WriteLimit:  30,
		WriteWindow: 60 * time.Second,
	}
}

// RateLimiter throttles settings writes using Redis counters.
type RateLimiter struct {
	client *goredis.Client
	config RateLimitConfig
}

type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
	Limit     int
}

func NewRateLimiter(client *goredis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
	}
}

var rateLimitScript = goredis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = redis.call('GET', key)
	if current == false then
		current = 0
	else
		current = tonumber(current)
	end

	local ttl = redis.call('TTL', key)

	if current < limit then
		redis.call('INCR', key)
		if current == 0 or ttl < 0 then
			redis.call('EXPIRE', key, window)
			ttl = window
		end
		return {1, limit - current - 1, ttl}
	end

	if ttl < 0 then
		ttl = window
	end
	return {0, 0, ttl}
`)

// AllowWrite checks if a client may perform another mutating request.
func (r *RateLimiter) AllowWrite(ctx context.Context, clientID string) (*RateLimitResult, error) {
	key := fmt.Sprintf("ratelimit:%s:writes", clientID)
	return r.checkLimit(ctx, key, r.config.WriteLimit, r.config.WriteWindow)
}

func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	result, err := rateLimitScript.Run(ctx, r.client, []string{key}, limit, int(window.Seconds())).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	resultSlice, ok := result.([]interface{})
	if !ok || len(resultSlice) < 3 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	allowed, _ := resultSlice[0].(int64)
	remaining, _ := resultSlice[1].(int64)
	ttl, _ := resultSlice[2].(int64)

	return &RateLimitResult{
		Allowed:   allowed == 1,
		Remaining: int(remaining),
		ResetIn:   time.Duration(ttl) * time.Second,
		Limit:     limit,
	}, nil
}

// Reset clears the counter for a client.
func (r *RateLimiter) Reset(ctx context.Context, clientID string) error {
	return r.client.Del(ctx, fmt.Sprintf("ratelimit:%s:writes", clientID)).Err()
}
