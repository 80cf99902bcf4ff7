package backend

import (
	"context"
	"testing"

	"chat-animation/config"
	"chat-animation/internal/events"
	"chat-animation/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	b, err := Open(context.Background(), &config.Config{StoreBackend: config.StoreMemory}, nil)
	require.NoError(t, err)
	defer b.Close()

	assert.IsType(t, &repository.MemoryKeyValueStore{}, b.Store)
	assert.Equal(t, events.NopPublisher{}, b.Publisher)
	assert.Nil(t, b.Subscriber)
	assert.Nil(t, b.Limiter)
	assert.Nil(t, b.Health)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreBackend: "etcd"}, nil)
	assert.ErrorContains(t, err, "etcd")
}

func TestOpen_Redis(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	b, err := Open(ctx, &config.Config{
		StoreBackend:   config.StoreRedis,
		RedisHost:      srv.Host(),
		RedisPort:      srv.Port(),
		RedisKeyPrefix: "anim:",
		WriteRateLimit: 5,
	}, nil)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Store.Set(ctx, "ChatAnimationSettingsForSmallType", []byte("{}")))
	assert.True(t, srv.Exists("anim:ChatAnimationSettingsForSmallType"))
	assert.NotNil(t, b.Subscriber)
	assert.NotNil(t, b.Limiter)
	assert.NoError(t, b.Health(ctx))
}
