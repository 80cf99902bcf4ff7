package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "", cfg.StoreBackend)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 900, cfg.S3PresignTTLSec)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("EXPORT_DIR", "/tmp/exports")

	cfg := LoadConfig()
	assert.Equal(t, StoreRedis, cfg.StoreBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
}
