package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	AppPort string
	AppMode string
	LogMode string

	StoreBackend string

	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// SettingsCache puts a Redis cache in front of the postgres store.
	SettingsCache       bool
	SettingsCacheTTLSec int

	// ExportDir overrides the Documents directory used for file exports.
	ExportDir string

	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignTTLSec int

	JWTSecret string

	WriteRateLimit int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:             getEnv("APP_PORT", "8080"),
		AppMode:             getEnv("APP_MODE", "debug"),
		LogMode:             getEnv("LOG_MODE", "development"),
		StoreBackend:        strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
		RedisHost:           getEnv("REDIS_HOST", "localhost"),
		RedisPort:           getEnv("REDIS_PORT", "6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		RedisKeyPrefix:      getEnv("REDIS_KEY_PREFIX", "anim:"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "chat_animation"),
		DBPort:              getEnv("DB_PORT", "5432"),
		SettingsCache:       getEnvAsBool("SETTINGS_CACHE", false),
		SettingsCacheTTLSec: getEnvAsInt("SETTINGS_CACHE_TTL_SEC", 300),
		ExportDir:           getEnv("EXPORT_DIR", ""),
		S3Region:            getEnv("S3_REGION", "us-east-1"),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3AccessKey:         getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:         getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:          getEnv("S3_ENDPOINT", ""),
		S3PresignTTLSec:     getEnvAsInt("S3_PRESIGN_TTL_SEC", 900),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		WriteRateLimit:      getEnvAsInt("WRITE_RATE_LIMIT", 30),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
