package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port   string
	DBPath string

	Cache CacheConfig
	JWT   JWTConfig
	Admin AdminConfig
}

// CacheConfig sizes the performance cache and its maintenance loop.
type CacheConfig struct {
	MaxSizeBytes    int64
	MaxEntries      int
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
	StatsInterval   time.Duration
}

// JWTConfig configures token signing for the admin endpoints.
type JWTConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// AdminConfig is the single operator account allowed to mutate the cache.
type AdminConfig struct {
	Username     string
	PasswordHash []byte
}

// Load reads the configuration from environment variables, falling back to
// development defaults for anything unset or unparsable.
func Load() Config {
	return Config{
		Port:   ":" + getEnv("PORT", "8008"),
		DBPath: getEnv("DB_PATH", "clinic-directory.db"),
		Cache: CacheConfig{
			MaxSizeBytes:    int64(getEnvInt("CACHE_MAX_SIZE_MB", 50)) * 1024 * 1024,
			MaxEntries:      getEnvInt("CACHE_MAX_ENTRIES", 1000),
			DefaultTTL:      getEnvDuration("CACHE_DEFAULT_TTL", 5*time.Minute),
			CleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", 60*time.Second),
			StatsInterval:   getEnvDuration("CACHE_STATS_INTERVAL", 30*time.Second),
		},
		JWT: JWTConfig{
			Secret:   []byte(getEnv("JWT_SECRET", "development-insecure-secret-change-me")),
			Issuer:   getEnv("JWT_ISSUER", "clinic-perf-cache"),
			Audience: getEnv("JWT_AUDIENCE", "clinic-perf-cache-operators"),
			TTL:      getEnvDuration("JWT_TTL", 24*time.Hour),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: hashPassword(getEnv("ADMIN_PASSWORD", "admin")),
		},
	}
}

func hashPassword(pw string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password: ", err)
	}
	return hash
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
