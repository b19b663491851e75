package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, ":8008", cfg.Port)
	require.EqualValues(t, 50*1024*1024, cfg.Cache.MaxSizeBytes)
	require.Equal(t, 1000, cfg.Cache.MaxEntries)
	require.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
	require.Equal(t, time.Minute, cfg.Cache.CleanupInterval)
	require.Equal(t, "admin", cfg.Admin.Username)
	require.NoError(t, bcrypt.CompareHashAndPassword(cfg.Admin.PasswordHash, []byte("admin")))
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_MAX_SIZE_MB", "15")
	t.Setenv("CACHE_MAX_ENTRIES", "2")
	t.Setenv("CACHE_DEFAULT_TTL", "90s")
	t.Setenv("CACHE_STATS_INTERVAL", "not-a-duration")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	cfg := Load()

	require.Equal(t, ":9090", cfg.Port)
	require.EqualValues(t, 15*1024*1024, cfg.Cache.MaxSizeBytes)
	require.Equal(t, 2, cfg.Cache.MaxEntries)
	require.Equal(t, 90*time.Second, cfg.Cache.DefaultTTL)
	require.Equal(t, 30*time.Second, cfg.Cache.StatsInterval)
	require.NoError(t, bcrypt.CompareHashAndPassword(cfg.Admin.PasswordHash, []byte("s3cret")))
}
