package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SLOT_BACKEND", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "memory", cfg.SlotBackend)
	assert.Equal(t, "palfi", cfg.AdminPassword)
	assert.Equal(t, 5*time.Second, cfg.FeedbackDismiss)
	assert.Equal(t, 3*time.Second, cfg.AdminFeedbackDismiss)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Len(t, cfg.JWTSecret, 64)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SLOT_BACKEND", "redis")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ALLOWED_ORIGINS", "https://palfi.hu, ,https://www.palfi.hu")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "redis", cfg.SlotBackend)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"https://palfi.hu", "https://www.palfi.hu"}, cfg.AllowedOrigins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"backend":  {"SLOT_BACKEND", "sqlite"},
		"duration": {"FEEDBACK_DISMISS", "five"},
		"int":      {"REDIS_DB", "x"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
