package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/palfi-booking/internal/config"
	"github.com/BruksfildServices01/palfi-booking/internal/slot"
)

func TestOpenBackendMemory(t *testing.T) {
	b, err := openBackend(context.Background(), &config.Config{SlotBackend: "memory", SessionTTL: time.Hour})
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, "memory", b.Name())
	_, ok := b.(slot.Purger)
	assert.True(t, ok, "the memory backend is purged by the registry")
}

func TestOpenBackendRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	b, err := openBackend(context.Background(), &config.Config{
		SlotBackend: "redis",
		RedisAddr:   addr,
		SessionTTL:  time.Hour,
	})
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, "redis", b.Name())

	mr.Close()
	_, err = openBackend(context.Background(), &config.Config{
		SlotBackend: "redis",
		RedisAddr:   addr,
		SessionTTL:  time.Hour,
	})
	assert.Error(t, err)
}
