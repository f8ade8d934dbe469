package slot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend(0)

	s := b.Slot("tab-1")
	data, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, s.Save(ctx, []byte(`{"appointments":[]}`)))

	data, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"appointments":[]}`, string(data))

	other, err := b.Slot("tab-2").Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, other, "sessions do not share slots")
}

func TestMemoryBackendExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	b := NewMemoryBackend(time.Hour)
	b.now = func() time.Time { return now }

	b.Put("tab", "payload")
	now = now.Add(59 * time.Minute)
	data, err := b.Slot("tab").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	now = now.Add(time.Minute)
	data, err = b.Slot("tab").Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryBackendClosed(t *testing.T) {
	b := NewMemoryBackend(0)
	require.NoError(t, b.Close())

	err := b.Slot("tab").Save(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMemoryBackendPurgeExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	b := NewMemoryBackend(time.Hour)
	b.now = func() time.Time { return now }

	var _ Purger = b

	for i := 0; i < 100; i++ {
		b.Put(fmt.Sprintf("tab-%d", i), `{"appointments":[]}`)
	}
	now = now.Add(30 * time.Minute)
	b.Put("fresh", `{"appointments":[]}`)

	n, err := b.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 101, b.Len())

	now = now.Add(48 * time.Hour)
	n, err = b.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(101), n)
	assert.Zero(t, b.Len())
}
