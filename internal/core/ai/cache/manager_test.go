package cache

import (
	"context"
	"testing"
	"time"

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager(testConfig(10, time.Hour))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k1", "value"))

	got, err := m.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestManagerMiss(t *testing.T) {
	m := NewManager(testConfig(10, time.Hour))
	defer m.Close()

	_, err := m.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(testConfig(10, 10*time.Millisecond))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k1", "value"))

	time.Sleep(30 * time.Millisecond)

	_, err := m.Get(ctx, "k1")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestManagerEvictsWhenFull(t *testing.T) {
	m := NewManager(testConfig(2, time.Hour))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k1", "v1"))
	require.NoError(t, m.Set(ctx, "k2", "v2"))
	require.NoError(t, m.Set(ctx, "k3", "v3"))

	stats := m.GetStats()
	assert.LessOrEqual(t, stats["size"].(int), 2)
}

func TestBuildKeyDistinguishesMedia(t *testing.T) {
	textOnly := BuildKey("prompt", nil)
	withMedia := BuildKey("prompt", []common.MediaFile{
		{Data: []byte{1, 2, 3}, MimeType: "image/jpeg"},
	})
	otherMedia := BuildKey("prompt", []common.MediaFile{
		{Data: []byte{9, 9, 9}, MimeType: "image/jpeg"},
	})

	assert.NotEqual(t, textOnly, withMedia)
	assert.NotEqual(t, withMedia, otherMedia)
	assert.Equal(t, textOnly, BuildKey("prompt", nil))
}
