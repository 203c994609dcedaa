package soocial_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

func TestCacheFactory_MemoryCache(t *testing.T) {
	t.Parallel()

	cache, err := soocial.NewCacheFromConfig(&soocial.CacheConfig{
		Type:   soocial.CacheTypeMemory,
		Memory: &soocial.MemoryCacheConfig{MaxSize: 100},
	})
	require.NoError(t, err)
	require.IsType(t, &soocial.MemoryCache{}, cache)

	ctx := context.Background()
	entry := &soocial.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(time.Hour),
		ETag:      "test-etag",
	}

	require.NoError(t, cache.Set(ctx, "test-key", entry))
	assert.True(t, cache.Has(ctx, "test-key"))

	require.NoError(t, cache.Delete(ctx, "test-key"))
	assert.False(t, cache.Has(ctx, "test-key"))
}

func TestCacheFactory_NilConfigUsesDefaults(t *testing.T) {
	t.Parallel()

	cache, err := soocial.NewCacheFromConfig(nil)
	require.NoError(t, err)
	assert.IsType(t, &soocial.MemoryCache{}, cache)
}

func TestCacheFactory_MemorySizeBoundsResponses(t *testing.T) {
	t.Parallel()

	cache, err := soocial.NewCacheBuilder().WithMemoryConfig(2).Build()
	require.NoError(t, err)

	memory, ok := cache.(*soocial.MemoryCache)
	require.True(t, ok)

	ctx := context.Background()
	for _, key := range []string{"a@example.com:/contacts", "a@example.com:/contacts/1", "a@example.com:/contacts/2"} {
		require.NoError(t, cache.Set(ctx, key, &soocial.CacheEntry{
			Data:      []byte("<contacts/>"),
			ExpiresAt: time.Now().Add(time.Hour),
			ETag:      `"v1"`,
		}))
	}

	assert.Equal(t, 2, memory.Len())
	assert.False(t, cache.Has(ctx, "a@example.com:/contacts"))
	assert.True(t, cache.Has(ctx, "a@example.com:/contacts/2"))

	unbounded, err := soocial.NewCacheFromConfig(&soocial.CacheConfig{
		Type:   soocial.CacheTypeMemory,
		Memory: &soocial.MemoryCacheConfig{MaxSize: 0},
	})
	require.NoError(t, err)
	require.NoError(t, unbounded.Set(ctx, "k", &soocial.CacheEntry{Data: []byte("x"), ExpiresAt: time.Now().Add(time.Hour)}))
	assert.True(t, unbounded.Has(ctx, "k"))
}

func TestCacheFactory_NoOpCache(t *testing.T) {
	t.Parallel()

	cache, err := soocial.NewCacheFromConfig(&soocial.CacheConfig{Type: soocial.CacheTypeNone})
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &soocial.CacheEntry{Data: []byte("x")}))
	assert.False(t, cache.Has(ctx, "key"))

	_, err = cache.Get(ctx, "key")
	assert.ErrorIs(t, err, soocial.ErrCacheDisabled)
	assert.NoError(t, cache.Delete(ctx, "key"))
	assert.NoError(t, cache.Clear(ctx))
}

func TestCacheFactory_Errors(t *testing.T) {
	t.Parallel()

	t.Run("nats without config", func(t *testing.T) {
		t.Parallel()

		_, err := soocial.NewCacheFromConfig(&soocial.CacheConfig{Type: soocial.CacheTypeNATS})
		assert.ErrorIs(t, err, soocial.ErrNATSConfigRequired)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := soocial.NewCacheFromConfig(&soocial.CacheConfig{Type: "redis"})
		require.ErrorIs(t, err, soocial.ErrUnsupportedCacheType)
		assert.Contains(t, err.Error(), "redis")
	})

	t.Run("unreachable nats server", func(t *testing.T) {
		t.Parallel()

		_, err := soocial.NewCacheFromConfig(&soocial.CacheConfig{
			Type: soocial.CacheTypeNATS,
			NATS: &soocial.NATSKVConfig{URL: "nats://127.0.0.1:1"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connecting to NATS")
	})
}

func TestNewNATSKVCache_NilConfig(t *testing.T) {
	t.Parallel()

	_, err := soocial.NewNATSKVCache(nil)
	assert.ErrorIs(t, err, soocial.ErrNATSConfigRequired)
}

func TestCacheBuilder(t *testing.T) {
	t.Parallel()

	builder := soocial.NewCacheBuilder().
		WithType(soocial.CacheTypeMemory).
		WithMemoryConfig(5).
		WithTTL(time.Minute)

	config := builder.Config()
	assert.Equal(t, soocial.CacheTypeMemory, config.Type)
	assert.Equal(t, 5, config.Memory.MaxSize)
	assert.Equal(t, time.Minute, config.EffectiveTTL())

	cache, err := builder.Build()
	require.NoError(t, err)
	assert.NotNil(t, cache)

	nats := &soocial.NATSKVConfig{URL: "nats://cache.internal:4222", Bucket: "contacts"}
	assert.Same(t, nats, soocial.NewCacheBuilder().WithNATSConfig(nats).Config().NATS)
}

func TestCacheConfig_EffectiveTTL(t *testing.T) {
	t.Parallel()

	var nilConfig *soocial.CacheConfig

	assert.Equal(t, 5*time.Minute, nilConfig.EffectiveTTL())
	assert.Equal(t, 5*time.Minute, (&soocial.CacheConfig{}).EffectiveTTL())
	assert.Equal(t, 5*time.Minute, soocial.DefaultCacheConfig().EffectiveTTL())
	assert.Equal(t, time.Second, (&soocial.CacheConfig{TTL: time.Second}).EffectiveTTL())
}
