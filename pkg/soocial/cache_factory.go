package soocial

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/soocial/internal/constants"
)

// CacheType selects where cached API responses are kept.
type CacheType string

const (
	// CacheTypeMemory keeps responses in an LRU inside the process.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS keeps responses in a JetStream KV bucket shared between processes.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone stores nothing; every GET goes to Soocial unconditionally.
	CacheTypeNone CacheType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
	ErrCacheDisabled        = errors.New("cache disabled")
)

// CacheConfig describes the response cache used by the HTTP layer. Only GET
// replies carrying an ETag are stored, and they are always revalidated with
// If-None-Match before reuse.
type CacheConfig struct {
	Type CacheType

	// Memory sizes the in-process LRU. Nil means constants.DefaultCacheSize entries.
	Memory *MemoryCacheConfig

	// NATS is required for CacheTypeNATS.
	NATS *NATSKVConfig

	// TTL bounds how long a stored response is kept. Defaults to
	// constants.DefaultCacheTTL. For NATS it also becomes the bucket TTL
	// unless NATSKVConfig.TTL is set.
	TTL time.Duration
}

// MemoryCacheConfig sizes the in-process cache.
type MemoryCacheConfig struct {
	// MaxSize is the number of responses kept before the least recently used
	// one is evicted. Zero or less means the default.
	MaxSize int
}

// DefaultCacheConfig is an in-process cache of constants.DefaultCacheSize
// responses kept for constants.DefaultCacheTTL.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:   CacheTypeMemory,
		Memory: &MemoryCacheConfig{MaxSize: constants.DefaultCacheSize},
		TTL:    constants.DefaultCacheTTL,
	}
}

// EffectiveTTL returns the configured TTL or the default.
func (c *CacheConfig) EffectiveTTL() time.Duration {
	if c == nil || c.TTL <= 0 {
		return constants.DefaultCacheTTL
	}

	return c.TTL
}

// NewCacheFromConfig builds the backend named by config. A nil config gives
// DefaultCacheConfig. The caller owns the result and should Close it when it
// implements Close, as the NATS backend does.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory:
		var maxSize int
		if config.Memory != nil {
			maxSize = config.Memory.MaxSize
		}

		return NewMemoryCache(maxSize), nil
	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		natsConfig := *config.NATS
		if natsConfig.TTL <= 0 {
			natsConfig.TTL = config.EffectiveTTL()
		}

		cache, err := NewNATSKVCache(&natsConfig)
		if err != nil {
			return nil, err
		}

		return cache, nil
	case CacheTypeNone:
		return NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NoOpCache never stores a response, so every lookup misses and no
// If-None-Match header is ever sent.
type NoOpCache struct{}

// NewNoOpCache creates a cache that stores nothing.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get reports ErrCacheDisabled for every key.
func (c *NoOpCache) Get(_ context.Context, _ string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set discards entry.
func (c *NoOpCache) Set(_ context.Context, _ string, _ *CacheEntry) error {
	return nil
}

// Delete is a no-op.
func (c *NoOpCache) Delete(_ context.Context, _ string) error {
	return nil
}

// Clear is a no-op.
func (c *NoOpCache) Clear(_ context.Context) error {
	return nil
}

// Has is always false.
func (c *NoOpCache) Has(_ context.Context, _ string) bool {
	return false
}

// CacheBuilder assembles a CacheConfig fluently, for Config.Cache or for
// building a standalone backend with Build.
type CacheBuilder struct {
	config *CacheConfig
}

// NewCacheBuilder starts from an in-process cache with the default TTL.
func NewCacheBuilder() *CacheBuilder {
	return &CacheBuilder{
		config: &CacheConfig{
			Type: CacheTypeMemory,
			TTL:  constants.DefaultCacheTTL,
		},
	}
}

// WithType selects the backend.
func (b *CacheBuilder) WithType(cacheType CacheType) *CacheBuilder {
	b.config.Type = cacheType

	return b
}

// WithMemoryConfig caps the in-process cache at maxSize responses.
func (b *CacheBuilder) WithMemoryConfig(maxSize int) *CacheBuilder {
	b.config.Memory = &MemoryCacheConfig{MaxSize: maxSize}

	return b
}

// WithNATSConfig sets the JetStream KV connection and bucket.
func (b *CacheBuilder) WithNATSConfig(config *NATSKVConfig) *CacheBuilder {
	b.config.NATS = config

	return b
}

// WithTTL sets how long responses are kept.
func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.config.TTL = ttl

	return b
}

// Config returns the configuration built so far.
func (b *CacheBuilder) Config() *CacheConfig {
	return b.config
}

// Build creates the backend from the configuration.
func (b *CacheBuilder) Build() (Cache, error) {
	return NewCacheFromConfig(b.config)
}
