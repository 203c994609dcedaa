package soocialclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/soocial/internal/client"
	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

// New creates a new Soocial API client. config is not modified.
func New(ctx context.Context, config *soocial.Config) (soocial.Client, error) {
	if config == nil {
		return nil, soocial.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURI = NormalizeBaseURI(config.BaseURI)

	if normalized.ProfileURI != "" {
		normalized.ProfileURI = NormalizeBaseURI(normalized.ProfileURI)
	}

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithCredentials creates a client for the public API.
func NewWithCredentials(ctx context.Context, email, password string) (soocial.Client, error) {
	return New(ctx, &soocial.Config{
		Email:    email,
		Password: password,
	})
}

// NewWithCache creates a client for the public API that caches responses.
func NewWithCache(ctx context.Context, email, password string, cache *soocial.CacheConfig) (soocial.Client, error) {
	return New(ctx, &soocial.Config{
		Email:    email,
		Password: password,
		Cache:    cache,
	})
}

// NormalizeBaseURI trims one trailing slash, defaults to
// soocial.DefaultBaseURI and adds https:// when no scheme is given.
func NormalizeBaseURI(uri string) string {
	uri = strings.TrimSuffix(strings.TrimSpace(uri), "/")
	if uri == "" {
		return soocial.DefaultBaseURI
	}

	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		uri = "https://" + uri
	}

	return uri
}
