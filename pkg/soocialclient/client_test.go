package soocialclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/soocial/pkg/soocial"
	"github.com/fivetwenty-io/soocial/pkg/soocialclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := soocialclient.New(context.Background(), nil)
		assert.ErrorIs(t, err, soocial.ErrConfigRequired)
	})

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		config := &soocial.Config{BaseURI: "api.example.com/", Email: "a@b.c", Password: "pw"}

		client, err := soocialclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "api.example.com/", config.BaseURI)
	})

	t.Run("invalid cache config", func(t *testing.T) {
		t.Parallel()

		_, err := soocialclient.New(context.Background(), &soocial.Config{
			Cache: &soocial.CacheConfig{Type: "memcached"},
		})
		assert.ErrorIs(t, err, soocial.ErrUnsupportedCacheType)
	})

	t.Run("talks to the configured endpoint", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/contacts.xml", r.URL.Path)
			assert.Equal(t, "soocial-test", r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/xml")
			_, _ = io.WriteString(w, `<contacts type="array"><contact><id>1</id><given-name>B</given-name></contact></contacts>`)
		}))
		defer server.Close()

		client, err := soocialclient.New(context.Background(), &soocial.Config{
			BaseURI:   server.URL + "/",
			Email:     "a@b.c",
			Password:  "pw",
			UserAgent: "soocial-test",
			Cache:     soocial.NewCacheBuilder().WithType(soocial.CacheTypeNone).Config(),
		})
		require.NoError(t, err)

		defer func() { _ = client.Close() }()

		count, err := client.Contacts().Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.True(t, client.IsReachable(context.Background()))
	})
}

func TestNewWithCredentials(t *testing.T) {
	t.Parallel()

	client, err := soocialclient.NewWithCredentials(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithCache(t *testing.T) {
	t.Parallel()

	client, err := soocialclient.NewWithCache(context.Background(), "a@b.c", "pw", soocial.DefaultCacheConfig())
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestNormalizeBaseURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: "https://www.soocial.com"},
		{input: "https://www.soocial.com/", expected: "https://www.soocial.com"},
		{input: "www.soocial.com", expected: "https://www.soocial.com"},
		{input: "http://localhost:8080", expected: "http://localhost:8080"},
		{input: "  http://localhost:8080/  ", expected: "http://localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, soocialclient.NormalizeBaseURI(tt.input))
		})
	}
}
