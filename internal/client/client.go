package client

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"slices"

	"github.com/fivetwenty-io/soocial/internal/auth"
	"github.com/fivetwenty-io/soocial/internal/constants"
	"github.com/fivetwenty-io/soocial/internal/http"
	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

// Client implements the soocial.Client interface.
type Client struct {
	httpClient    *http.Client
	profileClient *http.Client
	cache         soocial.Cache
	logger        soocial.Logger

	contacts *ContactsClient
	vcards   *VCardsClient
}

var _ soocial.Client = (*Client)(nil)

// New creates a Soocial client. config.BaseURI is used as given; callers are
// expected to have normalised it.
func New(_ context.Context, config *soocial.Config) (*Client, error) {
	if config == nil {
		return nil, soocial.ErrConfigRequired
	}

	baseURI := config.BaseURI
	if baseURI == "" {
		baseURI = constants.DefaultBaseURI
	}

	profileURI := config.ProfileURI
	if profileURI == "" {
		profileURI = constants.DefaultBaseURI
	}

	var cache soocial.Cache

	if config.Cache != nil {
		var err error

		cache, err = soocial.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating response cache: %w", err)
		}
	}

	httpOpts := createHTTPClientOptions(config)

	apiOpts := slices.Clone(httpOpts)
	if cache != nil {
		apiOpts = append(apiOpts,
			http.WithCache(cache, config.Cache.EffectiveTTL()),
			http.WithCacheNamespace(config.Email),
		)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	profileOpts := append(slices.Clone(httpOpts), http.WithCookieJar(jar))

	client := &Client{
		httpClient: http.NewClient(baseURI, auth.NewBasic(config.Email, config.Password), apiOpts...),
		profileClient: http.NewClient(profileURI,
			auth.Header{Value: auth.EncodeBasic(config.Email, config.Password)}, profileOpts...),
		cache:  cache,
		logger: config.Logger,
	}

	client.contacts = NewContactsClient(client.httpClient)
	client.vcards = NewVCardsClient(client.httpClient)

	return client, nil
}

// NewWithHTTPClients wires a client from prebuilt transports.
func NewWithHTTPClients(api, profile *http.Client) *Client {
	client := &Client{httpClient: api, profileClient: profile}
	client.contacts = NewContactsClient(api)
	client.vcards = NewVCardsClient(api)

	return client
}

func createHTTPClientOptions(config *soocial.Config) []http.Option {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		opts = append(opts, http.WithTimeout(config.Timeout))
	}

	if config.Tracing {
		opts = append(opts, http.WithTracing(true))
	}

	return opts
}

// Contacts implements soocial.Client.Contacts.
func (c *Client) Contacts() soocial.ContactsClient {
	return c.contacts
}

// VCards implements soocial.Client.VCards.
func (c *Client) VCards() soocial.VCardsClient {
	return c.vcards
}

// Close implements soocial.Client.Close.
func (c *Client) Close() error {
	closer, ok := c.cache.(interface{ Close() })
	if ok {
		closer.Close()
	}

	return nil
}
