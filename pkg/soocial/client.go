package soocial

import (
	"context"
	"iter"
	"time"

	"github.com/emersion/go-vcard"

	"github.com/fivetwenty-io/soocial/internal/constants"
)

// DefaultBaseURI is used when Config.BaseURI is empty.
const DefaultBaseURI = constants.DefaultBaseURI

// ContactsClient is a collection-like view over the account's contacts.
type ContactsClient interface {
	// Contains reports whether a contact with the given id exists.
	Contains(ctx context.Context, id string) (bool, error)
	// Iterate fetches the contact list and returns a sequence over it. Every
	// call fetches afresh.
	Iterate(ctx context.Context) (iter.Seq[Value], error)
	// Count returns the number of contacts.
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id string) (Value, error)
	Set(ctx context.Context, id string, fields Fields) (Value, error)
	Delete(ctx context.Context, id string) error
	// Add creates a contact and returns its id.
	Add(ctx context.Context, fields Fields) (string, error)

	// Sub-resources. The id is passed through as-is.
	Phones(ctx context.Context, id string) (Value, error)
	Emails(ctx context.Context, id string) (Value, error)
	URLs(ctx context.Context, id string) (Value, error)
	Addresses(ctx context.Context, id string) (Value, error)
	Organisations(ctx context.Context, id string) (Value, error)
}

// VCardsClient exports contacts in vCard format.
type VCardsClient interface {
	Get(ctx context.Context, id string) (string, error)
	GetParsed(ctx context.Context, id string) (vcard.Card, error)
	List(ctx context.Context) ([]string, error)
	ListParsed(ctx context.Context) ([]vcard.Card, error)
}

// AccountClient provides access to account level endpoints.
type AccountClient interface {
	// User fetches the profile of the authenticated user.
	User(ctx context.Context) (Value, error)
	ConnectionPhones(ctx context.Context) (Value, error)
	// IsReachable reports whether the contact list can be fetched at all.
	IsReachable(ctx context.Context) bool
}

// Client is the entry point to the Soocial API.
type Client interface {
	AccountClient

	Contacts() ContactsClient
	VCards() VCardsClient

	// Close releases the response cache backend, if any.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a soocial.Client.
type Config struct {
	// BaseURI is the API root. Defaults to DefaultBaseURI. soocialclient.New
	// trims a trailing slash and adds "https://" if no scheme is present.
	BaseURI string
	// ProfileURI is the root used for the cookie-authenticated /user.xml call.
	// It is independent of BaseURI and defaults to DefaultBaseURI.
	ProfileURI string

	// Email and Password are sent as HTTP basic auth on every request.
	Email    string
	Password string

	// Timeout bounds every HTTP exchange. Zero means no timeout beyond the
	// context passed to each call.
	Timeout time.Duration
	// Cache enables response caching. Nil disables it.
	Cache *CacheConfig
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// Tracing wraps the HTTP transport with OpenTelemetry instrumentation.
	Tracing bool
}
