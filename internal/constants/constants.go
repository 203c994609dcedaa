package constants

import "time"

// Service endpoints.
const (
	// DefaultBaseURI is the public Soocial API root.
	DefaultBaseURI = "https://www.soocial.com"

	// DefaultUserAgent identifies this client on every request.
	DefaultUserAgent = "soocial-go"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as reachability checks.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// ResetRetryMax is the number of extra attempts made after a connection reset.
	ResetRetryMax = 1
)

// Cache defaults.
const (
	// DefaultCacheSize is the default number of entries held by the memory cache.
	DefaultCacheSize = 256

	// DefaultCacheTTL bounds how long a cached response is reused.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultNATSBucket is the KV bucket used by the NATS cache backend.
	DefaultNATSBucket = "soocial-cache"
)

// Content types and headers.
const (
	// ContentTypeForm is the encoding used for POST and PUT bodies.
	ContentTypeForm = "application/x-www-form-urlencoded"

	// ContentTypeXML prefixes every XML response Soocial sends.
	ContentTypeXML = "application/xml"

	// AcceptAny is the default Accept header.
	AcceptAny = "*/*"
)

// vCard delimiters.
const (
	VCardBegin = "BEGIN:VCARD"
	VCardEnd   = "END:VCARD"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// Display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Validation and limits.
const (
	// MinimumArgumentCount is the argument count for KEY VALUE style commands.
	MinimumArgumentCount = 2
)
