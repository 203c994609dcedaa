// Package http is the transport shared by every Soocial call: it builds the
// URL, applies default headers and credentials, retries once after a
// connection reset, consults the response cache and classifies the reply.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fivetwenty-io/soocial/internal/auth"
	"github.com/fivetwenty-io/soocial/internal/constants"
	"github.com/fivetwenty-io/soocial/internal/uri"
	"github.com/fivetwenty-io/soocial/internal/xmldecode"
	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

// Client handles HTTP communication with the Soocial API.
type Client struct {
	baseURL        string
	authenticator  auth.Authenticator
	httpClient     *retryablehttp.Client
	logger         soocial.Logger
	debug          bool
	userAgent      string
	cache          soocial.Cache
	cacheTTL       time.Duration
	cacheNamespace string

	// consumed by NewClient when building httpClient
	base    *http.Client
	timeout time.Duration
	jar     http.CookieJar
	tracing bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger soocial.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout bounds every exchange, retries included.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithCache stores GET responses in cache and revalidates them with their ETag.
func WithCache(cache soocial.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithCacheNamespace prefixes cache keys so that clients with different
// credentials can share one cache backend.
func WithCacheNamespace(namespace string) Option {
	return func(c *Client) {
		c.cacheNamespace = namespace
	}
}

// WithHTTPClient sets the underlying client. It is copied, not modified.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.base = client
	}
}

// WithCookieJar keeps cookies across requests.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithTracing wraps the transport with OpenTelemetry instrumentation.
func WithTracing(enabled bool) Option {
	return func(c *Client) {
		c.tracing = enabled
	}
}

// NewClient creates a new HTTP client. A nil authenticator sends no credentials.
func NewClient(baseURL string, authenticator auth.Authenticator, opts ...Option) *Client {
	client := &Client{
		baseURL:       baseURL,
		authenticator: authenticator,
		userAgent:     constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = client.buildHTTPClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.ResetRetryMax
	retryClient.RetryWaitMin = 0
	retryClient.RetryWaitMax = 0
	retryClient.Backoff = noBackoff
	retryClient.CheckRetry = retryOnReset
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.RequestLogHook = client.logRetry

	client.httpClient = retryClient

	return client
}

// BaseURL returns the root every request path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) buildHTTPClient() *http.Client {
	httpClient := &http.Client{}
	if c.base != nil {
		clone := *c.base
		httpClient = &clone
	}

	if c.timeout > 0 {
		httpClient.Timeout = c.timeout
	}

	if c.jar != nil {
		httpClient.Jar = c.jar
	}

	if c.tracing {
		transport := httpClient.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}

		httpClient.Transport = otelhttp.NewTransport(transport)
	}

	return httpClient
}

// Request is one API call.
type Request struct {
	Method  string
	Path    string
	Query   uri.Params
	Body    []byte
	Headers map[string]string
}

// Response is a classified API reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// Value is the decoded body: an XML document for 200 responses with an
	// XML content type, the created id for 201, raw text otherwise.
	Value soocial.Value
	// CreatedID is the last path segment of Location on 201 responses.
	CreatedID string
	// FromCache is set when a 304 was answered from the cache.
	FromCache bool
}

// Do performs the request. Responses with a status of 400 or above return a
// *soocial.ResponseError together with the response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey{}, requestID)
	fullURL := uri.Build(c.baseURL, []string{req.Path}, req.Query)

	var body interface{}
	if req.Body != nil {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.setDefaultHeaders(httpReq.Request, req)

	if c.authenticator != nil {
		err = c.authenticator.Authenticate(ctx, httpReq.Request)
		if err != nil {
			return nil, fmt.Errorf("authenticating request: %w", err)
		}
	}

	// caller headers win, Authorization included
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	cacheKey := c.cacheKey(fullURL)
	cached := c.lookupCache(ctx, req.Method, cacheKey)

	if cached != nil && httpReq.Header.Get("If-None-Match") == "" {
		httpReq.Header.Set("If-None-Match", cached.ETag)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"url":        fullURL,
			"body_size":  len(req.Body),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		return nil, fmt.Errorf("executing %s %s: %w", req.Method, fullURL, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}

	if httpResp.StatusCode == http.StatusNotModified && cached != nil {
		resp.StatusCode = http.StatusOK
		resp.Body = cached.Data
		resp.Header = httpResp.Header.Clone()
		resp.Header.Set("Content-Type", cached.ContentType)
		resp.FromCache = true
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"request_id": requestID,
			"status":     httpResp.StatusCode,
			"duration":   time.Since(start).String(),
			"cached":     resp.FromCache,
			"body_size":  len(respBody),
		})
	}

	c.updateCache(ctx, req.Method, cacheKey, resp)

	return resp, classify(resp)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query uri.Params) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Head performs a HEAD request.
func (c *Client) Head(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodHead, Path: path})
}

// Post performs a POST request with a form-encoded body.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a form-encoded body.
func (c *Client) Put(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) setDefaultHeaders(httpReq *http.Request, req *Request) {
	httpReq.Header.Set("Accept", constants.AcceptAny)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeForm)
		httpReq.Header.Set("Content-Length", strconv.Itoa(len(req.Body)))
	}
}

func (c *Client) cacheKey(fullURL string) string {
	if c.cacheNamespace == "" {
		return http.MethodGet + " " + fullURL
	}

	return c.cacheNamespace + " " + http.MethodGet + " " + fullURL
}

func (c *Client) lookupCache(ctx context.Context, method, key string) *soocial.CacheEntry {
	if c.cache == nil || method != http.MethodGet {
		return nil
	}

	entry, err := c.cache.Get(ctx, key)
	if err != nil || entry.ETag == "" {
		return nil
	}

	return entry
}

func (c *Client) updateCache(ctx context.Context, method, key string, resp *Response) {
	if c.cache == nil {
		return
	}

	var err error

	switch method {
	case http.MethodGet:
		etag := resp.Header.Get("ETag")
		if resp.FromCache || resp.StatusCode != http.StatusOK || etag == "" {
			return
		}

		err = c.cache.Set(ctx, key, &soocial.CacheEntry{
			Data:        resp.Body,
			ETag:        etag,
			ContentType: resp.Header.Get("Content-Type"),
			ExpiresAt:   time.Now().Add(c.cacheTTL),
		})
	case http.MethodHead:
		return
	default:
		err = c.cache.Delete(ctx, key)
	}

	if err != nil && c.logger != nil {
		c.logger.Warn("Cache update failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (c *Client) logRetry(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt == 0 || c.logger == nil {
		return
	}

	c.logger.Warn("Retrying HTTP request after connection reset", map[string]interface{}{
		"request_id": requestID(req.Context()),
		"method":     req.Method,
		"url":        req.URL.String(),
		"attempt":    attempt,
	})
}

func classify(resp *Response) error {
	xmlBody := strings.HasPrefix(resp.Header.Get("Content-Type"), constants.ContentTypeXML)

	switch {
	case resp.StatusCode == http.StatusOK && xmlBody && len(resp.Body) == 0:
		// updates and deletes answer with an empty XML reply
		resp.Value = soocial.Absent()
	case resp.StatusCode == http.StatusOK && xmlBody:
		value, err := xmldecode.DecodeBytes(resp.Body)
		if err != nil {
			return err
		}

		resp.Value = value
	case resp.StatusCode == http.StatusCreated:
		resp.CreatedID = createdID(resp.Header.Get("Location"))
		if resp.CreatedID != "" {
			resp.Value = soocial.Scalar(resp.CreatedID)
		}
	case resp.StatusCode >= http.StatusBadRequest:
		payload := rawValue(resp.Body)

		if xmlBody && len(resp.Body) > 0 {
			decoded, err := xmldecode.DecodeBytes(resp.Body)
			if err == nil {
				payload = decoded
			}
		}

		return soocial.NewResponseError(resp.StatusCode, payload)
	default:
		resp.Value = rawValue(resp.Body)
	}

	return nil
}

func createdID(location string) string {
	if location == "" {
		return ""
	}

	return location[strings.LastIndex(location, "/")+1:]
}

func rawValue(body []byte) soocial.Value {
	if len(body) == 0 {
		return soocial.Absent()
	}

	return soocial.Scalar(string(body))
}

// retryOnReset retries transport errors caused by the server resetting the
// connection and nothing else.
func retryOnReset(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err == nil {
		return false, nil
	}

	return IsConnectionReset(err), nil
}

// IsConnectionReset reports whether err was caused by a connection reset.
func IsConnectionReset(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, syscall.ECONNRESET) || strings.Contains(err.Error(), "connection reset by peer")
}

func noBackoff(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return 0
}

type requestIDKey struct{}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}
