// Package auth attaches Soocial credentials to outgoing requests.
package auth

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/fivetwenty-io/soocial/internal/constants"
)

// Authenticator decorates a request with credentials before it is sent.
type Authenticator interface {
	Authenticate(ctx context.Context, req *http.Request) error
}

// Basic sends the account email and password as HTTP basic auth.
type Basic struct {
	Email    string
	Password string
}

// NewBasic creates a basic-auth authenticator.
func NewBasic(email, password string) *Basic {
	return &Basic{Email: email, Password: password}
}

// Authenticate implements Authenticator.
func (b *Basic) Authenticate(_ context.Context, req *http.Request) error {
	req.SetBasicAuth(b.Email, b.Password)

	return nil
}

// Validate reports missing credentials.
func (b *Basic) Validate() error {
	if b.Email == "" {
		return constants.ErrNoEmailConfigured
	}

	if b.Password == "" {
		return constants.ErrNoPasswordConfigured
	}

	return nil
}

// Header sets a precomputed Authorization header.
type Header struct {
	Value string
}

// Authenticate implements Authenticator.
func (h Header) Authenticate(_ context.Context, req *http.Request) error {
	req.Header.Set("Authorization", h.Value)

	return nil
}

// EncodeBasic returns the Authorization header value for email and password.
func EncodeBasic(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}
