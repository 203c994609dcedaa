package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/soocial/internal/xmldecode"
	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

// User implements soocial.AccountClient.User. The profile lives outside the
// API root and is fetched with a cookie-keeping client; the document is
// always read as a record.
func (c *Client) User(ctx context.Context) (soocial.Value, error) {
	resp, err := c.profileClient.Get(ctx, "user.xml", nil)
	if err != nil {
		return soocial.Absent(), fmt.Errorf("getting user profile: %w", err)
	}

	value, err := xmldecode.DecodeRecordBytes(resp.Body)
	if err != nil {
		return soocial.Absent(), fmt.Errorf("getting user profile: %w", err)
	}

	return value, nil
}

// ConnectionPhones implements soocial.AccountClient.ConnectionPhones.
func (c *Client) ConnectionPhones(ctx context.Context) (soocial.Value, error) {
	resp, err := c.httpClient.Get(ctx, "/connections/phones.xml", nil)
	if err != nil {
		return soocial.Absent(), fmt.Errorf("getting connection phones: %w", err)
	}

	return resp.Value, nil
}

// IsReachable implements soocial.AccountClient.IsReachable.
func (c *Client) IsReachable(ctx context.Context) bool {
	_, err := c.httpClient.Get(ctx, contactsPath, nil)
	if err != nil && c.logger != nil {
		c.logger.Debug("Soocial not reachable", map[string]interface{}{"error": err.Error()})
	}

	return err == nil
}
