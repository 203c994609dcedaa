package client

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/fivetwenty-io/soocial/internal/http"
	"github.com/fivetwenty-io/soocial/internal/uri"
	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

const contactsPath = "contacts.xml"

// ContactsClient implements soocial.ContactsClient.
type ContactsClient struct {
	httpClient *http.Client
}

// NewContactsClient creates a new contacts client.
func NewContactsClient(httpClient *http.Client) *ContactsClient {
	return &ContactsClient{
		httpClient: httpClient,
	}
}

// Contains implements soocial.ContactsClient.Contains.
func (c *ContactsClient) Contains(ctx context.Context, id string) (bool, error) {
	path, err := contactPath(id, "xml")
	if err != nil {
		return false, err
	}

	_, err = c.httpClient.Get(ctx, path, nil)
	if soocial.IsNotFound(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("checking contact: %w", err)
	}

	return true, nil
}

// Iterate implements soocial.ContactsClient.Iterate.
func (c *ContactsClient) Iterate(ctx context.Context) (iter.Seq[soocial.Value], error) {
	resp, err := c.httpClient.Get(ctx, contactsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}

	items, _ := resp.Value.List()

	return slices.Values(items), nil
}

// Count implements soocial.ContactsClient.Count.
func (c *ContactsClient) Count(ctx context.Context) (int, error) {
	resp, err := c.httpClient.Get(ctx, contactsPath, nil)
	if err != nil {
		return 0, fmt.Errorf("counting contacts: %w", err)
	}

	return resp.Value.Len(), nil
}

// Get implements soocial.ContactsClient.Get.
func (c *ContactsClient) Get(ctx context.Context, id string) (soocial.Value, error) {
	path, err := contactPath(id, "xml")
	if err != nil {
		return soocial.Absent(), err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return soocial.Absent(), fmt.Errorf("getting contact: %w", err)
	}

	return resp.Value, nil
}

// Set implements soocial.ContactsClient.Set.
func (c *ContactsClient) Set(ctx context.Context, id string, fields soocial.Fields) (soocial.Value, error) {
	path, err := contactPath(id, "xml")
	if err != nil {
		return soocial.Absent(), err
	}

	resp, err := c.httpClient.Put(ctx, path, EncodeFields(fields))
	if err != nil {
		return soocial.Absent(), fmt.Errorf("updating contact: %w", err)
	}

	return resp.Value, nil
}

// Delete implements soocial.ContactsClient.Delete.
func (c *ContactsClient) Delete(ctx context.Context, id string) error {
	path, err := contactPath(id, "xml")
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	return nil
}

// Add implements soocial.ContactsClient.Add.
func (c *ContactsClient) Add(ctx context.Context, fields soocial.Fields) (string, error) {
	resp, err := c.httpClient.Post(ctx, contactsPath, EncodeFields(fields))
	if err != nil {
		return "", fmt.Errorf("creating contact: %w", err)
	}

	if resp.CreatedID == "" {
		return "", fmt.Errorf("creating contact: %w (status %d)", soocial.ErrNoLocation, resp.StatusCode)
	}

	return resp.CreatedID, nil
}

// Phones implements soocial.ContactsClient.Phones.
func (c *ContactsClient) Phones(ctx context.Context, id string) (soocial.Value, error) {
	return c.subresource(ctx, id, "telephones")
}

// Emails implements soocial.ContactsClient.Emails.
func (c *ContactsClient) Emails(ctx context.Context, id string) (soocial.Value, error) {
	return c.subresource(ctx, id, "emails")
}

// URLs implements soocial.ContactsClient.URLs.
func (c *ContactsClient) URLs(ctx context.Context, id string) (soocial.Value, error) {
	return c.subresource(ctx, id, "urls")
}

// Addresses implements soocial.ContactsClient.Addresses.
func (c *ContactsClient) Addresses(ctx context.Context, id string) (soocial.Value, error) {
	return c.subresource(ctx, id, "addresses")
}

// Organisations implements soocial.ContactsClient.Organisations.
func (c *ContactsClient) Organisations(ctx context.Context, id string) (soocial.Value, error) {
	return c.subresource(ctx, id, "organisations")
}

// subresource does not validate id; callers have historically passed ids
// straight through.
func (c *ContactsClient) subresource(ctx context.Context, id, name string) (soocial.Value, error) {
	resp, err := c.httpClient.Get(ctx, "contacts/"+id+"/"+name+".xml", nil)
	if err != nil {
		return soocial.Absent(), fmt.Errorf("getting contact %s: %w", name, err)
	}

	return resp.Value, nil
}

func contactPath(id, extension string) (string, error) {
	contactID, err := soocial.ParseContactID(id)
	if err != nil {
		return "", err
	}

	return "contacts/" + contactID.String() + "." + extension, nil
}

// EncodeFields renders fields as contact[<key>] form pairs in key order.
func EncodeFields(fields soocial.Fields) []byte {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	params := make(uri.Params, 0, len(keys))
	for _, key := range keys {
		params = params.Add("contact["+key+"]", fields[key])
	}

	return []byte(uri.Encode(params))
}
