package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/fivetwenty-io/soocial/internal/http"
	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

func TestContactsClient_Contains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		id       string
		status   int
		expected bool
		wantErr  error
	}{
		{name: "existing contact", id: "1", status: http.StatusOK, expected: true},
		{name: "missing contact", id: "999", status: http.StatusNotFound, expected: false},
		{name: "server failure", id: "1", status: http.StatusInternalServerError, wantErr: soocial.ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/contacts/"+tt.id+".xml", r.URL.Path)
				assert.Equal(t, http.MethodGet, r.Method)

				if tt.status != http.StatusOK {
					w.WriteHeader(tt.status)

					return
				}

				writeXML(w, http.StatusOK, contactXML)
			})

			found, err := client.Contacts().Contains(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, found)
		})
	}
}

func TestContactsClient_InvalidIDNeverReachesServer(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	contacts := client.Contacts()
	ctx := context.Background()

	_, err := contacts.Contains(ctx, "abc")
	require.ErrorIs(t, err, soocial.ErrInvalidContactID)

	_, err = contacts.Get(ctx, "")
	require.ErrorIs(t, err, soocial.ErrInvalidContactID)

	_, err = contacts.Set(ctx, "1/../2", soocial.Fields{"nickname": "x"})
	require.ErrorIs(t, err, soocial.ErrInvalidContactID)

	err = contacts.Delete(ctx, "-4")
	require.ErrorIs(t, err, soocial.ErrInvalidContactID)

	_, err = client.VCards().Get(ctx, "x1")
	require.ErrorIs(t, err, soocial.ErrInvalidContactID)

	assert.Equal(t, int32(0), hits.Load())
}

func TestContactsClient_Iterate(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/contacts.xml", r.URL.Path)
		writeXML(w, http.StatusOK, contactsXML)
	})

	seq, err := client.Contacts().Iterate(context.Background())
	require.NoError(t, err)

	var names []string
	for contact := range seq {
		names = append(names, contact.StringOr("given-name", ""))
	}

	assert.Equal(t, []string{"Buddy", "Peggy", "Maria"}, names)

	_, err = client.Contacts().Iterate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestContactsClient_IterateNonList(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeXML(w, http.StatusOK, `<status><ok>yes</ok><note>odd</note></status>`)
	})

	seq, err := client.Contacts().Iterate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, slices.Collect(seq))
}

func TestContactsClient_Count(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "three contacts", body: contactsXML, expected: 3},
		{name: "empty list", body: `<contacts type="array"/>`, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeXML(w, http.StatusOK, tt.body)
			})

			count, err := client.Contacts().Count(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		count, err := client.Contacts().Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestContactsClient_Get(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contacts/1.xml", r.URL.Path)
		writeXML(w, http.StatusOK, contactXML)
	})

	contact, err := client.Contacts().Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Holly", contact.StringOr("family-name", ""))
}

func TestContactsClient_GetNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeXML(w, http.StatusNotFound, `<error><error>not_found</error><reason>missing</reason></error>`)
	})

	_, err := client.Contacts().Get(context.Background(), "42")
	require.Error(t, err)
	assert.True(t, soocial.IsNotFound(err))
	assert.Contains(t, err.Error(), "getting contact")
}

func TestContactsClient_Set(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/contacts/1.xml", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "contact%5Bfamily_name%5D=Holly&contact%5Bgiven_name%5D=Charles", string(body))

		writeXML(w, http.StatusOK, `<contact><id>1</id><given-name>Charles</given-name></contact>`)
	})

	updated, err := client.Contacts().Set(context.Background(), "1", soocial.Fields{
		"given_name":  "Charles",
		"family_name": "Holly",
	})
	require.NoError(t, err)
	assert.Equal(t, "Charles", updated.StringOr("given-name", ""))
}

func TestContactsClient_SetConflict(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	_, err := client.Contacts().Set(context.Background(), "1", soocial.Fields{"given_name": "x"})
	assert.True(t, soocial.IsConflict(err))
}

func TestContactsClient_Delete(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)

		if r.URL.Path == "/contacts/404.xml" {
			w.WriteHeader(http.StatusNotFound)

			return
		}

		assert.Equal(t, "/contacts/1.xml", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.Contacts().Delete(context.Background(), "1"))

	err := client.Contacts().Delete(context.Background(), "404")
	assert.True(t, soocial.IsNotFound(err))
}

func TestContactsClient_EmptyXMLReplies(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeXML(w, http.StatusOK, "")
	})

	updated, err := client.Contacts().Set(context.Background(), "1", soocial.Fields{"nickname": "Bud"})
	require.NoError(t, err)
	assert.True(t, updated.IsAbsent())

	require.NoError(t, client.Contacts().Delete(context.Background(), "1"))
}

func TestContactsClient_Add(t *testing.T) {
	t.Parallel()

	t.Run("returns the created id", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/contacts.xml", r.URL.Path)
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "Peggy", r.PostForm.Get("contact[given_name]"))

			w.Header().Set("Location", "https://www.soocial.com/contacts/4821")
			w.WriteHeader(http.StatusCreated)
		})

		id, err := client.Contacts().Add(context.Background(), soocial.Fields{"given_name": "Peggy"})
		require.NoError(t, err)
		assert.Equal(t, "4821", id)
	})

	t.Run("missing location", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		_, err := client.Contacts().Add(context.Background(), soocial.Fields{"given_name": "Peggy"})
		assert.ErrorIs(t, err, soocial.ErrNoLocation)
	})
}

func TestContactsClient_Subresources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		fn   func(*ContactsClient, context.Context, string) (soocial.Value, error)
	}{
		{name: "phones", path: "/contacts/7/telephones.xml", fn: (*ContactsClient).Phones},
		{name: "emails", path: "/contacts/7/emails.xml", fn: (*ContactsClient).Emails},
		{name: "urls", path: "/contacts/7/urls.xml", fn: (*ContactsClient).URLs},
		{name: "addresses", path: "/contacts/7/addresses.xml", fn: (*ContactsClient).Addresses},
		{name: "organisations", path: "/contacts/7/organisations.xml", fn: (*ContactsClient).Organisations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.path, r.URL.Path)
				writeXML(w, http.StatusOK, `<items type="array"><item><value>a</value><kind>home</kind></item></items>`)
			}))
			defer server.Close()

			contacts := NewContactsClient(internalhttp.NewClient(server.URL, nil))

			value, err := tt.fn(contacts, context.Background(), "7")
			require.NoError(t, err)

			items, ok := value.List()
			require.True(t, ok)
			require.Len(t, items, 1)
			assert.Equal(t, "a", items[0].StringOr("value", ""))
		})
	}
}

func TestContactsClient_SubresourcesSkipValidation(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contacts/abc/emails.xml", r.URL.Path)
		writeXML(w, http.StatusOK, `<emails type="array"/>`)
	})

	_, err := client.Contacts().Emails(context.Background(), "abc")
	require.NoError(t, err)
}

func TestEncodeFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fields   soocial.Fields
		expected string
	}{
		{name: "empty", fields: nil, expected: ""},
		{
			name:     "keys are sorted",
			fields:   soocial.Fields{"b": "2", "a": "1"},
			expected: "contact%5Ba%5D=1&contact%5Bb%5D=2",
		},
		{
			name:     "lists repeat and skip nil",
			fields:   soocial.Fields{"tags": []any{"friends", nil, "band"}},
			expected: "contact%5Btags%5D=friends&contact%5Btags%5D=band",
		},
		{
			name:     "bools and nil",
			fields:   soocial.Fields{"vip": true, "note": nil, "archived": false},
			expected: "contact%5Barchived%5D=false&contact%5Bvip%5D=true",
		},
		{
			name:     "non ASCII",
			fields:   soocial.Fields{"given_name": "Zoë"},
			expected: "contact%5Bgiven_name%5D=Zo%C3%AB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, string(EncodeFields(tt.fields)))
		})
	}
}
