package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	internalhttp "github.com/fivetwenty-io/soocial/internal/http"
)

const contactsXML = `<?xml version="1.0" encoding="UTF-8"?>
<contacts type="array">
  <contact><id type="integer">1</id><given-name>Buddy</given-name><family-name>Holly</family-name></contact>
  <contact><id type="integer">2</id><given-name>Peggy</given-name><family-name>Sue</family-name></contact>
  <contact><id type="integer">3</id><given-name>Maria</given-name><family-name>Elena</family-name></contact>
</contacts>`

const contactXML = `<?xml version="1.0" encoding="UTF-8"?>
<contact><id>1</id><given-name>Buddy</given-name><family-name>Holly</family-name></contact>`

func writeXML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := internalhttp.NewClient(server.URL, nil)

	return NewWithHTTPClients(httpClient, httpClient)
}
