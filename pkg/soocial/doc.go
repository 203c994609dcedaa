// Package soocial provides types, interfaces, and helpers for working with the
// Soocial contacts API.
//
// # Overview
//
// Soocial answers most requests with schema-less XML. Rather than binding
// responses to Go structs, the client decodes every XML body into a Value, a
// tagged union of Absent, Scalar, Record (an ordered mapping) and List. A
// concrete implementation of the client interfaces declared here is provided
// by the soocialclient package, which wires configuration, transport,
// authentication, and caching.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/soocial/pkg/soocial"
//	  "github.com/fivetwenty-io/soocial/pkg/soocialclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := soocialclient.New(ctx, &soocial.Config{
//	    Email:    "me@example.com",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  contacts, err := cli.Contacts().Iterate(ctx)
//	  if err != nil { log.Fatal(err) }
//	  for contact := range contacts {
//	    log.Println(contact.StringOr("given-name", ""))
//	  }
//	}
//
// # Decoded values
//
// Whether an XML element becomes a Record or a List is decided by looking at
// its first two children only: equal tags mean a List, different tags (or a
// single child) mean a Record. Responses where the first two children match
// by coincidence are therefore misread. Use Lookup, StringOr and the typed
// accessors rather than assuming a shape.
//
// # Errors
//
// HTTP failures are reported as *ResponseError values that unwrap to one of
// ErrNotFound, ErrConflict, ErrPreconditionFailed or ErrServerError. Invalid
// contact identifiers fail locally with ErrInvalidContactID before any
// request is sent.
//
// # Caching
//
// GET responses can be cached and revalidated with ETags. Memory, NATS
// JetStream KV and no-op backends are available through NewCacheFromConfig.
package soocial
