// Package soocialclient is the entry point for constructing a Soocial API
// client that implements the soocial.Client interface.
//
// It normalises the configuration, wires credentials into the HTTP transport
// and builds the optional response cache. Most programs import soocialclient
// to build a client and then work with the returned soocial.Client.
//
// Quick start
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
//
//	  cli, err := soocialclient.NewWithCredentials(ctx, "buddy@example.com", "secret")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  n, err := cli.Contacts().Count(ctx)
//	  if err != nil { log.Fatal(err) }
//	  log.Printf("%d contacts", n)
//
//	  // With a shared cache and a custom endpoint:
//	  cli, err = soocialclient.New(ctx, &soocial.Config{
//	    BaseURI:  "soocial.internal.example.com",
//	    Email:    "buddy@example.com",
//	    Password: "secret",
//	    Cache: soocial.NewCacheBuilder().
//	      WithType(soocial.CacheTypeNATS).
//	      WithNATSConfig(&soocial.NATSKVConfig{URL: "nats://localhost:4222"}).
//	      Config(),
//	  })
//	}
//
// BaseURI without a scheme gets "https://" prepended, and one trailing slash
// is removed. The /user.xml profile is always fetched from ProfileURI, which
// defaults to the public Soocial site regardless of BaseURI.
package soocialclient
