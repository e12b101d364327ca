// Package graphql provides the HTTP transport for the catalog GraphQL API.
//
// The Client in this package handles:
//   - POSTing query documents with variables as JSON
//   - Decoding the {data, errors} response envelope
//   - User-Agent, static headers and a per-request X-Request-ID
//   - An LRU cache of query results
//
// # Fetch Policies
//
//	client.Query(ctx, req, &out)   // cache-first
//	client.Refetch(ctx, req, &out) // network-only, refreshes the cache
//	client.Mutate(ctx, req, &out)  // network-only, never cached
//
// Mutation results never patch cached query results. Callers that need the
// post-mutation state must Refetch.
//
// # Errors
//
// Every failure is a *RemoteError. Use errors.As to inspect the HTTP status
// or the server's messages:
//
//	var rerr *graphql.RemoteError
//	if errors.As(err, &rerr) {
//	    fmt.Println(rerr.Message())
//	}
package graphql
