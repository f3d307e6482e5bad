// Package dragonball is a typed HTTP request pipeline for the DragonBall
// heroes API:
//
//   - Endpoint / Request[T] describe one call (host, method, path, query, headers, body)
//   - BuildRequest materializes it into an HTTPS *http.Request with JSON base headers
//   - Client.Execute applies request interceptors, performs one transport call and
//     requires a 200 response
//   - Perform / PerformAsync decode the body into T through the request's Decoder
//   - APIError is the closed error taxonomy (network, parse data, unknown,
//     empty collection, malformed URL); transport errors pass through unchanged
//   - MemorySessionStore + AuthenticationInterceptor attach the Bearer token
//
// Typical usage:
//
//	registry := prometheus.NewRegistry()
//	client := dragonball.New(dragonball.WithMetricsCollector(dragonball.NewMetricsCollectorWithRegistry(registry)))
//	heroes, err := dragonball.Perform(ctx, client, dragonball.Request[[]Hero]{
//	    Endpoint: dragonball.Endpoint{Method: dragonball.MethodPost, Path: "/api/heros/all", Body: filter},
//	})
//
// There are no retries, no caching and no request queue: every Perform is a
// single independent round trip bounded by RequestTimeout.
package dragonball
