// Package server provides HTTP routing, middleware, and the graceful-shutdown server for the lettings site.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
//   - [RequestID] : assigns an X-Request-ID (uuid) and stores it on the request context
//   - [Logger] : logs method, path, status and duration once the handler returns
//   - [Recover] : converts panics into a 500 response, optionally rendered by a fallback handler
//   - [RateLimit] : token bucket shared by all clients, rejecting with 429 when empty
//   - [AllowedHosts] : rejects requests whose Host is not listed with 400
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Server
//
// [Server] runs an [http.Server] until its context is cancelled and then shuts down within a bounded timeout.
package server
