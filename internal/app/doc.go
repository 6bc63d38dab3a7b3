// Package app wires the decomposition service together: configuration,
// logging, metrics, the service layer and the HTTP router with its
// middleware chain. It owns the server lifecycle from startup through
// graceful shutdown.
//
// The middleware ordering is RequestID -> RealIP -> StructuredLogger ->
// Metrics -> Recoverer -> SecurityHeaders -> RateLimiter -> Timeout. The
// Prometheus endpoint is registered outside the group so scrapes are
// not rate limited or logged per request.
package app
