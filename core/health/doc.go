// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all storage dependencies are available
//   - NoContent: returns 204 for minimal overhead
//
// Usage:
//
//	mux.Handle("GET /health/live", health.Liveness())
//	mux.Handle("GET /health/ready", health.Readiness(logger,
//		pgdb.Healthcheck(pool),
//		redisdb.Healthcheck(client),
//	))
//	mux.Handle("GET /ping", health.NoContent())
//
// Dependency checks follow the func(context.Context) error signature the
// integration/database packages return from their Healthcheck
// constructors, so an upload service can gate traffic on the storage
// backend behind its engines.
package health
