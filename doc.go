// Package uploadkit provides a streaming toolkit for accepting multipart/form-data
// uploads in Go services. Files move from the wire into pluggable storage engines
// without intermediate buffering, with declarative per-field rules, size limits,
// filter callbacks, and automatic cleanup of partial uploads on failure.
//
// # LLM Assistant Note
//
// This file serves as a comprehensive index of all packages in the uploadkit library,
// designed to help LLMs understand the complete codebase structure and functionality.
// Each package entry includes the full import path and a concise description of its purpose.
//
// # Package Organization
//
// The uploadkit library is organized into three main categories:
//
//   - Core: the upload pipeline and its supporting components
//   - Middleware: net/http middleware for uploads and cross-cutting concerns
//   - Integrations: storage engines and database clients for production backends
//
// # Getting Documentation
//
// For detailed documentation on any package, use the go doc command:
//
//	go doc github.com/dmitrymomot/uploadkit/core/upload
//	go doc -all github.com/dmitrymomot/uploadkit/middleware
//
// # Core Packages
//
// These packages provide the upload pipeline and its building blocks:
//
//	github.com/dmitrymomot/uploadkit/core/binder   - Form value binding onto structs with sanitization
//	github.com/dmitrymomot/uploadkit/core/config   - Type-safe environment variable loading
//	github.com/dmitrymomot/uploadkit/core/health   - HTTP handlers for service health monitoring
//	github.com/dmitrymomot/uploadkit/core/logger   - Structured logging built on slog
//	github.com/dmitrymomot/uploadkit/core/storage  - Storage engine contract with disk and memory engines
//	github.com/dmitrymomot/uploadkit/core/upload   - Streaming multipart pipeline with limits and filters
//
// # HTTP Middleware Packages
//
// Pre-built middleware components for upload handling and common concerns:
//
//	github.com/dmitrymomot/uploadkit/middleware    - Upload processing, body limits, request IDs, logging
//
// # Integration Packages
//
// Production-ready storage engines and database clients:
//
//	github.com/dmitrymomot/uploadkit/integration/database/mongo  - MongoDB client with health checking
//	github.com/dmitrymomot/uploadkit/integration/database/pg     - PostgreSQL with pooling and transactions
//	github.com/dmitrymomot/uploadkit/integration/database/redis  - Redis client with retry logic
//	github.com/dmitrymomot/uploadkit/integration/storage/gridfs  - MongoDB GridFS storage engine
//	github.com/dmitrymomot/uploadkit/integration/storage/pg      - PostgreSQL bytea storage engine
//	github.com/dmitrymomot/uploadkit/integration/storage/redis   - Redis storage engine for small short-lived files
//	github.com/dmitrymomot/uploadkit/integration/storage/s3      - S3-compatible storage engine
//
// # Architecture Patterns
//
// The uploadkit library follows these key architectural patterns:
//
//   - Streaming-first design: file bytes flow reader-to-engine, never into request-wide buffers
//   - Functional options for flexible configuration
//   - Interface-based storage engines for testability and backend swapping
//   - Security-first approach with malformed-name rejection and input sanitization
//   - Closed error taxonomy so callers can branch on failure kinds
//
// # Example Usage
//
//	import (
//		"log"
//		"net/http"
//
//		"github.com/dmitrymomot/uploadkit/core/upload"
//		"github.com/dmitrymomot/uploadkit/middleware"
//	)
//
//	func main() {
//		// Files are streamed to ./uploads as they arrive
//		u, err := upload.New(
//			upload.WithDir("./uploads"),
//			upload.WithLimits(upload.Limits{FileSize: 10 << 20, Files: 5}),
//		)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		mux := http.NewServeMux()
//		mux.Handle("POST /avatar", middleware.Upload(u.Single("avatar"))(
//			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//				res, _ := upload.FromContext(r.Context())
//				w.Write([]byte(res.File.Path))
//			}),
//		))
//
//		// Companion middleware composes around the upload step
//		handler := middleware.RequestID()(middleware.Logging()(mux))
//
//		log.Fatal(http.ListenAndServe(":8080", handler))
//	}
package uploadkit
