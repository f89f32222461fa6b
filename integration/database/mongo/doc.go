// Package mongo builds the verified MongoDB client the GridFS-backed upload
// engine runs on.
//
// New and NewWithDatabase wrap the official driver with startup retries and
// a ping check, covering Atlas cold starts (several seconds) and brief
// network interruptions that would otherwise fail a service at boot.
//
// Basic usage:
//
//	import (
//		"context"
//		"log"
//
//		"github.com/caarlos0/env/v11"
//		"github.com/dmitrymomot/uploadkit/integration/database/mongo"
//		"github.com/dmitrymomot/uploadkit/integration/storage/gridfs"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		// Load configuration from environment variables
//		var cfg mongo.Config
//		if err := env.Parse(&cfg); err != nil {
//			log.Fatal("Failed to parse config:", err)
//		}
//
//		// Connect and get the application database
//		db, err := mongo.NewWithDatabase(ctx, cfg, "myapp")
//		if err != nil {
//			log.Fatal("Failed to connect to database:", err)
//		}
//
//		// Hand the database to the GridFS upload engine
//		engine, err := gridfs.New(db, gridfs.GridFSConfig{BucketName: "uploads"})
//		if err != nil {
//			log.Fatal(err)
//		}
//		_ = engine
//	}
//
// # Configuration
//
// The Config struct maps environment variables through core/config; the
// defaults suit Atlas deployments:
//
//	MONGODB_URL                 (required)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// # Health Checking
//
// Healthcheck returns a func(ctx) error matching core/health.Check, so the
// readiness endpoint takes the service out of rotation while the upload
// backend is down:
//
//	mux.Handle("GET /health/ready", health.Readiness(logger,
//		mongo.Healthcheck(client),
//	))
//
// # Error Handling
//
// Failures surface as stable sentinels for errors.Is:
//
//	ErrFailedToConnectToMongo - all retry attempts exhausted
//	ErrEmptyDatabaseName      - NewWithDatabase got no database name
//	ErrHealthcheckFailed      - health check ping failed
package mongo
