// Package redis builds the verified Redis client the Redis-backed upload
// engine runs on.
//
// Connect validates the connection URL, dials with exponential backoff, and
// pings before returning, so the upload engine never receives a client that
// was never reachable.
//
//   - Connect: Creates a Redis client with retry logic and a ping check
//   - Healthcheck: Returns a health check function for monitoring Redis connectivity
//
// # Configuration
//
// The Config struct maps environment variables through core/config:
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//	}
//
// Both redis:// and rediss:// (TLS) URL schemes are supported.
//
// # Usage Example
//
//	package main
//
//	import (
//		"context"
//		"log"
//		"time"
//
//		redisdb "github.com/dmitrymomot/uploadkit/integration/database/redis"
//		redisstorage "github.com/dmitrymomot/uploadkit/integration/storage/redis"
//	)
//
//	func main() {
//		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//		defer cancel()
//
//		client, err := redisdb.Connect(ctx, redisdb.Config{
//			ConnectionURL: "redis://localhost:6379/0",
//			RetryAttempts: 3,
//			RetryInterval: 5 * time.Second,
//		})
//		if err != nil {
//			log.Fatal("Failed to connect to Redis:", err)
//		}
//		defer client.Close()
//
//		// Hand the verified client to the upload engine
//		engine, err := redisstorage.New(client, redisstorage.RedisConfig{})
//		if err != nil {
//			log.Fatal(err)
//		}
//		_ = engine
//	}
//
// # Health Checking
//
// Healthcheck returns a func(ctx) error matching core/health.Check, so the
// readiness endpoint takes the service out of rotation while the upload
// backend is down:
//
//	mux.Handle("GET /health/ready", health.Readiness(logger,
//		redisdb.Healthcheck(client),
//	))
//
// # Error Handling
//
// Failures surface as stable sentinels for errors.Is:
//
//   - ErrEmptyConnectionURL: no connection URL was provided
//   - ErrFailedToParseRedisConnString: the connection URL is malformed
//   - ErrRedisNotReady: Redis did not become ready within the timeout period
//   - ErrHealthcheckFailed: health check ping failed
package redis
