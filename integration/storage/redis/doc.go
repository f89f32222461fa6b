// Package redis provides a Redis storage engine for the upload pipeline.
//
// This package implements the storage.Engine interface on top of go-redis.
// Each committed file becomes a single Redis value under a random UUID key,
// optionally expiring after a TTL. The engine buffers bodies in memory
// before the SET, so it is meant for small transient uploads: CSV import
// batches awaiting a worker, avatars pending moderation, short-lived
// attachments that never touch durable storage.
//
// Basic usage:
//
//	import (
//		"context"
//		"time"
//
//		"github.com/dmitrymomot/uploadkit/core/upload"
//		redisdb "github.com/dmitrymomot/uploadkit/integration/database/redis"
//		redisstorage "github.com/dmitrymomot/uploadkit/integration/storage/redis"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		client, err := redisdb.Connect(ctx, redisdb.Config{
//			ConnectionURL: "redis://localhost:6379/0",
//		})
//		if err != nil {
//			panic(err)
//		}
//		defer client.Close()
//
//		engine, err := redisstorage.New(client, redisstorage.RedisConfig{
//			KeyPrefix: "import:",
//			TTL:       15 * time.Minute,
//			MaxSize:   4 << 20,
//		})
//		if err != nil {
//			panic(err)
//		}
//
//		uploader, err := upload.New(upload.WithStorage(engine))
//		if err != nil {
//			panic(err)
//		}
//		processor := uploader.Single("csv")
//		_ = processor
//	}
//
// # Retrieval
//
// Result files carry the Redis key in File.Path. A worker picks the bytes
// back up with Fetch and releases them with Remove:
//
//	data, err := engine.Fetch(ctx, result.File)
//	if err != nil {
//		return err
//	}
//	defer engine.Remove(ctx, result.File)
//
// Fetch returns storage.ErrFileNotFound once the TTL has expired or the
// value was removed.
//
// # Size Limits
//
// Because bodies are buffered before storing, always bound uploads either
// with the pipeline's aggregate FileSize limit or the engine's MaxSize cap
// (default 8MB via REDIS_UPLOAD_MAX_SIZE). Oversized parts fail with
// storage.ErrFileTooLarge.
package redis
