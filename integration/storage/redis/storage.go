package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/uploadkit/core/storage"
)

// Compile-time check that RedisEngine implements the storage.Engine interface.
var _ storage.Engine = (*RedisEngine)(nil)

// RedisClient defines the Redis operations used by RedisEngine. Any go-redis
// client satisfies it: single node, cluster, ring, or a mock in tests.
type RedisClient interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Get(ctx context.Context, key string) *goredis.StringCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// RedisEngine commits parts as Redis values under generated keys. Bodies
// are buffered in memory before the SET, so the engine suits small
// transient uploads: import batches awaiting processing, avatars pending
// moderation, short-lived attachments. Pair with the MaxSize cap.
type RedisEngine struct {
	client    RedisClient
	keyPrefix string
	ttl       time.Duration
	maxSize   int64
}

// RedisConfig contains configuration for the Redis engine.
type RedisConfig struct {
	KeyPrefix string        `env:"REDIS_UPLOAD_KEY_PREFIX" envDefault:"upload:"`
	TTL       time.Duration `env:"REDIS_UPLOAD_TTL"`                            // Zero keeps values until removed
	MaxSize   int64         `env:"REDIS_UPLOAD_MAX_SIZE" envDefault:"8388608"` // Zero means no cap
}

// RedisOption defines a function that configures RedisEngine.
type RedisOption func(*RedisEngine)

// WithKeyPrefix overrides the configured key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(e *RedisEngine) {
		e.keyPrefix = prefix
	}
}

// WithTTL sets the expiration for stored values. Expired uploads vanish
// without an explicit Remove, which fits grab-then-process flows.
func WithTTL(ttl time.Duration) RedisOption {
	return func(e *RedisEngine) {
		e.ttl = ttl
	}
}

// WithMaxSize caps the number of bytes buffered per file. Parts exceeding
// the cap fail with storage.ErrFileTooLarge.
func WithMaxSize(n int64) RedisOption {
	return func(e *RedisEngine) {
		e.maxSize = n
	}
}

// New creates a Redis engine on top of an established client. Use the
// integration/database/redis package to build a verified client from
// environment configuration.
func New(client RedisClient, cfg RedisConfig, opts ...RedisOption) (*RedisEngine, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: redis client required", storage.ErrInvalidConfig)
	}

	e := &RedisEngine{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       cfg.TTL,
		maxSize:   cfg.MaxSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Save buffers the part and stores it as a single value under a random
// UUID key. The key is returned in File.Path for later Fetch and Remove.
func (e *RedisEngine) Save(ctx context.Context, part *storage.Part) (*storage.File, error) {
	if part == nil || part.Body == nil {
		return nil, storage.ErrNilPart
	}

	var buf bytes.Buffer
	src := part.Body
	if e.maxSize > 0 {
		src = io.LimitReader(src, e.maxSize+1)
	}
	size, err := buf.ReadFrom(src)
	if err != nil {
		return nil, fmt.Errorf("buffer part: %w", err)
	}
	if e.maxSize > 0 && size > e.maxSize {
		return nil, fmt.Errorf("%w: limit %d bytes", storage.ErrFileTooLarge, e.maxSize)
	}

	key := e.keyPrefix + storage.RandomName(part.Filename)
	if err := e.client.Set(ctx, key, buf.Bytes(), e.ttl).Err(); err != nil {
		return nil, classifyRedisError(err, "store file")
	}

	return &storage.File{
		FieldName: part.FieldName,
		Filename:  part.Filename,
		MIMEType:  part.MIMEType,
		Encoding:  part.Encoding,
		Extension: storage.Extension(part.Filename),
		Size:      size,
		Path:      key,
	}, nil
}

// Fetch loads the stored bytes for a previously saved file.
func (e *RedisEngine) Fetch(ctx context.Context, file *storage.File) ([]byte, error) {
	if file == nil {
		return nil, storage.ErrNilFile
	}
	if file.Path == "" {
		return nil, fmt.Errorf("%w: file has no key", storage.ErrInvalidPath)
	}

	data, err := e.client.Get(ctx, file.Path).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("%w: %s", storage.ErrFileNotFound, file.Path)
	}
	if err != nil {
		return nil, classifyRedisError(err, "fetch file")
	}
	return data, nil
}

// Remove deletes a stored value. Deleting a key that is already gone or
// expired is a no-op, which keeps unwind paths idempotent.
func (e *RedisEngine) Remove(ctx context.Context, file *storage.File) error {
	if file == nil {
		return storage.ErrNilFile
	}
	if file.Path == "" {
		return fmt.Errorf("%w: file has no key", storage.ErrInvalidPath)
	}

	if err := e.client.Del(ctx, file.Path).Err(); err != nil {
		return classifyRedisError(err, "delete file")
	}
	return nil
}
