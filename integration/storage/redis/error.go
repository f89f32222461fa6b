package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/uploadkit/core/storage"
)

// classifyRedisError converts go-redis errors to the shared storage
// sentinels so callers can match with errors.Is regardless of engine.
func classifyRedisError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Context errors have highest priority for proper cancellation handling
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s operation", storage.ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s operation", storage.ErrOperationCanceled, operation)
	}

	if errors.Is(err, goredis.Nil) {
		return fmt.Errorf("%w: %s", storage.ErrFileNotFound, err)
	}

	// Default fallback with context preservation
	return fmt.Errorf("%s operation failed: %w", operation, err)
}
