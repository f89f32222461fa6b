package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/uploadkit/core/storage"
)

// classifyPGError maps pgx failures to the shared storage sentinel errors
// so callers can branch with errors.Is regardless of the engine in use.
func classifyPGError(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s operation timed out", storage.ErrOperationTimeout, operation)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s operation was canceled", storage.ErrOperationCanceled, operation)
	}

	return fmt.Errorf("%s operation failed: %w", operation, err)
}
