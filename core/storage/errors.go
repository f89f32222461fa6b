package storage

import (
	"context"
	"errors"
)

// Error variables shared by the storage engines. Integrations wrap these
// with fmt.Errorf("%w: ...") so callers can match with errors.Is regardless
// of which engine produced the failure.
var (
	// ErrInvalidConfig indicates an engine was constructed with missing or
	// contradictory configuration.
	ErrInvalidConfig = errors.New("invalid storage configuration")

	// ErrNilPart indicates Save was called with a nil part or a part
	// without a body stream.
	ErrNilPart = errors.New("nil file part")

	// ErrNilFile indicates Remove was called with a nil file receipt.
	ErrNilFile = errors.New("nil stored file")

	// ErrInvalidPath indicates a resolved destination escapes the engine's
	// root or is otherwise unusable.
	ErrInvalidPath = errors.New("invalid storage path")

	// ErrFileNotFound indicates the referenced object does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrFileTooLarge indicates a part exceeded an engine-level size cap.
	ErrFileTooLarge = errors.New("file exceeds storage size limit")

	// ErrOperationTimeout indicates the operation ran out of time.
	ErrOperationTimeout = errors.New("storage operation timed out")

	// ErrOperationCanceled indicates the request context was canceled
	// mid-operation.
	ErrOperationCanceled = errors.New("storage operation canceled")

	// ErrAccessDenied indicates the backing store rejected the credentials
	// or the operation.
	ErrAccessDenied = errors.New("storage access denied")

	// ErrBucketNotFound indicates the configured bucket or namespace does
	// not exist.
	ErrBucketNotFound = errors.New("storage bucket not found")

	// ErrServiceUnavailable indicates a transient backend failure; the
	// request is not retried here, resubmission is up to the client.
	ErrServiceUnavailable = errors.New("storage service unavailable")
)

// contextError maps context cancellation causes to the storage sentinels.
func contextError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrOperationTimeout
	case errors.Is(err, context.Canceled):
		return ErrOperationCanceled
	default:
		return err
	}
}
