package upload

import (
	"io"
	"log/slog"

	"github.com/dmitrymomot/uploadkit/core/storage"
)

// Uploader holds request-independent upload configuration: the storage
// engine, limits, filter, and logger. One Uploader serves any number of
// processors and concurrent requests.
type Uploader struct {
	engine       storage.Engine
	dir          string
	limits       Limits
	filter       FilterFunc
	logger       *slog.Logger
	preservePath bool
}

// New creates an Uploader. Without options files are buffered by the
// in-memory engine, default limits apply, and every file is accepted.
func New(opts ...Option) (*Uploader, error) {
	u := &Uploader{
		limits: DefaultLimits(),
		filter: acceptAll,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, err
		}
	}

	// An explicit engine wins over the directory shorthand regardless of
	// option order; with neither, files stay in memory.
	if u.engine == nil {
		if u.dir != "" {
			engine, err := storage.NewDisk(u.dir)
			if err != nil {
				return nil, wrapError(CodeInvalidOptions, "", err)
			}
			u.engine = engine
		} else {
			u.engine = storage.NewMemory()
		}
	}

	return u, nil
}

// Single accepts at most one file for the given field, surfaced as
// Result.File. Extra files for the field are rejected and recorded, not
// fatal.
func (u *Uploader) Single(field string) *Processor {
	return newProcessor(u, ShapeValue, false, Field{Name: field, MaxCount: 1})
}

// Array accepts up to maxCount files for one field, surfaced as
// Result.Files in arrival order. maxCount <= 0 means unbounded.
func (u *Uploader) Array(field string, maxCount int) *Processor {
	return newProcessor(u, ShapeArray, false, Field{Name: field, MaxCount: maxCount})
}

// Fields accepts files for the declared fields, surfaced as
// Result.FileGroups keyed by field name.
func (u *Uploader) Fields(fields ...Field) *Processor {
	return newProcessor(u, ShapeObject, false, fields...)
}

// None parses ordinary fields only. Any file part fails the request.
func (u *Uploader) None() *Processor {
	return newProcessor(u, ShapeNone, false)
}

// Any accepts every file regardless of field name, surfaced as
// Result.Files in arrival order. Per-field budgets do not apply; every
// field is implicitly unbounded.
func (u *Uploader) Any() *Processor {
	return newProcessor(u, ShapeArray, true)
}
