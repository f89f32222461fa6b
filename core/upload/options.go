package upload

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/uploadkit/core/storage"
)

// Option configures an Uploader. Options validate their input and report
// values the pipeline cannot run with as CodeInvalidOptions errors from
// New.
type Option func(*Uploader) error

func optionsError(msg string) *Error {
	return wrapError(CodeInvalidOptions, "", errors.New(msg))
}

// WithStorage selects the engine committed files go to. It takes
// precedence over WithDir when both are given.
func WithStorage(engine storage.Engine) Option {
	return func(u *Uploader) error {
		if engine == nil {
			return optionsError("nil storage engine")
		}
		u.engine = engine
		return nil
	}
}

// WithDir is shorthand for committing files to a disk engine rooted at
// dir, with generated filenames.
func WithDir(dir string) Option {
	return func(u *Uploader) error {
		if dir == "" {
			return optionsError("empty upload directory")
		}
		u.dir = dir
		return nil
	}
}

// WithLimits replaces the default request limits.
func WithLimits(limits Limits) Option {
	return func(u *Uploader) error {
		u.limits = limits
		return nil
	}
}

// WithFilter sets the accept/reject predicate run for each admitted file.
func WithFilter(fn FilterFunc) Option {
	return func(u *Uploader) error {
		if fn == nil {
			return optionsError("nil file filter")
		}
		u.filter = fn
		return nil
	}
}

// WithLogger sets the logger used for cleanup failures. The default
// discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(u *Uploader) error {
		if log == nil {
			return optionsError("nil logger")
		}
		u.logger = log
		return nil
	}
}

// WithPreservePath keeps the client-supplied relative directory components
// of filenames instead of reducing them to a base name. Traversal and
// absolute segments are still stripped.
func WithPreservePath() Option {
	return func(u *Uploader) error {
		u.preservePath = true
		return nil
	}
}
