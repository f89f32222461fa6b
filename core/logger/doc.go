// Package logger provides slog attribute helpers for the upload pipeline.
// Attributes follow the empty Attr pattern: helpers taking a value that can
// be absent (nil error, empty string) return an empty slog.Attr, which slog
// drops silently, so call sites never need nil checks.
//
// # Basic Usage
//
// The package does not construct loggers. It decorates log calls made with
// any *slog.Logger:
//
//	import "github.com/dmitrymomot/uploadkit/core/logger"
//
//	log.Info("upload committed",
//		logger.Component("upload"),
//		logger.FieldName(file.FieldName),
//		logger.Filename(file.Filename),
//		logger.Size(file.Size),
//	)
//
//	log.Error("cleanup failed",
//		logger.Component("upload"),
//		logger.Error(err),
//	)
//
// # Attribute Groups
//
// Related attributes can be grouped under one key:
//
//	log.Info("request finished",
//		logger.Group("http",
//			logger.Method(r.Method),
//			logger.Path(r.URL.Path),
//			logger.StatusCode(status),
//		),
//		logger.Duration(time.Since(start)),
//	)
//
// # Error Attributes
//
// Error and Errors accept nil without special-casing:
//
//	log.Warn("partial cleanup",
//		logger.Errors(removeErr1, removeErr2, nil),
//	)
package logger
