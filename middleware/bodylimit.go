package middleware

import (
	"fmt"
	"mime"
	"net/http"
)

// Common size constants for configuring limits.
const (
	// KB represents 1 kilobyte
	KB int64 = 1024
	// MB represents 1 megabyte
	MB = 1024 * KB
	// GB represents 1 gigabyte
	GB = 1024 * MB
)

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// MaxSize is the maximum allowed body size in bytes (default: 32MB)
	MaxSize int64

	// ContentTypeLimit overrides MaxSize per media type, so multipart
	// uploads can be given more room than JSON bodies:
	// {"application/json": middleware.MB, "multipart/form-data": 64 * middleware.MB}
	ContentTypeLimit map[string]int64

	// ErrorHandler handles requests rejected by the Content-Length check.
	// contentLength is the declared body size, maxSize the limit that applied.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, contentLength, maxSize int64)

	// DisableContentLengthCheck skips the declared-length check and
	// enforces the limit only while the body is being read
	DisableContentLengthCheck bool
}

// BodyLimit creates a body limit middleware with the default 32MB cap.
// It stops oversized requests before any body bytes are processed.
func BodyLimit() func(http.Handler) http.Handler {
	return BodyLimitWithConfig(BodyLimitConfig{})
}

// BodyLimitWithSize creates a body limit middleware with a specific cap.
func BodyLimitWithSize(maxSize int64) func(http.Handler) http.Handler {
	return BodyLimitWithConfig(BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig creates a body limit middleware with custom
// configuration. Requests whose declared Content-Length exceeds the
// applicable limit are rejected up front; everything else gets its body
// wrapped with http.MaxBytesReader, so a consumer reading past the cap
// receives *http.MaxBytesError mid-stream. Placed in front of the upload
// middleware this caps the whole multipart request, and the upload error
// handler turns the mid-stream error into a 413 response.
func BodyLimitWithConfig(cfg BodyLimitConfig) func(http.Handler) http.Handler {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 32 * MB
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultBodyLimitHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			maxSize := cfg.MaxSize
			if cfg.ContentTypeLimit != nil {
				if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
					if limit, ok := cfg.ContentTypeLimit[mediaType]; ok {
						maxSize = limit
					}
				}
			}

			// ContentLength is -1 when unknown (chunked encoding); those
			// requests are enforced during reading instead.
			if !cfg.DisableContentLengthCheck && r.ContentLength > maxSize {
				cfg.ErrorHandler(w, r, r.ContentLength, maxSize)
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxSize)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func defaultBodyLimitHandler(w http.ResponseWriter, r *http.Request, contentLength, maxSize int64) {
	msg := fmt.Sprintf("request body too large: maximum allowed %s", formatBytes(maxSize))
	if contentLength > 0 {
		msg = fmt.Sprintf("request body too large: %s declared, maximum allowed %s",
			formatBytes(contentLength), formatBytes(maxSize))
	}
	http.Error(w, msg, http.StatusRequestEntityTooLarge)
}

// formatBytes renders a byte count for error messages.
func formatBytes(n int64) string {
	switch {
	case n >= GB:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
