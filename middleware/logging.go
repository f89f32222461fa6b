package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/uploadkit/core/logger"
)

// LoggingConfig configures the request logging middleware. Bodies are
// never logged: upload requests are consumed as streams and must not be
// buffered for log output.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for ordinary request lines (default: Info)
	LogLevel slog.Level

	// LogRequest enables the request-started line (default: true)
	LogRequest bool

	// LogResponse enables the request-completed line (default: true)
	LogResponse bool

	// LogHeaders enables logging of request headers (default: false)
	LogHeaders bool

	// SensitiveHeaders lists header names to redact (default: common auth headers)
	SensitiveHeaders []string

	// SlowRequestThreshold marks slower requests with a warning (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging (default: "http")
	Component string
}

// Logging creates a request logging middleware with default configuration.
// It logs a line when a request starts and one when it completes, with
// status, bytes written, and duration.
func Logging() func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware with custom
// configuration. Responses with 5xx status log as errors and 4xx as
// warnings, so rejected and failed uploads stand out without extra
// configuration. Requests slower than SlowRequestThreshold are flagged,
// which catches uploads stalled on a slow client or storage backend.
func LoggingWithConfig(cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	// A zero-value config logs both lines; setting exactly one flag keeps
	// the other line off.
	if !cfg.LogRequest && !cfg.LogResponse {
		cfg.LogRequest = true
		cfg.LogResponse = true
	}
	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"Set-Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			requestID, _ := RequestIDFromContext(r.Context())

			if cfg.LogRequest {
				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.ClientIP(r.RemoteAddr),
					logger.RequestID(requestID),
				}
				if cfg.LogHeaders {
					attrs = append(attrs, headersAttr("request_headers", r.Header, cfg.SensitiveHeaders))
				}
				cfg.Logger.LogAttrs(r.Context(), cfg.LogLevel, "request started", attrs...)
			}

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			if !cfg.LogResponse {
				return
			}

			duration := time.Since(start)
			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(wrapped.statusCode),
				logger.BytesOut(wrapped.size),
				logger.Duration(duration),
				logger.RequestID(requestID),
			}

			level := cfg.LogLevel
			switch {
			case wrapped.statusCode >= http.StatusInternalServerError:
				level = slog.LevelError
			case wrapped.statusCode >= http.StatusBadRequest:
				level = slog.LevelWarn
			case duration > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(r.Context(), level, "request completed", attrs...)
		})
	}
}

// headersAttr renders headers with sensitive values redacted.
func headersAttr(key string, h http.Header, sensitive []string) slog.Attr {
	headers := make(map[string]any, len(h))
	for name, values := range h {
		if slices.Contains(sensitive, name) {
			headers[name] = "[REDACTED]"
			continue
		}
		if len(values) == 1 {
			headers[name] = values[0]
		} else {
			headers[name] = values
		}
	}
	return slog.Any(key, headers)
}

// responseWriter wraps http.ResponseWriter to capture status and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int64
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}
