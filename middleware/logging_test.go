package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit/middleware"
)

// logRecorder captures log entries for assertions.
type logRecorder struct {
	entries []map[string]any
}

func (h *logRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (h *logRecorder) Handle(_ context.Context, r slog.Record) error {
	entry := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})
	h.entries = append(h.entries, entry)
	return nil
}

func (h *logRecorder) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *logRecorder) WithGroup(string) slog.Handler      { return h }

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("logs start and completion", func(t *testing.T) {
		t.Parallel()

		rec := &logRecorder{}
		handler := middleware.LoggingWithLogger(slog.New(rec))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("test response"))
			}),
		)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", nil))

		require.Len(t, rec.entries, 2)

		started := rec.entries[0]
		assert.Equal(t, "request started", started["msg"])
		assert.Equal(t, "POST", started["method"])
		assert.Equal(t, "/upload", started["path"])
		assert.Equal(t, "http", started["component"])

		completed := rec.entries[1]
		assert.Equal(t, "request completed", completed["msg"])
		assert.Equal(t, "INFO", completed["level"])
		assert.Equal(t, int64(200), completed["status_code"])
		assert.Equal(t, int64(len("test response")), completed["bytes_out"])
		assert.NotNil(t, completed["duration"])
	})

	t.Run("implicit 200 when handler never writes the header", func(t *testing.T) {
		t.Parallel()

		rec := &logRecorder{}
		handler := middleware.LoggingWithLogger(slog.New(rec))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("ok"))
			}),
		)

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		require.Len(t, rec.entries, 2)
		assert.Equal(t, int64(200), rec.entries[1]["status_code"])
	})
}

func TestLoggingWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("server errors log at error level", func(t *testing.T) {
		t.Parallel()

		rec := &logRecorder{}
		handler := middleware.LoggingWithLogger(slog.New(rec))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "storage down", http.StatusInternalServerError)
			}),
		)

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/upload", nil))

		require.Len(t, rec.entries, 2)
		completed := rec.entries[1]
		assert.Equal(t, "ERROR", completed["level"])
		assert.Equal(t, int64(500), completed["status_code"])
	})

	t.Run("client errors log at warn level", func(t *testing.T) {
		t.Parallel()

		rec := &logRecorder{}
		handler := middleware.LoggingWithLogger(slog.New(rec))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
			}),
		)

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/upload", nil))

		require.Len(t, rec.entries, 2)
		assert.Equal(t, "WARN", rec.entries[1]["level"])
	})

	t.Run("marks slow requests", func(t *testing.T) {
		t.Parallel()

		rec := &logRecorder{}
		handler := middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger:               slog.New(rec),
			SlowRequestThreshold: time.Nanosecond,
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/upload", nil))

		require.Len(t, rec.entries, 2)
		completed := rec.entries[1]
		assert.Equal(t, "WARN", completed["level"])
		assert.Equal(t, true, completed["slow_request"])
	})

	t.Run("redacts sensitive headers", func(t *testing.T) {
		t.Parallel()

		rec := &logRecorder{}
		handler := middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger:     slog.New(rec),
			LogHeaders: true,
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodPost, "/upload", nil)
		req.Header.Set("Authorization", "Bearer secret-token")
		req.Header.Set("X-Custom", "visible")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.Len(t, rec.entries, 2)
		headers, ok := rec.entries[0]["request_headers"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "[REDACTED]", headers["Authorization"])
		assert.Equal(t, "visible", headers["X-Custom"])
	})

	t.Run("includes request id when present", func(t *testing.T) {
		t.Parallel()

		rec := &logRecorder{}
		handler := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: func() string { return "req-42" },
		})(middleware.LoggingWithLogger(slog.New(rec))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/upload", nil))

		require.Len(t, rec.entries, 2)
		assert.Equal(t, "req-42", rec.entries[0]["request_id"])
		assert.Equal(t, "req-42", rec.entries[1]["request_id"])
	})

	t.Run("completion line only", func(t *testing.T) {
		t.Parallel()

		rec := &logRecorder{}
		handler := middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger:      slog.New(rec),
			LogResponse: true,
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		require.Len(t, rec.entries, 1)
		assert.Equal(t, "request completed", rec.entries[0]["msg"])
	})

	t.Run("skip suppresses all logging", func(t *testing.T) {
		t.Parallel()

		rec := &logRecorder{}
		handler := middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger: slog.New(rec),
			Skip:   func(r *http.Request) bool { return r.URL.Path == "/health" },
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Empty(t, rec.entries)
	})
}
