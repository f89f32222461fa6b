package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid and stores it", func(t *testing.T) {
		t.Parallel()

		var fromCtx string
		handler := middleware.RequestID()(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := middleware.RequestIDFromContext(r.Context())
				require.True(t, ok)
				fromCtx = id
				w.WriteHeader(http.StatusOK)
			}),
		)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(fromCtx)
		require.NoError(t, err)
		assert.Equal(t, fromCtx, rec.Header().Get("X-Request-ID"))
	})

	t.Run("new id per request", func(t *testing.T) {
		t.Parallel()

		handler := middleware.RequestID()(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		)

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEqual(t, first.Header().Get("X-Request-ID"), second.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("reuses incoming id when configured", func(t *testing.T) {
		t.Parallel()

		handler := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			UseExisting: true,
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "upstream-id", rec.Header().Get("X-Request-ID"))
	})

	t.Run("ignores incoming id by default", func(t *testing.T) {
		t.Parallel()

		handler := middleware.RequestIDWithConfig(middleware.RequestIDConfig{})(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.NotEqual(t, "upstream-id", rec.Header().Get("X-Request-ID"))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and header", func(t *testing.T) {
		t.Parallel()

		handler := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			HeaderName: "X-Trace-ID",
			Generator:  func() string { return "fixed-id" },
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "fixed-id", rec.Header().Get("X-Trace-ID"))
		assert.Empty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("skip leaves the request untouched", func(t *testing.T) {
		t.Parallel()

		handler := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Skip: func(r *http.Request) bool { return true },
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := middleware.RequestIDFromContext(r.Context())
			assert.False(t, ok)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, rec.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDFromContext(t *testing.T) {
	t.Parallel()

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()

		id, ok := middleware.RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
		assert.False(t, ok)
		assert.Empty(t, id)
	})
}
