package health_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit/core/health"
)

func TestLiveness(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.Liveness().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestNoContent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.NoContent().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	t.Run("all checks pass", func(t *testing.T) {
		t.Parallel()

		calls := 0
		check := func(context.Context) error {
			calls++
			return nil
		}

		rec := httptest.NewRecorder()
		health.Readiness(nil, check, check).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
		assert.Equal(t, 2, calls)
	})

	t.Run("no checks behaves as liveness", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		health.Readiness(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("first failure short-circuits", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		reached := false
		failing := func(context.Context) error { return errors.New("redis not ready") }
		after := func(context.Context) error {
			reached = true
			return nil
		}

		rec := httptest.NewRecorder()
		health.Readiness(log, failing, after).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.False(t, reached, "later checks must not run after a failure")
		assert.Contains(t, buf.String(), "readiness check failed")
		assert.Contains(t, buf.String(), "redis not ready")
	})

	t.Run("nil logger is tolerated", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NotPanics(t, func() {
			health.Readiness(nil, func(context.Context) error { return errors.New("down") }).
				ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
