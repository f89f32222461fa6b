package health

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/uploadkit/core/logger"
)

// Check verifies one dependency. The integration/database packages
// return ready-made checks from their Healthcheck constructors.
type Check func(context.Context) error

// Readiness verifies every dependency before answering 200 "READY". The
// first failing check is logged and turns the response into 503, which
// takes an upload service out of rotation while its storage backend is
// unreachable.
func Readiness(log *slog.Logger, checks ...Check) http.Handler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})
}
