package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/uploadkit/core/logger"
	"github.com/dmitrymomot/uploadkit/core/upload"
)

// UploadConfig configures the upload middleware.
type UploadConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// ErrorHandler translates pipeline failures into responses. The default
	// maps the taxonomy to HTTP statuses and writes a plain-text error;
	// replace it to hand errors to the host's own error layer instead.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

	// Logger records failed requests (default: discard)
	Logger *slog.Logger
}

// statusCode is an unexported interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// Upload creates an upload middleware with default configuration. Each
// request is parsed by the processor before the handler runs; the Result
// is attached to the request context and read with upload.FromContext.
func Upload(p *upload.Processor) func(http.Handler) http.Handler {
	return UploadWithConfig(p, UploadConfig{})
}

// UploadWithConfig creates an upload middleware with custom configuration.
// On a pipeline failure the wrapped handler never runs; the error handler
// writes the response and the pipeline has already removed any files it
// committed.
func UploadWithConfig(p *upload.Processor, cfg UploadConfig) func(http.Handler) http.Handler {
	if p == nil {
		panic("middleware: nil upload processor")
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			res, err := p.Process(r)
			if err != nil {
				cfg.Logger.ErrorContext(r.Context(), "upload failed",
					logger.Component("middleware.upload"),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.Error(err),
					logger.Duration(time.Since(start)),
				)
				cfg.ErrorHandler(w, r, err)
				return
			}

			cfg.Logger.DebugContext(r.Context(), "upload processed",
				logger.Component("middleware.upload"),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Files(countFiles(res)),
				logger.Rejected(len(res.Rejected)),
				logger.Duration(time.Since(start)),
			)

			next.ServeHTTP(w, r.WithContext(upload.NewContext(r.Context(), res)))
		})
	}
}

// defaultErrorHandler writes the error with the status the taxonomy
// assigns. Malformed multipart requests map to 400; a request cut off by
// the body limit middleware maps to 413.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	var (
		sc       statusCode
		maxBytes *http.MaxBytesError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &maxBytes):
		status = http.StatusRequestEntityTooLarge
	case errors.As(err, &sc):
		status = sc.StatusCode()
	case errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func countFiles(res *upload.Result) int {
	switch {
	case res.File != nil:
		return 1
	case res.Files != nil:
		return len(res.Files)
	case res.FileGroups != nil:
		n := 0
		for _, files := range res.FileGroups {
			n += len(files)
		}
		return n
	default:
		return 0
	}
}
