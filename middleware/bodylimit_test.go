package middleware_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit/middleware"
)

func echoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	t.Run("passes small bodies through", func(t *testing.T) {
		t.Parallel()

		handler := middleware.BodyLimit()(echoHandler())

		body := strings.Repeat("a", 1024)
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, body, rec.Body.String())
	})

	t.Run("rejects declared oversize before reading", func(t *testing.T) {
		t.Parallel()

		called := false
		handler := middleware.BodyLimitWithSize(100)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}),
		)

		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("a", 150)))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.False(t, called, "handler must not run for rejected requests")
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Contains(t, rec.Body.String(), "100 bytes")
	})

	t.Run("enforces mid-stream when length is not declared", func(t *testing.T) {
		t.Parallel()

		var readErr error
		handler := middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			MaxSize:                   100,
			DisableContentLengthCheck: true,
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
			if readErr != nil {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("b", 150)))
		req.ContentLength = -1
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		var maxBytes *http.MaxBytesError
		require.ErrorAs(t, readErr, &maxBytes)
	})

	t.Run("requests without a body pass", func(t *testing.T) {
		t.Parallel()

		handler := middleware.BodyLimitWithSize(100)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}),
		)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBodyLimitWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("per content type limits", func(t *testing.T) {
		t.Parallel()

		handler := middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			MaxSize: 100,
			ContentTypeLimit: map[string]int64{
				"application/json":    50,
				"multipart/form-data": 200,
			},
		})(echoHandler())

		tests := []struct {
			name        string
			contentType string
			bodySize    int
			wantCode    int
		}{
			{"json within limit", "application/json", 40, http.StatusOK},
			{"json exceeds limit", "application/json", 60, http.StatusRequestEntityTooLarge},
			{"json with charset exceeds limit", "application/json; charset=utf-8", 60, http.StatusRequestEntityTooLarge},
			{"multipart within its larger limit", "multipart/form-data; boundary=x", 150, http.StatusOK},
			{"multipart exceeds limit", "multipart/form-data; boundary=x", 250, http.StatusRequestEntityTooLarge},
			{"unknown type uses default", "text/plain", 80, http.StatusOK},
			{"unknown type exceeds default", "text/plain", 120, http.StatusRequestEntityTooLarge},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("x", tt.bodySize)))
				req.Header.Set("Content-Type", tt.contentType)
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)

				assert.Equal(t, tt.wantCode, rec.Code)
			})
		}
	})

	t.Run("skip bypasses the cap", func(t *testing.T) {
		t.Parallel()

		handler := middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			MaxSize: 10,
			Skip: func(r *http.Request) bool {
				return r.URL.Path == "/unlimited"
			},
		})(echoHandler())

		body := strings.Repeat("a", 40)

		req := httptest.NewRequest(http.MethodPost, "/capped", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

		req = httptest.NewRequest(http.MethodPost, "/unlimited", strings.NewReader(body))
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, body, rec.Body.String())
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()

		handler := middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			MaxSize: 10,
			ErrorHandler: func(w http.ResponseWriter, r *http.Request, contentLength, maxSize int64) {
				assert.Equal(t, int64(20), contentLength)
				assert.Equal(t, int64(10), maxSize)
				w.WriteHeader(http.StatusTeapot)
			},
		})(echoHandler())

		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("a", 20)))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

// The body limit and upload middleware compose: a multipart request cut
// off mid-stream by the cap surfaces as 413 from the upload error handler.
func TestBodyLimitUploadPairing(t *testing.T) {
	t.Parallel()

	u := newUploader(t)

	called := false
	handler := middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		MaxSize:                   200,
		DisableContentLengthCheck: true,
	})(middleware.Upload(u.Single("doc"))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}),
	))

	req := multipartRequest(t, func(w *multipart.Writer) {
		part, err := w.CreateFormFile("doc", "big.bin")
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("z"), 512))
		require.NoError(t, err)
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestBodyLimitConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(1024), middleware.KB)
	assert.Equal(t, int64(1024*1024), middleware.MB)
	assert.Equal(t, int64(1024*1024*1024), middleware.GB)
}
