// Package middleware adapts the upload pipeline to plain net/http servers.
// The middleware runs a processor before the wrapped handler, attaches the
// parse result to the request context, and turns pipeline failures into
// HTTP responses without the handler ever running.
//
// # Architecture
//
// The middleware follows a consistent pattern:
//   - Standard func(http.Handler) http.Handler signature, so it composes
//     with any router that accepts net/http middleware
//   - A configuration struct for customization
//   - A default constructor for common use cases
//   - A WithConfig constructor for advanced configuration
//   - Context helpers in the upload package for retrieving stored values
//
// # Upload Middleware
//
// Parse uploads before the handler and read the result from the context:
//
//	import (
//		"github.com/dmitrymomot/uploadkit/core/upload"
//		"github.com/dmitrymomot/uploadkit/middleware"
//	)
//
//	uploader, _ := upload.New(upload.WithDir("/var/uploads"))
//
//	mux := http.NewServeMux()
//	mux.Handle("POST /avatar", middleware.Upload(uploader.Single("avatar"))(
//		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//			res, _ := upload.FromContext(r.Context())
//			if res.File != nil {
//				fmt.Fprintln(w, "stored at", res.File.Path)
//			}
//		}),
//	))
//
// # Error Handling
//
// By default failures are written as plain-text errors with the status the
// taxonomy assigns (413 for limit violations, 400 for unexpected files and
// filter rejections, 500 for storage faults). Hosts with their own error
// layer replace the handler:
//
//	middleware.UploadWithConfig(proc, middleware.UploadConfig{
//		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
//			render.Error(w, r, err) // hand off to the host's renderer
//		},
//	})
//
// # Skipping Requests
//
// Skip lets one route serve both multipart and JSON bodies:
//
//	middleware.UploadWithConfig(proc, middleware.UploadConfig{
//		Skip: func(r *http.Request) bool {
//			ct := r.Header.Get("Content-Type")
//			return !strings.HasPrefix(ct, "multipart/form-data")
//		},
//	})
//
// # Companion Middleware
//
// BodyLimit caps the whole request before the multipart reader starts,
// with per-content-type overrides so uploads get more room than JSON:
//
//	chain := middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
//		MaxSize: middleware.MB,
//		ContentTypeLimit: map[string]int64{
//			"multipart/form-data": 64 * middleware.MB,
//		},
//	})
//
// A request cut off mid-stream by the cap surfaces from the upload
// middleware as 413.
//
// RequestID and Logging add request correlation and structured slog
// request lines around the upload endpoint:
//
//	handler = middleware.RequestID()(
//		middleware.Logging()(
//			middleware.Upload(proc)(handler)))
package middleware
