// Package upload parses multipart/form-data requests in streaming fashion:
// each part is read once off the wire, checked against declared fields and
// limits, optionally filtered by the caller, and committed to a pluggable
// storage engine. Nothing is buffered beyond the part currently in flight,
// and a request that fails mid-stream removes every file it had already
// committed.
//
// # Features
//
//   - Field whitelisting with per-field file budgets
//   - Four result shapes: single file, flat list, groups by field, fields-only
//   - Wildcard mode accepting any field
//   - Streaming size and count limits enforced without buffering
//   - Caller filter with accept, silent-reject, and abort outcomes
//   - Pluggable storage via the storage.Engine interface
//   - Guaranteed cleanup of committed files when a request fails
//   - Closed error taxonomy with HTTP status mapping
//
// # Basic Usage
//
// Build one Uploader, derive processors per route, run Process per request:
//
//	import "github.com/dmitrymomot/uploadkit/core/upload"
//
//	uploader, err := upload.New(
//		upload.WithDir("/var/uploads"),
//		upload.WithLimits(upload.Limits{FileSize: 32 << 20, Files: 5}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	avatar := uploader.Single("avatar")
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		res, err := avatar.Process(r)
//		if err != nil {
//			http.Error(w, err.Error(), http.StatusBadRequest)
//			return
//		}
//		if res.File != nil {
//			fmt.Fprintln(w, "stored at", res.File.Path)
//		}
//	}
//
// # Result Shapes
//
// The entry point picks where committed files appear on the Result:
//
//	uploader.Single("avatar")      // Result.File, at most one
//	uploader.Array("photos", 8)    // Result.Files, up to 8 for "photos"
//	uploader.Fields(               // Result.FileGroups by field name
//		upload.Field{Name: "cover", MaxCount: 1},
//		upload.Field{Name: "gallery", MaxCount: 10},
//	)
//	uploader.None()                // fields only, any file is an error
//	uploader.Any()                 // Result.Files, any field, no budgets
//
// Extra files for a declared field and files for undeclared fields are
// drained and listed in Result.Rejected; the request itself still
// succeeds. Under None a file part fails the request.
//
// # Filtering
//
// The filter sees each admitted file's metadata before any byte is stored:
//
//	uploader, err := upload.New(upload.WithFilter(
//		func(r *http.Request, info storage.PartInfo) (bool, error) {
//			if !strings.HasPrefix(info.MIMEType, "image/") {
//				return false, nil // skip silently
//			}
//			return true, nil
//		},
//	))
//
// # Failure Semantics
//
// Fatal errors (exceeded limits, storage failures, filter errors, a file
// under None) abort parsing, remove every file committed so far, and
// surface a single *Error carrying the failure code and field name.
// Cleanup failures are logged and never replace the primary error:
//
//	res, err := processor.Process(r)
//	if upload.IsCode(err, upload.CodeFileSize) {
//		// 413 territory
//	}
package upload
