package upload

import (
	"net/http"

	"github.com/dmitrymomot/uploadkit/core/storage"
)

// FilterFunc decides whether a file part is committed to storage. It runs
// after admission and sees the part's metadata, never its bytes.
//
// Returning (false, nil) skips the file silently; the part is drained and
// parsing continues. Returning an error aborts the whole request.
type FilterFunc func(r *http.Request, info storage.PartInfo) (bool, error)

// acceptAll is the default filter.
func acceptAll(*http.Request, storage.PartInfo) (bool, error) {
	return true, nil
}
