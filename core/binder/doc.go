// Package binder maps parsed form values onto Go structs. It is the
// companion to the upload pipeline: the pipeline collects the ordinary
// text fields of a multipart request into Result.Fields, and Bind turns
// those values into a typed struct with sanitization and type conversion.
//
// # Usage
//
// Declare a struct with `form` tags and bind the fields of a processed
// upload:
//
//	type PostForm struct {
//		Title    string   `form:"title"`
//		Category string   `form:"category"`
//		Tags     []string `form:"tags"`   // repeated field or "a,b,c"
//		Public   bool     `form:"public"` // accepts "on", "yes", "1"
//		Priority *int     `form:"priority"`
//		Internal string   `form:"-"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		res, _ := upload.FromContext(r.Context())
//
//		var form PostForm
//		if err := binder.Bind(res.Fields, &form); err != nil {
//			http.Error(w, err.Error(), http.StatusBadRequest)
//			return
//		}
//		// form is populated; res.Files holds the stored uploads
//	}
//
// Any url.Values works as the source, so the same structs bind
// query strings or urlencoded bodies parsed elsewhere.
//
// # Supported Types
//
//   - string
//   - int, int8, int16, int32, int64
//   - uint, uint8, uint16, uint32, uint64
//   - float32, float64
//   - bool (recognizes: true, false, 1, 0, on, off, yes, no)
//   - Slices of any of the above types
//   - Pointers to any of the above types (for optional fields)
//
// # Sanitization
//
// String values are cleaned before assignment: NUL bytes and CR/LF
// sequences are removed and non-printable control characters stripped,
// which blocks header-injection payloads smuggled through form fields.
//
// # Error Handling
//
// All failures wrap ErrFailedToBindForm:
//
//	if err := binder.Bind(values, &form); err != nil {
//		if errors.Is(err, binder.ErrFailedToBindForm) {
//			// malformed value or wrong target type
//		}
//	}
package binder
