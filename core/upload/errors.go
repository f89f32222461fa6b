package upload

import (
	"errors"
	"net/http"
)

// ErrorCode identifies one failure kind in the closed upload taxonomy.
// Every error surfaced by the pipeline carries exactly one code, so
// callers can branch on the kind without string matching.
type ErrorCode string

const (
	// CodeUnexpectedFile marks a file that arrived for an undeclared field
	// or for a field whose budget is exhausted.
	CodeUnexpectedFile ErrorCode = "LIMIT_UNEXPECTED_FILE"
	// CodeFileSize marks a file that exceeded Limits.FileSize.
	CodeFileSize ErrorCode = "LIMIT_FILE_SIZE"
	// CodeFileCount marks a request with more file parts than Limits.Files.
	CodeFileCount ErrorCode = "LIMIT_FILE_COUNT"
	// CodeFieldKey marks a part whose field name exceeded Limits.FieldNameSize.
	CodeFieldKey ErrorCode = "LIMIT_FIELD_KEY"
	// CodeFieldCount marks a request with more ordinary fields than Limits.Fields.
	CodeFieldCount ErrorCode = "LIMIT_FIELD_COUNT"
	// CodeFieldSize marks a field value that exceeded Limits.FieldSize.
	CodeFieldSize ErrorCode = "LIMIT_FIELD_SIZE"
	// CodePartCount marks a request with more parts than Limits.Parts.
	CodePartCount ErrorCode = "LIMIT_PART_COUNT"
	// CodeStorage marks a storage engine failure while committing a part.
	CodeStorage ErrorCode = "STORAGE_ERROR"
	// CodeFilter marks a file filter that returned an error.
	CodeFilter ErrorCode = "FILTER_ERROR"
	// CodeCleanup marks a failed removal of an already-stored file during
	// unwind. It is logged, never surfaced as a request failure.
	CodeCleanup ErrorCode = "CLEANUP_ERROR"
	// CodeInvalidOptions marks malformed configuration detected at
	// construction or first use.
	CodeInvalidOptions ErrorCode = "INVALID_OPTIONS"
)

var messages = map[ErrorCode]string{
	CodeUnexpectedFile: "unexpected file",
	CodeFileSize:       "file too large",
	CodeFileCount:      "too many files",
	CodeFieldKey:       "field name too long",
	CodeFieldCount:     "too many fields",
	CodeFieldSize:      "field value too long",
	CodePartCount:      "too many parts",
	CodeStorage:        "storage failed",
	CodeFilter:         "file filter failed",
	CodeCleanup:        "stored file cleanup failed",
	CodeInvalidOptions: "invalid upload options",
}

// Error is the uniform failure type surfaced from any pipeline stage.
// Field names the multipart field involved when one is known.
type Error struct {
	Code  ErrorCode
	Field string

	err error
}

func newError(code ErrorCode, field string) *Error {
	return &Error{Code: code, Field: field}
}

func wrapError(code ErrorCode, field string, err error) *Error {
	return &Error{Code: code, Field: field, err: err}
}

func (e *Error) Error() string {
	msg, ok := messages[e.Code]
	if !ok {
		msg = string(e.Code)
	}
	msg = "upload: " + msg
	if e.Field != "" {
		msg += " (field " + e.Field + ")"
	}
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause, so errors.Is can match storage
// sentinels through the taxonomy wrapper.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the failure kind to an HTTP status. HTTP adapters pick
// the response code through this method without knowing the taxonomy.
func (e *Error) StatusCode() int {
	switch e.Code {
	case CodeFileSize, CodeFileCount, CodeFieldKey, CodeFieldCount, CodeFieldSize, CodePartCount:
		return http.StatusRequestEntityTooLarge
	case CodeUnexpectedFile, CodeFilter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsCode reports whether err is, or wraps, a pipeline *Error with the
// given code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
