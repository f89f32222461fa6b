package logger

import (
	"log/slog"
	"runtime"
	"strconv"
	"time"
)

// Helpers whose input can legitimately be absent (nil error, empty id)
// return the zero slog.Attr, which handlers drop, so call sites never
// guard their log lines.

// Group nests attrs under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// ============================================================================
// Error Handling
// ============================================================================

// Errors groups the non-nil errors under the key "errors", keyed by their
// original index so order survives. All-nil input yields the zero Attr.
func Errors(errs ...error) slog.Attr {
	var as []slog.Attr
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for one error under the key "error".
// A nil error yields the zero Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ============================================================================
// Performance and Timing
// ============================================================================

// Duration creates an attribute for an operation duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed records the time passed since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// ============================================================================
// Upload Metadata
// ============================================================================

// FieldName creates an attribute for the multipart field a part arrived under.
func FieldName(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("field_name", name)
}

// Filename creates an attribute for client-supplied filenames.
func Filename(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("filename", name)
}

// MIMEType creates an attribute for a part's declared content type.
func MIMEType(mime string) slog.Attr {
	if mime == "" {
		return slog.Attr{}
	}
	return slog.String("mime_type", mime)
}

// Size creates an attribute for byte sizes.
func Size(n int64) slog.Attr {
	return slog.Int64("size", n)
}

// Engine creates an attribute identifying the storage backend.
func Engine(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("engine", name)
}

// Files creates an attribute for the number of committed files.
func Files(n int) slog.Attr {
	return slog.Int("files", n)
}

// Rejected creates an attribute for the number of rejected parts.
func Rejected(n int) slog.Attr {
	return slog.Int("rejected", n)
}

// ============================================================================
// Network and HTTP
// ============================================================================

// Method creates an attribute for the HTTP method.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path creates an attribute for the request path.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// StatusCode creates an attribute for the HTTP response status.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// BytesOut creates an attribute for response body sizes.
func BytesOut(n int64) slog.Attr {
	return slog.Int64("bytes_out", n)
}

// ClientIP creates an attribute for the remote client address.
func ClientIP(ip string) slog.Attr {
	return slog.String("client_ip", ip)
}

// RequestID creates an attribute for request correlation ids. An empty id
// yields the zero Attr so unwired hosts log nothing extra.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// ============================================================================
// Generic Metadata
// ============================================================================

// Component names the subsystem a log line comes from.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Count creates a counter attribute under the given key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Key creates an attribute for an arbitrary value. A nil value yields the
// zero Attr.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// ============================================================================
// Debugging
// ============================================================================

// Stack captures the current goroutine's stack trace.
func Stack() slog.Attr {
	buf := make([]byte, 64<<10)
	return slog.String("stack", string(buf[:runtime.Stack(buf, false)]))
}

// Caller records the file:line of the log call site.
func Caller() slog.Attr {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return slog.Attr{}
	}
	return slog.String("caller", file+":"+strconv.Itoa(line))
}
