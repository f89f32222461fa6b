package storage

import (
	"context"
	"io"
)

// PartInfo describes an incoming file part before its bytes are consumed.
// It is the metadata handed to accept/reject filters, which must never
// touch the part's body.
type PartInfo struct {
	// FieldName is the form field the file was submitted under.
	FieldName string
	// Filename is the client-supplied name, already sanitized by the caller.
	Filename string
	// MIMEType is the declared Content-Type of the part. No sniffing is
	// performed; it is whatever the client sent.
	MIMEType string
	// Encoding is the declared Content-Transfer-Encoding of the part.
	Encoding string
}

// Part is a single file part flowing through the pipeline. The Body stream
// is consumed exactly once by the engine that commits it.
type Part struct {
	PartInfo

	// Body yields the part's bytes incrementally. Engines must drain it
	// fully even when the commit fails, so the upstream parser never
	// stalls on an unread part.
	Body io.Reader
}

// File is the receipt for a committed part. Path is sink-specific: an
// absolute filesystem path for the disk engine, an object key or row
// identifier for remote engines, and empty for the memory engine.
type File struct {
	// FieldName is the form field the file was submitted under.
	FieldName string `json:"field_name"`
	// Filename is the sanitized client-supplied name.
	Filename string `json:"filename"`
	// MIMEType is the declared Content-Type of the part.
	MIMEType string `json:"mime_type"`
	// Encoding is the declared Content-Transfer-Encoding of the part.
	Encoding string `json:"encoding,omitempty"`
	// Extension is the sanitized filename extension including the dot.
	Extension string `json:"extension,omitempty"`
	// Size is the number of bytes committed.
	Size int64 `json:"size"`
	// Path locates the committed bytes within the engine that stored them.
	Path string `json:"path,omitempty"`
	// Content holds the committed bytes for the memory engine only.
	Content []byte `json:"-"`
}

// Engine commits file parts to a destination and removes them again when a
// request unwinds. Implementations must be safe for concurrent use: all
// per-call state is carried by the arguments.
//
// Save must fully consume part.Body even on failure and must never return
// a partially-written artifact as a success. Remove is best-effort cleanup:
// it must tolerate being called twice for the same file.
type Engine interface {
	Save(ctx context.Context, part *Part) (*File, error)
	Remove(ctx context.Context, file *File) error
}
