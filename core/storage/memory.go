package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

// Compile-time check that Memory implements the Engine interface.
var _ Engine = (*Memory)(nil)

// Memory buffers each part fully into the returned File's Content. It is
// the right engine when the handler transforms the bytes in-process
// (image resizing, checksumming, re-upload) and no artifact should
// outlive the request.
type Memory struct {
	maxSize int64
}

// MemoryOption configures a Memory engine.
type MemoryOption func(*Memory)

// WithMaxSize caps the number of bytes buffered per file. Parts exceeding
// the cap fail with ErrFileTooLarge. Zero means no cap beyond the
// pipeline's own limits.
func WithMaxSize(n int64) MemoryOption {
	return func(m *Memory) {
		m.maxSize = n
	}
}

// NewMemory creates an in-memory engine.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save reads the part to completion and hands ownership of the buffered
// bytes to the caller via File.Content.
func (m *Memory) Save(ctx context.Context, part *Part) (*File, error) {
	if part == nil || part.Body == nil {
		return nil, ErrNilPart
	}
	if err := ctx.Err(); err != nil {
		return nil, contextError(err)
	}

	var buf bytes.Buffer
	src := part.Body
	if m.maxSize > 0 {
		src = io.LimitReader(src, m.maxSize+1)
	}
	size, err := buf.ReadFrom(src)
	if err != nil {
		return nil, fmt.Errorf("buffer part: %w", err)
	}
	if m.maxSize > 0 && size > m.maxSize {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrFileTooLarge, m.maxSize)
	}

	return &File{
		FieldName: part.FieldName,
		Filename:  part.Filename,
		MIMEType:  part.MIMEType,
		Encoding:  part.Encoding,
		Extension: Extension(part.Filename),
		Size:      size,
		Content:   buf.Bytes(),
	}, nil
}

// Remove drops the buffered content so the bytes become collectable even
// while the File receipt itself is still referenced.
func (m *Memory) Remove(ctx context.Context, file *File) error {
	if file == nil {
		return ErrNilFile
	}
	file.Content = nil
	return nil
}
