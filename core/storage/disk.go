package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Compile-time check that Disk implements the Engine interface.
var _ Engine = (*Disk)(nil)

// DirFunc resolves the destination directory for a single part. The context
// is the request context, so per-request destinations (per-user folders,
// date-based layouts) can be derived from request-scoped values.
type DirFunc func(ctx context.Context, part *Part) (string, error)

// NameFunc resolves the stored filename for a single part. The returned
// name must be a local relative path; it may contain subdirectories.
type NameFunc func(ctx context.Context, part *Part) (string, error)

// Disk commits parts to the local filesystem. Files are written under a
// fixed directory or one resolved per part, with collision-resistant
// generated names by default.
type Disk struct {
	dir      string
	dirFunc  DirFunc
	nameFunc NameFunc
	fileMode os.FileMode
	dirMode  os.FileMode
}

// DiskOption configures a Disk engine.
type DiskOption func(*Disk)

// WithDirFunc resolves the destination directory per part instead of using
// the fixed directory passed to NewDisk.
func WithDirFunc(fn DirFunc) DiskOption {
	return func(d *Disk) {
		d.dirFunc = fn
	}
}

// WithNameFunc overrides the generated filename. The default is a random
// UUID keeping the original extension.
func WithNameFunc(fn NameFunc) DiskOption {
	return func(d *Disk) {
		d.nameFunc = fn
	}
}

// WithFileMode sets the permission bits for stored files (default 0600).
func WithFileMode(mode os.FileMode) DiskOption {
	return func(d *Disk) {
		d.fileMode = mode
	}
}

// WithDirMode sets the permission bits for created directories (default 0755).
func WithDirMode(mode os.FileMode) DiskOption {
	return func(d *Disk) {
		d.dirMode = mode
	}
}

// NewDisk creates a filesystem engine rooted at dir. The directory does not
// need to exist yet; it is created on first save. Pass an empty dir only
// together with WithDirFunc.
func NewDisk(dir string, opts ...DiskOption) (*Disk, error) {
	d := &Disk{
		dir:      dir,
		fileMode: 0o600,
		dirMode:  0o755,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.dir == "" && d.dirFunc == nil {
		return nil, fmt.Errorf("%w: destination directory required", ErrInvalidConfig)
	}
	return d, nil
}

// Save streams the part's bytes into a newly created file. On any failure
// the partial file is deleted before the error is returned, so a failed
// commit is never observable on disk.
func (d *Disk) Save(ctx context.Context, part *Part) (*File, error) {
	if part == nil || part.Body == nil {
		return nil, ErrNilPart
	}
	if err := ctx.Err(); err != nil {
		return nil, contextError(err)
	}

	dir := d.dir
	if d.dirFunc != nil {
		resolved, err := d.dirFunc(ctx, part)
		if err != nil {
			return nil, fmt.Errorf("resolve destination: %w", err)
		}
		dir = resolved
	}
	if dir == "" {
		return nil, fmt.Errorf("%w: empty destination directory", ErrInvalidPath)
	}

	name := ""
	if d.nameFunc != nil {
		resolved, err := d.nameFunc(ctx, part)
		if err != nil {
			return nil, fmt.Errorf("resolve filename: %w", err)
		}
		name = resolved
	} else {
		name = RandomName(part.Filename)
	}
	if name == "" || !filepath.IsLocal(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}

	dst := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(dst), d.dirMode); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, d.fileMode)
	if err != nil {
		return nil, fmt.Errorf("create destination file: %w", err)
	}

	size, err := io.Copy(f, part.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return nil, fmt.Errorf("write destination file: %w", err)
	}

	return &File{
		FieldName: part.FieldName,
		Filename:  part.Filename,
		MIMEType:  part.MIMEType,
		Encoding:  part.Encoding,
		Extension: Extension(part.Filename),
		Size:      size,
		Path:      dst,
	}, nil
}

// Remove deletes a previously stored file. A file that is already gone is
// not an error, which keeps unwind paths idempotent.
func (d *Disk) Remove(ctx context.Context, file *File) error {
	if file == nil {
		return ErrNilFile
	}
	if file.Path == "" {
		return fmt.Errorf("%w: file has no path", ErrInvalidPath)
	}
	if err := os.Remove(file.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stored file: %w", err)
	}
	return nil
}
