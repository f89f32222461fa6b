package gridfs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/uploadkit/core/storage"
)

// Compile-time check that GridFSEngine implements the storage.Engine interface.
var _ storage.Engine = (*GridFSEngine)(nil)

// Bucket defines the GridFS operations used by GridFSEngine. Satisfied by
// *mongo.GridFSBucket and by mocks in tests.
type Bucket interface {
	UploadFromStream(ctx context.Context, filename string, source io.Reader, opts ...options.Lister[options.GridFSUploadOptions]) (bson.ObjectID, error)
	DownloadToStream(ctx context.Context, fileID any, stream io.Writer) (int64, error)
	Delete(ctx context.Context, fileID any) error
}

// GridFSEngine commits parts into a MongoDB GridFS bucket. Bodies are
// streamed to the server in chunks, so large files never buffer fully in
// memory. Each stored file records the originating form field and MIME
// type in its GridFS metadata document.
type GridFSEngine struct {
	bucket Bucket
}

// GridFSConfig contains configuration for the GridFS engine.
type GridFSConfig struct {
	BucketName string `env:"GRIDFS_BUCKET" envDefault:"fs"`
	ChunkSize  int32  `env:"GRIDFS_CHUNK_SIZE_BYTES"` // Zero uses the driver default (255KB)
}

// GridFSOption defines a function that configures GridFSEngine.
type GridFSOption func(*gridfsOptions)

type gridfsOptions struct {
	bucket Bucket
}

// WithBucket sets a custom pre-configured bucket.
// Primarily used for testing with mocks.
func WithBucket(bucket Bucket) GridFSOption {
	return func(o *gridfsOptions) {
		o.bucket = bucket
	}
}

// New creates a GridFS engine over the given database. Use the
// integration/database/mongo package to build a verified database handle
// from environment configuration.
func New(db *mongo.Database, cfg GridFSConfig, opts ...GridFSOption) (*GridFSEngine, error) {
	o := &gridfsOptions{}
	for _, opt := range opts {
		opt(o)
	}

	bucket := o.bucket
	if bucket == nil {
		if db == nil {
			return nil, fmt.Errorf("%w: mongo database required", storage.ErrInvalidConfig)
		}
		bucketOpts := options.GridFSBucket()
		if cfg.BucketName != "" {
			bucketOpts = bucketOpts.SetName(cfg.BucketName)
		}
		if cfg.ChunkSize > 0 {
			bucketOpts = bucketOpts.SetChunkSizeBytes(cfg.ChunkSize)
		}
		bucket = db.GridFSBucket(bucketOpts)
	}

	return &GridFSEngine{bucket: bucket}, nil
}

// Save streams the part into the bucket. The new file's ObjectID hex is
// returned in File.Path for later Download and Remove.
func (e *GridFSEngine) Save(ctx context.Context, part *storage.Part) (*storage.File, error) {
	if part == nil || part.Body == nil {
		return nil, storage.ErrNilPart
	}

	mimeType := part.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream" // Safe fallback for unknown types
	}

	meta := bson.D{
		{Key: "fieldName", Value: part.FieldName},
		{Key: "mimeType", Value: mimeType},
	}
	if part.Encoding != "" {
		meta = append(meta, bson.E{Key: "encoding", Value: part.Encoding})
	}

	body := &countingReader{r: part.Body}
	id, err := e.bucket.UploadFromStream(ctx, part.Filename, body,
		options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return nil, classifyGridFSError(err, "upload file")
	}

	return &storage.File{
		FieldName: part.FieldName,
		Filename:  part.Filename,
		MIMEType:  mimeType,
		Encoding:  part.Encoding,
		Extension: storage.Extension(part.Filename),
		Size:      body.n,
		Path:      id.Hex(),
	}, nil
}

// Download streams the stored bytes into w and reports how many bytes were
// written.
func (e *GridFSEngine) Download(ctx context.Context, file *storage.File, w io.Writer) (int64, error) {
	if file == nil {
		return 0, storage.ErrNilFile
	}

	id, err := bson.ObjectIDFromHex(file.Path)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an object id", storage.ErrInvalidPath, file.Path)
	}

	n, err := e.bucket.DownloadToStream(ctx, id, w)
	if err != nil {
		if errors.Is(err, mongo.ErrFileNotFound) {
			return 0, fmt.Errorf("%w: %s", storage.ErrFileNotFound, file.Path)
		}
		return n, classifyGridFSError(err, "download file")
	}
	return n, nil
}

// Remove deletes the file and all its chunks. A file that is already gone
// is not an error, which keeps unwind paths idempotent.
func (e *GridFSEngine) Remove(ctx context.Context, file *storage.File) error {
	if file == nil {
		return storage.ErrNilFile
	}

	id, err := bson.ObjectIDFromHex(file.Path)
	if err != nil {
		return fmt.Errorf("%w: %q is not an object id", storage.ErrInvalidPath, file.Path)
	}

	if err := e.bucket.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrFileNotFound) {
			return nil
		}
		return classifyGridFSError(err, "delete file")
	}
	return nil
}

// countingReader tracks how many bytes the driver consumed, since
// UploadFromStream reports no size.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
