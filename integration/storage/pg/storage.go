package pg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/uploadkit/core/storage"
	pgdb "github.com/dmitrymomot/uploadkit/integration/database/pg"
)

// Compile-time check that PGEngine implements the storage.Engine interface.
var _ storage.Engine = (*PGEngine)(nil)

// Querier is the subset of pgx operations the engine needs. Both
// *pgxpool.Pool and pgx.Tx satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGEngine commits parts as bytea rows in a single PostgreSQL table, one
// row per file with a UUID primary key. Bodies are buffered in memory
// before the INSERT, so bound uploads with the MaxSize cap or the
// pipeline's aggregate file size limit. When the context carries a
// transaction stored with pgdb.WithTx, all writes join it.
type PGEngine struct {
	db      Querier
	table   string
	maxSize int64

	schemaSQL string
	insertSQL string
	selectSQL string
	deleteSQL string
}

// PGConfig contains configuration for the Postgres engine.
type PGConfig struct {
	Table   string `env:"PG_UPLOAD_TABLE" envDefault:"uploads"`
	MaxSize int64  `env:"PG_UPLOAD_MAX_SIZE" envDefault:"33554432"` // Zero means no cap
}

// PGOption defines a function that configures PGEngine.
type PGOption func(*pgOptions)

type pgOptions struct {
	querier Querier
}

// WithQuerier sets a custom querier instead of the pool.
// Primarily used for testing with mocks.
func WithQuerier(q Querier) PGOption {
	return func(o *pgOptions) {
		o.querier = q
	}
}

// identifierRe matches plain or schema-qualified SQL identifiers. The table
// name is interpolated into SQL text, so anything else is rejected.
var identifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// New creates a Postgres engine on top of an established pool. Use the
// integration/database/pg package to build a verified pool from environment
// configuration, and call EnsureSchema once at startup.
func New(pool *pgxpool.Pool, cfg PGConfig, opts ...PGOption) (*PGEngine, error) {
	o := &pgOptions{}
	for _, opt := range opts {
		opt(o)
	}

	db := o.querier
	if db == nil {
		if pool == nil {
			return nil, fmt.Errorf("%w: connection pool required", storage.ErrInvalidConfig)
		}
		db = pool
	}

	table := cfg.Table
	if table == "" {
		table = "uploads"
	}
	if !identifierRe.MatchString(table) {
		return nil, fmt.Errorf("%w: invalid table name %q", storage.ErrInvalidConfig, table)
	}

	e := &PGEngine{
		db:      db,
		table:   table,
		maxSize: cfg.MaxSize,
	}
	e.schemaSQL = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id UUID PRIMARY KEY,
	field_name TEXT NOT NULL,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	encoding TEXT NOT NULL DEFAULT '',
	size BIGINT NOT NULL,
	content BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, table)
	e.insertSQL = fmt.Sprintf(`INSERT INTO %s (id, field_name, filename, mime_type, encoding, size, content) VALUES ($1, $2, $3, $4, $5, $6, $7)`, table)
	e.selectSQL = fmt.Sprintf(`SELECT content FROM %s WHERE id = $1`, table)
	e.deleteSQL = fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
	return e, nil
}

// EnsureSchema creates the upload table if it does not exist yet. Safe to
// call on every startup.
func (e *PGEngine) EnsureSchema(ctx context.Context) error {
	if _, err := e.querier(ctx).Exec(ctx, e.schemaSQL); err != nil {
		return classifyPGError(err, "ensure schema")
	}
	return nil
}

// Save buffers the part and inserts it as a single row. The row's UUID is
// returned in File.Path for later Fetch and Remove.
func (e *PGEngine) Save(ctx context.Context, part *storage.Part) (*storage.File, error) {
	if part == nil || part.Body == nil {
		return nil, storage.ErrNilPart
	}

	var buf bytes.Buffer
	src := part.Body
	if e.maxSize > 0 {
		src = io.LimitReader(src, e.maxSize+1)
	}
	size, err := buf.ReadFrom(src)
	if err != nil {
		return nil, fmt.Errorf("buffer part: %w", err)
	}
	if e.maxSize > 0 && size > e.maxSize {
		return nil, fmt.Errorf("%w: limit %d bytes", storage.ErrFileTooLarge, e.maxSize)
	}

	mimeType := part.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream" // Safe fallback for unknown types
	}

	id := uuid.New()
	if _, err := e.querier(ctx).Exec(ctx, e.insertSQL,
		id, part.FieldName, part.Filename, mimeType, part.Encoding, size, buf.Bytes(),
	); err != nil {
		return nil, classifyPGError(err, "store file")
	}

	return &storage.File{
		FieldName: part.FieldName,
		Filename:  part.Filename,
		MIMEType:  mimeType,
		Encoding:  part.Encoding,
		Extension: storage.Extension(part.Filename),
		Size:      size,
		Path:      id.String(),
	}, nil
}

// Fetch loads the stored bytes for a previously saved file.
func (e *PGEngine) Fetch(ctx context.Context, file *storage.File) ([]byte, error) {
	if file == nil {
		return nil, storage.ErrNilFile
	}

	id, err := uuid.Parse(file.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an upload id", storage.ErrInvalidPath, file.Path)
	}

	var content []byte
	if err := e.querier(ctx).QueryRow(ctx, e.selectSQL, id).Scan(&content); err != nil {
		if pgdb.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrFileNotFound, file.Path)
		}
		return nil, classifyPGError(err, "fetch file")
	}
	return content, nil
}

// Remove deletes a stored row. Deleting a row that is already gone is a
// no-op, which keeps unwind paths idempotent.
func (e *PGEngine) Remove(ctx context.Context, file *storage.File) error {
	if file == nil {
		return storage.ErrNilFile
	}

	id, err := uuid.Parse(file.Path)
	if err != nil {
		return fmt.Errorf("%w: %q is not an upload id", storage.ErrInvalidPath, file.Path)
	}

	if _, err := e.querier(ctx).Exec(ctx, e.deleteSQL, id); err != nil {
		return classifyPGError(err, "delete file")
	}
	return nil
}

// querier returns the ambient transaction when the context carries one, so
// upload rows commit atomically with the caller's own writes.
func (e *PGEngine) querier(ctx context.Context) Querier {
	if tx, ok := pgdb.TxFromContext(ctx); ok {
		return tx
	}
	return e.db
}
