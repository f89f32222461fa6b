// Package gridfs provides a MongoDB GridFS storage engine for the upload
// pipeline.
//
// This package implements the storage.Engine interface on top of GridFS
// buckets from the official MongoDB driver. Part bodies are streamed to the
// server in chunks (255KB by default), so the engine keeps the pipeline's
// no-buffering guarantee even for large files. Each stored file carries a
// metadata document recording the originating form field, MIME type, and
// transfer encoding, which makes uploads queryable straight from the
// fs.files collection.
//
// Basic usage:
//
//	import (
//		"context"
//
//		"github.com/dmitrymomot/uploadkit/core/upload"
//		"github.com/dmitrymomot/uploadkit/integration/database/mongo"
//		"github.com/dmitrymomot/uploadkit/integration/storage/gridfs"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		db, err := mongo.NewWithDatabase(ctx, mongo.Config{
//			ConnectionURL: "mongodb://localhost:27017",
//		}, "myapp")
//		if err != nil {
//			panic(err)
//		}
//
//		engine, err := gridfs.New(db, gridfs.GridFSConfig{BucketName: "uploads"})
//		if err != nil {
//			panic(err)
//		}
//
//		uploader, err := upload.New(upload.WithStorage(engine))
//		if err != nil {
//			panic(err)
//		}
//		processor := uploader.Array("attachments", 5)
//		_ = processor
//	}
//
// # Retrieval
//
// Result files carry the GridFS ObjectID hex in File.Path. Stream the bytes
// back with Download:
//
//	var buf bytes.Buffer
//	if _, err := engine.Download(ctx, result.File, &buf); err != nil {
//		return err
//	}
//
// Download returns storage.ErrFileNotFound when the file was removed, and
// storage.ErrInvalidPath when File.Path does not hold an ObjectID hex.
//
// # Testing
//
// The engine talks to GridFS through the Bucket interface, so tests inject
// an in-memory bucket:
//
//	engine, err := gridfs.New(nil, gridfs.GridFSConfig{}, gridfs.WithBucket(mockBucket))
package gridfs
