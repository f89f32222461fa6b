// Package s3 provides an Amazon S3 storage engine for the upload pipeline.
//
// This package implements the storage.Engine interface using the AWS S3 SDK v2
// with support for Amazon S3, MinIO, DigitalOcean Spaces, Wasabi, and other
// S3-compatible services. Part bodies are streamed to S3 through the transfer
// manager, so the engine keeps the pipeline's no-buffering guarantee even for
// large files.
//
// Basic usage:
//
//	import (
//		"context"
//		"net/http"
//
//		"github.com/dmitrymomot/uploadkit/core/upload"
//		"github.com/dmitrymomot/uploadkit/integration/storage/s3"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		// AWS S3 configuration
//		cfg := s3.S3Config{
//			Bucket:      "my-app-uploads",
//			Region:      "us-east-1",
//			AccessKeyID: "AKIA...", // Optional - uses IAM roles if empty
//			SecretKey:   "...",     // Optional - uses IAM roles if empty
//			KeyPrefix:   "uploads",
//		}
//
//		engine, err := s3.New(ctx, cfg)
//		if err != nil {
//			panic(err)
//		}
//
//		uploader, err := upload.New(upload.WithStorage(engine))
//		if err != nil {
//			panic(err)
//		}
//		processor := uploader.Single("avatar")
//
//		http.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
//			result, err := processor.Process(r)
//			if err != nil {
//				http.Error(w, "upload failed", http.StatusBadRequest)
//				return
//			}
//
//			// Result.File.Path holds the object key; URL makes it public
//			w.Header().Set("Location", engine.URL(result.File.Path))
//			w.WriteHeader(http.StatusCreated)
//		})
//	}
//
// # S3-Compatible Services
//
// MinIO configuration:
//
//	cfg := s3.S3Config{
//		Bucket:         "my-bucket",
//		Region:         "us-east-1", // Required
//		AccessKeyID:    "minioadmin",
//		SecretKey:      "minioadmin",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true, // Required for MinIO
//	}
//
// DigitalOcean Spaces with CDN:
//
//	cfg := s3.S3Config{
//		Bucket:   "my-space",
//		Region:   "nyc3",
//		Endpoint: "https://nyc3.digitaloceanspaces.com",
//		BaseURL:  "https://my-space.nyc3.cdn.digitaloceanspaces.com",
//	}
//
// # Object Keys
//
// By default every stored object gets a random UUID key that keeps the
// original file extension, placed under the configured KeyPrefix. Override
// key generation with WithKeyFunc:
//
//	engine, err := s3.New(ctx, cfg, s3.WithKeyFunc(
//		func(ctx context.Context, part *storage.Part) (string, error) {
//			return "avatars/" + storage.RandomName(part.Filename), nil
//		},
//	))
//
// Resolved keys are validated before upload; keys containing ".." are
// rejected with storage.ErrInvalidPath.
//
// # Configuration Options
//
// Advanced configuration with functional options:
//
//	// Custom HTTP client
//	httpClient := &http.Client{Timeout: 30 * time.Second}
//	engine, err := s3.New(ctx, cfg, s3.WithHTTPClient(httpClient))
//
//	// Upload timeout
//	engine, err := s3.New(ctx, cfg, s3.WithS3UploadTimeout(5*time.Minute))
//
//	// Custom S3 client for testing
//	mockClient := &MockS3Client{}
//	engine, err := s3.New(ctx, cfg, s3.WithS3Client(mockClient))
//
// # Error Handling
//
// SDK failures are classified into the storage package sentinels, so cleanup
// and retry logic can match storage.ErrFileNotFound, storage.ErrAccessDenied,
// storage.ErrServiceUnavailable and friends with errors.Is without knowing
// the engine in use.
package s3
