// Package storage defines where uploaded file parts end up. Every backend
// implements the same two-method Engine interface: Save streams one part
// into the backend and returns a File receipt, Remove deletes a previously
// saved file so a failed request can be unwound.
//
// # Features
//
//   - Streaming commits, a part is written as it is read from the wire
//   - Disk engine with per-part destination and filename resolution
//   - Memory engine that buffers content for in-process handling
//   - Unicode-aware filename sanitization for client-supplied names
//   - Collision-resistant generated names (UUID plus original extension)
//   - Idempotent Remove for unwind paths
//   - Sentinel errors matchable with errors.Is across all backends
//
// # Disk Storage
//
// Files land under a fixed directory with generated names by default:
//
//	engine, err := storage.NewDisk("/var/uploads")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	file, err := engine.Save(ctx, part)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(file.Path, file.Size)
//
// Both the directory and the filename can be resolved per part:
//
//	engine, err := storage.NewDisk("",
//		storage.WithDirFunc(func(ctx context.Context, part *storage.Part) (string, error) {
//			return filepath.Join("/var/uploads", userID(ctx)), nil
//		}),
//		storage.WithNameFunc(func(ctx context.Context, part *storage.Part) (string, error) {
//			return storage.Sanitize(part.Filename), nil
//		}),
//	)
//
// # Memory Storage
//
// The memory engine buffers each part into File.Content instead of
// touching the filesystem. Use it when the bytes are transformed and
// forwarded in-process:
//
//	engine := storage.NewMemory(storage.WithMaxSize(10 << 20))
//
//	file, err := engine.Save(ctx, part)
//	if err != nil {
//		log.Fatal(err)
//	}
//	sum := sha256.Sum256(file.Content)
//
// # Filenames
//
// Client-supplied filenames are untrusted. Sanitize normalizes them to a
// safe base name, SanitizePath keeps relative directory structure while
// dropping traversal segments, and RandomName generates a fresh UUID name
// that preserves the original extension:
//
//	storage.Sanitize("..\\..\\boot.ini")        // "boot.ini"
//	storage.SanitizePath("../docs/report.pdf")  // "docs/report.pdf"
//	storage.RandomName("avatar.png")            // "3f1d….png"
//
// # Custom Backends
//
// Anything that can write a stream and delete by receipt can be an Engine.
// The integration packages provide S3, Redis, GridFS, and Postgres
// implementations of the same interface.
package storage
