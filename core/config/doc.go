// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/uploadkit/core/config"
//
//	type UploadConfig struct {
//		Dir         string `env:"UPLOAD_DIR" envDefault:"./uploads"`
//		MaxFileSize int64  `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"33554432"`
//		MaxFiles    int64  `env:"UPLOAD_MAX_FILES" envDefault:"10"`
//	}
//
//	func main() {
//		var cfg UploadConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 UploadConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 UploadConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type S3Config struct {
//		Bucket string `env:"AWS_S3_BUCKET,required"`
//	}
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL,required"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&S3Config{})
//	config.MustLoad(&RedisConfig{})
//
// The integration packages ship Config structs with env tags, so wiring a
// storage backend is a Load call followed by the package's New:
//
//	var s3cfg s3.S3Config
//	config.MustLoad(&s3cfg)
//	engine, err := s3.New(ctx, s3cfg)
package config
