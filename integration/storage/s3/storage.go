package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/uploadkit/core/storage"
)

// Compile-time check that S3Engine implements the storage.Engine interface.
var _ storage.Engine = (*S3Engine)(nil)

// S3Client defines the S3 operations used by S3Engine. The multipart upload
// methods are required by the transfer manager, which splits large streaming
// bodies into parts.
type S3Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	CreateMultipartUpload(ctx context.Context, params *s3aws.CreateMultipartUploadInput, optFns ...func(*s3aws.Options)) (*s3aws.CreateMultipartUploadOutput, error)
	UploadPart(ctx context.Context, params *s3aws.UploadPartInput, optFns ...func(*s3aws.Options)) (*s3aws.UploadPartOutput, error)
	CompleteMultipartUpload(ctx context.Context, params *s3aws.CompleteMultipartUploadInput, optFns ...func(*s3aws.Options)) (*s3aws.CompleteMultipartUploadOutput, error)
	AbortMultipartUpload(ctx context.Context, params *s3aws.AbortMultipartUploadInput, optFns ...func(*s3aws.Options)) (*s3aws.AbortMultipartUploadOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3aws.DeleteObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error)
}

// S3Engine commits parts to Amazon S3 or S3-compatible services.
// Part bodies are streamed through the transfer manager, so uploads of
// unseekable multipart streams never buffer whole files in memory.
// Thread-safe with error classification for reliable operation.
type S3Engine struct {
	client         S3Client
	uploader       *manager.Uploader
	bucket         string
	region         string
	endpoint       string // S3-compatible services (MinIO, Spaces, Wasabi)
	baseURL        string // CDN or public base, wins over generated URLs
	forcePathStyle bool
	keyPrefix      string           // prepended to every resolved object key
	keyFunc        storage.NameFunc // nil means random uuid names
	uploadTimeout  time.Duration    // zero defers to the caller's context
}

// S3Config carries the engine's settings, loadable from the environment
// through core/config.
type S3Config struct {
	Bucket         string        `env:"S3_BUCKET,required"`
	Region         string        `env:"S3_REGION,required"`
	AccessKeyID    string        `env:"S3_ACCESS_KEY_ID"` // empty falls back to the default credential chain
	SecretKey      string        `env:"S3_SECRET_KEY"`
	Endpoint       string        `env:"S3_ENDPOINT"` // S3-compatible services like MinIO, Wasabi
	BaseURL        string        `env:"S3_BASE_URL"` // CDN or public base; generated from region when empty
	ForcePathStyle bool          `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	KeyPrefix      string        `env:"S3_KEY_PREFIX"`
	UploadTimeout  time.Duration `env:"S3_UPLOAD_TIMEOUT"` // zero defers to the caller's context deadline
}

// S3Option adjusts engine construction beyond what S3Config carries.
type S3Option func(*s3Options)

type s3Options struct {
	httpClient      *http.Client
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
	s3ClientOptions []func(*s3aws.Options)
	keyFunc         storage.NameFunc
	uploadTimeout   time.Duration
}

// WithS3Client supplies a pre-built client instead of constructing one from
// the config. Tests use it to inject mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithHTTPClient sets the HTTP client the SDK dials with, for proxy, TLS,
// or timeout control.
func WithHTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

// WithS3ConfigOption appends an option to AWS config loading.
func WithS3ConfigOption(option func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// WithS3ClientOption appends an option to S3 client construction.
func WithS3ClientOption(option func(*s3aws.Options)) S3Option {
	return func(o *s3Options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// WithKeyFunc overrides object key generation. The default is a random
// UUID keeping the original extension, placed under the configured prefix.
func WithKeyFunc(fn storage.NameFunc) S3Option {
	return func(o *s3Options) {
		o.keyFunc = fn
	}
}

// WithS3UploadTimeout caps one Save, overriding S3Config.UploadTimeout.
// Zero leaves the caller's context deadline in charge.
func WithS3UploadTimeout(timeout time.Duration) S3Option {
	return func(o *s3Options) {
		o.uploadTimeout = timeout
	}
}

// New creates a new S3 engine.
// Supports both AWS S3 and S3-compatible services; URL generation adapts to
// the endpoint and addressing style in the configuration.
func New(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Engine, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region required", storage.ErrInvalidConfig)
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}

		// Static keys when configured; otherwise the default chain
		// (env vars, shared config, IAM role) applies.
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}

		if options.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
		}

		awsOptions = append(awsOptions, options.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}

		client = s3aws.NewFromConfig(awsConfig, func(o *s3aws.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle

			for _, opt := range options.s3ClientOptions {
				opt(o)
			}
		})
	}

	uploadTimeout := cfg.UploadTimeout
	if options.uploadTimeout > 0 {
		uploadTimeout = options.uploadTimeout
	}

	return &S3Engine{
		client:         client,
		uploader:       manager.NewUploader(client),
		bucket:         cfg.Bucket,
		region:         cfg.Region,
		endpoint:       cfg.Endpoint,
		baseURL:        cfg.BaseURL,
		forcePathStyle: cfg.ForcePathStyle,
		keyPrefix:      strings.Trim(cfg.KeyPrefix, "/"),
		keyFunc:        options.keyFunc,
		uploadTimeout:  uploadTimeout,
	}, nil
}

// Save streams the part's bytes to S3 under a resolved object key.
// Validates the key to prevent S3 key injection and sets Content-Type so
// browsers handle the stored object correctly.
func (s *S3Engine) Save(ctx context.Context, part *storage.Part) (*storage.File, error) {
	if part == nil || part.Body == nil {
		return nil, storage.ErrNilPart
	}

	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	key, err := s.objectKey(ctx, part)
	if err != nil {
		return nil, err
	}

	mimeType := part.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream" // Safe fallback for unknown types
	}

	body := &countingReader{r: part.Body}
	if _, err := s.uploader.Upload(ctx, &s3aws.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(mimeType),
	}); err != nil {
		return nil, classifyS3Error(err, "upload file")
	}

	return &storage.File{
		FieldName: part.FieldName,
		Filename:  part.Filename,
		MIMEType:  mimeType,
		Encoding:  part.Encoding,
		Extension: storage.Extension(part.Filename),
		Size:      body.n,
		Path:      key,
	}, nil
}

// Remove deletes a stored object. Existence is checked first so that an
// object that is already gone is not an error, which keeps unwind paths
// idempotent.
func (s *S3Engine) Remove(ctx context.Context, file *storage.File) error {
	if file == nil {
		return storage.ErrNilFile
	}

	key := strings.TrimPrefix(file.Path, "/")
	if key == "" || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", storage.ErrInvalidPath, file.Path)
	}

	if _, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		classified := classifyS3Error(err, "check file")
		if errors.Is(classified, storage.ErrFileNotFound) {
			return nil
		}
		return classified
	}

	if _, err := s.client.DeleteObject(ctx, &s3aws.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyS3Error(err, "delete file")
	}

	return nil
}

// URL returns the public URL for a stored object key. A configured BaseURL
// (CDN) wins; otherwise the URL is assembled from the endpoint or the AWS
// region, honoring the addressing style.
func (s *S3Engine) URL(path string) string {
	path = strings.TrimPrefix(path, "/")

	if s.baseURL != "" {
		return strings.TrimSuffix(s.baseURL, "/") + "/" + path
	}

	if s.endpoint != "" {
		endpoint := strings.TrimSuffix(s.endpoint, "/")
		protocol := "https://"
		if after, ok := strings.CutPrefix(endpoint, "http://"); ok {
			protocol = "http://"
			endpoint = after
		} else if after, ok := strings.CutPrefix(endpoint, "https://"); ok {
			endpoint = after
		}

		if s.forcePathStyle {
			return fmt.Sprintf("%s%s/%s/%s", protocol, endpoint, s.bucket, path)
		}
		return fmt.Sprintf("%s%s.%s/%s", protocol, s.bucket, endpoint, path)
	}

	if s.forcePathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", s.region, s.bucket, path)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, path)
}

// objectKey resolves the destination key for a part, applying the configured
// prefix and rejecting keys that traverse outside it.
func (s *S3Engine) objectKey(ctx context.Context, part *storage.Part) (string, error) {
	var name string
	if s.keyFunc != nil {
		resolved, err := s.keyFunc(ctx, part)
		if err != nil {
			return "", fmt.Errorf("resolve object key: %w", err)
		}
		name = resolved
	} else {
		name = storage.RandomName(part.Filename)
	}

	key := name
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidPath, name)
	}
	return key, nil
}

// countingReader tracks how many bytes the transfer manager consumed, since
// S3 reports no size for streamed uploads.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
