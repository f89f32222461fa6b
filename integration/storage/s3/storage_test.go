package s3_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit/core/storage"
	"github.com/dmitrymomot/uploadkit/integration/storage/s3"
)

// mockS3Client is an in-memory S3Client. Test bodies stay below the transfer
// manager's part size, so uploads always arrive through PutObject.
type mockS3Client struct {
	mu      sync.Mutex
	objects map[string][]byte
	ctypes  map[string]string
	deleted []string

	putErr  error
	headErr error
	delErr  error
}

func newMockS3Client() *mockS3Client {
	return &mockS3Client{
		objects: make(map[string][]byte),
		ctypes:  make(map[string]string),
	}
}

func (m *mockS3Client) PutObject(_ context.Context, params *s3aws.PutObjectInput, _ ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[aws.ToString(params.Key)] = data
	m.ctypes[aws.ToString(params.Key)] = aws.ToString(params.ContentType)
	return &s3aws.PutObjectOutput{}, nil
}

func (m *mockS3Client) CreateMultipartUpload(context.Context, *s3aws.CreateMultipartUploadInput, ...func(*s3aws.Options)) (*s3aws.CreateMultipartUploadOutput, error) {
	return nil, errors.New("multipart upload not expected for small bodies")
}

func (m *mockS3Client) UploadPart(context.Context, *s3aws.UploadPartInput, ...func(*s3aws.Options)) (*s3aws.UploadPartOutput, error) {
	return nil, errors.New("multipart upload not expected for small bodies")
}

func (m *mockS3Client) CompleteMultipartUpload(context.Context, *s3aws.CompleteMultipartUploadInput, ...func(*s3aws.Options)) (*s3aws.CompleteMultipartUploadOutput, error) {
	return nil, errors.New("multipart upload not expected for small bodies")
}

func (m *mockS3Client) AbortMultipartUpload(context.Context, *s3aws.AbortMultipartUploadInput, ...func(*s3aws.Options)) (*s3aws.AbortMultipartUploadOutput, error) {
	return &s3aws.AbortMultipartUploadOutput{}, nil
}

func (m *mockS3Client) HeadObject(_ context.Context, params *s3aws.HeadObjectInput, _ ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error) {
	if m.headErr != nil {
		return nil, m.headErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[aws.ToString(params.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3aws.HeadObjectOutput{}, nil
}

func (m *mockS3Client) DeleteObject(_ context.Context, params *s3aws.DeleteObjectInput, _ ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error) {
	if m.delErr != nil {
		return nil, m.delErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := aws.ToString(params.Key)
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return &s3aws.DeleteObjectOutput{}, nil
}

func (m *mockS3Client) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}

func newPart(field, filename, mimeType, content string) *storage.Part {
	return &storage.Part{
		PartInfo: storage.PartInfo{
			FieldName: field,
			Filename:  filename,
			MIMEType:  mimeType,
		},
		Body: strings.NewReader(content),
	}
}

func newTestEngine(t *testing.T, cfg s3.S3Config, client s3.S3Client, opts ...s3.S3Option) *s3.S3Engine {
	t.Helper()
	engine, err := s3.New(context.Background(), cfg, append([]s3.S3Option{s3.WithS3Client(client)}, opts...)...)
	require.NoError(t, err)
	return engine
}

func TestS3New(t *testing.T) {
	t.Parallel()

	t.Run("requires bucket", func(t *testing.T) {
		t.Parallel()
		_, err := s3.New(context.Background(), s3.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})

	t.Run("requires region", func(t *testing.T) {
		t.Parallel()
		_, err := s3.New(context.Background(), s3.S3Config{Bucket: "uploads"})
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})
}

func TestS3Engine_Save(t *testing.T) {
	t.Parallel()

	cfg := s3.S3Config{Bucket: "uploads", Region: "us-east-1"}

	t.Run("streams part to bucket", func(t *testing.T) {
		t.Parallel()
		client := newMockS3Client()
		engine := newTestEngine(t, cfg, client)

		file, err := engine.Save(context.Background(), newPart("doc", "report.pdf", "application/pdf", "pdf bytes"))
		require.NoError(t, err)

		assert.Equal(t, "doc", file.FieldName)
		assert.Equal(t, "report.pdf", file.Filename)
		assert.Equal(t, "application/pdf", file.MIMEType)
		assert.Equal(t, ".pdf", file.Extension)
		assert.Equal(t, int64(len("pdf bytes")), file.Size)
		assert.True(t, strings.HasSuffix(file.Path, ".pdf"))

		assert.Equal(t, []byte("pdf bytes"), client.objects[file.Path])
		assert.Equal(t, "application/pdf", client.ctypes[file.Path])
	})

	t.Run("applies key prefix", func(t *testing.T) {
		t.Parallel()
		client := newMockS3Client()
		engine := newTestEngine(t, s3.S3Config{Bucket: "uploads", Region: "us-east-1", KeyPrefix: "/incoming/"}, client)

		file, err := engine.Save(context.Background(), newPart("doc", "a.txt", "text/plain", "x"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(file.Path, "incoming/"), "got key %q", file.Path)
	})

	t.Run("custom key resolver", func(t *testing.T) {
		t.Parallel()
		client := newMockS3Client()
		engine := newTestEngine(t, cfg, client, s3.WithKeyFunc(
			func(ctx context.Context, part *storage.Part) (string, error) {
				return "avatars/" + part.FieldName + ".png", nil
			},
		))

		file, err := engine.Save(context.Background(), newPart("avatar", "me.png", "image/png", "png"))
		require.NoError(t, err)
		assert.Equal(t, "avatars/avatar.png", file.Path)
		assert.Contains(t, client.keys(), "avatars/avatar.png")
	})

	t.Run("rejects traversal keys", func(t *testing.T) {
		t.Parallel()
		client := newMockS3Client()
		engine := newTestEngine(t, cfg, client, s3.WithKeyFunc(
			func(ctx context.Context, part *storage.Part) (string, error) {
				return "../escape.txt", nil
			},
		))

		_, err := engine.Save(context.Background(), newPart("doc", "a.txt", "text/plain", "x"))
		assert.ErrorIs(t, err, storage.ErrInvalidPath)
		assert.Empty(t, client.keys())
	})

	t.Run("defaults missing content type", func(t *testing.T) {
		t.Parallel()
		client := newMockS3Client()
		engine := newTestEngine(t, cfg, client)

		file, err := engine.Save(context.Background(), newPart("doc", "blob.bin", "", "data"))
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", file.MIMEType)
		assert.Equal(t, "application/octet-stream", client.ctypes[file.Path])
	})

	t.Run("nil part", func(t *testing.T) {
		t.Parallel()
		engine := newTestEngine(t, cfg, newMockS3Client())
		_, err := engine.Save(context.Background(), nil)
		assert.ErrorIs(t, err, storage.ErrNilPart)
	})

	t.Run("classifies access denied", func(t *testing.T) {
		t.Parallel()
		client := newMockS3Client()
		client.putErr = &smithy.GenericAPIError{Code: "AccessDenied", Message: "no"}
		engine := newTestEngine(t, cfg, client)

		_, err := engine.Save(context.Background(), newPart("doc", "a.txt", "text/plain", "x"))
		assert.ErrorIs(t, err, storage.ErrAccessDenied)
	})

	t.Run("classifies throttling as unavailable", func(t *testing.T) {
		t.Parallel()
		client := newMockS3Client()
		client.putErr = &smithy.GenericAPIError{Code: "SlowDown", Message: "later"}
		engine := newTestEngine(t, cfg, client)

		_, err := engine.Save(context.Background(), newPart("doc", "a.txt", "text/plain", "x"))
		assert.ErrorIs(t, err, storage.ErrServiceUnavailable)
	})
}

func TestS3Engine_Remove(t *testing.T) {
	t.Parallel()

	cfg := s3.S3Config{Bucket: "uploads", Region: "us-east-1"}

	t.Run("deletes stored object", func(t *testing.T) {
		t.Parallel()
		client := newMockS3Client()
		engine := newTestEngine(t, cfg, client)

		file, err := engine.Save(context.Background(), newPart("doc", "a.txt", "text/plain", "x"))
		require.NoError(t, err)

		require.NoError(t, engine.Remove(context.Background(), file))
		assert.Equal(t, []string{file.Path}, client.deleted)
		assert.Empty(t, client.keys())
	})

	t.Run("missing object is not an error", func(t *testing.T) {
		t.Parallel()
		client := newMockS3Client()
		engine := newTestEngine(t, cfg, client)

		err := engine.Remove(context.Background(), &storage.File{Path: "gone.txt"})
		require.NoError(t, err)
		assert.Empty(t, client.deleted)
	})

	t.Run("propagates check failures", func(t *testing.T) {
		t.Parallel()
		client := newMockS3Client()
		client.headErr = &smithy.GenericAPIError{Code: "AccessDenied", Message: "no"}
		engine := newTestEngine(t, cfg, client)

		err := engine.Remove(context.Background(), &storage.File{Path: "a.txt"})
		assert.ErrorIs(t, err, storage.ErrAccessDenied)
	})

	t.Run("nil file", func(t *testing.T) {
		t.Parallel()
		engine := newTestEngine(t, cfg, newMockS3Client())
		assert.ErrorIs(t, engine.Remove(context.Background(), nil), storage.ErrNilFile)
	})

	t.Run("rejects traversal paths", func(t *testing.T) {
		t.Parallel()
		engine := newTestEngine(t, cfg, newMockS3Client())
		err := engine.Remove(context.Background(), &storage.File{Path: "../a.txt"})
		assert.ErrorIs(t, err, storage.ErrInvalidPath)
	})
}

func TestS3Engine_URL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  s3.S3Config
		path string
		want string
	}{
		{
			name: "custom base url",
			cfg:  s3.S3Config{Bucket: "b", Region: "us-east-1", BaseURL: "https://cdn.example.com/"},
			path: "uploads/a.png",
			want: "https://cdn.example.com/uploads/a.png",
		},
		{
			name: "endpoint path style",
			cfg:  s3.S3Config{Bucket: "b", Region: "us-east-1", Endpoint: "http://localhost:9000", ForcePathStyle: true},
			path: "a.png",
			want: "http://localhost:9000/b/a.png",
		},
		{
			name: "endpoint virtual hosted style",
			cfg:  s3.S3Config{Bucket: "b", Region: "nyc3", Endpoint: "https://nyc3.digitaloceanspaces.com"},
			path: "a.png",
			want: "https://b.nyc3.digitaloceanspaces.com/a.png",
		},
		{
			name: "aws path style",
			cfg:  s3.S3Config{Bucket: "b", Region: "eu-west-1", ForcePathStyle: true},
			path: "/a.png",
			want: "https://s3.eu-west-1.amazonaws.com/b/a.png",
		},
		{
			name: "aws virtual hosted style",
			cfg:  s3.S3Config{Bucket: "b", Region: "eu-west-1"},
			path: "a.png",
			want: "https://b.s3.eu-west-1.amazonaws.com/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine := newTestEngine(t, tt.cfg, newMockS3Client())
			assert.Equal(t, tt.want, engine.URL(tt.path))
		})
	}
}
