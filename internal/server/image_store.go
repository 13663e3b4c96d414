package server

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ImageStore abstracts the external binary object store so handlers and
// tests are independent of the concrete backend.
type ImageStore interface {
	// Put writes the bytes under a freshly generated opaque identifier
	// and returns that identifier. Single attempt, no retries.
	Put(ctx context.Context, data []byte, contentType string) (string, error)
	// Get fetches the object by identifier, fully drained into memory.
	Get(ctx context.Context, imageID string) ([]byte, error)
}

type minioImageStore struct {
	client *minio.Client
	bucket string
}

// NewMinioImageStore wraps a MinIO client as an ImageStore using the
// given bucket.
func NewMinioImageStore(client *minio.Client, bucket string) ImageStore {
	return &minioImageStore{client: client, bucket: bucket}
}

func (s *minioImageStore) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	// Random UUID key; collisions are treated as negligible.
	imageID := uuid.NewString()

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		imageID,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return imageID, nil
}

func (s *minioImageStore) Get(ctx context.Context, imageID string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, imageID, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	defer func() { _ = obj.Close() }()

	// GetObject is lazy; missing keys surface on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, imageID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	return data, nil
}
