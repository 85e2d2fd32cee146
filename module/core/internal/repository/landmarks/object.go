package landmarks

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/nandanugg/kitty-compass/module/core/landmark"
)

var _ landmark.Source = (*ObjectSource)(nil)

type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// MinioFetcher reads objects from an S3-compatible store.
type MinioFetcher struct {
	client *minio.Client
}

func NewMinioFetcher(client *minio.Client) *MinioFetcher {
	return &MinioFetcher{client: client}
}

func (f *MinioFetcher) Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := f.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

type ObjectSource struct {
	Fetcher ObjectFetcher
	Bucket  string
	Key     string
}

func (s *ObjectSource) Read(ctx context.Context) ([]byte, error) {
	obj, err := s.Fetcher.Fetch(ctx, s.Bucket, s.Key)
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", s.Bucket, s.Key, err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(io.LimitReader(obj, maxDocumentSize))
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("object %s/%s does not exist", s.Bucket, s.Key)
		}
		return nil, fmt.Errorf("read object %s/%s: %w", s.Bucket, s.Key, err)
	}
	return data, nil
}
