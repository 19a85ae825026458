package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// PutOptions conveys object metadata for uploads.
type PutOptions struct {
	ContentType string
}

// Service stores receipt images in remote object storage.
type Service interface {
	PutObject(ctx context.Context, bucket, key string, body io.Reader, opts PutOptions) error
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
