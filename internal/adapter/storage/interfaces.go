package storage

import (
	"context"
	"time"

	"github.com/marcos-nsantos/imgpipe/internal/domain/valueobject"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
	URL          string
}

type ObjectStorage interface {
	Upload(ctx context.Context, key, localPath, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	GetURL(key string) string
	GetSignedURL(key string, expiry time.Duration) (string, error)
}

type ImageTransformer interface {
	Inspect(src string) (valueobject.Asset, error)
	Resize(src, dst string, width, height int) (valueobject.Asset, error)
	ResizeMaintainAspectRatio(src, dst string, width, height int) (valueobject.Asset, error)
	Compress(src, dst string, quality int) (valueobject.Asset, error)
	ConvertToJPEG(src, dst string) (valueobject.Asset, error)
}
