package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/imgpipe/internal/domain/entity"
	"github.com/marcos-nsantos/imgpipe/internal/pkg/pagination"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

type ImageRepository interface {
	// Save inserts the image, replacing any record stored under the same key.
	Save(ctx context.Context, image *entity.Image) error
	GetByKey(ctx context.Context, key string) (*entity.Image, error)
	// ListByUploader returns one page of the uploader's images, newest first, and the total count.
	ListByUploader(ctx context.Context, uploaderID uuid.UUID, params pagination.Params) ([]entity.Image, int, error)
	DeleteByKey(ctx context.Context, key string) error
}
