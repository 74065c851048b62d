package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/imgpipe/internal/adapter/storage"
	"github.com/marcos-nsantos/imgpipe/internal/domain/entity"
	"github.com/marcos-nsantos/imgpipe/internal/pkg/pagination"
	"github.com/marcos-nsantos/imgpipe/internal/usecase/upload"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type ImageService interface {
	Upload(ctx context.Context, input upload.UploadInput) (*upload.UploadResult, error)
	Delete(ctx context.Context, uploaderID uuid.UUID, key string) error
	List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error)
	ListMine(ctx context.Context, uploaderID uuid.UUID, params pagination.Params) ([]entity.Image, *pagination.Info, error)
}
