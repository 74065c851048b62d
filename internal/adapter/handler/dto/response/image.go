package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/imgpipe/internal/adapter/storage"
	"github.com/marcos-nsantos/imgpipe/internal/domain/entity"
	"github.com/marcos-nsantos/imgpipe/internal/pkg/pagination"
	"github.com/marcos-nsantos/imgpipe/internal/usecase/upload"
)

type ImageResponse struct {
	ID        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

type UploadResponse struct {
	Image           ImageResponse `json:"image"`
	URL             string        `json:"url"`
	SignedURL       string        `json:"signed_url,omitempty"`
	PreviousDeleted bool          `json:"previous_deleted"`
}

type ImagesListResponse struct {
	Images     []ImageResponse  `json:"images"`
	Pagination *pagination.Info `json:"pagination"`
}

type ObjectResponse struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"last_modified"`
	URL          string    `json:"url"`
}

type ObjectsListResponse struct {
	Prefix  string           `json:"prefix,omitempty"`
	Objects []ObjectResponse `json:"objects"`
}

func ImageFromEntity(img *entity.Image) ImageResponse {
	return ImageResponse{
		ID:        img.ID,
		Key:       img.Key,
		URL:       img.URL,
		MimeType:  img.MimeType,
		Size:      img.Size,
		Width:     img.Width,
		Height:    img.Height,
		CreatedAt: img.CreatedAt,
	}
}

func UploadResultToResponse(result *upload.UploadResult) UploadResponse {
	return UploadResponse{
		Image:           ImageFromEntity(result.Image),
		URL:             result.URL,
		SignedURL:       result.SignedURL,
		PreviousDeleted: result.PreviousDeleted,
	}
}

func ImagesFromEntities(images []entity.Image, info *pagination.Info) ImagesListResponse {
	resp := ImagesListResponse{
		Images:     make([]ImageResponse, 0, len(images)),
		Pagination: info,
	}
	for i := range images {
		resp.Images = append(resp.Images, ImageFromEntity(&images[i]))
	}
	return resp
}

func ObjectsFromInfo(prefix string, objects []storage.ObjectInfo) ObjectsListResponse {
	resp := ObjectsListResponse{
		Prefix:  prefix,
		Objects: make([]ObjectResponse, 0, len(objects)),
	}
	for _, o := range objects {
		resp.Objects = append(resp.Objects, ObjectResponse{
			Key:          o.Key,
			Size:         o.Size,
			ETag:         o.ETag,
			LastModified: o.LastModified,
			URL:          o.URL,
		})
	}
	return resp
}
