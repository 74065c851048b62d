package entity

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	ID         uuid.UUID
	UploaderID uuid.UUID
	Key        string
	URL        string
	MimeType   string
	Size       int64
	Width      int
	Height     int
	CreatedAt  time.Time
}

func NewImage(uploaderID uuid.UUID, key, url, mimeType string, size int64, width, height int) *Image {
	return &Image{
		ID:         uuid.New(),
		UploaderID: uploaderID,
		Key:        key,
		URL:        url,
		MimeType:   mimeType,
		Size:       size,
		Width:      width,
		Height:     height,
		CreatedAt:  time.Now().UTC(),
	}
}

func (i *Image) IsOwnedBy(userID uuid.UUID) bool {
	return i.UploaderID == userID
}
