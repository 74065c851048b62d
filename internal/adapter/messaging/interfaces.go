package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/messaging_mocks.go -package=mocks

const (
	EventImageUploaded = "image.uploaded"
	EventImageDeleted  = "image.deleted"
)

type ImageEvent struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	URL        string    `json:"url,omitempty"`
	UploaderID uuid.UUID `json:"uploader_id"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	Size       int64     `json:"size,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event ImageEvent) error
}
