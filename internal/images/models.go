package images

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrImageNotFound   = errors.New("image not found")
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrUnsupportedMime = errors.New("unsupported content type")
)

// ImageDTO is the API representation of an uploaded meal photo.
type ImageDTO struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
