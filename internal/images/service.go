package images

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/blob"
	"github.com/gustalxpes/foto-nutri/internal/storage"
)

type Service struct {
	imagesStorage storage.ImagesStorage
	blobStore     blob.Store
	localMode     bool
	maxUploadMB   int
	allowedMimes  []string
	presignTTL    int
}

// NewService builds the image service. blobStore may be nil; blobs are then
// kept next to the metadata (local mode).
func NewService(imagesStorage storage.ImagesStorage, blobStore blob.Store, maxUploadMB int, allowedMimes string, presignTTLSeconds int) *Service {
	mimes := strings.Split(allowedMimes, ",")
	for i := range mimes {
		mimes[i] = strings.TrimSpace(mimes[i])
	}

	return &Service{
		imagesStorage: imagesStorage,
		blobStore:     blobStore,
		localMode:     blobStore == nil,
		maxUploadMB:   maxUploadMB,
		allowedMimes:  mimes,
		presignTTL:    presignTTLSeconds,
	}
}

// Upload validates and stores one meal photo.
func (s *Service) Upload(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (*ImageDTO, error) {
	maxBytes := int64(s.maxUploadMB) * 1024 * 1024
	if fileHeader.Size > maxBytes {
		return nil, ErrFileTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !s.isAllowedMime(contentType) {
		return nil, ErrUnsupportedMime
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	imageID := uuid.New()
	image := &storage.Image{
		ID:          imageID,
		UserID:      userID,
		ContentType: contentType,
		SizeBytes:   fileHeader.Size,
	}

	if s.localMode {
		if err := s.imagesStorage.CreateImage(ctx, image); err != nil {
			return nil, err
		}
		if err := s.imagesStorage.PutImageBlob(ctx, image.ID, data, contentType); err != nil {
			_ = s.imagesStorage.DeleteImage(ctx, userID, image.ID)
			return nil, fmt.Errorf("failed to store blob: %w", err)
		}
	} else {
		objectKey := fmt.Sprintf("images/%s/%s", userID, imageID.String())
		if _, err := s.blobStore.PutObject(ctx, objectKey, data, contentType); err != nil {
			return nil, fmt.Errorf("failed to upload to S3: %w", err)
		}

		image.ObjectKey = &objectKey
		if err := s.imagesStorage.CreateImage(ctx, image); err != nil {
			_ = s.blobStore.DeleteObject(ctx, objectKey)
			return nil, err
		}
	}

	return s.toDTO(image), nil
}

// DownloadURL returns a presigned URL in S3 mode, or an empty string when the
// caller should stream the blob itself (local mode).
func (s *Service) DownloadURL(ctx context.Context, userID string, id uuid.UUID) (string, error) {
	image, err := s.imagesStorage.GetImage(ctx, userID, id)
	if err != nil {
		return "", err
	}
	if image == nil {
		return "", ErrImageNotFound
	}

	if s.localMode || image.ObjectKey == nil {
		return "", nil
	}

	return s.blobStore.PresignGet(ctx, *image.ObjectKey, s.presignTTL)
}

// Blob returns the raw bytes for local-mode streaming.
func (s *Service) Blob(ctx context.Context, userID string, id uuid.UUID) ([]byte, string, error) {
	image, err := s.imagesStorage.GetImage(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	if image == nil {
		return nil, "", ErrImageNotFound
	}

	if !s.localMode && image.ObjectKey != nil {
		data, err := s.blobStore.GetObject(ctx, *image.ObjectKey)
		return data, image.ContentType, err
	}

	return s.imagesStorage.GetImageBlob(ctx, id)
}

// Delete removes the metadata and the blob.
func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	image, err := s.imagesStorage.GetImage(ctx, userID, id)
	if err != nil {
		return err
	}
	if image == nil {
		return ErrImageNotFound
	}

	if !s.localMode && image.ObjectKey != nil {
		if err := s.blobStore.DeleteObject(ctx, *image.ObjectKey); err != nil {
			return fmt.Errorf("failed to delete blob: %w", err)
		}
	}

	return s.imagesStorage.DeleteImage(ctx, userID, id)
}

func (s *Service) isAllowedMime(contentType string) bool {
	for _, allowed := range s.allowedMimes {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}
	return false
}

func (s *Service) toDTO(image *storage.Image) *ImageDTO {
	return &ImageDTO{
		ID:          image.ID,
		URL:         fmt.Sprintf("/v1/images/%s/download", image.ID.String()),
		ContentType: image.ContentType,
		SizeBytes:   image.SizeBytes,
		CreatedAt:   image.CreatedAt,
	}
}
