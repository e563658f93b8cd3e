package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/storage"
)

type imageBlob struct {
	data        []byte
	contentType string
}

// ImagesMemoryStorage — in-memory storage for meal photo metadata and blobs
type ImagesMemoryStorage struct {
	mu     sync.RWMutex
	images map[uuid.UUID]*storage.Image
	blobs  map[uuid.UUID]imageBlob
}

func NewImagesMemoryStorage() *ImagesMemoryStorage {
	return &ImagesMemoryStorage{
		images: make(map[uuid.UUID]*storage.Image),
		blobs:  make(map[uuid.UUID]imageBlob),
	}
}

func (s *ImagesMemoryStorage) CreateImage(ctx context.Context, image *storage.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	clone := *image
	s.images[clone.ID] = &clone

	return nil
}

func (s *ImagesMemoryStorage) GetImage(ctx context.Context, userID string, id uuid.UUID) (*storage.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	image, ok := s.images[id]
	if !ok || image.UserID != userID {
		return nil, nil
	}

	clone := *image
	return &clone, nil
}

func (s *ImagesMemoryStorage) DeleteImage(ctx context.Context, userID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	image, ok := s.images[id]
	if !ok || image.UserID != userID {
		return ErrNotFound
	}

	delete(s.images, id)
	delete(s.blobs, id)

	return nil
}

func (s *ImagesMemoryStorage) PutImageBlob(ctx context.Context, imageID uuid.UUID, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[imageID] = imageBlob{
		data:        append([]byte(nil), data...),
		contentType: contentType,
	}

	return nil
}

func (s *ImagesMemoryStorage) GetImageBlob(ctx context.Context, imageID uuid.UUID) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[imageID]
	if !ok {
		return nil, "", ErrNotFound
	}

	return append([]byte(nil), blob.data...), blob.contentType, nil
}
