package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresImagesStorage — Postgres implementation for meal photo metadata.
// Blobs live in image_blobs only when the server runs without an object store.
type PostgresImagesStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresImagesStorage(pool *pgxpool.Pool) *PostgresImagesStorage {
	return &PostgresImagesStorage{pool: pool}
}

func (s *PostgresImagesStorage) CreateImage(ctx context.Context, image *storage.Image) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO images (id, user_id, object_key, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		image.ID,
		image.UserID,
		image.ObjectKey,
		image.ContentType,
		image.SizeBytes,
		image.CreatedAt,
	)

	return err
}

func (s *PostgresImagesStorage) GetImage(ctx context.Context, userID string, id uuid.UUID) (*storage.Image, error) {
	query := `
		SELECT id, user_id, object_key, content_type, size_bytes, created_at
		FROM images
		WHERE id = $1 AND user_id = $2
	`

	var image storage.Image
	err := s.pool.QueryRow(ctx, query, id, userID).Scan(
		&image.ID,
		&image.UserID,
		&image.ObjectKey,
		&image.ContentType,
		&image.SizeBytes,
		&image.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &image, nil
}

func (s *PostgresImagesStorage) DeleteImage(ctx context.Context, userID string, id uuid.UUID) error {
	// image_blobs rows go away via ON DELETE CASCADE
	query := `DELETE FROM images WHERE id = $1 AND user_id = $2`

	tag, err := s.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresImagesStorage) PutImageBlob(ctx context.Context, imageID uuid.UUID, data []byte, contentType string) error {
	query := `
		INSERT INTO image_blobs (image_id, data, content_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (image_id) DO UPDATE SET
			data = EXCLUDED.data,
			content_type = EXCLUDED.content_type
	`

	_, err := s.pool.Exec(ctx, query, imageID, data, contentType)
	return err
}

func (s *PostgresImagesStorage) GetImageBlob(ctx context.Context, imageID uuid.UUID) ([]byte, string, error) {
	query := `SELECT data, content_type FROM image_blobs WHERE image_id = $1`

	var data []byte
	var contentType string
	err := s.pool.QueryRow(ctx, query, imageID).Scan(&data, &contentType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}

	return data, contentType, nil
}
