package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("record not found")
)

// PostgresStorage — Postgres implementation of storage.Storage
type PostgresStorage struct {
	pool    *pgxpool.Pool
	meals   *PostgresMealsStorage
	goals   *PostgresGoalsStorage
	images  *PostgresImagesStorage
	reports *PostgresReportsStorage
}

// New connects a pgx pool and verifies the connection with a ping.
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStorage{
		pool:    pool,
		meals:   NewPostgresMealsStorage(pool),
		goals:   NewPostgresGoalsStorage(pool),
		images:  NewPostgresImagesStorage(pool),
		reports: NewPostgresReportsStorage(pool),
	}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// MealsStorage

func (p *PostgresStorage) CreateMeal(ctx context.Context, meal *storage.Meal) error {
	return p.meals.CreateMeal(ctx, meal)
}

func (p *PostgresStorage) GetMeal(ctx context.Context, userID string, id uuid.UUID) (*storage.Meal, error) {
	return p.meals.GetMeal(ctx, userID, id)
}

func (p *PostgresStorage) ListMeals(ctx context.Context, userID string, from, to *time.Time, limit int) ([]storage.Meal, error) {
	return p.meals.ListMeals(ctx, userID, from, to, limit)
}

func (p *PostgresStorage) UpdateMeal(ctx context.Context, meal *storage.Meal) error {
	return p.meals.UpdateMeal(ctx, meal)
}

func (p *PostgresStorage) DeleteMeal(ctx context.Context, userID string, id uuid.UUID) error {
	return p.meals.DeleteMeal(ctx, userID, id)
}

// GoalsStorage

func (p *PostgresStorage) GetGoal(ctx context.Context, userID string) (*storage.NutritionGoal, error) {
	return p.goals.GetGoal(ctx, userID)
}

func (p *PostgresStorage) UpsertGoal(ctx context.Context, userID string, upsert storage.NutritionGoalUpsert) (*storage.NutritionGoal, error) {
	return p.goals.UpsertGoal(ctx, userID, upsert)
}

// ImagesStorage

func (p *PostgresStorage) CreateImage(ctx context.Context, image *storage.Image) error {
	return p.images.CreateImage(ctx, image)
}

func (p *PostgresStorage) GetImage(ctx context.Context, userID string, id uuid.UUID) (*storage.Image, error) {
	return p.images.GetImage(ctx, userID, id)
}

func (p *PostgresStorage) DeleteImage(ctx context.Context, userID string, id uuid.UUID) error {
	return p.images.DeleteImage(ctx, userID, id)
}

func (p *PostgresStorage) PutImageBlob(ctx context.Context, imageID uuid.UUID, data []byte, contentType string) error {
	return p.images.PutImageBlob(ctx, imageID, data, contentType)
}

func (p *PostgresStorage) GetImageBlob(ctx context.Context, imageID uuid.UUID) ([]byte, string, error) {
	return p.images.GetImageBlob(ctx, imageID)
}

// ReportsStorage

func (p *PostgresStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	return p.reports.CreateReport(ctx, report)
}

func (p *PostgresStorage) GetReport(ctx context.Context, userID string, id uuid.UUID) (*storage.ReportMeta, error) {
	return p.reports.GetReport(ctx, userID, id)
}

func (p *PostgresStorage) ListReports(ctx context.Context, userID string, limit, offset int) ([]storage.ReportMeta, error) {
	return p.reports.ListReports(ctx, userID, limit, offset)
}

func (p *PostgresStorage) DeleteReport(ctx context.Context, userID string, id uuid.UUID) error {
	return p.reports.DeleteReport(ctx, userID, id)
}
