package memory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/storage"
)

var (
	ErrNotFound = errors.New("record not found")
)

// MemoryStorage is the in-memory implementation of storage.Storage.
// Used for local development and tests; nothing survives a restart.
type MemoryStorage struct {
	meals   *MealsMemoryStorage
	goals   *GoalsMemoryStorage
	images  *ImagesMemoryStorage
	reports *ReportsMemoryStorage
}

func New() *MemoryStorage {
	return &MemoryStorage{
		meals:   NewMealsMemoryStorage(),
		goals:   NewGoalsMemoryStorage(),
		images:  NewImagesMemoryStorage(),
		reports: NewReportsMemoryStorage(),
	}
}

func (m *MemoryStorage) Close() error { return nil }

// MealsStorage

func (m *MemoryStorage) CreateMeal(ctx context.Context, meal *storage.Meal) error {
	return m.meals.CreateMeal(ctx, meal)
}

func (m *MemoryStorage) GetMeal(ctx context.Context, userID string, id uuid.UUID) (*storage.Meal, error) {
	return m.meals.GetMeal(ctx, userID, id)
}

func (m *MemoryStorage) ListMeals(ctx context.Context, userID string, from, to *time.Time, limit int) ([]storage.Meal, error) {
	return m.meals.ListMeals(ctx, userID, from, to, limit)
}

func (m *MemoryStorage) UpdateMeal(ctx context.Context, meal *storage.Meal) error {
	return m.meals.UpdateMeal(ctx, meal)
}

func (m *MemoryStorage) DeleteMeal(ctx context.Context, userID string, id uuid.UUID) error {
	return m.meals.DeleteMeal(ctx, userID, id)
}

// GoalsStorage

func (m *MemoryStorage) GetGoal(ctx context.Context, userID string) (*storage.NutritionGoal, error) {
	return m.goals.GetGoal(ctx, userID)
}

func (m *MemoryStorage) UpsertGoal(ctx context.Context, userID string, upsert storage.NutritionGoalUpsert) (*storage.NutritionGoal, error) {
	return m.goals.UpsertGoal(ctx, userID, upsert)
}

// ImagesStorage

func (m *MemoryStorage) CreateImage(ctx context.Context, image *storage.Image) error {
	return m.images.CreateImage(ctx, image)
}

func (m *MemoryStorage) GetImage(ctx context.Context, userID string, id uuid.UUID) (*storage.Image, error) {
	return m.images.GetImage(ctx, userID, id)
}

func (m *MemoryStorage) DeleteImage(ctx context.Context, userID string, id uuid.UUID) error {
	return m.images.DeleteImage(ctx, userID, id)
}

func (m *MemoryStorage) PutImageBlob(ctx context.Context, imageID uuid.UUID, data []byte, contentType string) error {
	return m.images.PutImageBlob(ctx, imageID, data, contentType)
}

func (m *MemoryStorage) GetImageBlob(ctx context.Context, imageID uuid.UUID) ([]byte, string, error) {
	return m.images.GetImageBlob(ctx, imageID)
}

// ReportsStorage

func (m *MemoryStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	return m.reports.CreateReport(ctx, report)
}

func (m *MemoryStorage) GetReport(ctx context.Context, userID string, id uuid.UUID) (*storage.ReportMeta, error) {
	return m.reports.GetReport(ctx, userID, id)
}

func (m *MemoryStorage) ListReports(ctx context.Context, userID string, limit, offset int) ([]storage.ReportMeta, error) {
	return m.reports.ListReports(ctx, userID, limit, offset)
}

func (m *MemoryStorage) DeleteReport(ctx context.Context, userID string, id uuid.UUID) error {
	return m.reports.DeleteReport(ctx, userID, id)
}
