package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Meal is one logged eating event. Nutrition columns are per one serving;
// the effective contribution of a meal is its nutrition times Servings.
type Meal struct {
	ID         uuid.UUID
	UserID     string
	EatenAt    time.Time
	MealType   string // café | almoço | jantar | lanche | outro
	ImageURL   string
	Servings   float64
	Calories   float64
	Carbs      float64
	Protein    float64
	Fat        float64
	Fiber      float64
	Foods      []string
	Confidence float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MealsStorage persists the per-user meal ledger.
type MealsStorage interface {
	// CreateMeal persists a new meal. Fills ID/CreatedAt/UpdatedAt.
	CreateMeal(ctx context.Context, meal *Meal) error

	// GetMeal returns a meal owned by userID, or (nil, nil) when absent.
	GetMeal(ctx context.Context, userID string, id uuid.UUID) (*Meal, error)

	// ListMeals returns the user's meals, newest first. from/to bound EatenAt
	// (inclusive from, exclusive to) when non-nil. limit <= 0 means no limit.
	ListMeals(ctx context.Context, userID string, from, to *time.Time, limit int) ([]Meal, error)

	// UpdateMeal saves edits to an existing meal owned by meal.UserID.
	UpdateMeal(ctx context.Context, meal *Meal) error

	// DeleteMeal removes a meal owned by userID.
	DeleteMeal(ctx context.Context, userID string, id uuid.UUID) error
}

// NutritionGoal holds one user's daily targets and designated diet days
// (weekday indices, 0=Sunday..6=Saturday).
type NutritionGoal struct {
	ID            uuid.UUID
	UserID        string
	DailyCalories float64
	DailyCarbs    float64
	DailyProtein  float64
	DailyFat      float64
	DailyFiber    float64
	DietDays      []int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NutritionGoalUpsert carries the writable goal fields.
type NutritionGoalUpsert struct {
	DailyCalories float64
	DailyCarbs    float64
	DailyProtein  float64
	DailyFat      float64
	DailyFiber    float64
	DietDays      []int
}

// GoalsStorage persists per-user nutrition goals.
type GoalsStorage interface {
	// GetGoal returns the user's goal row, or (nil, nil) when never set.
	GetGoal(ctx context.Context, userID string) (*NutritionGoal, error)

	// UpsertGoal creates or replaces the user's goal row.
	UpsertGoal(ctx context.Context, userID string, upsert NutritionGoalUpsert) (*NutritionGoal, error)
}

// Image is an uploaded meal photo. ObjectKey is set in S3 mode; in local mode
// the blob lives next to the metadata via Put/GetImageBlob.
type Image struct {
	ID          uuid.UUID
	UserID      string
	ObjectKey   *string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}

// ImagesStorage persists meal photo metadata and, in local mode, blobs.
type ImagesStorage interface {
	CreateImage(ctx context.Context, image *Image) error
	GetImage(ctx context.Context, userID string, id uuid.UUID) (*Image, error)
	DeleteImage(ctx context.Context, userID string, id uuid.UUID) error

	// PutImageBlob / GetImageBlob store the raw bytes when no object store is
	// configured (local blob mode).
	PutImageBlob(ctx context.Context, imageID uuid.UUID, data []byte, contentType string) error
	GetImageBlob(ctx context.Context, imageID uuid.UUID) ([]byte, string, error)
}

// ReportMeta describes one generated weekly report artifact.
type ReportMeta struct {
	ID        uuid.UUID
	UserID    string
	Format    string // "pdf" or "csv"
	FromDate  string // YYYY-MM-DD
	ToDate    string // YYYY-MM-DD
	ObjectKey *string
	SizeBytes int64
	Status    string // "ready" or "failed"
	Error     *string
	CreatedAt time.Time
	UpdatedAt time.Time
	Data      []byte // only used in local blob mode (not stored in Postgres)
}

// ReportsStorage persists weekly report metadata.
type ReportsStorage interface {
	CreateReport(ctx context.Context, report *ReportMeta) error
	GetReport(ctx context.Context, userID string, id uuid.UUID) (*ReportMeta, error)
	ListReports(ctx context.Context, userID string, limit, offset int) ([]ReportMeta, error)
	DeleteReport(ctx context.Context, userID string, id uuid.UUID) error
}

// Storage is the root interface both backends implement.
type Storage interface {
	MealsStorage
	GoalsStorage
	ImagesStorage
	ReportsStorage

	// Close releases backend resources (connection pool for Postgres).
	Close() error
}
