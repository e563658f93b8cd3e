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

// PostgresGoalsStorage — Postgres implementation for nutrition goals
type PostgresGoalsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresGoalsStorage(pool *pgxpool.Pool) *PostgresGoalsStorage {
	return &PostgresGoalsStorage{pool: pool}
}

func intsToInt32(days []int) []int32 {
	out := make([]int32, 0, len(days))
	for _, d := range days {
		out = append(out, int32(d))
	}
	return out
}

func int32ToInts(days []int32) []int {
	out := make([]int, 0, len(days))
	for _, d := range days {
		out = append(out, int(d))
	}
	return out
}

func (s *PostgresGoalsStorage) GetGoal(ctx context.Context, userID string) (*storage.NutritionGoal, error) {
	query := `
		SELECT id, user_id, daily_calories, daily_carbs, daily_protein, daily_fat, daily_fiber,
			diet_days, created_at, updated_at
		FROM nutrition_goals
		WHERE user_id = $1
	`

	var goal storage.NutritionGoal
	var dietDays []int32
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.DailyCalories,
		&goal.DailyCarbs,
		&goal.DailyProtein,
		&goal.DailyFat,
		&goal.DailyFiber,
		&dietDays,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	goal.DietDays = int32ToInts(dietDays)
	return &goal, nil
}

func (s *PostgresGoalsStorage) UpsertGoal(ctx context.Context, userID string, upsert storage.NutritionGoalUpsert) (*storage.NutritionGoal, error) {
	now := time.Now()

	query := `
		INSERT INTO nutrition_goals (id, user_id, daily_calories, daily_carbs, daily_protein,
			daily_fat, daily_fiber, diet_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			daily_calories = EXCLUDED.daily_calories,
			daily_carbs = EXCLUDED.daily_carbs,
			daily_protein = EXCLUDED.daily_protein,
			daily_fat = EXCLUDED.daily_fat,
			daily_fiber = EXCLUDED.daily_fiber,
			diet_days = EXCLUDED.diet_days,
			updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, daily_calories, daily_carbs, daily_protein, daily_fat, daily_fiber,
			diet_days, created_at, updated_at
	`

	var goal storage.NutritionGoal
	var dietDays []int32
	err := s.pool.QueryRow(ctx, query,
		uuid.New(),
		userID,
		upsert.DailyCalories,
		upsert.DailyCarbs,
		upsert.DailyProtein,
		upsert.DailyFat,
		upsert.DailyFiber,
		intsToInt32(upsert.DietDays),
		now,
	).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.DailyCalories,
		&goal.DailyCarbs,
		&goal.DailyProtein,
		&goal.DailyFat,
		&goal.DailyFiber,
		&dietDays,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	goal.DietDays = int32ToInts(dietDays)
	return &goal, nil
}
