package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMealsStorage — Postgres implementation for logged meals
type PostgresMealsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresMealsStorage(pool *pgxpool.Pool) *PostgresMealsStorage {
	return &PostgresMealsStorage{pool: pool}
}

func (s *PostgresMealsStorage) CreateMeal(ctx context.Context, meal *storage.Meal) error {
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	now := time.Now()
	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = now
	}
	meal.UpdatedAt = now

	query := `
		INSERT INTO meals (id, user_id, eaten_at, meal_type, image_url, servings,
			calories, carbs, protein, fat, fiber, foods, confidence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := s.pool.Exec(ctx, query,
		meal.ID,
		meal.UserID,
		meal.EatenAt,
		meal.MealType,
		meal.ImageURL,
		meal.Servings,
		meal.Calories,
		meal.Carbs,
		meal.Protein,
		meal.Fat,
		meal.Fiber,
		meal.Foods,
		meal.Confidence,
		meal.CreatedAt,
		meal.UpdatedAt,
	)

	return err
}

func (s *PostgresMealsStorage) GetMeal(ctx context.Context, userID string, id uuid.UUID) (*storage.Meal, error) {
	query := `
		SELECT id, user_id, eaten_at, meal_type, image_url, servings,
			calories, carbs, protein, fat, fiber, foods, confidence, created_at, updated_at
		FROM meals
		WHERE id = $1 AND user_id = $2
	`

	var meal storage.Meal
	err := s.pool.QueryRow(ctx, query, id, userID).Scan(
		&meal.ID,
		&meal.UserID,
		&meal.EatenAt,
		&meal.MealType,
		&meal.ImageURL,
		&meal.Servings,
		&meal.Calories,
		&meal.Carbs,
		&meal.Protein,
		&meal.Fat,
		&meal.Fiber,
		&meal.Foods,
		&meal.Confidence,
		&meal.CreatedAt,
		&meal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &meal, nil
}

func (s *PostgresMealsStorage) ListMeals(ctx context.Context, userID string, from, to *time.Time, limit int) ([]storage.Meal, error) {
	query := `
		SELECT id, user_id, eaten_at, meal_type, image_url, servings,
			calories, carbs, protein, fat, fiber, foods, confidence, created_at, updated_at
		FROM meals
		WHERE user_id = $1
	`
	args := []any{userID}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND eaten_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND eaten_at < $%d", len(args))
	}

	query += " ORDER BY eaten_at DESC"

	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := make([]storage.Meal, 0)
	for rows.Next() {
		var meal storage.Meal
		err := rows.Scan(
			&meal.ID,
			&meal.UserID,
			&meal.EatenAt,
			&meal.MealType,
			&meal.ImageURL,
			&meal.Servings,
			&meal.Calories,
			&meal.Carbs,
			&meal.Protein,
			&meal.Fat,
			&meal.Fiber,
			&meal.Foods,
			&meal.Confidence,
			&meal.CreatedAt,
			&meal.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}

	return meals, rows.Err()
}

func (s *PostgresMealsStorage) UpdateMeal(ctx context.Context, meal *storage.Meal) error {
	meal.UpdatedAt = time.Now()

	query := `
		UPDATE meals
		SET eaten_at = $3, meal_type = $4, image_url = $5, servings = $6,
			calories = $7, carbs = $8, protein = $9, fat = $10, fiber = $11,
			foods = $12, confidence = $13, updated_at = $14
		WHERE id = $1 AND user_id = $2
	`

	tag, err := s.pool.Exec(ctx, query,
		meal.ID,
		meal.UserID,
		meal.EatenAt,
		meal.MealType,
		meal.ImageURL,
		meal.Servings,
		meal.Calories,
		meal.Carbs,
		meal.Protein,
		meal.Fat,
		meal.Fiber,
		meal.Foods,
		meal.Confidence,
		meal.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresMealsStorage) DeleteMeal(ctx context.Context, userID string, id uuid.UUID) error {
	query := `DELETE FROM meals WHERE id = $1 AND user_id = $2`

	tag, err := s.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
