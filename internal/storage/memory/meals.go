package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/storage"
)

// MealsMemoryStorage — in-memory storage for logged meals
type MealsMemoryStorage struct {
	mu     sync.RWMutex
	meals  map[uuid.UUID]*storage.Meal
	byUser map[string][]uuid.UUID // user_id -> meal_ids
}

func NewMealsMemoryStorage() *MealsMemoryStorage {
	return &MealsMemoryStorage{
		meals:  make(map[uuid.UUID]*storage.Meal),
		byUser: make(map[string][]uuid.UUID),
	}
}

func cloneMeal(m *storage.Meal) *storage.Meal {
	clone := *m
	clone.Foods = append([]string(nil), m.Foods...)
	return &clone
}

func (s *MealsMemoryStorage) CreateMeal(ctx context.Context, meal *storage.Meal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	now := time.Now()
	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = now
	}
	meal.UpdatedAt = now

	clone := cloneMeal(meal)
	s.meals[clone.ID] = clone
	s.byUser[clone.UserID] = append(s.byUser[clone.UserID], clone.ID)

	return nil
}

func (s *MealsMemoryStorage) GetMeal(ctx context.Context, userID string, id uuid.UUID) (*storage.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meal, ok := s.meals[id]
	if !ok || meal.UserID != userID {
		return nil, nil
	}

	return cloneMeal(meal), nil
}

func (s *MealsMemoryStorage) ListMeals(ctx context.Context, userID string, from, to *time.Time, limit int) ([]storage.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.Meal, 0)
	for _, id := range s.byUser[userID] {
		meal, ok := s.meals[id]
		if !ok {
			continue
		}
		if from != nil && meal.EatenAt.Before(*from) {
			continue
		}
		if to != nil && !meal.EatenAt.Before(*to) {
			continue
		}
		result = append(result, *cloneMeal(meal))
	}

	// newest first
	sort.Slice(result, func(i, j int) bool {
		return result[i].EatenAt.After(result[j].EatenAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

func (s *MealsMemoryStorage) UpdateMeal(ctx context.Context, meal *storage.Meal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.meals[meal.ID]
	if !ok || existing.UserID != meal.UserID {
		return ErrNotFound
	}

	meal.CreatedAt = existing.CreatedAt
	meal.UpdatedAt = time.Now()
	s.meals[meal.ID] = cloneMeal(meal)

	return nil
}

func (s *MealsMemoryStorage) DeleteMeal(ctx context.Context, userID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meal, ok := s.meals[id]
	if !ok || meal.UserID != userID {
		return ErrNotFound
	}

	delete(s.meals, id)

	ids := s.byUser[userID]
	for i, mid := range ids {
		if mid == id {
			s.byUser[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}

	return nil
}
