package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/storage"
)

// GoalsMemoryStorage — in-memory storage for nutrition goals, one row per user
type GoalsMemoryStorage struct {
	mu    sync.RWMutex
	goals map[string]*storage.NutritionGoal // user_id -> goal
}

func NewGoalsMemoryStorage() *GoalsMemoryStorage {
	return &GoalsMemoryStorage{
		goals: make(map[string]*storage.NutritionGoal),
	}
}

func cloneGoal(g *storage.NutritionGoal) *storage.NutritionGoal {
	clone := *g
	clone.DietDays = append([]int(nil), g.DietDays...)
	return &clone
}

func (s *GoalsMemoryStorage) GetGoal(ctx context.Context, userID string) (*storage.NutritionGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goal, ok := s.goals[userID]
	if !ok {
		return nil, nil
	}

	return cloneGoal(goal), nil
}

func (s *GoalsMemoryStorage) UpsertGoal(ctx context.Context, userID string, upsert storage.NutritionGoalUpsert) (*storage.NutritionGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	goal, ok := s.goals[userID]
	if !ok {
		goal = &storage.NutritionGoal{
			ID:        uuid.New(),
			UserID:    userID,
			CreatedAt: now,
		}
		s.goals[userID] = goal
	}

	goal.DailyCalories = upsert.DailyCalories
	goal.DailyCarbs = upsert.DailyCarbs
	goal.DailyProtein = upsert.DailyProtein
	goal.DailyFat = upsert.DailyFat
	goal.DailyFiber = upsert.DailyFiber
	goal.DietDays = append([]int(nil), upsert.DietDays...)
	goal.UpdatedAt = now

	return cloneGoal(goal), nil
}
