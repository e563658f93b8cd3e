package goals

import (
	"context"
	"fmt"

	"github.com/gustalxpes/foto-nutri/internal/nutrition"
	"github.com/gustalxpes/foto-nutri/internal/storage"
)

type Service struct {
	storage storage.GoalsStorage
}

func NewService(storage storage.GoalsStorage) *Service {
	return &Service{storage: storage}
}

// GetOrDefault returns the user's saved goals, falling back to the defaults
// when nothing was ever saved. Never returns an absent result.
func (s *Service) GetOrDefault(ctx context.Context, userID string) (*GoalsDTO, error) {
	row, err := s.storage.GetGoal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	if row == nil {
		return &GoalsDTO{
			DailyCalories: DefaultDailyCalories,
			DailyCarbs:    DefaultDailyCarbs,
			DailyProtein:  DefaultDailyProtein,
			DailyFat:      DefaultDailyFat,
			DailyFiber:    DefaultDailyFiber,
			DietDays:      DefaultDietDays(),
			IsDefault:     true,
		}, nil
	}

	return toDTO(row, false), nil
}

// Update validates and persists the user's goals, replacing the whole row.
func (s *Service) Update(ctx context.Context, userID string, req *UpdateGoalsRequest) (*GoalsDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dietDays := req.DietDays
	if dietDays == nil {
		dietDays = DefaultDietDays()
	}

	row, err := s.storage.UpsertGoal(ctx, userID, storage.NutritionGoalUpsert{
		DailyCalories: req.DailyCalories,
		DailyCarbs:    req.DailyCarbs,
		DailyProtein:  req.DailyProtein,
		DailyFat:      req.DailyFat,
		DailyFiber:    req.DailyFiber,
		DietDays:      dietDays,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert goal: %w", err)
	}

	return toDTO(row, false), nil
}

// EngineGoals converts the DTO into the aggregation engine's value type.
func (d *GoalsDTO) EngineGoals() nutrition.Goals {
	return nutrition.Goals{
		DailyCalories: d.DailyCalories,
		DailyCarbs:    d.DailyCarbs,
		DailyProtein:  d.DailyProtein,
		DailyFat:      d.DailyFat,
		DailyFiber:    d.DailyFiber,
	}
}

// EngineDietDays converts the weekday index list into the engine's set type.
func (d *GoalsDTO) EngineDietDays() nutrition.DietDays {
	return nutrition.NewDietDays(d.DietDays)
}

func toDTO(row *storage.NutritionGoal, isDefault bool) *GoalsDTO {
	return &GoalsDTO{
		DailyCalories: row.DailyCalories,
		DailyCarbs:    row.DailyCarbs,
		DailyProtein:  row.DailyProtein,
		DailyFat:      row.DailyFat,
		DailyFiber:    row.DailyFiber,
		DietDays:      append([]int(nil), row.DietDays...),
		IsDefault:     isDefault,
	}
}
