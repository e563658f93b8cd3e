package meals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/goals"
	"github.com/gustalxpes/foto-nutri/internal/nutrition"
	"github.com/gustalxpes/foto-nutri/internal/storage"
)

var ErrMealNotFound = fmt.Errorf("meal not found")

type Service struct {
	storage storage.MealsStorage
	goals   *goals.Service
}

func NewService(mealsStorage storage.MealsStorage, goalsService *goals.Service) *Service {
	return &Service{
		storage: mealsStorage,
		goals:   goalsService,
	}
}

func (s *Service) Create(ctx context.Context, userID string, req *CreateMealRequest) (*MealDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	eatenAt := time.Now()
	if req.EatenAt != nil {
		eatenAt = *req.EatenAt
	}

	servings := 1.0
	if req.Servings != nil {
		servings = *req.Servings
	}

	meal := &storage.Meal{
		UserID:     userID,
		EatenAt:    eatenAt,
		MealType:   req.MealType,
		ImageURL:   req.ImageURL,
		Servings:   servings,
		Calories:   req.Nutrition.Calories,
		Carbs:      req.Nutrition.Carbs,
		Protein:    req.Nutrition.Protein,
		Fat:        req.Nutrition.Fat,
		Fiber:      req.Nutrition.Fiber,
		Foods:      req.Foods,
		Confidence: req.Confidence,
	}

	if err := s.storage.CreateMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}

	return toDTO(meal), nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*MealDTO, error) {
	meal, err := s.storage.GetMeal(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	if meal == nil {
		return nil, ErrMealNotFound
	}
	return toDTO(meal), nil
}

func (s *Service) List(ctx context.Context, userID string, from, to *time.Time, limit int) ([]MealDTO, error) {
	rows, err := s.storage.ListMeals(ctx, userID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	dtos := make([]MealDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *toDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *Service) Update(ctx context.Context, userID string, id uuid.UUID, req *UpdateMealRequest) (*MealDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	meal, err := s.storage.GetMeal(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	if meal == nil {
		return nil, ErrMealNotFound
	}

	if req.MealType != nil {
		meal.MealType = *req.MealType
	}
	if req.Servings != nil {
		meal.Servings = *req.Servings
	}
	if req.Nutrition != nil {
		meal.Calories = req.Nutrition.Calories
		meal.Carbs = req.Nutrition.Carbs
		meal.Protein = req.Nutrition.Protein
		meal.Fat = req.Nutrition.Fat
		meal.Fiber = req.Nutrition.Fiber
	}
	if req.Foods != nil {
		meal.Foods = req.Foods
	}

	if err := s.storage.UpdateMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("update meal: %w", err)
	}

	return toDTO(meal), nil
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	meal, err := s.storage.GetMeal(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("get meal: %w", err)
	}
	if meal == nil {
		return ErrMealNotFound
	}
	if err := s.storage.DeleteMeal(ctx, userID, id); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

// DailySummary recomputes the calendar-day totals for date in loc and pairs
// them with goal progress. Days without meals return all-zero totals.
func (s *Service) DailySummary(ctx context.Context, userID string, date time.Time, loc *time.Location) (*DailySummaryResponse, error) {
	start := startOfDay(date, loc)
	end := start.AddDate(0, 0, 1)

	rows, err := s.storage.ListMeals(ctx, userID, &start, &end, 0)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	summary := nutrition.RecomputeDailySummary(toEntries(rows), date, loc)

	userGoals, err := s.goals.GetOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DailySummaryResponse{
		Summary:  summary,
		Progress: buildProgress(summary, userGoals.EngineGoals()),
	}, nil
}

// WeeklyReport builds the 7-day window ending at reference (inclusive),
// oldest first, with totals and averages over designated diet days only.
func (s *Service) WeeklyReport(ctx context.Context, userID string, reference time.Time, loc *time.Location) (*WeeklyReportResponse, error) {
	start := startOfDay(reference.AddDate(0, 0, -6), loc)
	end := startOfDay(reference, loc).AddDate(0, 0, 1)

	rows, err := s.storage.ListMeals(ctx, userID, &start, &end, 0)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	caloriesByDay := make(map[string]float64)
	for i := range rows {
		entry := toEntry(&rows[i])
		key := nutrition.DayKey(entry.EatenAt, loc)
		caloriesByDay[key] += entry.Effective().Calories
	}

	userGoals, err := s.goals.GetOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	days, stats := nutrition.BuildWeeklyReport(
		caloriesByDay,
		userGoals.EngineGoals(),
		userGoals.EngineDietDays(),
		reference,
		loc,
	)

	return &WeeklyReportResponse{Days: days, Stats: stats}, nil
}

func buildProgress(summary nutrition.DailySummary, g nutrition.Goals) map[string]MacroProgress {
	macro := func(current, goal float64) MacroProgress {
		return MacroProgress{
			Current:  current,
			Goal:     goal,
			Ratio:    nutrition.ProgressRatio(current, goal),
			RawRatio: nutrition.GoalRatio(current, goal),
		}
	}

	return map[string]MacroProgress{
		"calories": macro(summary.TotalCalories, g.DailyCalories),
		"carbs":    macro(summary.TotalCarbs, g.DailyCarbs),
		"protein":  macro(summary.TotalProtein, g.DailyProtein),
		"fat":      macro(summary.TotalFat, g.DailyFat),
		"fiber":    macro(summary.TotalFiber, g.DailyFiber),
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func toEntries(rows []storage.Meal) []nutrition.MealEntry {
	entries := make([]nutrition.MealEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, toEntry(&rows[i]))
	}
	return entries
}

func toEntry(m *storage.Meal) nutrition.MealEntry {
	return nutrition.MealEntry{
		EatenAt:  m.EatenAt,
		Servings: m.Servings,
		Nutrition: nutrition.NutritionData{
			Calories: m.Calories,
			Carbs:    m.Carbs,
			Protein:  m.Protein,
			Fat:      m.Fat,
			Fiber:    m.Fiber,
		},
	}
}

func toDTO(m *storage.Meal) *MealDTO {
	return &MealDTO{
		ID:       m.ID,
		EatenAt:  m.EatenAt,
		MealType: m.MealType,
		ImageURL: m.ImageURL,
		Servings: m.Servings,
		Nutrition: nutrition.NutritionData{
			Calories: m.Calories,
			Carbs:    m.Carbs,
			Protein:  m.Protein,
			Fat:      m.Fat,
			Fiber:    m.Fiber,
		},
		Foods:      append([]string(nil), m.Foods...),
		Confidence: m.Confidence,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
