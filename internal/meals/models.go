package meals

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/nutrition"
)

// Meal types match the labels the client shows.
var validMealTypes = map[string]bool{
	"café":   true,
	"almoço": true,
	"jantar": true,
	"lanche": true,
	"outro":  true,
}

const (
	minServings  = 0.5
	servingsStep = 0.5
)

// MealDTO is the API representation of one logged meal. Nutrition is per one
// serving; the effective contribution is nutrition times servings.
type MealDTO struct {
	ID         uuid.UUID               `json:"id"`
	EatenAt    time.Time               `json:"eaten_at"`
	MealType   string                  `json:"meal_type"`
	ImageURL   string                  `json:"image_url,omitempty"`
	Servings   float64                 `json:"servings"`
	Nutrition  nutrition.NutritionData `json:"nutrition"`
	Foods      []string                `json:"foods"`
	Confidence float64                 `json:"confidence"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// CreateMealRequest is the body of POST /v1/meals, typically built from a
// confirmed analysis result.
type CreateMealRequest struct {
	EatenAt    *time.Time              `json:"eaten_at"`
	MealType   string                  `json:"meal_type"`
	ImageURL   string                  `json:"image_url"`
	Servings   *float64                `json:"servings"`
	Nutrition  nutrition.NutritionData `json:"nutrition"`
	Foods      []string                `json:"foods"`
	Confidence float64                 `json:"confidence"`
}

func (r *CreateMealRequest) Validate() error {
	if !validMealTypes[r.MealType] {
		return fmt.Errorf("meal_type must be one of café, almoço, jantar, lanche, outro")
	}
	if len(r.Foods) == 0 {
		return fmt.Errorf("foods must contain at least one item")
	}
	if r.Servings != nil {
		if err := validateServings(*r.Servings); err != nil {
			return err
		}
	}
	if err := validateNutrition(r.Nutrition); err != nil {
		return err
	}
	if math.IsNaN(r.Confidence) || r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence must be in [0,1]")
	}
	return nil
}

// UpdateMealRequest is the body of PATCH /v1/meals/{id}. Servings, nutrition,
// meal type and the food list are editable after save; nil fields keep their
// stored value.
type UpdateMealRequest struct {
	MealType  *string                  `json:"meal_type"`
	Servings  *float64                 `json:"servings"`
	Nutrition *nutrition.NutritionData `json:"nutrition"`
	Foods     []string                 `json:"foods"`
}

func (r *UpdateMealRequest) Validate() error {
	if r.MealType == nil && r.Servings == nil && r.Nutrition == nil && r.Foods == nil {
		return fmt.Errorf("nothing to update")
	}
	if r.Foods != nil && len(r.Foods) == 0 {
		return fmt.Errorf("foods must not be empty")
	}
	if r.MealType != nil && !validMealTypes[*r.MealType] {
		return fmt.Errorf("meal_type must be one of café, almoço, jantar, lanche, outro")
	}
	if r.Servings != nil {
		if err := validateServings(*r.Servings); err != nil {
			return err
		}
	}
	if r.Nutrition != nil {
		if err := validateNutrition(*r.Nutrition); err != nil {
			return err
		}
	}
	return nil
}

func validateServings(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("servings must be a finite number")
	}
	if v < minServings {
		return fmt.Errorf("servings must be at least %v", minServings)
	}
	// steps of 0.5 only
	if steps := v / servingsStep; steps != math.Trunc(steps) {
		return fmt.Errorf("servings must be a multiple of %v", servingsStep)
	}
	return nil
}

func validateNutrition(n nutrition.NutritionData) error {
	fields := map[string]float64{
		"calories": n.Calories,
		"carbs":    n.Carbs,
		"protein":  n.Protein,
		"fat":      n.Fat,
		"fiber":    n.Fiber,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("nutrition.%s must be a finite number", name)
		}
		if v < 0 {
			return fmt.Errorf("nutrition.%s must be non-negative", name)
		}
	}
	return nil
}

// MacroProgress pairs the clamped ratio (for a bounded indicator) with the
// raw ratio (for over-target detection).
type MacroProgress struct {
	Current  float64 `json:"current"`
	Goal     float64 `json:"goal"`
	Ratio    float64 `json:"ratio"`     // clamped to 1.0
	RawRatio float64 `json:"raw_ratio"` // unclamped
}

// DailySummaryResponse is the body of GET /v1/summary/daily.
type DailySummaryResponse struct {
	Summary  nutrition.DailySummary   `json:"summary"`
	Progress map[string]MacroProgress `json:"progress"`
}

// WeeklyReportResponse is the body of GET /v1/summary/weekly.
type WeeklyReportResponse struct {
	Days  []nutrition.WeeklyDay `json:"days"`
	Stats nutrition.WeeklyStats `json:"stats"`
}

// ListMealsResponse wraps GET /v1/meals results.
type ListMealsResponse struct {
	Meals []MealDTO `json:"meals"`
}
