package goals

import (
	"fmt"
	"math"
)

// Default daily targets applied until the user saves their own.
const (
	DefaultDailyCalories = 2000
	DefaultDailyCarbs    = 250
	DefaultDailyProtein  = 150
	DefaultDailyFat      = 65
	DefaultDailyFiber    = 30
)

// DefaultDietDays is Monday through Friday (0=Sunday..6=Saturday).
func DefaultDietDays() []int {
	return []int{1, 2, 3, 4, 5}
}

// GoalsDTO is the API representation of a user's daily targets.
type GoalsDTO struct {
	DailyCalories float64 `json:"daily_calories"`
	DailyCarbs    float64 `json:"daily_carbs"`
	DailyProtein  float64 `json:"daily_protein"`
	DailyFat      float64 `json:"daily_fat"`
	DailyFiber    float64 `json:"daily_fiber"`
	DietDays      []int   `json:"diet_days"`
	IsDefault     bool    `json:"is_default"`
}

// UpdateGoalsRequest carries the writable fields for PUT /v1/goals.
// DietDays is optional; nil keeps the previous (or default) set.
type UpdateGoalsRequest struct {
	DailyCalories float64 `json:"daily_calories"`
	DailyCarbs    float64 `json:"daily_carbs"`
	DailyProtein  float64 `json:"daily_protein"`
	DailyFat      float64 `json:"daily_fat"`
	DailyFiber    float64 `json:"daily_fiber"`
	DietDays      []int   `json:"diet_days"`
}

// Validate rejects non-positive or non-finite targets and out-of-range
// weekday indices. Goals must stay strictly positive because progress ratios
// divide by them.
func (r *UpdateGoalsRequest) Validate() error {
	fields := map[string]float64{
		"daily_calories": r.DailyCalories,
		"daily_carbs":    r.DailyCarbs,
		"daily_protein":  r.DailyProtein,
		"daily_fat":      r.DailyFat,
		"daily_fiber":    r.DailyFiber,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number", name)
		}
		if v <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	seen := make(map[int]bool, len(r.DietDays))
	for _, day := range r.DietDays {
		if day < 0 || day > 6 {
			return fmt.Errorf("diet_days values must be in 0..6, got %d", day)
		}
		if seen[day] {
			return fmt.Errorf("diet_days contains duplicate %d", day)
		}
		seen[day] = true
	}

	return nil
}
