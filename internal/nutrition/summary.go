package nutrition

import "time"

// MealEntry is the snapshot row the engine consumes: when the meal was eaten,
// how many servings, and the per-serving nutrition. Callers map their stored
// meal records into this shape; the engine never reaches into storage.
type MealEntry struct {
	EatenAt  time.Time
	Servings float64
	// Nutrition is per one serving. The effective contribution of the entry
	// is Nutrition.Scale(Servings).
	Nutrition NutritionData
}

// Effective returns the nutrition this entry contributes to its day.
func (e MealEntry) Effective() NutritionData {
	return e.Nutrition.Scale(e.Servings)
}

// DailySummary aggregates the effective nutrition of all meals eaten on one
// calendar day.
type DailySummary struct {
	Date          time.Time `json:"date"`
	TotalCalories float64   `json:"total_calories"`
	TotalCarbs    float64   `json:"total_carbs"`
	TotalProtein  float64   `json:"total_protein"`
	TotalFat      float64   `json:"total_fat"`
	TotalFiber    float64   `json:"total_fiber"`
	MealsCount    int       `json:"meals_count"`
}

// SameCalendarDay reports whether a and b fall on the same calendar day in
// loc. Days are compared by their {year, month, day} triple, never by 24h
// window arithmetic, so the result matches what a user sees as "today".
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// RecomputeDailySummary folds the given meal entries into the summary for the
// calendar day of date in loc. Entries on other days are ignored. The fold is
// commutative, so the result is independent of entry order, and the function
// is pure: identical inputs always yield identical output. A day with no
// matching entries yields a zero-valued summary, never an error.
func RecomputeDailySummary(entries []MealEntry, date time.Time, loc *time.Location) DailySummary {
	summary := DailySummary{Date: date}
	for _, e := range entries {
		if !SameCalendarDay(e.EatenAt, date, loc) {
			continue
		}
		summary = summary.Add(e)
	}
	return summary
}

// Add returns the summary with the entry's effective nutrition added and the
// meal count incremented. The entry is assumed to belong to the summary's day.
func (s DailySummary) Add(e MealEntry) DailySummary {
	eff := e.Effective()
	s.TotalCalories += eff.Calories
	s.TotalCarbs += eff.Carbs
	s.TotalProtein += eff.Protein
	s.TotalFat += eff.Fat
	s.TotalFiber += eff.Fiber
	s.MealsCount++
	return s
}

// Remove is the exact algebraic inverse of Add: subtracting the same entry
// that was added restores the previous summary bit-for-bit, because both
// operations use the same effective operand values. Prefer
// RecomputeDailySummary over long add/remove chains to avoid float drift.
func (s DailySummary) Remove(e MealEntry) DailySummary {
	eff := e.Effective()
	s.TotalCalories -= eff.Calories
	s.TotalCarbs -= eff.Carbs
	s.TotalProtein -= eff.Protein
	s.TotalFat -= eff.Fat
	s.TotalFiber -= eff.Fiber
	s.MealsCount--
	return s
}

// Totals returns the summary's totals as a NutritionData value.
func (s DailySummary) Totals() NutritionData {
	return NutritionData{
		Calories: s.TotalCalories,
		Carbs:    s.TotalCarbs,
		Protein:  s.TotalProtein,
		Fat:      s.TotalFat,
		Fiber:    s.TotalFiber,
	}
}
