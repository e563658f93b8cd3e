package nutrition

// NutritionData holds the macro/calorie values of one serving of food.
// Calories are kcal, everything else is grams. Values are never mutated
// in place: Scale/Add/Sub return new values.
type NutritionData struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Scale multiplies every component by the serving count and returns the result.
func (n NutritionData) Scale(servings float64) NutritionData {
	return NutritionData{
		Calories: n.Calories * servings,
		Carbs:    n.Carbs * servings,
		Protein:  n.Protein * servings,
		Fat:      n.Fat * servings,
		Fiber:    n.Fiber * servings,
	}
}

// Add returns the componentwise sum of n and other.
func (n NutritionData) Add(other NutritionData) NutritionData {
	return NutritionData{
		Calories: n.Calories + other.Calories,
		Carbs:    n.Carbs + other.Carbs,
		Protein:  n.Protein + other.Protein,
		Fat:      n.Fat + other.Fat,
		Fiber:    n.Fiber + other.Fiber,
	}
}

// Sub returns the componentwise difference of n and other.
func (n NutritionData) Sub(other NutritionData) NutritionData {
	return NutritionData{
		Calories: n.Calories - other.Calories,
		Carbs:    n.Carbs - other.Carbs,
		Protein:  n.Protein - other.Protein,
		Fat:      n.Fat - other.Fat,
		Fiber:    n.Fiber - other.Fiber,
	}
}

// Goals holds one user's daily nutrition targets. All values are expected
// to be positive; callers validate before handing goals to the engine.
type Goals struct {
	DailyCalories float64 `json:"daily_calories"`
	DailyCarbs    float64 `json:"daily_carbs"`
	DailyProtein  float64 `json:"daily_protein"`
	DailyFat      float64 `json:"daily_fat"`
	DailyFiber    float64 `json:"daily_fiber"`
}

// ProgressRatio returns current/goal clamped to 1.0, suitable for a bounded
// visual indicator. goal must be positive (caller precondition).
func ProgressRatio(current, goal float64) float64 {
	ratio := current / goal
	if ratio > 1.0 {
		return 1.0
	}
	return ratio
}

// GoalRatio returns the unclamped current/goal ratio. Clamping destroys the
// "how far over target" signal, so both forms are exposed independently.
// goal must be positive (caller precondition).
func GoalRatio(current, goal float64) float64 {
	return current / goal
}
