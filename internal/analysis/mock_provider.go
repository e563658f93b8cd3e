package analysis

import "context"

// MockProvider returns a deterministic plate without calling any upstream.
// Used in local development and tests.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Analyze(ctx context.Context, imageBase64 string) (*Result, error) {
	_ = ctx

	if imageBase64 == "" {
		return nil, ErrMissingImage
	}

	return &Result{
		Foods: []string{"arroz", "feijão", "frango grelhado", "salada"},
		FoodDetails: []FoodDetail{
			{Name: "arroz", Grams: 150},
			{Name: "feijão", Grams: 100},
			{Name: "frango grelhado", Grams: 120},
			{Name: "salada", Grams: 80},
		},
		Nutrition: NutritionFacts{
			Calories: 520,
			Carbs:    62,
			Protein:  38,
			Fat:      12,
			Fiber:    9,
		},
		Confidence: 0.92,
	}, nil
}
