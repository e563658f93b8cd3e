package analysis

import "errors"

// Sentinel errors for the upstream failure taxonomy. Handlers map these to
// HTTP statuses; providers and the parser never wrap them ambiguously.
var (
	ErrMissingImage       = errors.New("missing image payload")
	ErrNotConfigured      = errors.New("analysis provider is not configured")
	ErrRateLimited        = errors.New("upstream rate limit exceeded")
	ErrQuotaExceeded      = errors.New("upstream credits exhausted")
	ErrUpstream           = errors.New("upstream request failed")
	ErrEmptyResponse      = errors.New("empty model response")
	ErrMalformedResponse  = errors.New("model response is not valid JSON")
	ErrIncompleteResponse = errors.New("model response is missing required fields")
)

// NutritionFacts are whole-plate estimates, not per serving.
type NutritionFacts struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// FoodDetail is one identified food with its estimated weight.
type FoodDetail struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
}

// Result is the validated analysis of one meal photo.
type Result struct {
	Foods       []string       `json:"foods"`
	FoodDetails []FoodDetail   `json:"food_details"`
	Nutrition   NutritionFacts `json:"nutrition"`
	Confidence  float64        `json:"confidence"`
}

// AnalyzeRequest carries the single accepted input: a base64 image payload
// (data URL or raw base64).
type AnalyzeRequest struct {
	ImageBase64 string `json:"imageBase64"`
}
