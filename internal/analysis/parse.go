package analysis

import (
	"encoding/json"
	"strings"
)

// rawResult mirrors the model's JSON loosely so required-field checks can
// distinguish "absent" from "zero".
type rawResult struct {
	Foods       []string        `json:"foods"`
	FoodDetails json.RawMessage `json:"food_details"`
	Nutrition   *NutritionFacts `json:"nutrition"`
	Confidence  *float64        `json:"confidence"`
}

// ParseModelOutput validates the raw text returned by the vision model and
// produces a fully-populated Result. Validation is all-or-nothing: on any
// failure no partially-defaulted structure is returned. The only defaulting
// applied is synthesizing food_details (grams=100 per food) after the
// required fields have been confirmed.
func ParseModelOutput(content string) (*Result, error) {
	jsonContent := strings.TrimSpace(content)
	if jsonContent == "" {
		return nil, ErrEmptyResponse
	}

	jsonContent = stripCodeFences(jsonContent)

	var raw rawResult
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		return nil, ErrMalformedResponse
	}

	if len(raw.Foods) == 0 || raw.Nutrition == nil || raw.Confidence == nil {
		return nil, ErrIncompleteResponse
	}

	result := &Result{
		Foods:      raw.Foods,
		Nutrition:  *raw.Nutrition,
		Confidence: *raw.Confidence,
	}

	var details []FoodDetail
	if len(raw.FoodDetails) > 0 && json.Unmarshal(raw.FoodDetails, &details) == nil && details != nil {
		result.FoodDetails = details
	} else {
		// model omitted food_details, synthesize one entry per food
		result.FoodDetails = make([]FoodDetail, 0, len(raw.Foods))
		for _, food := range raw.Foods {
			result.FoodDetails = append(result.FoodDetails, FoodDetail{Name: food, Grams: 100})
		}
	}

	return result, nil
}

// stripCodeFences removes enclosing markdown code-fence markup, with or
// without a language tag.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
