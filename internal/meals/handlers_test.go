package meals

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gustalxpes/foto-nutri/internal/goals"
	"github.com/gustalxpes/foto-nutri/internal/storage/memory"
)

func newTestHandlers() (*Handlers, *http.ServeMux) {
	store := memory.New()
	service := NewService(store, goals.NewService(store))
	handlers := NewHandlers(service)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/meals", handlers.HandleCreateMeal)
	mux.HandleFunc("GET /v1/meals", handlers.HandleListMeals)
	mux.HandleFunc("GET /v1/meals/{id}", handlers.HandleGetMeal)
	mux.HandleFunc("PATCH /v1/meals/{id}", handlers.HandleUpdateMeal)
	mux.HandleFunc("DELETE /v1/meals/{id}", handlers.HandleDeleteMeal)
	mux.HandleFunc("GET /v1/summary/daily", handlers.HandleDailySummary)
	mux.HandleFunc("GET /v1/summary/weekly", handlers.HandleWeeklyReport)
	return handlers, mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

const validMealBody = `{
	"eaten_at": "2024-03-15T12:00:00Z",
	"meal_type": "almoço",
	"servings": 1.5,
	"nutrition": {"calories": 200, "carbs": 30, "protein": 10, "fat": 5, "fiber": 3},
	"foods": ["arroz", "feijão"],
	"confidence": 0.9
}`

func TestMealCRUDOverHTTP(t *testing.T) {
	_, mux := newTestHandlers()

	rec := doJSON(t, mux, http.MethodPost, "/v1/meals", validMealBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created MealDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode created meal: %v", err)
	}

	rec = doJSON(t, mux, http.MethodGet, "/v1/meals/"+created.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodPatch, "/v1/meals/"+created.ID.String(), `{"meal_type":"jantar"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated MealDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode updated meal: %v", err)
	}
	if updated.MealType != "jantar" {
		t.Fatalf("expected meal_type jantar, got %q", updated.MealType)
	}

	rec = doJSON(t, mux, http.MethodDelete, "/v1/meals/"+created.ID.String(), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodGet, "/v1/meals/"+created.ID.String(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCreateMealRejectsInvalidBody(t *testing.T) {
	_, mux := newTestHandlers()

	rec := doJSON(t, mux, http.MethodPost, "/v1/meals", `{"meal_type":"brunch","foods":["x"],"nutrition":{},"confidence":0.5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDailySummaryEndpoint(t *testing.T) {
	_, mux := newTestHandlers()

	if rec := doJSON(t, mux, http.MethodPost, "/v1/meals", validMealBody); rec.Code != http.StatusCreated {
		t.Fatalf("setup failed: %d", rec.Code)
	}

	rec := doJSON(t, mux, http.MethodGet, "/v1/summary/daily?date=2024-03-15", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp DailySummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if resp.Summary.TotalCalories != 300 {
		t.Fatalf("expected 300 kcal (200 x 1.5), got %v", resp.Summary.TotalCalories)
	}
	if resp.Summary.MealsCount != 1 {
		t.Fatalf("expected 1 meal, got %d", resp.Summary.MealsCount)
	}
	if resp.Progress["calories"].Goal != 2000 {
		t.Fatalf("expected default goal 2000, got %v", resp.Progress["calories"].Goal)
	}
}

func TestDailySummaryEmptyDayIsZero(t *testing.T) {
	_, mux := newTestHandlers()

	rec := doJSON(t, mux, http.MethodGet, "/v1/summary/daily?date=2024-03-15", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty day, got %d", rec.Code)
	}

	var resp DailySummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if resp.Summary.TotalCalories != 0 || resp.Summary.MealsCount != 0 {
		t.Fatalf("expected zero summary, got %+v", resp.Summary)
	}
}

func TestSummaryRejectsBadParams(t *testing.T) {
	_, mux := newTestHandlers()

	if rec := doJSON(t, mux, http.MethodGet, "/v1/summary/daily?date=15-03-2024", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", rec.Code)
	}
	if rec := doJSON(t, mux, http.MethodGet, "/v1/summary/daily?tz=Mars%2FOlympus", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad tz, got %d", rec.Code)
	}
}

func TestWeeklySummaryEndpoint(t *testing.T) {
	_, mux := newTestHandlers()

	if rec := doJSON(t, mux, http.MethodPost, "/v1/meals", validMealBody); rec.Code != http.StatusCreated {
		t.Fatalf("setup failed: %d", rec.Code)
	}

	rec := doJSON(t, mux, http.MethodGet, "/v1/summary/weekly?date=2024-03-15", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp WeeklyReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if len(resp.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(resp.Days))
	}
	// March 15 2024 is a Friday, a default diet day.
	if resp.Stats.TotalCalories != 300 {
		t.Fatalf("expected 300 kcal total, got %v", resp.Stats.TotalCalories)
	}
	if resp.Stats.WeeklyTarget != 10000 {
		t.Fatalf("expected target 10000, got %v", resp.Stats.WeeklyTarget)
	}
}

func TestListMealsWithRange(t *testing.T) {
	_, mux := newTestHandlers()

	if rec := doJSON(t, mux, http.MethodPost, "/v1/meals", validMealBody); rec.Code != http.StatusCreated {
		t.Fatalf("setup failed: %d", rec.Code)
	}

	from := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	to := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)

	rec := doJSON(t, mux, http.MethodGet, "/v1/meals?from="+from+"&to="+to, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ListMealsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(resp.Meals) != 1 {
		t.Fatalf("expected 1 meal in range, got %d", len(resp.Meals))
	}

	rec = doJSON(t, mux, http.MethodGet, "/v1/meals?from="+to, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp = ListMealsResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(resp.Meals) != 0 {
		t.Fatalf("expected no meals after range, got %d", len(resp.Meals))
	}
}
