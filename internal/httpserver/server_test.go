package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gustalxpes/foto-nutri/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Port:              8080,
		AuthMode:          "none",
		AIMode:            "mock",
		UploadMaxMB:       10,
		UploadAllowedMime: "image/jpeg,image/png",
	}
	srv := New(cfg)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", resp["status"])
	}
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestMealLoggingFlow(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"meal_type": "almoço",
		"nutrition": {"calories": 520, "carbs": 60, "protein": 30, "fat": 15, "fiber": 8},
		"foods": ["arroz", "feijão", "frango grelhado"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/meals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 on create, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/summary/daily", nil)
	w = httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on daily summary, got %d", w.Code)
	}

	var summary struct {
		Summary struct {
			TotalCalories float64 `json:"total_calories"`
			MealsCount    int     `json:"meals_count"`
		} `json:"summary"`
	}
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if summary.Summary.TotalCalories != 520 || summary.Summary.MealsCount != 1 {
		t.Errorf("unexpected summary: %+v", summary.Summary)
	}
}

func TestAnalysisMockMode(t *testing.T) {
	srv := newTestServer(t)

	body := `{"imageBase64": "aGVsbG8="}`
	req := httptest.NewRequest(http.MethodPost, "/v1/analysis", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on analysis, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		Foods     []string `json:"foods"`
		Nutrition struct {
			Calories float64 `json:"calories"`
		} `json:"nutrition"`
	}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode analysis: %v", err)
	}
	if len(result.Foods) == 0 || result.Nutrition.Calories <= 0 {
		t.Errorf("unexpected analysis result: %+v", result)
	}
}
