package reports

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

func newTestHandlers(t *testing.T) (*http.ServeMux, *memory.MemoryStorage) {
	t.Helper()

	store := memory.New()
	service := NewService(store, store, goals.NewService(store), nil, 900)
	handlers := NewHandlers(service)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/reports", handlers.HandleCreate)
	mux.HandleFunc("GET /v1/reports", handlers.HandleList)
	mux.HandleFunc("GET /v1/reports/{id}/download", handlers.HandleDownload)
	mux.HandleFunc("DELETE /v1/reports/{id}", handlers.HandleDelete)

	return mux, store
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateListDownloadDeleteReport(t *testing.T) {
	mux, store := newTestHandlers(t)

	seedMeal(t, store, "default", time.Date(2026, 8, 12, 12, 0, 0, 0, time.UTC), 450)

	rec := doJSON(t, mux, http.MethodPost, "/v1/reports", `{"format":"csv","date":"2026-08-12"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var dto ReportDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if dto.Format != FormatCSV || dto.Status != StatusReady {
		t.Errorf("unexpected report: %+v", dto)
	}
	if dto.From != "2026-08-06" || dto.To != "2026-08-12" {
		t.Errorf("unexpected period: %s — %s", dto.From, dto.To)
	}
	if dto.SizeBytes == 0 {
		t.Errorf("expected non-zero size")
	}

	rec = doJSON(t, mux, http.MethodGet, "/v1/reports", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on list, got %d", rec.Code)
	}
	var list ReportsResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list.Reports) != 1 || list.Reports[0].ID != dto.ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	rec = doJSON(t, mux, http.MethodGet, dto.DownloadURL, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on download, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("expected text/csv, got %s", got)
	}
	if !strings.Contains(rec.Body.String(), "2026-08-12,450") {
		t.Errorf("expected day row in CSV, got:\n%s", rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodDelete, "/v1/reports/"+dto.ID.String(), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodGet, dto.DownloadURL, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCreateReportValidation(t *testing.T) {
	mux, _ := newTestHandlers(t)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"unknown format", `{"format":"xlsx"}`, "invalid_format"},
		{"bad date", `{"format":"csv","date":"12/08/2026"}`, "invalid_date"},
		{"bad timezone", `{"format":"csv","tz":"Mars/Olympus"}`, "invalid_timezone"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, mux, http.MethodPost, "/v1/reports", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantCode) {
				t.Errorf("expected error code %s, got %s", tc.wantCode, rec.Body.String())
			}
		})
	}
}

func TestDownloadUnknownReport(t *testing.T) {
	mux, _ := newTestHandlers(t)

	rec := doJSON(t, mux, http.MethodGet, "/v1/reports/00000000-0000-0000-0000-000000000001/download", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
