package meals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/userctx"
)

type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleCreateMeal handles POST /v1/meals
func (h *Handlers) HandleCreateMeal(w http.ResponseWriter, r *http.Request) {
	var req CreateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	dto, err := h.service.Create(r.Context(), requestUserID(r), &req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto)
}

// HandleListMeals handles GET /v1/meals?from=&to=&limit=
func (h *Handlers) HandleListMeals(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "from must be RFC3339")
			return
		}
		from = &t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "to must be RFC3339")
			return
		}
		to = &t
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	dtos, err := h.service.List(r.Context(), requestUserID(r), from, to, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ListMealsResponse{Meals: dtos})
}

// HandleGetMeal handles GET /v1/meals/{id}
func (h *Handlers) HandleGetMeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	dto, err := h.service.Get(r.Context(), requestUserID(r), id)
	if err != nil {
		if errors.Is(err, ErrMealNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Meal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// HandleUpdateMeal handles PATCH /v1/meals/{id}
func (h *Handlers) HandleUpdateMeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	dto, err := h.service.Update(r.Context(), requestUserID(r), id, &req)
	if err != nil {
		if errors.Is(err, ErrMealNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Meal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// HandleDeleteMeal handles DELETE /v1/meals/{id}
func (h *Handlers) HandleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), requestUserID(r), id); err != nil {
		if errors.Is(err, ErrMealNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Meal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDailySummary handles GET /v1/summary/daily?date=YYYY-MM-DD&tz=IANA
func (h *Handlers) HandleDailySummary(w http.ResponseWriter, r *http.Request) {
	loc, ok := queryLocation(w, r)
	if !ok {
		return
	}
	date, ok := queryDate(w, r, loc)
	if !ok {
		return
	}

	resp, err := h.service.DailySummary(r.Context(), requestUserID(r), date, loc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleWeeklyReport handles GET /v1/summary/weekly?date=YYYY-MM-DD&tz=IANA
func (h *Handlers) HandleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	loc, ok := queryLocation(w, r)
	if !ok {
		return
	}
	date, ok := queryDate(w, r, loc)
	if !ok {
		return
	}

	resp, err := h.service.WeeklyReport(r.Context(), requestUserID(r), date, loc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// queryLocation resolves the tz query param; UTC when absent.
func queryLocation(w http.ResponseWriter, r *http.Request) (*time.Location, bool) {
	raw := r.URL.Query().Get("tz")
	if raw == "" {
		return time.UTC, true
	}
	loc, err := time.LoadLocation(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "tz must be a valid IANA timezone name")
		return nil, false
	}
	return loc, true
}

// queryDate resolves the date query param in loc; today when absent.
func queryDate(w http.ResponseWriter, r *http.Request, loc *time.Location) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now().In(loc), true
	}
	date, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func requestUserID(r *http.Request) string {
	if userID, ok := userctx.GetUserID(r.Context()); ok {
		return userID
	}
	return "default"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Error: errorDetail{Code: code, Message: message},
	})
}
