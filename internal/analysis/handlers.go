package analysis

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
)

type Handlers struct {
	provider Provider
}

func NewHandlers(provider Provider) *Handlers {
	return &Handlers{provider: provider}
}

// HandleAnalyze handles POST /v1/analysis
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if strings.TrimSpace(req.ImageBase64) == "" {
		writeError(w, http.StatusBadRequest, "missing_image", "imageBase64 is required")
		return
	}

	result, err := h.provider.Analyze(r.Context(), req.ImageBase64)
	if err != nil {
		status, code := classifyError(err)
		if status >= 500 {
			log.Printf("WARN: meal analysis failed: %v", err)
		}
		writeError(w, status, code, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// classifyError maps the provider failure taxonomy to HTTP.
func classifyError(err error) (status int, code string) {
	switch {
	case errors.Is(err, ErrMissingImage):
		return http.StatusBadRequest, "missing_image"
	case errors.Is(err, ErrNotConfigured):
		return http.StatusInternalServerError, "not_configured"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusPaymentRequired, "quota_exceeded"
	case errors.Is(err, ErrEmptyResponse):
		return http.StatusBadGateway, "empty_response"
	case errors.Is(err, ErrMalformedResponse):
		return http.StatusBadGateway, "malformed_response"
	case errors.Is(err, ErrIncompleteResponse):
		return http.StatusBadGateway, "incomplete_response"
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway, "upstream_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	})
}
