package images

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gustalxpes/foto-nutri/internal/storage/memory"
)

func newTestHandlers(t *testing.T) (*Handlers, *http.ServeMux) {
	t.Helper()

	store := memory.New()
	service := NewService(store, nil, 10, "image/jpeg,image/png,image/webp,image/heic", 900)
	handlers := NewHandlers(service)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/images", handlers.HandleUpload)
	mux.HandleFunc("GET /v1/images/{id}/download", handlers.HandleDownload)
	mux.HandleFunc("DELETE /v1/images/{id}", handlers.HandleDelete)

	return handlers, mux
}

func multipartBody(t *testing.T, fieldName, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, fileName))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func TestUploadAndDownload(t *testing.T) {
	_, mux := newTestHandlers(t)

	payload := []byte("fake-jpeg-bytes")
	body, contentType := multipartBody(t, "file", "meal.jpg", "image/jpeg", payload)

	req := httptest.NewRequest(http.MethodPost, "/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var dto ImageDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if dto.ContentType != "image/jpeg" {
		t.Errorf("expected content type image/jpeg, got %s", dto.ContentType)
	}
	if dto.SizeBytes != int64(len(payload)) {
		t.Errorf("expected size %d, got %d", len(payload), dto.SizeBytes)
	}
	if !strings.HasSuffix(dto.URL, "/download") {
		t.Errorf("unexpected download URL: %s", dto.URL)
	}

	req = httptest.NewRequest(http.MethodGet, dto.URL, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on download, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Errorf("expected Content-Type image/jpeg, got %s", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), payload) {
		t.Errorf("downloaded bytes differ from uploaded bytes")
	}
}

func TestUploadRejectsUnsupportedMime(t *testing.T) {
	_, mux := newTestHandlers(t)

	body, contentType := multipartBody(t, "file", "notes.txt", "text/plain", []byte("hello"))

	req := httptest.NewRequest(http.MethodPost, "/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unsupported_mime") {
		t.Errorf("expected unsupported_mime error code, got %s", rec.Body.String())
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	store := memory.New()
	// 0 MB cap so any non-empty payload is too large
	service := NewService(store, nil, 0, "image/jpeg", 900)
	handlers := NewHandlers(service)

	body, contentType := multipartBody(t, "file", "meal.jpg", "image/jpeg", []byte("x"))

	req := httptest.NewRequest(http.MethodPost, "/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handlers.HandleUpload(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestUploadRequiresFileField(t *testing.T) {
	_, mux := newTestHandlers(t)

	body, contentType := multipartBody(t, "photo", "meal.jpg", "image/jpeg", []byte("data"))

	req := httptest.NewRequest(http.MethodPost, "/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteImage(t *testing.T) {
	_, mux := newTestHandlers(t)

	body, contentType := multipartBody(t, "file", "meal.png", "image/png", []byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var dto ImageDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/images/"+dto.ID.String(), nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, dto.URL, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestDownloadUnknownImage(t *testing.T) {
	_, mux := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/images/00000000-0000-0000-0000-000000000001/download", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
