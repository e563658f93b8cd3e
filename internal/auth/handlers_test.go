package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gustalxpes/foto-nutri/internal/config"
	"github.com/gustalxpes/foto-nutri/internal/userctx"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:           "local",
		AuthMode:      "dev",
		AuthRequired:  true,
		JWTSecret:     "test_secret",
		JWTIssuer:     "foto-nutri",
		JWTTTLMinutes: 60,
	}
}

func TestHandleDevAuth(t *testing.T) {
	service := NewService(testConfig())
	handlers := NewHandlers(service)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/dev", nil)
	rec := httptest.NewRecorder()

	handlers.HandleDevAuth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp DevAuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected non-empty access_token")
	}
	if resp.TokenType != "Bearer" {
		t.Fatalf("expected token_type=Bearer, got %q", resp.TokenType)
	}

	sub, err := service.VerifyJWT(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if sub != "dev-user" {
		t.Fatalf("expected sub=dev-user, got %q", sub)
	}
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	issuer := NewService(testConfig())

	otherCfg := testConfig()
	otherCfg.JWTSecret = "different_secret"
	verifier := NewService(otherCfg)

	token, err := issuer.IssueJWT("user-1")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := verifier.VerifyJWT(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestRequireAuth(t *testing.T) {
	cfg := testConfig()
	service := NewService(cfg)
	mw := NewMiddleware(cfg, service)

	var gotUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = userctx.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := mw.RequireAuth(inner)

	t.Run("no token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/meals", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid token passes and sets user", func(t *testing.T) {
		token, err := service.IssueJWT("user-42")
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/meals", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotUserID != "user-42" {
			t.Fatalf("expected user-42 in context, got %q", gotUserID)
		}
	})

	t.Run("public path bypasses auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for public path, got %d", rec.Code)
		}
	})
}
