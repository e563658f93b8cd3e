package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gustalxpes/foto-nutri/internal/analysis"
	"github.com/gustalxpes/foto-nutri/internal/auth"
	"github.com/gustalxpes/foto-nutri/internal/blob"
	"github.com/gustalxpes/foto-nutri/internal/config"
	"github.com/gustalxpes/foto-nutri/internal/goals"
	"github.com/gustalxpes/foto-nutri/internal/images"
	"github.com/gustalxpes/foto-nutri/internal/meals"
	"github.com/gustalxpes/foto-nutri/internal/reports"
	"github.com/gustalxpes/foto-nutri/internal/storage"
	"github.com/gustalxpes/foto-nutri/internal/storage/memory"
	"github.com/gustalxpes/foto-nutri/internal/storage/postgres"
)

// Server wires storage, the blob store and all feature handlers behind one mux.
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Storage
	authMiddleware *auth.Middleware
}

// New creates a new HTTP server
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	s.initStorage()
	s.routes()
	return s
}

// initStorage picks the backend: Postgres when DATABASE_URL is set, otherwise
// in-memory.
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("INFO storage: using in-memory backend")
		s.storage = memory.New()
		return
	}

	log.Println("INFO storage: connecting to PostgreSQL...")
	pgStorage, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("WARN storage: PostgreSQL connection failed: %v", err)
		log.Println("WARN storage: falling back to in-memory backend")
		s.storage = memory.New()
		return
	}

	log.Println("INFO storage: PostgreSQL connected")
	s.storage = pgStorage
}

// routes registers all endpoints
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Meal analysis API
	analysisHandler := analysis.NewHandlers(analysis.NewProvider(s.config))

	// POST /v1/analysis - analyze a meal photo
	s.mux.HandleFunc("POST /v1/analysis", analysisHandler.HandleAnalyze)

	// Goals API
	goalsService := goals.NewService(s.storage)
	goalsHandler := goals.NewHandlers(goalsService)

	s.mux.HandleFunc("GET /v1/goals", goalsHandler.HandleGetGoals)
	s.mux.HandleFunc("PUT /v1/goals", goalsHandler.HandleUpdateGoals)

	// Meals API
	mealsService := meals.NewService(s.storage, goalsService)
	mealsHandler := meals.NewHandlers(mealsService)

	s.mux.HandleFunc("POST /v1/meals", mealsHandler.HandleCreateMeal)
	s.mux.HandleFunc("GET /v1/meals", mealsHandler.HandleListMeals)
	s.mux.HandleFunc("GET /v1/meals/{id}", mealsHandler.HandleGetMeal)
	s.mux.HandleFunc("PATCH /v1/meals/{id}", mealsHandler.HandleUpdateMeal)
	s.mux.HandleFunc("DELETE /v1/meals/{id}", mealsHandler.HandleDeleteMeal)

	// GET /v1/summary/daily - totals and goal progress for one calendar day
	s.mux.HandleFunc("GET /v1/summary/daily", mealsHandler.HandleDailySummary)

	// GET /v1/summary/weekly - 7-day report over diet days
	s.mux.HandleFunc("GET /v1/summary/weekly", mealsHandler.HandleWeeklyReport)

	// Blob store shared by images and reports
	blobStore := s.initBlobStore()

	// Images API (meal photos)
	imagesService := images.NewService(
		s.storage,
		blobStore,
		s.config.UploadMaxMB,
		s.config.UploadAllowedMime,
		s.config.Blob.S3.PresignTTLSeconds,
	)
	imagesHandler := images.NewHandlers(imagesService)

	s.mux.HandleFunc("POST /v1/images", imagesHandler.HandleUpload)
	s.mux.HandleFunc("GET /v1/images/{id}/download", imagesHandler.HandleDownload)
	s.mux.HandleFunc("DELETE /v1/images/{id}", imagesHandler.HandleDelete)

	// Reports API
	reportsService := reports.NewService(
		s.storage,
		s.storage,
		goalsService,
		blobStore,
		s.config.Blob.S3.PresignTTLSeconds,
	)
	reportsHandler := reports.NewHandlers(reportsService)

	s.mux.HandleFunc("POST /v1/reports", reportsHandler.HandleCreate)
	s.mux.HandleFunc("GET /v1/reports", reportsHandler.HandleList)
	s.mux.HandleFunc("GET /v1/reports/{id}/download", reportsHandler.HandleDownload)
	s.mux.HandleFunc("DELETE /v1/reports/{id}", reportsHandler.HandleDelete)
}

// initBlobStore builds the S3 store, or returns nil for local blob mode.
func (s *Server) initBlobStore() blob.Store {
	store, mode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Printf("WARN blob: init failed: %v", err)
		log.Println("WARN blob: falling back to local mode")
		return nil
	}
	log.Printf("INFO blob: mode=%s", mode)
	return store
}

// handleHealthz reports server status
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Start runs the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	// Build middleware chain (outermost first): CORS → Rate Limit → Auth → Router
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)

	log.Printf("Server listening on http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)

	return http.ListenAndServe(addr, handler)
}

// Close releases storage resources
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
