// Package api provides the HTTP API server and handlers for the booq application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/booqapp/booq-server/internal/search"
	"github.com/booqapp/booq-server/internal/service"
	"github.com/booqapp/booq-server/internal/sse"
	"github.com/booqapp/booq-server/internal/store"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Library   *service.LibraryService
	Shelf     *service.ShelfService
	Profile   *service.ProfileService
	Layout    *service.LayoutService
	Stats     *service.StatsService
	Activity  *service.ActivityService
	Lookup    *service.LookupService
	Recommend *service.RecommendService
	Search    *search.Service
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *store.Store
	services   *Services
	sseManager *sse.Manager
	sseHandler *sse.Handler
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, sseManager *sse.Manager, sseHandler *sse.Handler, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	humaConfig := huma.DefaultConfig("Booq API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:      st,
		services:   services,
		sseManager: sseManager,
		sseHandler: sseHandler,
		router:     router,
		api:        humaAPI,
		logger:     logger,
	}

	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerSearchRoutes()
	s.registerShelfRoutes()
	s.registerProfileRoutes()
	s.registerLayoutRoutes()
	s.registerStatsRoutes()
	s.registerActivityRoutes()
	s.registerLookupRoutes()

	// Streaming endpoints bypass huma: SSE and the chat stream write raw
	// event frames and flush incrementally.
	if s.sseHandler != nil {
		router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
	}
	router.Post("/api/v1/recommend/chat", s.handleRecommendChat)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
