// Package api provides the HTTP API server and handlers the dashboard talks to.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/inkwellapp/inkwell-server/internal/cache"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/http/response"
	"github.com/inkwellapp/inkwell-server/internal/prefs"
	"github.com/inkwellapp/inkwell-server/internal/service"
	"github.com/inkwellapp/inkwell-server/internal/sse"
	"github.com/inkwellapp/inkwell-server/internal/syncstore"
)

// Version is reported by /health and the admin surface.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	books          *syncstore.Store[domain.Book]
	collections    *syncstore.Store[domain.Collection]
	investigations *syncstore.Store[domain.Investigation]

	bookService          *service.BookService
	collectionService    *service.CollectionService
	investigationService *service.InvestigationService

	prefs      *prefs.Store
	cache      *cache.Cache
	sseHandler *sse.Handler
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	books *syncstore.Store[domain.Book],
	collections *syncstore.Store[domain.Collection],
	investigations *syncstore.Store[domain.Investigation],
	bookService *service.BookService,
	collectionService *service.CollectionService,
	investigationService *service.InvestigationService,
	prefStore *prefs.Store,
	c *cache.Cache,
	sseHandler *sse.Handler,
	logger *slog.Logger,
) *Server {
	s := &Server{
		books:                books,
		collections:          collections,
		investigations:       investigations,
		bookService:          bookService,
		collectionService:    collectionService,
		investigationService: investigationService,
		prefs:                prefStore,
		cache:                c,
		sseHandler:           sseHandler,
		router:               chi.NewRouter(),
		logger:               logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	RegisterErrorHandler()
	s.api = humachi.New(s.router, huma.DefaultConfig("Inkwell Companion Admin", Version))
	s.registerAdminRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		// The dashboard runs from a local origin that varies per install.
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", s.handleListBooks)
			r.Post("/", s.handleCreateBook)
			r.Post("/retry", s.handleRetryBooks)
			r.Get("/{id}", s.handleGetBook)
			r.Patch("/{id}", s.handlePatchBook)
			r.Delete("/{id}", s.handleDeleteBook)
			r.Post("/{id}/notes", s.handleAddNote)
			r.Delete("/{id}/notes/{noteID}", s.handleRemoveNote)
		})

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", s.handleListCollections)
			r.Post("/", s.handleCreateCollection)
			r.Post("/retry", s.handleRetryCollections)
			r.Get("/{id}", s.handleGetCollection)
			r.Patch("/{id}", s.handlePatchCollection)
			r.Delete("/{id}", s.handleDeleteCollection)
			r.Put("/{id}/books/{bookID}", s.handleAddBookToCollection)
			r.Delete("/{id}/books/{bookID}", s.handleRemoveBookFromCollection)
		})

		r.Route("/investigations", func(r chi.Router) {
			r.Get("/", s.handleListInvestigations)
			r.Post("/", s.handleCreateInvestigation)
			r.Post("/retry", s.handleRetryInvestigations)
			r.Get("/{id}", s.handleGetInvestigation)
			r.Patch("/{id}", s.handlePatchInvestigation)
			r.Delete("/{id}", s.handleDeleteInvestigation)
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/{screen}/view", s.handleGetViewPreference)
			r.Put("/{screen}/view", s.handleSetViewPreference)
		})

		r.Get("/events/stream", s.sseHandler.ServeHTTP)
	})
}

// handleHealthCheck returns server health status plus which data tier each
// store is currently serving from.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]any{
		"status":  "healthy",
		"version": Version,
		"sources": map[string]string{
			"books":          string(s.books.Source()),
			"collections":    string(s.collections.Source()),
			"investigations": string(s.investigations.Source()),
		},
	}, s.logger)
}
