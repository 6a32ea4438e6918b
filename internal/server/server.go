package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// defaultUserID scopes all data until multi-user auth exists. The event log
// and plan store are already keyed by user.
const defaultUserID = 1

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Write side (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/events", s.handleAppendEvent)
		r.Post("/api/v1/events/import", s.handleImportEvents)
		r.Put("/api/v1/plan", s.handleSetPlan)
	})

	// Read side
	s.router.Get("/api/v1/events", s.handleListEvents)
	s.router.Get("/api/v1/progress", s.handleProgress)
	s.router.Get("/api/v1/plan", s.handleMergedPlan)
	s.router.Get("/api/v1/workouts/current", s.handleCurrentWorkout)
}

// SetMCP mounts the MCP streamable-HTTP endpoint.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}
