package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/contentkit/internal/config"
	"github.com/dgallion1/contentkit/internal/content"
	"github.com/dgallion1/contentkit/internal/metrics"
	"github.com/dgallion1/contentkit/internal/pipeline"
)

// Server is the HTTP API server for contentkit.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	store        *content.Store
	metrics      *metrics.PrometheusRecorder
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. store and rec may be nil.
func NewServer(orch *pipeline.Orchestrator, store *content.Store, rec *metrics.PrometheusRecorder, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		store:        store,
		metrics:      rec,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Get("/api/posts", s.handleListPosts)
	r.Get("/api/posts/{slug}", s.handleGetPost)
	r.Get("/api/unicorns/{id}", s.handleGetUnicorn)
	r.Post("/api/iframe-placeholder", s.handleIframePlaceholder)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/render", s.handleRender)
		r.Get("/api/render/{jobID}/status", s.handleRenderStatus)
		r.Get("/api/render/{jobID}", s.handleRenderResult)
		r.Post("/api/render/preview", s.handleRenderPreview)
		r.Post("/api/content/reload", s.handleContentReload)
		r.Get("/api/stats/render", s.handleRenderStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"queue_depth": s.orchestrator.QueueDepth(),
		"content":     s.store != nil,
	})
}
