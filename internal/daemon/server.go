package daemon

import (
	"net/http"
	"sync"

	"framethumb/internal/capture"
	"framethumb/internal/config"
	"framethumb/internal/extract"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Server stores all in-memory state and exposes HTTP handlers.
type Server struct {
	mu         sync.RWMutex
	settings   Settings
	thumbnails map[string]*Thumbnail
	jobs       map[string]*Job
	opener     capture.Opener
	origins    []string
	logger     *zap.Logger
}

func NewServer(cfg *config.Config, opener capture.Opener, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		settings: Settings{
			OutputDir:   cfg.OutputDir,
			JPEGQuality: cfg.JPEGQuality,
			DefaultSize: [2]int{cfg.DefaultWidth, cfg.DefaultHeight},
			Backend:     capture.Backend,
		},
		thumbnails: make(map[string]*Thumbnail),
		jobs:       make(map[string]*Job),
		opener:     opener,
		origins:    cfg.AllowedOrigins,
		logger:     logger,
	}
}

// Routes returns the HTTP handler for all endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequestMiddleware)

	// CORS to allow local client
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger docs
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Handle("/metrics", promhttp.Handler())

	// Config and health
	r.Get("/health", s.handleHealth)
	r.MethodFunc(http.MethodGet, "/config", s.handleConfig)
	r.MethodFunc(http.MethodPut, "/config", s.handleConfig)

	// Videos
	r.Post("/videos/metadata", s.handleMetadata)
	r.Post("/videos/dump", s.handleDump)

	// Thumbnails
	r.MethodFunc(http.MethodGet, "/thumbnails", s.handleThumbnails)
	r.MethodFunc(http.MethodPost, "/thumbnails", s.handleThumbnails)
	r.Route("/thumbnails/{thumbnailID}", func(r chi.Router) {
		r.Get("/", s.handleGetThumbnail)
		r.Get("/file", s.handleThumbnailFile)
	})

	// Jobs
	r.Get("/jobs", s.handleJobs)
	r.Get("/jobs/{jobID}", s.handleGetJob)

	return r
}

// extractor builds an extractor from the current settings. The daemon is
// headless, so it has no previewer.
func (s *Server) extractor() *extract.Extractor {
	return s.extractorWith(nil)
}

func (s *Server) extractorWith(onProgress func(decoded, saved int)) *extract.Extractor {
	s.mu.RLock()
	cfg := extract.Config{JPEGQuality: s.settings.JPEGQuality, OnProgress: onProgress}
	s.mu.RUnlock()
	return extract.New(s.opener, nil, cfg, s.logger)
}
