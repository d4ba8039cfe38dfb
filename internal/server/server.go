// Package server exposes the browse views as a JSON API. It holds the
// upstream credential so front ends never see it.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marco/movieDeck/internal/browse"
)

// Config holds HTTP-layer settings.
type Config struct {
	AllowedOrigins    []string
	RequestsPerMinute int // per client IP, 0 disables limiting
	RequestTimeout    time.Duration
	Logger            *slog.Logger
}

// Server routes API requests to the browse service.
type Server struct {
	svc    *browse.Service
	cfg    Config
	logger *slog.Logger
}

// New creates a Server.
func New(svc *browse.Service, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	return &Server{svc: svc, cfg: cfg, logger: cfg.Logger}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         86400,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.cfg.RequestsPerMinute > 0 {
			r.Use(httprate.LimitByIP(s.cfg.RequestsPerMinute, time.Minute))
		}
		r.Use(chimiddleware.Timeout(s.cfg.RequestTimeout))

		r.Get("/genres", s.handleGenres)
		r.Get("/search", s.handleSearch)
		r.Get("/trending/{kind}", s.handleTrending)

		r.Route("/{kind}", func(r chi.Router) {
			r.Get("/category/{category}", s.handleCategory)
			r.Get("/genre/{genreID}", s.handleGenre)
			r.Get("/{id}/hero", s.handleHero)
			r.Get("/{id}/credits", s.handleCredits)
			r.Get("/{id}/metadata", s.handleMetadata)
			r.Get("/{id}/recommendations", s.handleRecommendations)
		})
	})

	return r
}

// requestLogger logs one line per request with the chi request id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"request_id", chimiddleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
