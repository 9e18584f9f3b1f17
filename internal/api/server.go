// Package api exposes the catalog operations over HTTP.
package api

import (
	"net/http"

	"github.com/filmstash/filmstash/internal/config"
	"github.com/filmstash/filmstash/internal/logging"
	"github.com/filmstash/filmstash/internal/resolver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server routes HTTP requests to the query resolver.
type Server struct {
	resolver *resolver.Resolver
	cfg      *config.Config
	log      *logging.Logger
}

// NewServer creates an API server.
func NewServer(res *resolver.Resolver, cfg *config.Config, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	return &Server{resolver: res, cfg: cfg, log: log}
}

// Handler returns the HTTP handler with middleware and API routes.
func (s *Server) Handler() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Mount("/api/v1", s.apiRouter())

	return r
}

func (s *Server) apiRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/health", s.handleHealth)
	r.Get("/search", s.handleSearch)

	// Mutating endpoints sit behind the bearer token when one is configured.
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/files", s.handleUpload)
		r.Post("/delete", s.handleDelete)
	})

	return r
}

// authMiddleware enforces the configured bearer token on mutating routes.
// An empty token disables the check.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.cfg.API.Token
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
