// Package api exposes the recommendation pipeline over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"moviechain/internal/common/logger"
	recommendmovies "moviechain/internal/workers/recommendation/recommend-movies"
)

// Recommender runs the pipeline for a raw request body.
type Recommender interface {
	Execute(ctx context.Context, input *recommendmovies.Input) (*recommendmovies.Output, error)
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	// Checks run on GET /ready, keyed by dependency name.
	Checks map[string]ReadinessCheck
}

type Server struct {
	recommender Recommender
	opts        Options
	logger      logger.Logger
}

func NewServer(recommender Recommender, opts Options, log logger.Logger) *Server {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	return &Server{
		recommender: recommender,
		opts:        opts,
		logger:      log.WithFields(map[string]interface{}{"component": "http"}),
	}
}

// Router builds the chi router with every route and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(Recoverer(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Post("/recommend", s.Recommend)
	r.Get("/health", s.Health)
	r.Get("/ready", s.Ready)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

var _ Recommender = (*recommendmovies.Handler)(nil)

// ErrorResponse is the body of every failed /recommend call.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Code    string `json:"code"`
}
