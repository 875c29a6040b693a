// Package server exposes the dashboard core as a JSON HTTP API for the
// presentation layer. All endpoints are read-only apart from the explicit
// cache-clear hook.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/littermap-org/littermap/dataset"
)

// Server serves dashboard output over HTTP.
type Server struct {
	cache *dataset.Cache
	log   *zap.Logger
	topN  int
}

// New creates a Server over a dataset cache. A nil logger disables logging.
func New(cache *dataset.Cache, log *zap.Logger, topN int) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if topN <= 0 {
		topN = 10
	}
	return &Server{cache: cache, log: log, topN: topN}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/api/options", s.handleOptions)
	r.Get("/api/dashboard", s.handleDashboard)
	r.Get("/api/charts/{name}", s.handleChart)
	r.Post("/api/cache/clear", s.handleCacheClear)

	return r
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
