package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/model"
)

// UseCases bundles the use cases served over HTTP. Digest may be nil, in which case the
// digest route is not mounted.
type UseCases struct {
	Analytics interfaces.Analytics
	Dashboard interfaces.Dashboard
	Generator interfaces.TestCaseGenerator
	Digest    interfaces.Digest
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router   chi.Router
	useCases *UseCases
	now      func() time.Time
}

// Option configures Server
type Option func(*Server)

// WithClock replaces the clock used when a request has no asOf parameter
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, addr string, useCases *UseCases, opts ...Option) (*Server, error) {
	if useCases == nil || useCases.Analytics == nil || useCases.Dashboard == nil || useCases.Generator == nil {
		return nil, goerr.New("analytics, dashboard and generator use cases are required")
	}

	router := chi.NewRouter()
	server := &Server{
		router:   router,
		useCases: useCases,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(server)
	}

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(CORS)

	// Health check
	router.Get("/health", handleHealth)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Route("/projects/{projectID}", func(r chi.Router) {
			r.Get("/dashboard", server.handleDashboard)

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/", server.handleAnalytics)
				r.Get("/executions", server.handleExecutionMetrics)
				r.Get("/defects", server.handleDefectMetrics)
				r.Get("/trend", server.handleExecutionTrend)
			})

			if useCases.Digest != nil {
				r.Post("/digest", server.handleDigest)
			}
		})

		r.Post("/test-cases/generate", server.handleGenerateTestCase)
	})

	if useCases.Digest == nil {
		ctxlog.From(ctx).Info("Slack digest is not configured, digest endpoint disabled")
	}

	server.Server = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "tessera",
	})
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// statusOf maps an error to the HTTP status code of the response
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrProjectNotFound):
		return http.StatusNotFound
	case goerr.HasTag(err, model.ErrTagValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes an error response. Messages of internal errors are not exposed.
func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	message := http.StatusText(status)
	if status < http.StatusInternalServerError || status == http.StatusBadGateway {
		if goErr := goerr.Unwrap(err); goErr != nil {
			message = goErr.Error()
		} else {
			message = err.Error()
		}
	}

	writeJSON(w, r, status, map[string]string{
		"error": message,
	})
}
