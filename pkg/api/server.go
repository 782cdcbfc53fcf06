// Package api exposes the analysis engine over HTTP: attractor search in
// both deterministic modes, rule validation, the relaxation solver, and a
// GraphQL mirror of the read-only operations.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ashar-LUMS/boolnet/pkg/api/middleware"
	"github.com/Ashar-LUMS/boolnet/pkg/logging"
	"github.com/Ashar-LUMS/boolnet/pkg/metrics"
)

// maxRequestBody bounds request bodies; rule sets and edge lists are small.
const maxRequestBody = 4 << 20

// validate is a singleton validator instance
var validate = validator.New()

// Server is the HTTP API server
type Server struct {
	logger    logging.Logger
	metrics   *metrics.Registry
	startTime time.Time
	version   string
	port      int

	schemaOnce sync.Once
	schemaVal  graphql.Schema
	schemaErr  error
}

// schema lazily builds the GraphQL schema once per server
func (s *Server) schema() (graphql.Schema, error) {
	s.schemaOnce.Do(func() {
		s.schemaVal, s.schemaErr = s.buildSchema()
	})
	return s.schemaVal, s.schemaErr
}

// NewServer creates a new API server
func NewServer(port int, logger logging.Logger, registry *metrics.Registry) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	return &Server{
		logger:    logger,
		metrics:   registry,
		startTime: time.Now(),
		version:   "1.0.0",
		port:      port,
	}
}

// Handler builds the full route table. Exposed separately from Start so
// tests can drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.PrometheusRegistry(), promhttp.HandlerOpts{}))

	mux.HandleFunc("/rules/validate", s.handleValidateRules)
	mux.HandleFunc("/analyze/rules", s.handleAnalyzeRules)
	mux.HandleFunc("/analyze/threshold", s.handleAnalyzeThreshold)
	mux.HandleFunc("/landscape", s.handleLandscape)
	mux.HandleFunc("/graphql", s.handleGraphQL)

	var handler http.Handler = mux
	handler = s.corsMiddleware(handler)
	handler = s.loggingMiddleware(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.Recovery(s.logger)(handler)
	return handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", logging.String("addr", addr))

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute, // exhaustive searches can run long
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
	})
}

// Middleware

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging and metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.HTTPRequestsInFlight.Inc()
		defer s.metrics.HTTPRequestsInFlight.Dec()

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		status := fmt.Sprintf("%d", rec.status)
		s.metrics.RecordHTTPRequest(r.Method, r.URL.Path, status, elapsed)
		s.logger.Info("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("status", status),
			logging.String("request_id", middleware.GetRequestID(r)),
			logging.Latency(elapsed),
		)
	})
}

// Response helpers

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, ErrorResponse{Error: msg})
}

// decodeJSON decodes and struct-validates a request body
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	if err := validate.Struct(v); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return false
	}
	return true
}
