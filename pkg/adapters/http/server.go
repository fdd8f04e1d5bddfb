package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/mystem/internal/dto"
	"github.com/aretw0/mystem/pkg/domain"
	"github.com/aretw0/mystem/pkg/grammem"
	"github.com/aretw0/mystem/pkg/ports"
	"github.com/aretw0/mystem/pkg/protocol"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

// MaxBodySize bounds the JSON request body.
const MaxBodySize = 1 << 20

// WorkerStatus is implemented by analyzers that expose their worker process.
type WorkerStatus interface {
	PID() int
	Restarts() int
}

// Server serves the HTTP API over an Analyzer.
type Server struct {
	Analyzer ports.Analyzer

	logger   *slog.Logger
	gatherer prometheus.Gatherer
	origins  []string
	version  string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGatherer exposes g on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithAllowedOrigins restricts CORS origins (default "*").
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = strings.TrimSpace(v)
	}
}

// NewHandler creates a new HTTP handler for the analyzer.
func NewHandler(analyzer ports.Analyzer, opts ...Option) http.Handler {
	s := &Server{
		Analyzer: analyzer,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		origins:  []string{"*"},
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)

	r.Post("/stemming", s.Stemming)
	r.Get("/tags", s.GetTags)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.logger.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		_, _ = w.Write(spec)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	}).Handler(r)
}

type requestIDKey struct{}

// requestID reuses a caller-supplied id or mints a UUID.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// StemmingRequest is the body of POST /stemming.
type StemmingRequest struct {
	Text string `json:"text"`
}

// StemmingResponse is the body of a successful POST /stemming.
type StemmingResponse struct {
	RequestID string      `json:"request_id,omitempty"`
	Tokens    []dto.Token `json:"tokens"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Stemming handles the POST /stemming request.
func (s *Server) Stemming(w http.ResponseWriter, r *http.Request) {
	id := requestIDFrom(r.Context())
	logger := s.logger.With("request_id", id)

	var body StemmingRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err := dec.Decode(&body); err != nil {
		logger.Warn("Stemming: Invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: "bad_request", RequestID: id})
		return
	}

	results, err := s.Analyzer.Stemming(r.Context(), body.Text)
	if err != nil {
		status, kind := classify(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Stemming failed", "error", err, "kind", kind)
		} else {
			logger.Warn("Stemming rejected", "error", err, "kind", kind)
		}
		writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind, RequestID: id})
		return
	}

	logger.Debug("Stemming served", "tokens", len(results))
	writeJSON(w, http.StatusOK, StemmingResponse{RequestID: id, Tokens: dto.FromTokens(results)})
}

// classify maps analyzer errors onto HTTP statuses.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, protocol.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge, "input_too_large"
	case errors.Is(err, domain.ErrProcessSpawn):
		return http.StatusServiceUnavailable, "process_spawn"
	case errors.Is(err, grammem.ErrUnknownPartOfSpeech):
		return http.StatusBadGateway, "part_of_speech"
	case errors.Is(err, grammem.ErrUnknownFact):
		return http.StatusBadGateway, "grammem"
	case errors.Is(err, domain.ErrExchange):
		return http.StatusBadGateway, "exchange"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "cancelled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// GetTags handles the GET /tags request.
func (s *Server) GetTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.Tags())
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if ws, ok := s.Analyzer.(WorkerStatus); ok {
		resp["pid"] = ws.PID()
		resp["restarts"] = ws.Restarts()
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	} else if err != nil {
		s.logger.Error("Failed to load OpenAPI spec", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "mystem-http",
		"version":     s.version,
		"api_version": apiVersion,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
