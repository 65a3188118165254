package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/aretw0/rulegen"
	"github.com/aretw0/rulegen/internal/sanitize"
	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/random"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var rawSpec []byte

const maxBodyBytes = 1 << 20

// Generator is the part of the facade the HTTP surface needs.
// *rulegen.Locked satisfies it; a bare *rulegen.Generator does too but is not
// safe for concurrent requests.
type Generator interface {
	GenerateN(root string, n int, opts ...rulegen.GenerateOption) ([]*domain.Result, error)
	AvailableSymbols() []string
	RulesForSymbol(symbol string) []domain.Rule
}

// Server serves the generator over HTTP.
type Server struct {
	Generator Generator
	Spec      *openapi3.T

	gatherer     prometheus.Gatherer
	logger       *slog.Logger
	maxInputSize int
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics exposes the gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputSize bounds the size of each variable name and value.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInputSize = n
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler for the generator.
func NewHandler(gen Generator, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}

	s := &Server{
		Generator: gen,
		Spec:      spec,
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/symbols", s.ListSymbols)
	r.Get("/symbols/{symbol}/rules", s.GetRules)
	r.Post("/generate", s.Generate)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "rulegen-http",
		"version": strings.TrimSpace(rulegen.Version),
		"api":     s.Spec.Info.Version,
	})
}

// ListSymbols handles GET /symbols.
func (s *Server) ListSymbols(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"symbols": s.Generator.AvailableSymbols()})
}

// GetRules handles GET /symbols/{symbol}/rules.
func (s *Server) GetRules(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	rules := s.Generator.RulesForSymbol(symbol)
	if len(rules) == 0 {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("symbol %q has no rules", symbol))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"symbol": symbol, "rules": rules})
}

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Symbol         string            `json:"symbol"`
	Seed           any               `json:"seed,omitempty"`
	MaxDepth       *int              `json:"max_depth,omitempty"`
	Variables      map[string]string `json:"variables,omitempty"`
	AllowUndefined bool              `json:"allow_undefined,omitempty"`
	Count          int               `json:"count,omitempty"`
}

// GenerateResponse is the body returned by POST /generate.
type GenerateResponse struct {
	Results []*domain.Result `json:"results"`
}

// Generate handles POST /generate.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("Generate: Invalid request body", "err", err)
		return
	}

	req, err := s.decodeGenerateRequest(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		s.logger.Warn("Generate: Request rejected", "err", err)
		return
	}

	opts, err := req.options(s.maxInputSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	count := req.Count
	if count == 0 {
		count = 1
	}
	results, err := s.Generator.GenerateN(req.Symbol, count, opts...)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidArgument) || errors.Is(err, domain.ErrMalformedRulePack) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err.Error())
		s.logger.Error("Generate failed", "symbol", req.Symbol, "err", err)
		return
	}

	s.logger.Debug("Generate: Completed", "symbol", req.Symbol, "count", count)
	s.writeJSON(w, http.StatusOK, GenerateResponse{Results: results})
}

// decodeGenerateRequest checks the body against the GenerateRequest schema of the
// OpenAPI document before decoding it.
func (s *Server) decodeGenerateRequest(body []byte) (GenerateRequest, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return GenerateRequest{}, fmt.Errorf("invalid JSON: %w", err)
	}
	schema := s.Spec.Components.Schemas["GenerateRequest"].Value
	if err := schema.VisitJSON(raw); err != nil {
		return GenerateRequest{}, fmt.Errorf("invalid request: %w", err)
	}

	var req GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return GenerateRequest{}, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

func (req GenerateRequest) options(maxInputSize int) ([]rulegen.GenerateOption, error) {
	var opts []rulegen.GenerateOption
	switch seed := req.Seed.(type) {
	case nil:
	case string:
		opts = append(opts, rulegen.WithSeed(random.StringSeed(seed)))
	case float64:
		if seed != math.Trunc(seed) || math.Abs(seed) >= math.MaxInt64 {
			return nil, fmt.Errorf("%w: seed must be an integer or a string", domain.ErrInvalidArgument)
		}
		opts = append(opts, rulegen.WithSeed(random.IntSeed(int64(seed))))
	default:
		return nil, fmt.Errorf("%w: seed must be an integer or a string", domain.ErrInvalidArgument)
	}
	if req.MaxDepth != nil {
		opts = append(opts, rulegen.WithMaxDepth(*req.MaxDepth))
	}
	if len(req.Variables) > 0 {
		vars, err := sanitize.Variables(req.Variables, maxInputSize)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rulegen.WithVariables(vars))
	}
	if req.AllowUndefined {
		opts = append(opts, rulegen.WithAllowUndefined(true))
	}
	return opts, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
