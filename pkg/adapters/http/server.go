// Package http exposes the gate over a JSON API: trigger checks, list
// transitions, and inspect recent outcomes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// Gate defines the interface for the Palisade gating core.
type Gate interface {
	Check(ctx context.Context, def *domain.TransitionDefinition, item domain.Item) (*domain.Outcome, error)
}

// Server handles the gate API routes.
type Server struct {
	gate   Gate
	loader ports.DefinitionLoader
	store  ports.OutcomeStore
	logger *slog.Logger
}

// ServerOption configures the HTTP server.
type ServerOption func(*Server)

// WithOutcomeStore enables the outcome inspection endpoint.
func WithOutcomeStore(store ports.OutcomeStore) ServerOption {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for the gate API. The registry is
// optional; when present, /metrics serves its collectors.
func NewHandler(gate Gate, loader ports.DefinitionLoader, registry *prometheus.Registry, opts ...ServerOption) http.Handler {
	server := &Server{
		gate:   gate,
		loader: loader,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Get("/transitions", server.handleListTransitions)
	r.Get("/transitions/{id}", server.handleGetTransition)
	r.Post("/transitions/{id}/check", server.handleCheck)
	r.Get("/transitions/{id}/outcomes", server.handleOutcomes)

	return enableCORS(r)
}

// CheckRequest is the body of POST /transitions/{id}/check. Either a full
// item payload or the ID of an item known to the loader.
type CheckRequest struct {
	Item   *domain.Item `json:"item,omitempty"`
	ItemID string       `json:"item_id,omitempty"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	def, err := s.loader.GetTransition(ctx, id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	var item domain.Item
	switch {
	case req.Item != nil:
		item = *req.Item
	case req.ItemID != "":
		resolved, err := s.loader.GetItem(ctx, req.ItemID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		item = *resolved
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("item or item_id is required"))
		return
	}

	outcome, err := s.gate.Check(ctx, def, item)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleGetTransition(w http.ResponseWriter, r *http.Request) {
	def, err := s.loader.GetTransition(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (s *Server) handleListTransitions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.loader.ListTransitions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"transitions": ids})
}

func (s *Server) handleOutcomes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, errorBody("outcome auditing is not enabled"))
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	outcomes, err := s.store.Recent(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"outcomes": outcomes})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDefinitionNotFound), errors.Is(err, domain.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, domain.ErrInvalidConfiguration):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		s.logger.Error("gate check failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
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
