// Package http exposes excavation sessions over a REST API.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quarryworks/lode"
	"github.com/quarryworks/lode/internal/logging"
	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/ports"
	"github.com/quarryworks/lode/pkg/session"
)

// RigFactory resolves the rig an excavation session operates on. It is
// called on every tick request and must return the same underlying world
// for the same session ID.
type RigFactory func(sessionID string) ports.Rig

// Server routes session requests to the manager and drives restored
// excavators against the rigs provided by the factory.
type Server struct {
	manager *session.Manager
	rigs    RigFactory
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHooks attaches lifecycle hooks to every restored excavator, so ticks
// served over HTTP feed the same observers as embedded runs.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// NewHandler builds the HTTP handler for the session API.
func NewHandler(manager *session.Manager, rigs RigFactory, opts ...Option) http.Handler {
	server := &Server{
		manager: manager,
		rigs:    rigs,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/sessions", server.ListSessions)
	r.Post("/sessions", server.CreateSession)
	r.Get("/sessions/{sessionID}", server.GetSession)
	r.Post("/sessions/{sessionID}/tick", server.TickSession)
	r.Delete("/sessions/{sessionID}", server.DeleteSession)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type createSessionRequest struct {
	ID        string `json:"id,omitempty"`
	Direction string `json:"direction"`
}

type sessionResponse struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
	Depth  int    `json:"depth"`
}

type tickResponse struct {
	ID     string        `json:"id"`
	Result domain.Result `json:"result"`
	Active bool          `json:"active"`
	Depth  int           `json:"depth"`
	Ticks  int           `json:"ticks"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"app":     "lode-http",
		"version": strings.TrimSpace(lode.Version),
	})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.manager.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("list error: %v", err), http.StatusInternalServerError)
		s.logger.Error("List failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// CreateSession handles POST /sessions. A missing ID gets a generated one.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("CreateSession: invalid request body", "err", err)
		return
	}

	dir, err := domain.ParseDirection(body.Direction)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid direction: %v", err), http.StatusBadRequest)
		return
	}

	id := body.ID
	if id == "" {
		id = uuid.NewString()
	}

	snap, err := s.manager.LoadOrStart(r.Context(), id, dir)
	if err != nil {
		http.Error(w, fmt.Sprintf("create error: %v", err), http.StatusInternalServerError)
		s.logger.Error("CreateSession failed", "session_id", id, "err", err)
		return
	}

	exc, err := lode.Restore(s.rigs(id), snap)
	if err != nil {
		http.Error(w, fmt.Sprintf("restore error: %v", err), http.StatusInternalServerError)
		return
	}

	s.logger.Info("session created", "session_id", id, "direction", string(dir))
	respondJSON(w, http.StatusCreated, sessionResponse{
		ID:     id,
		Active: exc.Active(),
		Depth:  exc.Depth(),
	})
}

// GetSession handles GET /sessions/{sessionID}, returning the raw snapshot.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	snap, err := s.manager.Load(r.Context(), id)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetSession failed", "session_id", id, "err", err)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// TickSession handles POST /sessions/{sessionID}/tick. The optional ?n=
// query parameter advances up to n ticks, stopping early on a terminal
// result. The restored excavator is re-persisted after every tick.
func (s *Server) TickSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid tick count", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	var resp tickResponse
	err := s.manager.WithLock(r.Context(), id, func(ctx context.Context) error {
		snap, err := s.manager.Store().Load(ctx, id)
		if err != nil {
			return err
		}

		exc, err := lode.Restore(s.rigs(id), snap,
			lode.WithStore(s.manager.Store(), id),
			lode.WithLogger(s.logger),
			lode.WithHooks(s.hooks))
		if err != nil {
			return err
		}

		result := domain.ResultRunning
		ticks := 0
		for i := 0; i < n; i++ {
			result, err = exc.Tick(ctx)
			if err != nil {
				return err
			}
			ticks++
			if result.Terminal() {
				break
			}
		}

		resp = tickResponse{
			ID:     id,
			Result: result,
			Active: exc.Active(),
			Depth:  exc.Depth(),
			Ticks:  ticks,
		}
		return nil
	})
	if err != nil {
		if err == domain.ErrSessionNotFound {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("tick error: %v", err), http.StatusInternalServerError)
		s.logger.Error("TickSession failed", "session_id", id, "err", err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// DeleteSession handles DELETE /sessions/{sessionID}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	if err := s.manager.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("delete error: %v", err), http.StatusInternalServerError)
		s.logger.Error("DeleteSession failed", "session_id", id, "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
