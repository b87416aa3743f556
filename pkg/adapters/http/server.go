package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/lockstep"
	"github.com/aretw0/lockstep/internal/presentation/graph"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes a read-only view of a running configuration.
type Server struct {
	Config   domain.Configuration
	State    ports.StateReader
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewHandler creates the introspection HTTP handler.
// A nil gatherer leaves /metrics unmounted.
func NewHandler(cfg domain.Configuration, state ports.StateReader, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{Config: cfg, State: state, Gatherer: gatherer, Logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/state", s.GetState)
	r.Get("/state/{component}", s.GetComponentState)
	r.Get("/graph", s.GetGraph)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /healthz request.
// It reports 503 until the first state has been published.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if _, ok := s.State.Snapshot(); !ok {
		status, code = "starting", http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, map[string]string{"status": status})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":         "lockstep",
		"version":     strings.TrimSpace(lockstep.Version),
		"components":  len(s.Config.Components),
		"connections": len(s.Config.Connections),
	})
}

// GetState handles the GET /state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	state, ok := s.State.Snapshot()
	if !ok {
		http.Error(w, "no state yet", http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// GetComponentState handles the GET /state/{component} request.
func (s *Server) GetComponentState(w http.ResponseWriter, r *http.Request) {
	state, ok := s.State.Snapshot()
	if !ok {
		http.Error(w, "no state yet", http.StatusServiceUnavailable)
		return
	}

	name := chi.URLParam(r, "component")
	inst, ok := state.Instance(name)
	if !ok {
		http.Error(w, "unknown component: "+name, http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, inst)
}

// GetGraph handles the GET /graph request.
// The Mermaid output is overlaid with the current state when one exists.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.Overlay
	if state, ok := s.State.Snapshot(); ok {
		overlay = &graph.Overlay{State: state}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(graph.GenerateMermaid(s.Config, overlay))); err != nil {
		s.Logger.Error("GetGraph write failed", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
