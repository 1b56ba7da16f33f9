// Package server exposes the planning engine over HTTP.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"bakeplan/internal/metrics"
	"bakeplan/internal/model"
	"bakeplan/internal/plan"
	"bakeplan/internal/planner"
)

// Server wires the model bridge, plan repository, and metrics store behind
// the HTTP API.
type Server struct {
	bridge       *model.Bridge
	repo         *plan.Repository
	metricsStore *metrics.Store
}

// New creates a Server. The metrics store may be nil to disable recording.
func New(bridge *model.Bridge, repo *plan.Repository, metricsStore *metrics.Store) *Server {
	return &Server{
		bridge:       bridge,
		repo:         repo,
		metricsStore: metricsStore,
	}
}

// RegisterHandlers registers the API routes on the given mux.
func (s *Server) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/api/plan", s.handlePlan)
	mux.HandleFunc("/api/plan/", s.handleGetPlan)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

type planResponse struct {
	OK     bool            `json:"ok"`
	Source string          `json:"source"`
	ID     string          `json:"id,omitempty"`
	Result *planner.Result `json:"result"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type recordResponse struct {
	OK bool `json:"ok"`
	plan.Record
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req planner.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	start := time.Now()
	result, source := s.bridge.Plan(r.Context(), req)

	resp := planResponse{OK: true, Source: source, Result: result}

	// The record is written before responding so the returned id is
	// immediately resolvable by a concurrent load. A failed write is logged
	// and the plan is still returned: persistence must never cost the user
	// their plan.
	inputJSON, _ := json.Marshal(req)
	resultJSON, _ := json.Marshal(result)
	rec, err := s.repo.Save(r.Context(), source, inputJSON, resultJSON)
	if err != nil {
		log.Printf("Warning: failed to save plan record: %v", err)
	} else {
		resp.ID = rec.ID
	}

	if s.metricsStore != nil {
		if err := s.metricsStore.Record(metrics.PlanRunMetric{
			Source:    source,
			Branch:    req.Branch,
			ItemCount: len(result.Plan),
			LatencyMS: time.Since(start).Milliseconds(),
		}); err != nil {
			log.Printf("Warning: failed to record plan metrics: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/plan/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing plan id"})
		return
	}

	rec, err := s.repo.Get(r.Context(), id)
	if err != nil {
		if err == plan.ErrNotFound {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "plan not found"})
			return
		}
		log.Printf("Failed to load plan %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load plan"})
		return
	}

	writeJSON(w, http.StatusOK, recordResponse{OK: true, Record: *rec})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
