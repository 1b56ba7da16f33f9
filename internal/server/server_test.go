package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"bakeplan/internal/catalog"
	"bakeplan/internal/database"
	"bakeplan/internal/metrics"
	"bakeplan/internal/model"
	"bakeplan/internal/plan"
	"bakeplan/internal/planner"
)

func newTestServer(t *testing.T, external model.Scorer) *http.ServeMux {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	bridge := &model.Bridge{
		External: external,
		Local:    model.NewLocalScorer(catalog.Default()),
	}
	srv := New(bridge, plan.NewRepository(db.SQL), metrics.NewStore(db.SQL))

	mux := http.NewServeMux()
	srv.RegisterHandlers(mux)
	return mux
}

type planBody struct {
	OK     bool            `json:"ok"`
	Source string          `json:"source"`
	ID     string          `json:"id"`
	Result *planner.Result `json:"result"`
	Error  string          `json:"error"`
}

func postPlan(t *testing.T, mux *http.ServeMux, payload string) (*httptest.ResponseRecorder, planBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	var body planBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
	return rr, body
}

func TestHandlePlanFallback(t *testing.T) {
	mux := newTestServer(t, nil)

	rr, body := postPlan(t, mux, `{"branch":"branch-a","weather":"sunny","date":"2026-09-02T09:00:00Z"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !body.OK {
		t.Errorf("Expected ok response, got error %q", body.Error)
	}
	if body.Source != model.SourceFallback {
		t.Errorf("Expected source %q, got %q", model.SourceFallback, body.Source)
	}
	if body.ID == "" {
		t.Error("Expected a persisted plan id in the response")
	}
	if body.Result == nil || len(body.Result.Plan) == 0 {
		t.Error("Expected a non-empty plan")
	}
}

func TestHandlePlanExternalFailureDegrades(t *testing.T) {
	// An external script that always exits non-zero forces the bridge onto the
	// server-local planner.
	script := filepath.Join(t.TempDir(), "model.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\ncat > /dev/null; exit 1\n"), 0755); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	mux := newTestServer(t, model.NewExternalScorer("sh", script))

	_, body := postPlan(t, mux, `{"branch":"branch-b"}`)
	if body.Source != model.SourceFallback {
		t.Errorf("Expected source %q after external failure, got %q", model.SourceFallback, body.Source)
	}
	if body.Result == nil || len(body.Result.Plan) == 0 {
		t.Error("Expected a non-empty fallback plan")
	}
}

func TestHandlePlanRejectsBadInput(t *testing.T) {
	mux := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewBufferString("not json"))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed JSON, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/plan", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET on /api/plan, got %d", rr.Code)
	}
}

func TestGetPlanRoundTrip(t *testing.T) {
	mux := newTestServer(t, nil)

	_, created := postPlan(t, mux, `{"branch":"branch-c","weather":"rain"}`)
	if created.ID == "" {
		t.Fatal("Expected a plan id to load back")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/plan/"+created.ID, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var rec struct {
		OK bool `json:"ok"`
		plan.Record
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("Failed to decode record: %v", err)
	}
	if rec.ID != created.ID {
		t.Errorf("Expected id %q, got %q", created.ID, rec.ID)
	}
	if rec.Source != model.SourceFallback {
		t.Errorf("Expected source %q, got %q", model.SourceFallback, rec.Source)
	}

	var stored planner.Result
	if err := json.Unmarshal(rec.Result, &stored); err != nil {
		t.Fatalf("Stored result is not a valid plan payload: %v", err)
	}
	if len(stored.Plan) != len(created.Result.Plan) {
		t.Errorf("Stored plan has %d items, response had %d", len(stored.Plan), len(created.Result.Plan))
	}
}

func TestGetPlanUnknownID(t *testing.T) {
	mux := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/plan/definitely-not-there", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown id, got %d", rr.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 from /health, got %d", rr.Code)
	}
}
