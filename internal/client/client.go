// Package client talks to the planning server and mirrors its fallback: when
// the server cannot be reached, times out, or answers with anything other
// than a well-formed plan, the same deterministic planner runs locally so the
// user always gets a plan.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bakeplan/internal/catalog"
	"bakeplan/internal/model"
	"bakeplan/internal/plan"
	"bakeplan/internal/planner"
)

// RequestTimeout bounds a single call to the server; past it the in-flight
// request is cancelled and the local fallback answers immediately.
const RequestTimeout = 8 * time.Second

// SourceLocal tags plans the client computed itself.
const SourceLocal = "local"

// Outcome is the result of a planning call, regardless of which tier
// produced it.
type Outcome struct {
	Source string
	ID     string
	Result *planner.Result
	// Notice is a user-facing explanation, set when the server could not be
	// used and the plan was computed locally.
	Notice string
}

// Client is a planning-server client with a built-in local fallback.
type Client struct {
	baseURL    string
	httpClient *http.Client
	local      model.LocalScorer
}

// New creates a Client against the given server base URL.
func New(baseURL string, c *catalog.Catalog) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
		local: model.NewLocalScorer(c),
	}
}

type planResponse struct {
	OK     bool            `json:"ok"`
	Source string          `json:"source"`
	ID     string          `json:"id"`
	Result *planner.Result `json:"result"`
	Error  string          `json:"error"`
}

// Plan computes a production plan, preferring the server. Any transport or
// payload problem degrades to the local planner; Plan never fails.
func (c *Client) Plan(ctx context.Context, req planner.Request) *Outcome {
	body, err := json.Marshal(req)
	if err != nil {
		return c.planLocally(ctx, req, fmt.Sprintf("failed to encode request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/plan", bytes.NewReader(body))
	if err != nil {
		return c.planLocally(ctx, req, fmt.Sprintf("failed to build request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.planLocally(ctx, req, fmt.Sprintf("server unreachable: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.planLocally(ctx, req, fmt.Sprintf("failed to read server response: %v", err))
	}
	if resp.StatusCode != http.StatusOK {
		return c.planLocally(ctx, req, fmt.Sprintf("server returned status %d", resp.StatusCode))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return c.planLocally(ctx, req, "server returned an empty response")
	}

	var data planResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return c.planLocally(ctx, req, fmt.Sprintf("server returned invalid JSON: %v", err))
	}
	if !data.OK || data.Result == nil || data.Result.Plan == nil {
		return c.planLocally(ctx, req, "server returned an unexpected payload")
	}

	return &Outcome{
		Source: data.Source,
		ID:     data.ID,
		Result: data.Result,
	}
}

func (c *Client) planLocally(ctx context.Context, req planner.Request, reason string) *Outcome {
	result, _ := c.local.Score(ctx, req)
	return &Outcome{
		Source: SourceLocal,
		Result: result,
		Notice: reason,
	}
}

// GetPlan fetches a previously stored plan record by id. Unlike Plan there
// is no local substitute for a stored record, so errors surface.
func (c *Client) GetPlan(ctx context.Context, id string) (*plan.Record, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/plan/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, plan.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var rec plan.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode plan record: %w", err)
	}
	return &rec, nil
}
