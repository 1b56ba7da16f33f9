package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"bakeplan/internal/planner"
)

// DefaultTimeout bounds a single external model invocation.
const DefaultTimeout = 8 * time.Second

// ExternalScorer runs a replaceable scoring process. The process reads the
// request payload as one JSON document on stdin and must emit exactly one
// JSON result document on stdout, exiting with status zero to be considered
// authoritative.
type ExternalScorer struct {
	// Runtime is the interpreter that invokes the script, e.g. "python3".
	Runtime string
	// ScriptPath locates the model script. Empty means not configured.
	ScriptPath string
	// Timeout bounds the invocation; zero means DefaultTimeout.
	Timeout time.Duration
}

// NewExternalScorer creates an ExternalScorer with the default timeout.
func NewExternalScorer(runtime, scriptPath string) *ExternalScorer {
	return &ExternalScorer{Runtime: runtime, ScriptPath: scriptPath, Timeout: DefaultTimeout}
}

// Score invokes the external process and validates its output. Success
// requires a zero exit code, non-empty stdout, and stdout parsing as a
// result object that contains a plan array; any violation is an error and
// routes the caller to fallback.
func (s *ExternalScorer) Score(ctx context.Context, req planner.Request) (*planner.Result, error) {
	if s.ScriptPath == "" {
		return nil, fmt.Errorf("no model script configured")
	}
	if _, err := os.Stat(s.ScriptPath); err != nil {
		return nil, fmt.Errorf("model script not found at %s: %w", s.ScriptPath, err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.Runtime, s.ScriptPath)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("model process timed out after %s", timeout)
		}
		return nil, fmt.Errorf("model process failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return nil, fmt.Errorf("model process produced no output")
	}

	var result planner.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON from model process: %w", err)
	}
	if result.Plan == nil {
		return nil, fmt.Errorf("model output missing plan array")
	}
	return &result, nil
}
