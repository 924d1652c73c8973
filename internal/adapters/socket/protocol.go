// Package socket implements a JSON-over-Unix-socket protocol for the semhl daemon.
// The protocol uses newline-delimited JSON: each message is one JSON object + \n.
package socket

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/domain/highlight"
	"github.com/corey/semhl/internal/ports"
)

// SocketPath returns the Unix socket path for a given project root.
// Format: /tmp/semhl-{first12hex}.sock
func SocketPath(projectRoot string) string {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	h := sha256.Sum256([]byte(abs))
	return fmt.Sprintf("/tmp/semhl-%x.sock", h[:6])
}

// Method names for the protocol.
const (
	MethodHighlight = "highlight"
	MethodHealth    = "health"
	MethodShutdown  = "shutdown"
)

// Request is the wire format for client-to-server messages.
type Request struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// Response is the wire format for server-to-client messages.
type Response struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HighlightParams is the params for a highlight request. Path is resolved by
// the daemon, so clients send absolute paths.
type HighlightParams struct {
	Path string `json:"path"`
}

// HighlightResult is the result of a highlight request. Exactly one of
// Highlights (possibly empty) or Failure is meaningful.
type HighlightResult struct {
	File       string            `json:"file"`
	Highlights []ports.Highlight `json:"highlights"`
	Count      int               `json:"count"`
	Elapsed    string            `json:"elapsed"`
	Failure    *FailureResult    `json:"failure,omitempty"`
}

// FailureResult is a pipeline failure on the wire.
type FailureResult struct {
	Kind        string             `json:"kind"`
	State       string             `json:"state"`
	Cause       string             `json:"cause,omitempty"`
	Message     string             `json:"message"`
	Diagnostics []ports.Diagnostic `json:"diagnostics,omitempty"`
}

// HealthResult is the result of a health request.
type HealthResult struct {
	Status   string `json:"status"`
	Served   int    `json:"served"`
	Failures int    `json:"failures"`
	Uptime   string `json:"uptime"`
}

// failureResult converts a pipeline error for the wire. Errors that are not
// pipeline failures are reported as InternalError.
func failureResult(err error) *FailureResult {
	var f *highlight.Failure
	if !errors.As(err, &f) {
		return &FailureResult{Kind: highlight.InternalError.String(), Cause: err.Error(), Message: err.Error()}
	}
	r := &FailureResult{
		Kind:        f.Kind.String(),
		State:       f.State.String(),
		Message:     f.Error(),
		Diagnostics: f.Diagnostics,
	}
	if f.Cause != nil {
		r.Cause = f.Cause.Error()
	}
	return r
}

// Err rebuilds the daemon-side failure, or returns nil on success. The
// rebuilt failure keeps kind, path and diagnostics; the cause survives as text.
func (r *HighlightResult) Err() error {
	if r.Failure == nil {
		return nil
	}
	kind, ok := highlight.ParseFailureKind(r.Failure.Kind)
	if !ok {
		return errors.Errorf("daemon reported unknown failure %q: %s", r.Failure.Kind, r.Failure.Message)
	}
	f := &highlight.Failure{
		Kind:        kind,
		Path:        r.File,
		Diagnostics: r.Failure.Diagnostics,
	}
	if r.Failure.Cause != "" {
		f.Cause = errors.New(r.Failure.Cause)
	}
	return f
}
