package socket

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/domain/highlight"
	"github.com/corey/semhl/internal/ports"
)

// =============================================================================
// Unix socket daemon: JSON-over-socket protocol for highlight, health, shutdown
// =============================================================================

// stubHighlighter answers from a fixed table keyed by path.
type stubHighlighter struct {
	mu     sync.Mutex
	calls  int
	byPath map[string][]ports.Highlight
}

func (h *stubHighlighter) HighlightFile(_ context.Context, path string) (*highlight.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	if path == "/src/bad.c" {
		return nil, &highlight.Failure{
			Kind:        highlight.CompileError,
			State:       highlight.StateParsed,
			Path:        path,
			Diagnostics: []ports.Diagnostic{{Severity: ports.SeverityError, Message: "bad.c:1:10: error: expected ')'"}},
		}
	}
	hs, ok := h.byPath[path]
	if !ok {
		return nil, &highlight.Failure{Kind: highlight.RangeUnavailable, Path: path, Cause: errors.New("stat: no such file")}
	}
	return &highlight.Result{Path: path, Highlights: hs}, nil
}

func testHighlighter() *stubHighlighter {
	return &stubHighlighter{byPath: map[string][]ports.Highlight{
		"/src/x.c": {
			{Category: "Keyword", Line: 1, Column: 1, Length: 3},
			{Category: "Variable", Line: 1, Column: 5, Length: 1},
		},
	}}
}

// testSocketPath returns a unique socket path for a test.
func testSocketPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.sock")
}

func startServer(t *testing.T, h Highlighter) (*Server, string) {
	t.Helper()
	sockPath := testSocketPath(t)
	srv := NewServer(h, sockPath)
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(func() { srv.Stop() })
	return srv, sockPath
}

func TestServer_HighlightRoundtrip(t *testing.T) {
	_, sockPath := startServer(t, testHighlighter())
	client := NewClient(sockPath)

	result, err := client.Highlight("/src/x.c")
	require.NoError(t, err)
	require.NoError(t, result.Err())
	assert.Equal(t, "/src/x.c", result.File)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []ports.Highlight{
		{Category: "Keyword", Line: 1, Column: 1, Length: 3},
		{Category: "Variable", Line: 1, Column: 5, Length: 1},
	}, result.Highlights)
}

func TestServer_HighlightCompileError(t *testing.T) {
	_, sockPath := startServer(t, testHighlighter())
	client := NewClient(sockPath)

	result, err := client.Highlight("/src/bad.c")
	require.NoError(t, err, "pipeline failures travel inside the result")
	require.NotNil(t, result.Failure)
	assert.Equal(t, "CompileError", result.Failure.Kind)
	assert.Equal(t, "parsed", result.Failure.State)
	assert.Empty(t, result.Highlights)

	ferr := result.Err()
	assert.True(t, errors.Is(ferr, highlight.ErrCompile))
	assert.Equal(t, []ports.Diagnostic{{Severity: ports.SeverityError, Message: "bad.c:1:10: error: expected ')'"}}, highlight.DiagnosticsOf(ferr))
}

func TestServer_HighlightRangeUnavailable(t *testing.T) {
	_, sockPath := startServer(t, testHighlighter())

	result, err := NewClient(sockPath).Highlight("/src/missing.c")
	require.NoError(t, err)
	ferr := result.Err()
	kind, ok := highlight.KindOf(ferr)
	require.True(t, ok)
	assert.Equal(t, highlight.RangeUnavailable, kind)
	assert.Contains(t, ferr.Error(), "stat: no such file")
}

func TestServer_HighlightRequiresPath(t *testing.T) {
	_, sockPath := startServer(t, testHighlighter())

	_, err := NewClient(sockPath).Highlight("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid highlight params")
}

func TestServer_Health(t *testing.T) {
	_, sockPath := startServer(t, testHighlighter())
	client := NewClient(sockPath)

	_, err := client.Highlight("/src/x.c")
	require.NoError(t, err)
	_, err = client.Highlight("/src/bad.c")
	require.NoError(t, err)

	health, err := client.Health()
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 2, health.Served)
	assert.Equal(t, 1, health.Failures)
	assert.NotEmpty(t, health.Uptime)
}

func TestServer_Shutdown(t *testing.T) {
	sockPath := testSocketPath(t)
	srv := NewServer(testHighlighter(), sockPath)
	require.NoError(t, srv.Start(context.Background()))

	client := NewClient(sockPath)
	assert.True(t, client.Ping())

	// Shutdown closes shutdownCh; the daemon calls Stop in response.
	require.NoError(t, client.Shutdown())

	select {
	case <-srv.ShutdownCh():
	default:
		t.Fatal("ShutdownCh should be closed after Shutdown request")
	}

	srv.Stop()

	_, err := os.Stat(sockPath)
	assert.True(t, os.IsNotExist(err), "socket file should be removed after shutdown")
	assert.False(t, client.Ping())
}

func TestServer_ConcurrentClients(t *testing.T) {
	h := testHighlighter()
	_, sockPath := startServer(t, h)

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	// 10 clients x 10 requests each
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := NewClient(sockPath)
			for j := 0; j < 10; j++ {
				result, err := client.Highlight("/src/x.c")
				if err != nil {
					errs <- err
					return
				}
				if result.Count != 2 {
					errs <- assert.AnError
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent client error: %v", err)
	}
	assert.Equal(t, 100, h.calls)
}

func TestServer_StaleSocket(t *testing.T) {
	sockPath := testSocketPath(t)

	// A stale socket file, not a real listener.
	require.NoError(t, os.WriteFile(sockPath, []byte("stale"), 0600))

	srv := NewServer(testHighlighter(), sockPath)
	require.NoError(t, srv.Start(context.Background()), "should replace stale socket")
	defer srv.Stop()

	health, err := NewClient(sockPath).Health()
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestServer_AlreadyRunning(t *testing.T) {
	_, sockPath := startServer(t, testHighlighter())

	second := NewServer(testHighlighter(), sockPath)
	err := second.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestSocketPath_StablePerRoot(t *testing.T) {
	a := SocketPath("/work/project")
	assert.Equal(t, a, SocketPath("/work/project"))
	assert.NotEqual(t, a, SocketPath("/work/other"))
	assert.Regexp(t, `^/tmp/semhl-[0-9a-f]{12}\.sock$`, a)
}
