package socket

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/domain/highlight"
)

// Highlighter runs one full pipeline pass for path and returns its
// instructions. Implementations serialize calls themselves.
type Highlighter interface {
	HighlightFile(ctx context.Context, path string) (*highlight.Result, error)
}

// Server is the daemon that listens on a Unix socket and serves highlight requests.
type Server struct {
	highlighter Highlighter
	listener    net.Listener
	sockPath    string
	started     time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	served   int
	failures int

	done         chan struct{}
	shutdownCh   chan struct{} // closed when a remote shutdown request is received
	shutdownOnce sync.Once
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// NewServer creates a daemon server backed by the given highlighter.
func NewServer(highlighter Highlighter, sockPath string) *Server {
	return &Server{
		highlighter: highlighter,
		sockPath:    sockPath,
		done:        make(chan struct{}),
		shutdownCh:  make(chan struct{}),
	}
}

// Start begins listening on the Unix socket. It handles stale sockets by
// attempting a connection first; if the connection fails, the stale socket
// is removed before binding. Requests run under a context derived from ctx,
// which also carries the logger.
func (s *Server) Start(ctx context.Context) error {
	if _, err := os.Stat(s.sockPath); err == nil {
		conn, err := net.DialTimeout("unix", s.sockPath, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return errors.Errorf("daemon already running at %s", s.sockPath)
		}
		// Stale socket
		os.Remove(s.sockPath)
	}

	ln, err := net.Listen("unix", s.sockPath)
	if err != nil {
		return errors.Errorf("listen: %w", err)
	}
	s.listener = ln
	s.started = time.Now()
	s.ctx, s.cancel = context.WithCancel(ctx)

	zerolog.Ctx(ctx).Info().Str("socket", s.sockPath).Msg("daemon listening")

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop gracefully shuts down the server, closing the listener and removing the socket file.
// Idempotent, so it is safe after a remote shutdown followed by a signal.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.cancel != nil {
			s.cancel()
		}
		if s.listener != nil {
			s.listener.Close()
		}
		s.wg.Wait()
		os.Remove(s.sockPath)
	})
	return nil
}

// ShutdownCh returns a channel that is closed when a remote shutdown request
// is received. The daemon's main goroutine should select on this alongside
// OS signals so the process actually exits after a remote stop.
func (s *Server) ShutdownCh() <-chan struct{} {
	return s.shutdownCh
}

// Addr returns the socket path the server is listening on.
func (s *Server) Addr() string {
	return s.sockPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB max message

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(conn, Response{Error: "invalid request JSON"})
			continue
		}

		resp := s.handleRequest(req)
		s.writeResponse(conn, resp)

		if req.Method == MethodShutdown {
			s.shutdownOnce.Do(func() { close(s.shutdownCh) })
			return
		}
	}
}

func (s *Server) handleRequest(req Request) Response {
	switch req.Method {
	case MethodHighlight:
		return s.handleHighlight(req)
	case MethodHealth:
		return s.handleHealth(req)
	case MethodShutdown:
		return Response{ID: req.ID, Result: struct{}{}}
	default:
		return Response{ID: req.ID, Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

func (s *Server) handleHighlight(req Request) Response {
	// Re-marshal params to decode into HighlightParams
	paramsJSON, err := json.Marshal(req.Params)
	if err != nil {
		return Response{ID: req.ID, Error: "invalid highlight params"}
	}
	var params HighlightParams
	if err := json.Unmarshal(paramsJSON, &params); err != nil || params.Path == "" {
		return Response{ID: req.ID, Error: "invalid highlight params"}
	}

	start := time.Now()
	res, err := s.highlighter.HighlightFile(s.ctx, params.Path)
	elapsed := time.Since(start)

	s.mu.Lock()
	s.served++
	if err != nil {
		s.failures++
	}
	s.mu.Unlock()

	result := HighlightResult{File: params.Path, Elapsed: elapsed.String()}
	if err != nil {
		zerolog.Ctx(s.ctx).Error().Err(err).Str("file", params.Path).Msg("highlight failed")
		result.Failure = failureResult(err)
		return Response{ID: req.ID, Result: result}
	}
	result.Highlights = res.Highlights
	result.Count = len(res.Highlights)
	return Response{ID: req.ID, Result: result}
}

func (s *Server) handleHealth(req Request) Response {
	s.mu.Lock()
	served, failures := s.served, s.failures
	s.mu.Unlock()

	return Response{
		ID: req.ID,
		Result: HealthResult{
			Status:   "ok",
			Served:   served,
			Failures: failures,
			Uptime:   time.Since(s.started).Round(time.Second).String(),
		},
	}
}

func (s *Server) writeResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}
