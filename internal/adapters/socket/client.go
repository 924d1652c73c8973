package socket

import (
	"bufio"
	"encoding/json"
	"net"
	"time"

	"gitlab.com/tozd/go/errors"
)

// Client connects to the semhl daemon over a Unix socket.
type Client struct {
	sockPath string
}

// NewClient creates a client that will connect to the given socket path.
func NewClient(sockPath string) *Client {
	return &Client{sockPath: sockPath}
}

// Highlight asks the daemon to highlight path. A pipeline failure is not a
// transport error: it comes back inside the result, see HighlightResult.Err.
func (c *Client) Highlight(path string) (*HighlightResult, error) {
	// Parsing large translation units takes a while.
	resp, err := c.callWithTimeout(Request{
		ID:     "1",
		Method: MethodHighlight,
		Params: HighlightParams{Path: path},
	}, 60*time.Second)
	if err != nil {
		return nil, err
	}
	return decodeResult[HighlightResult](resp)
}

// Health sends a health check request.
func (c *Client) Health() (*HealthResult, error) {
	resp, err := c.call(Request{
		ID:     "1",
		Method: MethodHealth,
	})
	if err != nil {
		return nil, err
	}
	return decodeResult[HealthResult](resp)
}

// Shutdown sends a shutdown request to the daemon.
func (c *Client) Shutdown() error {
	_, err := c.call(Request{
		ID:     "1",
		Method: MethodShutdown,
	})
	return err
}

// Ping checks if the daemon is reachable.
func (c *Client) Ping() bool {
	conn, err := net.DialTimeout("unix", c.sockPath, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func decodeResult[T any](resp *Response) (*T, error) {
	resultJSON, err := json.Marshal(resp.Result)
	if err != nil {
		return nil, errors.Errorf("marshal result: %w", err)
	}
	var result T
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, errors.Errorf("unmarshal result: %w", err)
	}
	return &result, nil
}

func (c *Client) call(req Request) (*Response, error) {
	return c.callWithTimeout(req, 5*time.Second)
}

func (c *Client) callWithTimeout(req Request, timeout time.Duration) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.sockPath, 2*time.Second)
	if err != nil {
		return nil, errors.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Deadline covers the whole request/response.
	conn.SetDeadline(time.Now().Add(timeout))

	data, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Errorf("marshal request: %w", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return nil, errors.Errorf("write: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 16*1024*1024), 16*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, errors.Errorf("read: %w", err)
		}
		return nil, errors.New("empty response")
	}

	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return nil, errors.Errorf("unmarshal response: %w", err)
	}
	if resp.Error != "" {
		return nil, errors.Errorf("server error: %s", resp.Error)
	}
	return &resp, nil
}
