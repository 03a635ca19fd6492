package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/pathviz/internal/logging"
	"github.com/san-kum/pathviz/internal/trace"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second

	maxBodyBytes = 8 << 20
)

// Observer is told about every completed call, successful or not.
type Observer func(op string, d time.Duration, err error)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observe = o }
}

// Client calls the solver service. It holds no per-request state and may be
// shared between goroutines.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	observe Observer
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Generate asks the service for a new maze. The service may ignore the
// requested size; the returned maze carries the dimensions it actually has.
func (c *Client) Generate(ctx context.Context, algo Algorithm, rows, cols int) (_ *Maze, err error) {
	defer c.observed("generate", time.Now(), &err)

	q := url.Values{}
	q.Set("algorithm", string(algo))
	q.Set("rows", strconv.Itoa(rows))
	q.Set("cols", strconv.Itoa(cols))
	endpoint := c.baseURL + "/astar/generate?" + q.Encode()

	var resp generateResponse
	if err = c.do(ctx, "generate", http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	maze, err := resp.maze()
	if err != nil {
		return nil, c.fail("generate", endpoint, 0, fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}
	if maze.Grid.Rows() != rows || maze.Grid.Cols() != cols {
		c.logger.Warn("solver returned a different maze size",
			"requested_rows", rows, "requested_cols", cols,
			"rows", maze.Grid.Rows(), "cols", maze.Grid.Cols())
	}
	return maze, nil
}

// FindPath runs a search on the service and returns its trace. An
// unreachable end yields a trace with an empty path.
func (c *Client) FindPath(ctx context.Context, req PathRequest) (_ trace.Trace, err error) {
	defer c.observed("find-path", time.Now(), &err)

	endpoint := c.baseURL + "/astar/find-path"
	body, err := json.Marshal(req)
	if err != nil {
		return trace.Trace{}, fmt.Errorf("marshal request: %w", err)
	}

	var resp pathResponse
	if err = c.do(ctx, "find-path", http.MethodPost, endpoint, body, &resp); err != nil {
		return trace.Trace{}, err
	}

	rows := len(req.Maze)
	cols := 0
	if rows > 0 {
		cols = len(req.Maze[0])
	}
	tr, err := resp.trace(rows, cols)
	if err != nil {
		return trace.Trace{}, c.fail("find-path", endpoint, 0, fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}
	return tr, nil
}

// Ping checks that the service is up and returns its greeting.
func (c *Client) Ping(ctx context.Context) (_ string, err error) {
	defer c.observed("ping", time.Now(), &err)

	endpoint := c.baseURL + "/ping"
	var resp pingResponse
	if err = c.do(ctx, "ping", http.MethodGet, endpoint, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("solver request", "op", op, "url", endpoint, "payload_size", len(body))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(op, endpoint, 0, fmt.Errorf("%w: %w", ErrUnreachable, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.fail(op, endpoint, resp.StatusCode, fmt.Errorf("%w: read body: %w", ErrUnreachable, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(op, endpoint, resp.StatusCode, fmt.Errorf("%w: %s", ErrBadStatus, excerpt(data)))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return c.fail(op, endpoint, resp.StatusCode, fmt.Errorf("%w: decode: %w", ErrMalformedResponse, err))
	}

	c.logger.Debug("solver response", "op", op, "status", resp.StatusCode, "duration", time.Since(start))
	return nil
}

func (c *Client) observed(op string, start time.Time, err *error) {
	if c.observe != nil {
		c.observe(op, time.Since(start), *err)
	}
}

func (c *Client) fail(op, endpoint string, status int, err error) error {
	c.logger.Error("solver call failed", "op", op, "url", endpoint, "status", status, "error", err)
	return &NetworkError{Op: op, URL: endpoint, Status: status, Err: err}
}

func excerpt(b []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
