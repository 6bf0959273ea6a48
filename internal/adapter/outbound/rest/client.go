// Package rest provides the uniform HTTP client for the admin API.
//
// Every outgoing request passes through the same interception points:
// the bearer token is read from the credential source and attached, a
// request ID is generated, and failures are normalized into the typed
// error taxonomy. An unauthorized response additionally forces a
// session clear and schedules navigation to login, no matter which
// caller issued the request.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkpress/inkctl/internal/domain/navigation"
)

const (
	// defaultTimeout is the per-request deadline.
	defaultTimeout = 10 * time.Second

	// defaultNavigateDelay separates the forced session clear from the
	// navigation side effect, so a caller mid-flight on the assumption
	// it is still authenticated can settle first.
	defaultNavigateDelay = 100 * time.Millisecond

	// maxResponseBodySize bounds response reads. Prevents OOM from a
	// misbehaving backend sending unbounded responses.
	maxResponseBodySize = 10 * 1024 * 1024 // 10MB
)

// CredentialSource supplies the bearer token attached to outgoing
// requests and clears the backing storage on an unauthorized response.
// The production implementation reads the persisted snapshot file on
// every call, so a token written by another process is picked up
// without restarting.
type CredentialSource interface {
	// Token returns the current bearer token, or "" when absent.
	// Absence is not an error: the request goes out without the header.
	Token() string

	// Clear removes the persisted credentials.
	Clear() error
}

// SessionControl is the in-memory half of a forced logout. The client
// holds this narrow interface rather than the full session store.
type SessionControl interface {
	// ForceClear drops the in-memory session state.
	ForceClear()
}

// Client executes requests against the admin API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration

	creds   CredentialSource
	session SessionControl
	nav     navigation.Navigator
	navDelay time.Duration

	readAttempts   uint
	retryBaseDelay time.Duration
	retryMaxDelay  time.Duration

	metrics *Metrics
	logger  *slog.Logger
}

// NewClient creates a client for the given API base URL. An empty
// baseURL falls back to the INKCTL_API_BASE_URL environment variable,
// then to the local development backend.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("INKCTL_API_BASE_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:4000/api"
	}

	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		timeout:        defaultTimeout,
		navDelay:       defaultNavigateDelay,
		readAttempts:   2,
		retryBaseDelay: time.Second,
		retryMaxDelay:  30 * time.Second,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return c
}

// BindSession attaches the in-memory session control after construction.
// The session store is built on top of this client, so the reference
// cannot be supplied at construction time. The client tolerates an
// unbound session: a 401 then clears only the persisted credentials.
func (c *Client) BindSession(ctrl SessionControl) {
	c.session = ctrl
}

// CallOption adjusts a single request.
type CallOption func(*callConfig)

type callConfig struct {
	headers     http.Header
	timeout     time.Duration
	rawBody     []byte
	contentType string
}

// WithHeader adds a header to this request only.
func WithHeader(key, value string) CallOption {
	return func(cfg *callConfig) {
		if cfg.headers == nil {
			cfg.headers = http.Header{}
		}
		cfg.headers.Set(key, value)
	}
}

// WithCallTimeout overrides the client deadline for this request only.
func WithCallTimeout(d time.Duration) CallOption {
	return func(cfg *callConfig) {
		cfg.timeout = d
	}
}

// WithRawBody sends a pre-encoded body (e.g. a multipart form) with the
// given content type instead of JSON-marshalling a payload.
func WithRawBody(body []byte, contentType string) CallOption {
	return func(cfg *callConfig) {
		cfg.rawBody = body
		cfg.contentType = contentType
	}
}

// Get issues a read request and decodes the unwrapped response payload
// into out. Reads are retried once on failures other than 4xx statuses,
// with exponential backoff.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any, opts ...CallOption) error {
	return c.doWithRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, path, query, nil, out, opts)
	})
}

// Post issues a write request. Writes are never automatically retried:
// a lost response does not prove the side effect did not happen.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, opts)
}

// Put issues a write request. Never automatically retried.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, opts)
}

// Delete issues a write request. Never automatically retried.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out, opts)
}

// envelope is the canonical response wrapper: {success, message, data}.
// The client hands callers the deserialized data, not the envelope.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, opts []CallOption) error {
	var cfg callConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	timeout := c.timeout
	if cfg.timeout > 0 {
		timeout = cfg.timeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	contentType := ""
	switch {
	case cfg.rawBody != nil:
		bodyReader = bytes.NewReader(cfg.rawBody)
		contentType = cfg.contentType
	case body != nil:
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(reqCtx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for key, values := range cfg.headers {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, start, false)
		return c.classifyTransportError(ctx, path, timeout, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		c.observe(method, start, false)
		return &NetworkError{Path: path, Cause: err, Message: networkMessage}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(method, start, false)
		return c.handleErrorResponse(path, resp.StatusCode, respBody)
	}
	c.observe(method, start, true)

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	payload := respBody
	if len(env.Data) > 0 && string(env.Data) != "null" {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("unmarshal response payload: %w", err)
	}
	return nil
}

// handleErrorResponse converts a non-2xx response into a typed error.
// For a 401 it first performs the forced logout side effects: clear the
// persisted credentials, clear the in-memory session, and schedule
// navigation after a short delay.
func (c *Client) handleErrorResponse(path string, status int, body []byte) error {
	message := extractMessage(body)

	if status == http.StatusUnauthorized {
		c.forceLogout(path, message)
		return &UnauthorizedError{Path: path, Message: message}
	}

	c.logger.Debug("request failed", "path", path, "status", status, "message", message)
	return &ServerError{Status: status, Path: path, Message: message}
}

// forceLogout runs the unauthorized side effects. It executes from
// within a response handler with no caller awaiting completion, so it
// must not depend on any particular consumer being present: each hook
// is optional.
func (c *Client) forceLogout(path, message string) {
	c.logger.Info("unauthorized response, clearing session",
		"path", path, "message", message)

	if c.creds != nil {
		if err := c.creds.Clear(); err != nil {
			c.logger.Warn("failed to clear persisted credentials", "error", err)
		}
	}
	if c.session != nil {
		c.session.ForceClear()
	}
	if c.metrics != nil {
		c.metrics.ForcedLogoutsTotal.Inc()
	}
	if c.nav != nil {
		time.AfterFunc(c.navDelay, c.nav)
	}
}

// classifyTransportError distinguishes a deadline exceeded (safe to
// retry, server may have been merely slow) from no response at all.
func (c *Client) classifyTransportError(ctx context.Context, path string, timeout time.Duration, err error) error {
	// Caller-driven cancellation is not a transport failure.
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}

	var ue *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ue) && ue.Timeout()) {
		return &TimeoutError{Path: path, Timeout: timeout, Message: timeoutMessage}
	}
	return &NetworkError{Path: path, Cause: err, Message: networkMessage}
}

func (c *Client) observe(method string, start time.Time, ok bool) {
	if c.metrics == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	c.metrics.RequestsTotal.WithLabelValues(method, status).Inc()
	c.metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
