// ABOUTME: Preconfigured JSON HTTP client with a before-send/after-receive hook chain
// ABOUTME: All API calls go through Do so hooks see every request and response

package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when no other timeout is configured
const DefaultTimeout = 30 * time.Second

// StatusError is returned when the server answered with a non-2xx status
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: backend returned status %d", e.Method, e.URL, e.StatusCode)
}

// TransportError is returned when no response was received
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client sends JSON requests relative to a fixed base URL
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	headers    http.Header
	hooks      []Hook
	timeout    *time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
// A client passed to WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// WithHeader adds a default header sent with every request
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithHooks appends hooks to the chain. The first hook is the outermost.
func WithHooks(hooks ...Hook) Option {
	return func(c *Client) {
		c.hooks = append(c.hooks, hooks...)
	}
}

// New creates a client for baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		headers: http.Header{},
	}
	c.headers.Set("Content-Type", "application/json")
	c.headers.Set("Accept", "application/json")

	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get issues a GET request and decodes the response into out
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with in as the JSON body and decodes the response into out
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, in, out)
}

// Do sends one request through the hook chain.
// A nil in sends no body; a nil out discards the response body.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range c.headers {
		req.Header[key] = append([]string(nil), values...)
	}

	// Hooks that already ran still see the outcome when a later BeforeSend rejects
	var (
		resp *http.Response
		data []byte
		ran  = len(c.hooks)
	)
	for i, h := range c.hooks {
		if err = h.BeforeSend(req); err != nil {
			ran = i
			break
		}
	}
	if err == nil {
		resp, data, err = c.send(req)
	}

	for i := ran - 1; i >= 0; i-- {
		err = c.hooks[i].AfterReceive(req, resp, err)
	}
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	// Raw targets take the body as sent, JSON or not
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append(json.RawMessage(nil), data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// send transmits req and buffers the body so hooks and callers can both read it
func (c *Client) send(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: requestError(req.Context(), err)}
	}
	defer resp.Body.Close()

	// A status line was received, so a failed body read still reports the status
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		data = nil
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return resp, nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
		}
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, data, &StatusError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       data,
		}
	}
	return resp, data, nil
}

// requestError prefers the context error so callers can match it with errors.Is
func requestError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("request aborted: %w", ctxErr)
	}
	return err
}
