// ABOUTME: Auth API client: register, login, profile, and local session helpers
// ABOUTME: Built on the hook-chained HTTP client with the token kept in a session store

package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/markalston/authctl/internal/httpclient"
	"github.com/markalston/authctl/internal/session"
)

// DefaultBaseURL is the backend address used when none is configured
const DefaultBaseURL = "http://localhost:3000"

// Endpoint paths
const (
	RegisterPath = "/auth/register"
	LoginPath    = "/auth/login"
	ProfilePath  = "/auth/profile"
)

// User represents the /auth/profile response
type User struct {
	ID        string   `json:"id,omitempty"`
	FirstName string   `json:"firstName"`
	Email     string   `json:"email"`
	IsActive  *bool    `json:"isActive,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

// RegisterData is the /auth/register request body
type RegisterData struct {
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginCredentials is the /auth/login request body
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LogValue keeps the password out of logs
func (c LoginCredentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", c.Email),
		slog.String("password", "[REDACTED]"),
	)
}

// AuthResponse represents the /auth/login response
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}

// Client is the auth API client
type Client struct {
	http   *httpclient.Client
	store  session.Store
	logger *slog.Logger
}

type options struct {
	logger     *slog.Logger
	timeout    *time.Duration
	httpClient *http.Client
	hooks      []httpclient.Hook
}

// Option configures a Client
type Option func(*options)

// WithLogger sets the logger used for diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = &d
	}
}

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithHooks appends extra hooks inside the built-in ones
func WithHooks(hooks ...httpclient.Hook) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hooks...)
	}
}

// New creates an auth client for baseURL that keeps its token in store
func New(baseURL string, store session.Store, opts ...Option) (*Client, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	hooks := []httpclient.Hook{
		httpclient.LogRequests(o.logger),
		httpclient.BearerAuth(store),
		httpclient.ClearOnUnauthorized(store, o.logger),
	}
	hooks = append(hooks, o.hooks...)

	httpOpts := []httpclient.Option{}
	if o.httpClient != nil {
		httpOpts = append(httpOpts, httpclient.WithHTTPClient(o.httpClient))
	}
	if o.timeout != nil {
		httpOpts = append(httpOpts, httpclient.WithTimeout(*o.timeout))
	}
	httpOpts = append(httpOpts, httpclient.WithHooks(hooks...))

	hc, err := httpclient.New(baseURL, httpOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   hc,
		store:  store,
		logger: o.logger,
	}, nil
}

// BaseURL returns the backend address
func (c *Client) BaseURL() string {
	return c.http.BaseURL()
}

// Register calls POST /auth/register and returns the raw response body
func (c *Client) Register(ctx context.Context, data RegisterData) (json.RawMessage, error) {
	var body json.RawMessage
	if err := c.http.Post(ctx, RegisterPath, data, &body); err != nil {
		return nil, normalize(err)
	}
	if len(body) == 0 {
		return nil, nil
	}
	return asJSON(body), nil
}

// Login calls POST /auth/login and stores the returned token.
// A response without a token, or one that is not a JSON object, is
// returned as an empty AuthResponse and only logged.
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (*AuthResponse, error) {
	c.logger.Debug("Login requested", "credentials", creds)

	var body json.RawMessage
	if err := c.http.Post(ctx, LoginPath, creds, &body); err != nil {
		err = normalize(err)
		c.logger.Debug("Login failed", "reason", Message(err))
		return nil, err
	}

	var resp AuthResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			c.logger.Debug("Login response is not a JSON object", "error", err)
			resp = AuthResponse{}
		}
	}

	if resp.AccessToken == "" {
		c.logger.Warn("Login response carried no access token")
		return &resp, nil
	}

	if err := c.store.SetToken(resp.AccessToken); err != nil {
		return nil, err
	}
	c.logger.Debug("Access token stored")
	return &resp, nil
}

// Profile calls GET /auth/profile with the stored token
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.http.Get(ctx, ProfilePath, &user); err != nil {
		return nil, normalize(err)
	}
	return &user, nil
}

// Logout forgets the stored token. No request is sent.
func (c *Client) Logout() {
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("Failed to clear stored token", "error", err)
	}
}

// IsAuthenticated reports whether a token is stored
func (c *Client) IsAuthenticated() bool {
	_, ok := c.store.Token()
	return ok
}

// Token returns the stored token, if any
func (c *Client) Token() (string, bool) {
	return c.store.Token()
}
