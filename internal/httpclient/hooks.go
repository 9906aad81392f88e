// ABOUTME: Request/response hooks composed around Client.Do
// ABOUTME: Bearer token injection, token clearing on 401, and request logging

package httpclient

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Hook observes every request before it is sent and every outcome after it returns.
// BeforeSend hooks run in registration order; an error aborts the request unsent.
// AfterReceive hooks run in reverse order and return the error to propagate.
type Hook interface {
	BeforeSend(req *http.Request) error
	AfterReceive(req *http.Request, resp *http.Response, err error) error
}

// HookFuncs adapts plain functions to Hook. Nil fields are no-ops.
type HookFuncs struct {
	Before func(req *http.Request) error
	After  func(req *http.Request, resp *http.Response, err error) error
}

// BeforeSend implements Hook
func (h HookFuncs) BeforeSend(req *http.Request) error {
	if h.Before == nil {
		return nil
	}
	return h.Before(req)
}

// AfterReceive implements Hook
func (h HookFuncs) AfterReceive(req *http.Request, resp *http.Response, err error) error {
	if h.After == nil {
		return err
	}
	return h.After(req, resp, err)
}

// TokenSource supplies the current bearer token
type TokenSource interface {
	Token() (string, bool)
}

// TokenClearer drops the current bearer token
type TokenClearer interface {
	Clear() error
}

// BearerAuth sets Authorization: Bearer <token> whenever a token is stored.
// An Authorization header already on the request is overwritten.
func BearerAuth(tokens TokenSource) Hook {
	return HookFuncs{
		Before: func(req *http.Request) error {
			if token, ok := tokens.Token(); ok {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			return nil
		},
	}
}

// ClearOnUnauthorized drops the stored token when the server answers 401.
// The original error is still returned to the caller.
func ClearOnUnauthorized(tokens TokenClearer, logger *slog.Logger) Hook {
	if logger == nil {
		logger = slog.Default()
	}
	return HookFuncs{
		After: func(_ *http.Request, _ *http.Response, err error) error {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
				if clearErr := tokens.Clear(); clearErr != nil {
					logger.Warn("Failed to clear stored token", "error", clearErr)
				} else {
					logger.Debug("Stored token cleared after 401", "url", statusErr.URL)
				}
			}
			return err
		},
	}
}

// requestLogger logs request start and completion with a correlation ID
type requestLogger struct {
	logger  *slog.Logger
	started sync.Map // *http.Request -> time.Time
}

const requestIDHeader = "X-Request-ID"

// LogRequests logs every request at debug level
func LogRequests(logger *slog.Logger) Hook {
	if logger == nil {
		logger = slog.Default()
	}
	return &requestLogger{logger: logger}
}

func (l *requestLogger) BeforeSend(req *http.Request) error {
	if req.Header.Get(requestIDHeader) == "" {
		req.Header.Set(requestIDHeader, generateRequestID())
	}
	l.started.Store(req, time.Now())

	l.logger.Debug("Request started",
		"request_id", req.Header.Get(requestIDHeader),
		"method", req.Method,
		"path", sanitizePath(req.URL.Path),
	)
	return nil
}

func (l *requestLogger) AfterReceive(req *http.Request, resp *http.Response, err error) error {
	attrs := []any{
		"request_id", req.Header.Get(requestIDHeader),
		"method", req.Method,
		"path", sanitizePath(req.URL.Path),
	}
	if start, ok := l.started.LoadAndDelete(req); ok {
		attrs = append(attrs, "latency_ms", time.Since(start.(time.Time)).Milliseconds())
	}

	if resp == nil {
		attrs = append(attrs, "error", err)
		l.logger.Debug("Request failed", attrs...)
		return err
	}

	attrs = append(attrs, "status", resp.StatusCode)
	l.logger.Debug("Request completed", attrs...)
	return err
}

// generateRequestID creates a random request ID
func generateRequestID() string {
	return uuid.New().String()
}

// sanitizePath strips control characters so paths cannot forge log lines
func sanitizePath(path string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, path)
}
