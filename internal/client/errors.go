// ABOUTME: Failure normalization shared by the remote auth operations
// ABOUTME: Maps HTTP-layer errors to ServerError or ConnectionError, leaves others untouched

package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/markalston/authctl/internal/httpclient"
)

// ConnectionMessage is the reason reported when no usable server body exists
const ConnectionMessage = "connection error"

// ErrConnection matches any *ConnectionError via errors.Is
var ErrConnection = errors.New(ConnectionMessage)

var connectionReason = json.RawMessage(`{"message":"connection error"}`)

// ServerError is a rejected request whose response carried a body
type ServerError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message())
}

// Reason returns the server body verbatim
func (e *ServerError) Reason() json.RawMessage {
	return e.Body
}

// Message extracts a human-readable message from the body.
// Objects with a "message" string (or list of strings) yield that; anything else yields the raw text.
func (e *ServerError) Message() string {
	var obj struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &obj); err == nil && len(obj.Message) > 0 {
		var single string
		if err := json.Unmarshal(obj.Message, &single); err == nil {
			return single
		}
		var list []string
		if err := json.Unmarshal(obj.Message, &list); err == nil {
			return strings.Join(list, "; ")
		}
	}

	var text string
	if err := json.Unmarshal(e.Body, &text); err == nil {
		return text
	}
	return strings.TrimSpace(string(e.Body))
}

// ConnectionError is a failure where the server supplied nothing usable:
// no response at all, or an error status with an empty body
type ConnectionError struct {
	StatusCode int // zero when no response was received
	Cause      error
}

func (e *ConnectionError) Error() string {
	if e.Cause == nil {
		return ConnectionMessage
	}
	return ConnectionMessage + ": " + e.Cause.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrConnection) match
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// Reason returns {"message":"connection error"}
func (e *ConnectionError) Reason() json.RawMessage {
	return connectionReason
}

// Message returns the generic connection message
func (e *ConnectionError) Message() string {
	return ConnectionMessage
}

// Reason returns the structured failure reason of a normalized error.
// ok is false for unexpected errors, which carry no reason.
func Reason(err error) (json.RawMessage, bool) {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Reason(), true
	}
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Reason(), true
	}
	return nil, false
}

// Message returns a display message for any error
func Message(err error) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Message()
	}
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Message()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// normalize converts HTTP-layer failures into ServerError or ConnectionError.
// Other errors are returned unchanged so callers can tell local faults apart.
func normalize(err error) error {
	if err == nil {
		return nil
	}

	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		if hasBody(statusErr.Body) {
			return &ServerError{StatusCode: statusErr.StatusCode, Body: asJSON(statusErr.Body)}
		}
		return &ConnectionError{StatusCode: statusErr.StatusCode, Cause: err}
	}

	var transportErr *httpclient.TransportError
	if errors.As(err, &transportErr) {
		return &ConnectionError{Cause: err}
	}

	return err
}

// hasBody reports whether a response body counts as present.
// Empty bodies and falsy JSON scalars do not.
func hasBody(body []byte) bool {
	switch string(bytes.TrimSpace(body)) {
	case "", "null", `""`, "false", "0":
		return false
	}
	return true
}

// asJSON keeps valid JSON as-is and wraps anything else as a JSON string
func asJSON(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
