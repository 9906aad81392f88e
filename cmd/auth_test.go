// ABOUTME: Tests for the register, login, profile, logout, and status commands
// ABOUTME: Runs each command against an httptest backend with a temporary session file

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/markalston/authctl/internal/client"
	"github.com/markalston/authctl/internal/session"
)

// authBackend is a minimal auth server that issues and checks one token
type authBackend struct {
	mu          sync.Mutex
	token       string
	loginStatus int
	lastAuth    string
}

func (b *authBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/auth/register":
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"u1","email":"ada@example.com"}`))

	case "/auth/login":
		var creds client.LoginCredentials
		json.NewDecoder(r.Body).Decode(&creds)
		if b.loginStatus != 0 {
			w.WriteHeader(b.loginStatus)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		json.NewEncoder(w).Encode(client.AuthResponse{AccessToken: b.token})

	case "/auth/profile":
		b.mu.Lock()
		b.lastAuth = r.Header.Get("Authorization")
		b.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+b.token || b.token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Unauthorized","statusCode":401}`))
			return
		}
		w.Write([]byte(`{"id":"u1","firstName":"Ada","email":"ada@example.com","isActive":true,"roles":["user"]}`))

	default:
		http.NotFound(w, r)
	}
}

func newAuthBackend(t *testing.T, b *authBackend) {
	t.Helper()
	server := httptest.NewServer(b)
	t.Cleanup(server.Close)
	apiURL = server.URL
}

func TestRunRegister(t *testing.T) {
	resetFlags(t)
	newAuthBackend(t, &authBackend{})

	var buf bytes.Buffer
	data := client.RegisterData{FirstName: "Ada", Email: "ada@example.com", Password: "pw"}
	if code := runRegister(context.Background(), &buf, data); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Registered ada@example.com") {
		t.Errorf("expected registration message, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"id": "u1"`) {
		t.Errorf("expected server body, got %q", buf.String())
	}
}

func TestRunRegister_JSON(t *testing.T) {
	resetFlags(t)
	newAuthBackend(t, &authBackend{})
	jsonOutput = true

	var buf bytes.Buffer
	runRegister(context.Background(), &buf, client.RegisterData{Email: "ada@example.com"})

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["id"] != "u1" {
		t.Errorf("expected id u1, got %v", parsed["id"])
	}
}

func TestFormatRegisterJSON_EmptyBody(t *testing.T) {
	if got := formatRegisterJSON(nil); got != "{}" {
		t.Errorf("expected {}, got %q", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	dir := resetFlags(t)
	backend := &authBackend{token: "tok-123"}
	newAuthBackend(t, backend)

	var buf bytes.Buffer
	if code := runStatus(&buf, false); code != 1 {
		t.Fatalf("expected exit code 1 before login, got %d", code)
	}

	buf.Reset()
	creds := client.LoginCredentials{Email: "ada@example.com", Password: "pw"}
	if code := runLogin(context.Background(), &buf, creds); code != 0 {
		t.Fatalf("expected login to succeed, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Logged in as ada@example.com") {
		t.Errorf("expected login message, got %q", buf.String())
	}

	// token persisted for the next invocation
	if token, ok := session.NewFileStore(dir).Token(); !ok || token != "tok-123" {
		t.Fatalf("expected stored token tok-123, got %q", token)
	}

	buf.Reset()
	if code := runStatus(&buf, true); code != 0 {
		t.Fatalf("expected exit code 0 after login, got %d", code)
	}
	if !strings.Contains(buf.String(), "tok-123") {
		t.Errorf("expected token shown, got %q", buf.String())
	}

	buf.Reset()
	if code := runProfile(context.Background(), &buf); code != 0 {
		t.Fatalf("expected profile to succeed, got %d: %s", code, buf.String())
	}
	if backend.lastAuth != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", backend.lastAuth)
	}
	if !strings.Contains(buf.String(), "ada@example.com") {
		t.Errorf("expected profile output, got %q", buf.String())
	}

	buf.Reset()
	if code := runLogout(&buf); code != 0 {
		t.Fatalf("expected logout to succeed, got %d", code)
	}
	if _, ok := session.NewFileStore(dir).Token(); ok {
		t.Error("expected token removed after logout")
	}

	buf.Reset()
	if code := runStatus(&buf, false); code != 1 {
		t.Errorf("expected exit code 1 after logout, got %d", code)
	}
}

func TestRunLogin_Rejected(t *testing.T) {
	dir := resetFlags(t)
	newAuthBackend(t, &authBackend{loginStatus: http.StatusUnauthorized})

	var buf bytes.Buffer
	code := runLogin(context.Background(), &buf, client.LoginCredentials{Email: "ada@example.com", Password: "wrong"})

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Invalid credentials") {
		t.Errorf("expected server message, got %q", buf.String())
	}
	if _, ok := session.NewFileStore(dir).Token(); ok {
		t.Error("expected no token stored after rejected login")
	}
}

func TestRunLogin_NoToken(t *testing.T) {
	resetFlags(t)
	newAuthBackend(t, &authBackend{})
	jsonOutput = true

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, client.LoginCredentials{Email: "a@b.c", Password: "pw"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var parsed map[string]bool
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["authenticated"] || parsed["tokenReceived"] {
		t.Errorf("expected unauthenticated result, got %v", parsed)
	}
}

func TestFormatLoginHuman_NoToken(t *testing.T) {
	if got := formatLoginHuman("a@b.c", false); !strings.Contains(got, "no access token") {
		t.Errorf("expected missing token warning, got %q", got)
	}
}

func TestRunProfile_UnauthorizedClearsToken(t *testing.T) {
	dir := resetFlags(t)
	newAuthBackend(t, &authBackend{token: "current"})

	if err := session.NewFileStore(dir).SetToken("stale"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	code := runProfile(context.Background(), &buf)

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Unauthorized") {
		t.Errorf("expected server message, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Not logged in") {
		t.Errorf("expected login hint, got %q", buf.String())
	}
	if _, ok := session.NewFileStore(dir).Token(); ok {
		t.Error("expected stale token cleared by 401")
	}
}

func TestRunProfile_ConnectionError(t *testing.T) {
	resetFlags(t)
	server := httptest.NewServer(http.NotFoundHandler())
	apiURL = server.URL
	server.Close()

	var buf bytes.Buffer
	code := runProfile(context.Background(), &buf)

	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Error: connection error") {
		t.Errorf("expected connection error, got %q", buf.String())
	}
}

func TestRunProfile_ConnectionErrorJSON(t *testing.T) {
	resetFlags(t)
	server := httptest.NewServer(http.NotFoundHandler())
	apiURL = server.URL
	server.Close()
	jsonOutput = true

	var buf bytes.Buffer
	runProfile(context.Background(), &buf)

	var parsed map[string]map[string]string
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if parsed["error"]["message"] != "connection error" {
		t.Errorf("expected connection error reason, got %v", parsed)
	}
}

func TestRunStatus_MemoryStore(t *testing.T) {
	dir := resetFlags(t)
	memoryStore = true
	if err := session.NewFileStore(dir).SetToken("on-disk"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if code := runStatus(&buf, false); code != 1 {
		t.Errorf("expected memory store to ignore the session file, got exit %d", code)
	}
	if !strings.Contains(buf.String(), "ANONYMOUS") {
		t.Errorf("expected anonymous badge, got %q", buf.String())
	}
}
