// ABOUTME: Credential store holding the single bearer token for the current session
// ABOUTME: Provides an in-memory store and a file store in the XDG config directory

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TokenKey is the name the token is persisted under
const TokenKey = "token"

// Store holds at most one token. A new token replaces the previous one.
type Store interface {
	Token() (string, bool)
	SetToken(token string) error
	Clear() error
}

// MemoryStore keeps the token in process memory only
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token returns the stored token, if any
func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken replaces the stored token
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored token
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileStore persists the token as JSON in a config directory so it
// survives between CLI invocations
type FileStore struct {
	mu        sync.Mutex
	configDir string
}

// NewFileStore creates a file store rooted at configDir
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "authctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "authctl")
}

// Path returns the location of the session file
func (s *FileStore) Path() string {
	return filepath.Join(s.configDir, "session.json")
}

// Token reads the token from disk. A missing or unreadable file means no token.
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false
	}
	token := values[TokenKey]
	return token, token != ""
}

// SetToken writes the token to disk, replacing any previous one
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.configDir == "" {
		return errors.New("session: no config directory")
	}
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return fmt.Errorf("session: create config dir: %w", err)
	}

	data, err := json.MarshalIndent(map[string]string{TokenKey: token}, "", "  ")
	if err != nil {
		return err
	}

	// Write then rename so a crash never leaves a half-written file
	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("session: write: %w", err)
	}
	return nil
}

// Clear deletes the session file
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, err
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		// Corrupt file, treat as logged out
		return nil, err
	}
	return values, nil
}
