// ABOUTME: Tests for the credential stores
// ABOUTME: Covers replace/clear semantics and file persistence edge cases

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore_StartsEmpty(t *testing.T) {
	s := NewMemoryStore()
	if tok, ok := s.Token(); ok || tok != "" {
		t.Errorf("expected empty store, got %q", tok)
	}
}

func TestStores_SetReplaceClear(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(t.TempDir()),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			if err := s.SetToken("first"); err != nil {
				t.Fatalf("SetToken failed: %v", err)
			}
			if err := s.SetToken("second"); err != nil {
				t.Fatalf("SetToken failed: %v", err)
			}

			tok, ok := s.Token()
			if !ok || tok != "second" {
				t.Errorf("expected second, got %q (ok=%t)", tok, ok)
			}

			if err := s.Clear(); err != nil {
				t.Fatalf("Clear failed: %v", err)
			}
			if _, ok := s.Token(); ok {
				t.Error("expected no token after Clear")
			}

			// Clearing twice is not an error
			if err := s.Clear(); err != nil {
				t.Errorf("second Clear failed: %v", err)
			}
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	if err := NewFileStore(dir).SetToken("tok123"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	tok, ok := NewFileStore(dir).Token()
	if !ok || tok != "tok123" {
		t.Errorf("expected tok123 from fresh store, got %q", tok)
	}
}

func TestFileStore_FilePermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := NewFileStore(dir)

	if err := s.SetToken("secret"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600, got %o", perm)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	if err := os.WriteFile(s.Path(), []byte("not json{"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Token(); ok {
		t.Error("expected corrupt file to read as no token")
	}

	// A later login overwrites the corrupt file
	if err := s.SetToken("fresh"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if tok, _ := s.Token(); tok != "fresh" {
		t.Errorf("expected fresh, got %q", tok)
	}
}

func TestFileStore_NoConfigDir(t *testing.T) {
	s := NewFileStore("")
	if err := s.SetToken("x"); err == nil {
		t.Error("expected error without config dir")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := DefaultConfigDir(); got != "/tmp/xdg/authctl" {
		t.Errorf("expected /tmp/xdg/authctl, got %s", got)
	}
}
