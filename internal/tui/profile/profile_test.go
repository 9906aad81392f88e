// ABOUTME: Tests for the profile panel
// ABOUTME: Validates user fields render and optional fields are skipped

package profile

import (
	"strings"
	"testing"

	"github.com/markalston/authctl/internal/client"
)

func TestProfileView(t *testing.T) {
	active := true
	user := &client.User{
		ID:        "u1",
		FirstName: "Ada",
		Email:     "ada@example.com",
		IsActive:  &active,
		Roles:     []string{"user", "admin"},
	}

	view := New(user, 60).View()

	for _, expected := range []string{"Ada", "ada@example.com", "u1", "user, admin", "yes"} {
		if !strings.Contains(view, expected) {
			t.Errorf("expected view to contain %q\nView:\n%s", expected, view)
		}
	}
}

func TestProfileOptionalFields(t *testing.T) {
	user := &client.User{FirstName: "Ada", Email: "ada@example.com"}

	out := Render(user)

	if strings.Contains(out, "Roles") {
		t.Error("expected no roles row when roles are absent")
	}
	if strings.Contains(out, "Active") {
		t.Error("expected no active row when isActive is absent")
	}
}

func TestProfileFallsBackToEmail(t *testing.T) {
	out := Render(&client.User{Email: "anon@example.com"})
	if !strings.Contains(out, "anon@example.com") {
		t.Errorf("expected email as title, got %s", out)
	}
}

func TestProfileNilUser(t *testing.T) {
	if view := New(nil, 40).View(); !strings.Contains(view, "Loading") {
		t.Error("expected loading message when user is nil")
	}
}
