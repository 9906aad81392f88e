// ABOUTME: Login form as a bubbletea model
// ABOUTME: Wraps a huh form collecting email and password for the TUI

package loginform

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/markalston/authctl/internal/client"
	"github.com/markalston/authctl/internal/tui/styles"
)

// SubmittedMsg is sent when the form is completed
type SubmittedMsg struct {
	Credentials client.LoginCredentials
}

// CancelledMsg is sent when the form is abandoned
type CancelledMsg struct{}

// LoginForm collects login credentials
type LoginForm struct {
	form     *huh.Form
	email    string
	password string
}

// New creates a login form, pre-filling email when known
func New(email string) *LoginForm {
	f := &LoginForm{email: email}
	f.form = huh.NewForm(
		huh.NewGroup(Fields(&f.email, &f.password)...).
			Title("Log in").
			Description("Credentials are sent to the auth backend; only the token is kept"),
	).WithTheme(styles.FormTheme())
	return f
}

// Fields returns the email and password inputs bound to the given values
func Fields(email, password *string) []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(email).
			Validate(ValidateRequired("email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(ValidateRequired("password")),
	}
}

// ValidateRequired rejects blank input. Format checks are left to the server.
func ValidateRequired(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

// Credentials returns the values entered so far
func (f *LoginForm) Credentials() client.LoginCredentials {
	return client.LoginCredentials{
		Email:    strings.TrimSpace(f.email),
		Password: f.password,
	}
}

// Init implements tea.Model
func (f *LoginForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *LoginForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateCompleted:
		creds := f.Credentials()
		return f, func() tea.Msg { return SubmittedMsg{Credentials: creds} }
	case huh.StateAborted:
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	return f, cmd
}

// View implements tea.Model
func (f *LoginForm) View() string {
	return f.form.View()
}
