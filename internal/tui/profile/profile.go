// ABOUTME: Profile panel displaying the authenticated user
// ABOUTME: Shared by the TUI and the human-readable profile command output

package profile

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/authctl/internal/client"
	"github.com/markalston/authctl/internal/tui/icons"
	"github.com/markalston/authctl/internal/tui/styles"
	"github.com/markalston/authctl/internal/tui/widgets"
)

// Profile displays a user
type Profile struct {
	user  *client.User
	width int
}

// New creates a profile panel
func New(user *client.User, width int) *Profile {
	return &Profile{
		user:  user,
		width: width,
	}
}

// View renders the profile panel
func (p *Profile) View() string {
	if p.user == nil {
		return styles.Panel.Width(p.width).Render("Loading profile...")
	}
	return styles.Panel.Width(p.width).Render(Render(p.user))
}

// Render formats a user as a labelled block without a border
func Render(u *client.User) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s", icons.User, displayName(u))))
	sb.WriteString("\n")

	row := func(label, value string) {
		sb.WriteString(styles.Field(label, value))
		sb.WriteString("\n")
	}

	if u.ID != "" {
		row("ID", u.ID)
	}
	row("Email", u.Email)

	if u.IsActive != nil {
		sb.WriteString(styles.Label.Render("Active"))
		if *u.IsActive {
			sb.WriteString(widgets.StatusText("yes", widgets.StatusOK))
		} else {
			sb.WriteString(widgets.StatusText("no", widgets.StatusWarning))
		}
		sb.WriteString("\n")
	}

	if len(u.Roles) > 0 {
		row("Roles", strings.Join(u.Roles, ", "))
	}

	return lipgloss.NewStyle().Render(strings.TrimRight(sb.String(), "\n"))
}

func displayName(u *client.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}
