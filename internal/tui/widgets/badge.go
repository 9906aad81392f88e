// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges for session state and request outcomes

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/authctl/internal/tui/icons"
	"github.com/markalston/authctl/internal/tui/styles"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusNeutral
)

// inkLight and inkDark are the text color on each badge background
var (
	inkLight = lipgloss.Color("#FFFFFF")
	inkDark  = lipgloss.Color("#000000")
)

func colors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return styles.Success, inkLight
	case StatusWarning:
		return styles.Warning, inkDark
	case StatusCritical:
		return styles.Danger, inkLight
	default:
		return styles.Muted, inkLight
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := colors(level)

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// SessionBadge renders the authenticated/anonymous badge
func SessionBadge(authenticated bool) string {
	if authenticated {
		return Badge(icons.Lock.String()+" AUTHENTICATED", StatusOK)
	}
	return Badge(icons.Unlock.String()+" ANONYMOUS", StatusNeutral)
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	bg, _ := colors(level)
	style := lipgloss.NewStyle().Foreground(bg)

	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := colors(level)
	return fmt.Sprintf("%s %s", StatusIcon(level), lipgloss.NewStyle().Foreground(bg).Render(text))
}
