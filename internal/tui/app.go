// ABOUTME: Root bubbletea model for the session dashboard
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/authctl/internal/client"
	"github.com/markalston/authctl/internal/tui/icons"
	"github.com/markalston/authctl/internal/tui/loginform"
	"github.com/markalston/authctl/internal/tui/profile"
	"github.com/markalston/authctl/internal/tui/styles"
	"github.com/markalston/authctl/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenStatus Screen = iota
	ScreenLogin
	ScreenProfile
)

// AuthClient is the subset of the auth client the TUI drives
type AuthClient interface {
	Login(ctx context.Context, creds client.LoginCredentials) (*client.AuthResponse, error)
	Profile(ctx context.Context) (*client.User, error)
	Logout()
	IsAuthenticated() bool
	BaseURL() string
}

// loginDoneMsg is sent when a login request completes
type loginDoneMsg struct {
	resp *client.AuthResponse
	err  error
}

// profileLoadedMsg is sent when the profile request completes
type profileLoadedMsg struct {
	user *client.User
	err  error
}

type keyMap struct {
	Login   key.Binding
	Profile key.Binding
	Logout  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Login, k.Profile, k.Logout, k.Back, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Login:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
	Profile: key.NewBinding(key.WithKeys("p", "r"), key.WithHelp("p", "profile")),
	Logout:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// App is the root model for the TUI
type App struct {
	client  AuthClient
	logger  *slog.Logger
	screen  Screen
	width   int
	loading bool
	err     error
	notice  string
	user    *client.User

	spinner   spinner.Model
	help      help.Model
	loginForm *loginform.LoginForm
	lastEmail string
}

// New creates a new TUI application
func New(c AuthClient, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &App{
		client:  c,
		logger:  logger,
		screen:  ScreenStatus,
		spinner: s,
		help:    help.New(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
		if a.loginForm != nil {
			a.loginForm.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.screen == ScreenLogin && a.loginForm != nil {
			return a.updateLoginForm(msg)
		}
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case loginform.SubmittedMsg:
		a.loginForm = nil
		a.screen = ScreenStatus
		a.lastEmail = msg.Credentials.Email
		return a, a.startRequest(a.login(msg.Credentials))

	case loginform.CancelledMsg:
		a.loginForm = nil
		a.screen = ScreenStatus
		return a, nil

	case loginDoneMsg:
		a.loading = false
		if msg.err != nil {
			a.logger.Error("Login failed", "error", msg.err)
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		if msg.resp.AccessToken == "" {
			a.notice = "Login succeeded but the response carried no access token"
		} else {
			a.notice = "Logged in as " + a.lastEmail
		}
		return a, nil

	case profileLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.logger.Error("Profile request failed", "error", msg.err)
			a.err = msg.err
			a.user = nil
			return a, nil
		}
		a.err = nil
		a.user = msg.user
		return a, nil
	}

	if a.screen == ScreenLogin && a.loginForm != nil {
		return a.updateLoginForm(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.loading {
		if key.Matches(msg, keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Login):
		a.err = nil
		a.notice = ""
		a.loginForm = loginform.New(a.lastEmail)
		a.screen = ScreenLogin
		return a, a.loginForm.Init()

	case key.Matches(msg, keys.Profile):
		a.err = nil
		a.notice = ""
		a.screen = ScreenProfile
		return a, a.startRequest(a.fetchProfile())

	case key.Matches(msg, keys.Logout):
		a.client.Logout()
		a.user = nil
		a.err = nil
		a.notice = "Logged out"
		a.screen = ScreenStatus
		return a, nil

	case key.Matches(msg, keys.Back):
		a.err = nil
		a.screen = ScreenStatus
		return a, nil
	}

	return a, nil
}

func (a *App) updateLoginForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := a.loginForm.Update(msg)
	return a, cmd
}

// startRequest shows the spinner while cmd runs
func (a *App) startRequest(cmd tea.Cmd) tea.Cmd {
	a.loading = true
	return tea.Batch(a.spinner.Tick, cmd)
}

func (a *App) login(creds client.LoginCredentials) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.client.Login(context.Background(), creds)
		return loginDoneMsg{resp: resp, err: err}
	}
}

func (a *App) fetchProfile() tea.Cmd {
	return func() tea.Msg {
		user, err := a.client.Profile(context.Background())
		return profileLoadedMsg{user: user, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n\n")

	switch {
	case a.screen == ScreenLogin && a.loginForm != nil:
		sb.WriteString(a.loginForm.View())
	case a.loading:
		sb.WriteString(a.spinner.View() + " Contacting " + a.client.BaseURL() + "...")
	case a.err != nil:
		sb.WriteString(a.renderError())
	case a.screen == ScreenProfile && a.user != nil:
		sb.WriteString(profile.New(a.user, a.panelWidth()).View())
	default:
		sb.WriteString(a.renderStatus())
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(a.help.View(keys)))
	return sb.String()
}

func (a *App) renderHeader() string {
	title := styles.Title.UnsetMarginBottom().Render(icons.Key.String() + " authctl")
	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ",
		widgets.SessionBadge(a.client.IsAuthenticated()), "  ",
		styles.Subtitle.Render(a.client.BaseURL()),
	)
}

func (a *App) renderStatus() string {
	var sb strings.Builder
	if a.notice != "" {
		sb.WriteString(widgets.StatusText(a.notice, widgets.StatusOK))
		sb.WriteString("\n\n")
	}
	if a.client.IsAuthenticated() {
		sb.WriteString("A token is stored. Press ")
		sb.WriteString(styles.KeyStyle.Render("p"))
		sb.WriteString(" to load your profile.")
	} else {
		sb.WriteString("No token is stored. Press ")
		sb.WriteString(styles.KeyStyle.Render("l"))
		sb.WriteString(" to log in.")
	}
	return styles.Panel.Width(a.panelWidth()).Render(sb.String())
}

func (a *App) renderError() string {
	var sb strings.Builder
	sb.WriteString(widgets.StatusText(client.Message(a.err), widgets.StatusCritical))
	if !a.client.IsAuthenticated() {
		sb.WriteString("\n\n")
		sb.WriteString(styles.Subtitle.Render("Not logged in. Press l to log in."))
	}
	return styles.ErrorPanel.Width(a.panelWidth()).Render(sb.String())
}

func (a *App) panelWidth() int {
	if a.width <= 0 {
		return 60
	}
	if a.width > 84 {
		return 80
	}
	return a.width - 4
}

// Run starts the TUI
func Run(c AuthClient, logger *slog.Logger) error {
	p := tea.NewProgram(
		New(c, logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
