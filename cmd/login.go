// ABOUTME: Login command for authctl CLI
// ABOUTME: Exchanges credentials for an access token and stores it

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/authctl/internal/client"
	"github.com/markalston/authctl/internal/tui/widgets"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the access token",
	Long: `Log in with POST /auth/login. The returned access token is stored in the
session file and sent with every later request.

Missing fields are prompted for unless --no-prompt or --json is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		creds := client.LoginCredentials{Email: loginEmail, Password: loginPassword}
		err := promptMissing(
			promptField{title: "Email", value: &creds.Email},
			promptField{title: "Password", value: &creds.Password, secret: true},
		)
		if err != nil {
			os.Exit(reportError(os.Stdout, err))
		}

		exitCode := runLogin(ctx, os.Stdout, creds)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin logs in and returns exit code
func runLogin(ctx context.Context, w io.Writer, creds client.LoginCredentials) int {
	c, err := newClient()
	if err != nil {
		return reportError(w, err)
	}

	resp, err := c.Login(ctx, creds)
	if err != nil {
		return reportError(w, err)
	}

	tokenReceived := resp.AccessToken != ""
	if IsJSONOutput() {
		writeJSON(w, map[string]bool{
			"authenticated": c.IsAuthenticated(),
			"tokenReceived": tokenReceived,
		})
	} else {
		fmt.Fprintln(w, formatLoginHuman(creds.Email, tokenReceived))
	}
	return 0
}

// formatLoginHuman formats the login outcome for human readability
func formatLoginHuman(email string, tokenReceived bool) string {
	if !tokenReceived {
		return widgets.StatusText("Login succeeded but the response carried no access token", widgets.StatusWarning)
	}
	return widgets.StatusText("Logged in as "+email, widgets.StatusOK)
}
