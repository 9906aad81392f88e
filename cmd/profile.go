// ABOUTME: Profile command for authctl CLI
// ABOUTME: Fetches the authenticated user's profile

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/authctl/internal/tui/profile"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the logged-in user's profile",
	Long: `Fetch GET /auth/profile using the stored token.

If the server answers 401 the stored token is cleared and you need to log in again.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfile(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

// runProfile fetches the profile and returns exit code
func runProfile(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		return reportError(w, err)
	}

	user, err := c.Profile(ctx)
	if err != nil {
		code := reportError(w, err)
		if !IsJSONOutput() && !c.IsAuthenticated() {
			fmt.Fprintln(w, `Not logged in. Run "authctl login".`)
		}
		return code
	}

	if IsJSONOutput() {
		writeJSON(w, user)
	} else {
		fmt.Fprintln(w, profile.Render(user))
	}
	return 0
}
