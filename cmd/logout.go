// ABOUTME: Logout command for authctl CLI
// ABOUTME: Forgets the stored token without contacting the server

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	Long:  `Remove the stored access token. No request is sent to the server.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	c, err := newClient()
	if err != nil {
		return reportError(w, err)
	}

	c.Logout()

	if IsJSONOutput() {
		writeJSON(w, map[string]bool{"authenticated": c.IsAuthenticated()})
	} else {
		fmt.Fprintln(w, "Logged out")
	}
	return 0
}
