// ABOUTME: Status command for authctl CLI
// ABOUTME: Reports whether a token is stored, for scripts and humans

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/markalston/authctl/internal/tui/styles"
	"github.com/markalston/authctl/internal/tui/widgets"
	"github.com/spf13/cobra"
)

var statusShowToken bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether you are logged in",
	Long: `Report whether an access token is stored. No request is sent.

Exit Codes:
  0  A token is stored
  1  No token is stored
  2  Configuration error`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runStatus(os.Stdout, statusShowToken)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusShowToken, "show-token", false, "Print the stored token")
	rootCmd.AddCommand(statusCmd)
}

// sessionStatus is the JSON shape of the status command
type sessionStatus struct {
	Backend       string `json:"backend"`
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token,omitempty"`
}

// runStatus reports the session state and returns exit code
func runStatus(w io.Writer, showToken bool) int {
	c, err := newClient()
	if err != nil {
		return reportError(w, err)
	}

	st := sessionStatus{Backend: c.BaseURL()}
	token, ok := c.Token()
	st.Authenticated = ok
	if showToken {
		st.Token = token
	}

	if IsJSONOutput() {
		writeJSON(w, st)
	} else {
		fmt.Fprintln(w, formatStatusHuman(st))
	}

	if !st.Authenticated {
		return 1
	}
	return 0
}

// formatStatusHuman formats session status for human readability
func formatStatusHuman(st sessionStatus) string {
	var sb strings.Builder
	sb.WriteString(widgets.SessionBadge(st.Authenticated))
	sb.WriteString("\n")
	sb.WriteString(styles.Field("Backend", st.Backend))
	if st.Token != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Field("Token", st.Token))
	}
	return sb.String()
}
