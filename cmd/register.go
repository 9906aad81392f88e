// ABOUTME: Register command for authctl CLI
// ABOUTME: Creates an account and prints the server's response

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
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
	registerFirstName string
	registerEmail     string
	registerPassword  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an account with POST /auth/register.

Registering does not log you in; run "authctl login" afterwards.
Missing fields are prompted for unless --no-prompt or --json is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		data := client.RegisterData{
			FirstName: registerFirstName,
			Email:     registerEmail,
			Password:  registerPassword,
		}
		err := promptMissing(
			promptField{title: "First name", value: &data.FirstName},
			promptField{title: "Email", value: &data.Email},
			promptField{title: "Password", value: &data.Password, secret: true},
		)
		if err != nil {
			os.Exit(reportError(os.Stdout, err))
		}

		exitCode := runRegister(ctx, os.Stdout, data)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(registerCmd)
}

// runRegister creates the account and returns exit code
func runRegister(ctx context.Context, w io.Writer, data client.RegisterData) int {
	c, err := newClient()
	if err != nil {
		return reportError(w, err)
	}

	body, err := c.Register(ctx, data)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatRegisterJSON(body))
	} else {
		fmt.Fprintln(w, formatRegisterHuman(data.Email, body))
	}
	return 0
}

// formatRegisterHuman formats the registration result for human readability
func formatRegisterHuman(email string, body json.RawMessage) string {
	out := widgets.StatusText("Registered "+email, widgets.StatusOK)
	if len(bytes.TrimSpace(body)) > 0 {
		var pretty bytes.Buffer
		if json.Indent(&pretty, body, "", "  ") == nil {
			out += "\n" + pretty.String()
		}
	}
	return out
}

// formatRegisterJSON returns the server's response, or {} when it sent none
func formatRegisterJSON(body json.RawMessage) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return "{}"
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		return string(body)
	}
	return pretty.String()
}
