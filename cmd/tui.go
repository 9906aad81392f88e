// ABOUTME: TUI command for authctl CLI
// ABOUTME: Launches the interactive session dashboard

package cmd

import (
	"fmt"

	"github.com/markalston/authctl/internal/client"
	"github.com/markalston/authctl/internal/logger"
	"github.com/markalston/authctl/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive session dashboard",
	Long: `Log in, view your profile, and log out from a terminal UI.

Diagnostics go to debug.log in the config directory so they do not corrupt the screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, closer, err := logger.OpenFile(cfg.ConfigDir, cfg.LogLevel)
		if err != nil {
			log = logger.Discard()
		} else {
			defer closer.Close()
		}

		c, err := client.New(cfg.APIURL, cfg.NewStore(),
			client.WithLogger(log),
			client.WithTimeout(cfg.Timeout),
		)
		if err != nil {
			return err
		}

		if err := tui.Run(c, log); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// ensure the real client satisfies the TUI's interface
var _ tui.AuthClient = (*client.Client)(nil)
