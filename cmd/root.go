// ABOUTME: Root command for authctl CLI
// ABOUTME: Handles global flags, configuration, and client construction

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/markalston/authctl/internal/client"
	"github.com/markalston/authctl/internal/config"
	"github.com/markalston/authctl/internal/logger"
	"github.com/spf13/cobra"
)

var (
	apiURL         string
	jsonOutput     bool
	configDir      string
	envFile        string
	timeoutSeconds int
	memoryStore    bool
	noPrompt       bool

	// logOutput receives diagnostic logs; stdout stays parseable
	logOutput io.Writer = os.Stderr
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "authctl",
	Short: "Command-line client for the auth API",
	Long: `authctl talks to an auth backend: register, log in, fetch your profile, and log out.

The access token returned by login is stored in the config directory and sent as
"Authorization: Bearer <token>" on every later request. A 401 from any request
clears it.

Environment Variables:
  AUTHCTL_API_URL        Backend API URL (default: http://localhost:3000)
  AUTHCTL_TIMEOUT        Request timeout in seconds, 0 disables (default: 30)
  AUTHCTL_SESSION_STORE  file or memory (default: file)
  AUTHCTL_CONFIG_DIR     Directory for session.json (default: $XDG_CONFIG_HOME/authctl)
  LOG_LEVEL              debug, info, warn, error (default: info)
  LOG_FORMAT             text or json (default: text)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides AUTHCTL_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory holding the session file (overrides AUTHCTL_CONFIG_DIR)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file to load")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", -1, "Request timeout in seconds, 0 disables (overrides AUTHCTL_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVar(&memoryStore, "memory", false, "Keep the token in memory only for this invocation")
	rootCmd.PersistentFlags().BoolVar(&noPrompt, "no-prompt", false, "Fail instead of prompting for missing input")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig reads the environment and applies flag overrides (in priority order)
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}
	if configDir != "" {
		cfg.ConfigDir = configDir
	}
	if timeoutSeconds >= 0 {
		cfg.Timeout = time.Duration(timeoutSeconds) * time.Second
	}
	if memoryStore {
		cfg.StoreKind = config.StoreMemory
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds the auth client from configuration
func newClient() (*client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.Init(cfg.LogLevel, cfg.LogFormat, logOutput)
	if cfg.EnvFile != "" {
		log.Debug("Loaded environment file", "path", cfg.EnvFile)
	}

	return client.New(cfg.APIURL, cfg.NewStore(),
		client.WithLogger(log),
		client.WithTimeout(cfg.Timeout),
	)
}

// reportError prints err and returns the exit code:
// 1 when the server rejected the request, 2 for connection and local errors
func reportError(w io.Writer, err error) int {
	if IsJSONOutput() {
		reason, ok := client.Reason(err)
		if !ok {
			reason, _ = json.Marshal(map[string]string{"message": err.Error()})
		}
		writeJSON(w, map[string]json.RawMessage{"error": reason})
	} else {
		fmt.Fprintf(w, "Error: %s\n", client.Message(err))
	}

	var serverErr *client.ServerError
	if errors.As(err, &serverErr) {
		return 1
	}
	return 2
}

func writeJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}
