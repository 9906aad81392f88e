// ABOUTME: Configuration loader for the authctl CLI
// ABOUTME: Loads settings from an optional .env file and environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/markalston/authctl/internal/session"
)

// Session store kinds
const (
	StoreFile   = "file"
	StoreMemory = "memory"
)

const defaultAPIURL = "http://localhost:3000"

type Config struct {
	APIURL    string
	Timeout   time.Duration // zero disables the request timeout
	StoreKind string        // file or memory (default: file)
	ConfigDir string        // where the session file lives
	LogLevel  string
	LogFormat string
	EnvFile   string // .env file that was loaded, empty if none
}

// Load reads configuration from the environment. Values from envFile (if it
// exists) are applied first without overriding variables already set.
// Callers apply their overrides and then call Validate.
func Load(envFile string) (*Config, error) {
	cfg := &Config{}

	if envFile != "" {
		err := godotenv.Load(envFile)
		switch {
		case err == nil:
			cfg.EnvFile = envFile
		case errors.Is(err, os.ErrNotExist):
			// optional
		default:
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg.APIURL = strings.TrimRight(getEnv("AUTHCTL_API_URL", defaultAPIURL), "/")
	cfg.Timeout = time.Duration(getEnvInt("AUTHCTL_TIMEOUT", 30)) * time.Second
	cfg.StoreKind = strings.ToLower(getEnv("AUTHCTL_SESSION_STORE", StoreFile))
	cfg.ConfigDir = getEnv("AUTHCTL_CONFIG_DIR", session.DefaultConfigDir())
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	return cfg, nil
}

// Validate checks field values, including any overrides applied after Load
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("AUTHCTL_API_URL must be an absolute http(s) URL, got %q", c.APIURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("AUTHCTL_TIMEOUT must not be negative, got %s", c.Timeout)
	}
	switch c.StoreKind {
	case StoreFile:
		if c.ConfigDir == "" {
			return errors.New("no config directory for the session file; set AUTHCTL_CONFIG_DIR")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("AUTHCTL_SESSION_STORE must be %q or %q, got %q", StoreFile, StoreMemory, c.StoreKind)
	}
	return nil
}

// NewStore builds the session store selected by StoreKind
func (c *Config) NewStore() session.Store {
	if c.StoreKind == StoreMemory {
		return session.NewMemoryStore()
	}
	return session.NewFileStore(c.ConfigDir)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
