// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() for terminal logging and OpenFile() for the TUI debug log.

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Init configures the default slog logger to write to w.
// level: debug, info, warn, error (default: info)
// format: text, json (default: text)
func Init(level, format string, w io.Writer) *slog.Logger {
	l := slog.New(newHandler(w, parseLevel(level), format))
	slog.SetDefault(l)
	return l
}

// OpenFile returns a logger appending to debug.log in configDir.
// The TUI logs here so output does not corrupt the terminal.
func OpenFile(configDir, level string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(newHandler(f, parseLevel(level), "text")), f, nil
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
