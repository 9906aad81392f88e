package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInit_JSONFormat(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := Init("info", "json", &buf)
	l.Info("hello", "key", "value")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if line["key"] != "value" {
		t.Errorf("expected key=value, got %v", line["key"])
	}
}

func TestInit_LevelFilters(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init("warn", "text", &buf)
	slog.Info("hidden")
	slog.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("expected info to be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected warn to be logged")
	}
}

func TestOpenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	l, closer, err := OpenFile(dir, "debug")
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	l.Debug("written to file")
	closer.Close()

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("expected message in debug.log, got %q", data)
	}
}
