package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInit_FileLogging(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "logs", "courier.log")

	logger, closeFn := Init(&Config{Level: "debug", File: file})
	logger.Info("dispatched", "transport", "telegram")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"transport":"telegram"`) {
		t.Errorf("log file missing JSON attrs, got: %s", data)
	}
}

func TestInit_NilConfig(t *testing.T) {
	logger, closeFn := Init(nil)
	defer closeFn() //nolint:errcheck // stderr-only close is a no-op
	if logger == nil {
		t.Fatal("expected logger")
	}
	if !logger.Enabled(nil, slog.LevelInfo) {
		t.Error("expected info level enabled by default")
	}
	if logger.Enabled(nil, slog.LevelDebug) {
		t.Error("expected debug disabled by default")
	}
}
