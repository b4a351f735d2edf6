// Package logging configures the process-wide slog logger for the courier
// CLI: human-readable text on stderr, optionally duplicated as JSON to a
// rotating log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level, one of "debug", "info", "warn", "error".
	Level string
	// File, when set, enables JSON logging to a rotating file.
	File string
	// MaxSizeMB caps the log file size before rotation (default 10).
	MaxSizeMB int
	// MaxBackups caps the number of rotated files kept (default 3).
	MaxBackups int
}

// Init builds the logger from cfg and installs it as slog's default.
// It returns the logger and a close function for the file writer, if any.
func Init(cfg *Config) (*slog.Logger, func() error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	level := parseLevel(c.Level)

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}
	closeFn := func() error { return nil }

	if c.File != "" {
		if c.MaxSizeMB == 0 {
			c.MaxSizeMB = 10
		}
		if c.MaxBackups == 0 {
			c.MaxBackups = 3
		}
		// lumberjack does not create directories
		_ = os.MkdirAll(filepath.Dir(c.File), 0o755)
		rotator := &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			Compress:   true,
		}
		handlers = append(handlers, slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: level}))
		closeFn = rotator.Close
	}

	var logger *slog.Logger
	if len(handlers) == 1 {
		logger = slog.New(handlers[0])
	} else {
		logger = slog.New(multiHandler(handlers))
	}
	slog.SetDefault(logger)
	return logger, closeFn
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
