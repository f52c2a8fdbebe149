// Package logging builds the process zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	// Out defaults to stderr.
	Out io.Writer
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// Parse builds a Config from level and format names. Empty values keep the
// defaults.
func Parse(level, format string) (Config, error) {
	cfg := DefaultConfig()
	if level = strings.TrimSpace(strings.ToLower(level)); level != "" {
		lvl, err := zerolog.ParseLevel(level)
		if err != nil {
			return Config{}, fmt.Errorf("log level %q: %w", level, err)
		}
		cfg.Level = lvl
	}
	switch format = strings.TrimSpace(strings.ToLower(format)); format {
	case "":
	case "json", "console":
		cfg.Format = format
	default:
		return Config{}, fmt.Errorf("log format must be json or console, got %q", format)
	}
	return cfg, nil
}

// New creates a new zerolog logger with the given configuration.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	var output io.Writer = out
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}
