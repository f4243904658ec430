// Package logging builds the zerolog loggers used across retouch and carries
// them through context.Context.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const logDirPerm = 0o750

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// FileConfig controls optional file output.
type FileConfig struct {
	Enabled       bool
	Dir           string
	MaxSizeMB     int
	MaxBackups    int
	MaxAgeDays    int
	Compress      bool
	WriteToStderr bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new zerolog logger writing to stderr.
func New(cfg Config) zerolog.Logger {
	return newWithWriter(cfg, os.Stderr, true)
}

func newWithWriter(cfg Config, w io.Writer, colors bool) zerolog.Logger {
	output := w
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: cfg.TimeFormat,
			NoColor:    !colors,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromConfigValues creates a stderr logger from raw config strings.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	if format == "json" || format == "console" {
		cfg.Format = format
	}
	return New(cfg)
}

// NewFromEnv creates a logger based on environment variables
// RETOUCH_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// RETOUCH_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("RETOUCH_LOG_LEVEL"), os.Getenv("RETOUCH_LOG_FORMAT"))
}

// NewWithFile creates a logger that writes to a rotated file and, optionally,
// stderr. Interactive TUI commands disable stderr so log lines do not tear
// the screen. The returned cleanup closes the file.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	noop := func() {}

	if !fileCfg.Enabled {
		if fileCfg.WriteToStderr {
			return New(cfg), noop, nil
		}
		return zerolog.Nop(), noop, nil
	}

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(fileCfg.Dir, logDirPerm); err != nil {
		return New(cfg), noop, fmt.Errorf("create log dir: %w", err)
	}

	rotator, err := NewLogRotator(fs, filepath.Join(fileCfg.Dir, "retouch.log"), RotateOptions{
		MaxSizeMB:  fileCfg.MaxSizeMB,
		MaxBackups: fileCfg.MaxBackups,
		MaxAgeDays: fileCfg.MaxAgeDays,
		Compress:   fileCfg.Compress,
	})
	if err != nil {
		return New(cfg), noop, err
	}

	fileLogger := newWithWriter(cfg, rotator, false)
	if fileCfg.WriteToStderr {
		multi := zerolog.MultiLevelWriter(rotator, os.Stderr)
		fileLogger = newWithWriter(cfg, multi, false)
	}

	cleanup := func() {
		_ = rotator.Close()
	}
	return fileLogger, cleanup, nil
}
