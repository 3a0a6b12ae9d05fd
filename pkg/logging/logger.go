// Package logging provides structured logging for docs-gen using zerolog.
// Terminals get human-readable console output; everything else gets JSON.
//
// Example usage:
//
//	log := logging.Default()
//	log.Warn().Str("route", "[GET] api/users").Msg("Skipping modified route")
//
//	ctx := logging.WithLogger(context.Background(), log)
//	logging.FromContext(ctx).Debug().Msg("Using logger from context")
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = createDefaultLogger()
}

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum log level to output (debug, info, warn, error)
	Level string
	// Format is json, console or auto
	Format string
	// NoColor disables color output in console mode
	NoColor bool
	// Output receives the log lines; defaults to stderr
	Output io.Writer
}

func createDefaultLogger() zerolog.Logger {
	format := "auto"
	if os.Getenv("LOG_FORMAT") == "json" {
		format = "json"
	}
	return NewFromConfig(Config{
		Level:   levelFromEnv(),
		Format:  format,
		NoColor: os.Getenv("NO_COLOR") != "",
	})
}

// NewFromConfig creates a logger from configuration.
func NewFromConfig(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	useConsole := cfg.Format == "console" || (cfg.Format == "auto" && out == os.Stderr && isatty())
	if useConsole {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor,
		}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a new JSON logger writing to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// NewConsole creates a console logger for human-readable output.
func NewConsole() zerolog.Logger {
	return NewFromConfig(Config{Format: "console", NoColor: os.Getenv("NO_COLOR") != ""})
}

func isatty() bool {
	fileInfo, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

func levelFromEnv() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	if os.Getenv("DEBUG") != "" {
		return "debug"
	}
	return "info"
}
