// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel `mapstructure:"level"`

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool `mapstructure:"pretty"`

	// Service is added to every entry when set.
	Service string `mapstructure:"service"`

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer `mapstructure:"-"`
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(output).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	logger := ctx.Logger()

	log.Logger = logger

	return logger
}

// ParseLevel converts a LogLevel to a zerolog.Level. Unknown or empty
// levels fall back to info.
func ParseLevel(level LogLevel) zerolog.Level {
	s := strings.ToLower(strings.TrimSpace(string(level)))
	if s == "warning" {
		s = string(LevelWarn)
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return l
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Every API request (url, request id, status, duration)
//   - Collection walks (pages, items)
//
// Info: Normal operation events
//   - Server startup/shutdown
//   - Tracing exporter setup
//
// Warn: Failed requests with a classified error (network, client, server)
//
// Error: Conditions requiring attention
//   - Proxy handler failures that are not classified
//   - Configuration errors
//
// Context Fields:
//   - component: Emitting component (pokedex-client, pokedex-proxy)
//   - resource: Resource type (Pokemon, Generation)
//   - path: Request path relative to the base URL
//   - status: HTTP status code
//   - duration: Request duration
//   - error_class: Error classification (network, client, server)
//   - request_id: X-Request-ID sent with the request
