// Package logger configures the process-wide zerolog logger.
//
// Both servers speak MCP over stdout, so every log line goes to stderr.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

// SetLevel applies a textual log level, defaulting to info when unparseable.
func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// With returns a child logger tagged with a component name.
func With(component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}
