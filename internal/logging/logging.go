// Package logging configures the zerolog root logger for the CLI and the
// service.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a logger with the given level ("debug", "info", ...) and format
// ("console" or "json"). Unknown levels fall back to info.
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if strings.EqualFold(format, "json") {
		l = zerolog.New(os.Stderr)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return l.Level(lvl).With().Timestamp().Logger()
}
