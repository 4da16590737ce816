package app

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger on w at the named level.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	lvl := ParseLogLevel(level)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().Timestamp().Logger()
	if lvl <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// ParseLogLevel maps a level name to a zerolog level. Unknown names mean warn.
func ParseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
