// Package logger builds the application's zerolog loggers.
//
// Local environments get a human-friendly console writer; everything else
// logs JSON to stderr for ingestion by the log pipeline.
package logger

import (
	"os"
	"strings"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// New constructs the main application logger for the given environment and
// level string. Unknown levels fall back to info.
func New(env, level string) *zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if env == "local" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(logLevel).
			With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			Level(logLevel).
			With().Timestamp().Logger()
	}

	return &logger
}

// NewPgxLogger returns the logger handed to the pgx tracelog adapter. SQL
// logging is noisy, so it runs one level quieter than the app logger unless
// debug logging is on.
func NewPgxLogger(globalLevel zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(globalLevel).
		With().Timestamp().Str("component", "pgx").Logger()
}

// GetPgxTraceLogLevel maps the zerolog level onto pgx tracelog levels.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelInfo
	}
}
