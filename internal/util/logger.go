package util

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger = zerolog.Logger

// LogLevel represents available log levels
type LogLevel = int

// Log levels
const (
	TraceLevel LogLevel = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ZerologLevel maps a LogLevel onto zerolog's levels. Unknown values map to Info.
func ZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case TraceLevel:
		return zerolog.TraceLevel
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// InitializeLogger sets up the global logger with the specified configuration.
// Output goes to out, or stderr when out is nil so test output stays clean.
func InitializeLogger(level LogLevel, out io.Writer) {
	// Set time format to ISO8601
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ZerologLevel(level))

	if out == nil {
		out = os.Stderr
	}
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}

	ctx := zerolog.New(output).With().Timestamp()
	if level == TraceLevel {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	log.Debug().Msg("Logger initialized")
}

// GetLogger returns a configured logger for a specific component
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// GetLeveledLogger is [GetLogger] with a per-logger minimum level on top of the
// global one, so an engine configured for warnings stays quiet under a chatty host.
func GetLeveledLogger(component string, level LogLevel) zerolog.Logger {
	return GetLogger(component).Level(ZerologLevel(level))
}
