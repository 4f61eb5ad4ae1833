// Package logging holds the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. Until Setup runs it prints warnings
// to stderr.
var Logger = newLogger(os.Stderr, zerolog.WarnLevel, true)

// Setup replaces Logger and returns the one it replaced. Pretty output is
// meant for a terminal; otherwise every event is one JSON line.
func Setup(w io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	prev := Logger
	Logger = newLogger(w, level, pretty)
	return prev
}

func newLogger(w io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a level.
// Anything else is WARN.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

func Debug() *zerolog.Event { return Logger.Debug() }

func Info() *zerolog.Event { return Logger.Info() }

func Warn() *zerolog.Event { return Logger.Warn() }
