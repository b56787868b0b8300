// Package logging provides the zerolog backend for the engine's Logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options configures a logger
type Options struct {
	Component string
	// Level is a zerolog level name; empty means info
	Level string
	// Debug forces the debug level and switches to console output
	Debug bool
	// Out defaults to stderr so reports on stdout stay clean
	Out io.Writer
}

// ZerologLogger implements calculation.Logger using rs/zerolog.
// Every entry carries the component and the run ID.
type ZerologLogger struct {
	base  zerolog.Logger
	log   zerolog.Logger
	runID string
}

// NewZerologLogger creates a logger. Output is JSON unless APP_ENV=dev or
// Debug is set, in which case a console writer is used.
func NewZerologLogger(opts Options) *ZerologLogger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if opts.Debug || strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: opts.Out != nil}
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	runID := uuid.NewString()
	base := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("run_id", runID).
		Logger()
	return &ZerologLogger{
		base:  base,
		log:   base.With().Str("component", opts.Component).Logger(),
		runID: runID,
	}
}

// Nop returns a logger that discards everything
func Nop() *ZerologLogger {
	return &ZerologLogger{base: zerolog.Nop(), log: zerolog.Nop()}
}

// RunID identifies the process invocation in every log line
func (l *ZerologLogger) RunID() string {
	return l.runID
}

// With returns a child logger for another component sharing the run ID
func (l *ZerologLogger) With(component string) *ZerologLogger {
	return &ZerologLogger{
		base:  l.base,
		log:   l.base.With().Str("component", component).Logger(),
		runID: l.runID,
	}
}

// Zerolog exposes the underlying logger for structured fields
func (l *ZerologLogger) Zerolog() *zerolog.Logger {
	return &l.log
}

func (l *ZerologLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Infof(format string, args ...interface{}) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}
