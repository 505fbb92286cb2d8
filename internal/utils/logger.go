package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the structured logger shared by the rewrite pipeline. Child
// loggers carry a component or file field so warnings can be traced back to
// the file that produced them.
type Logger struct {
	zerolog.Logger
}

// LoggerOptions configures NewLogger
type LoggerOptions struct {
	// Level is one of debug, info, warn, error or silent. Unknown levels
	// log at info.
	Level string
	// Format is "pretty" for a console writer; anything else writes JSON lines.
	Format string
	// Output defaults to stderr so stdout stays free for the summary.
	Output io.Writer
	// Verbose forces debug level.
	Verbose bool
}

// NewLogger builds a Logger from opts
func NewLogger(opts LoggerOptions) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	level := levelFor(opts.Level)
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	return &Logger{Logger: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

// NewDefaultLogger logs info and above to stderr in console format
func NewDefaultLogger() *Logger {
	return NewLogger(LoggerOptions{Level: "info", Format: "pretty"})
}

// NewNopLogger drops every event
func NewNopLogger() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

func levelFor(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "silent" {
		return zerolog.Disabled
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// WithComponent tags events with the pipeline stage that emitted them
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

// WithFile tags events with the file being rewritten
func (l *Logger) WithFile(path string) *Logger {
	return l.with("file", path)
}

func (l *Logger) with(key, value string) *Logger {
	return &Logger{Logger: l.Logger.With().Str(key, value).Logger()}
}
