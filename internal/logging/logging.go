// Package logging configures the zerolog logger shared by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures Setup
type Options struct {
	Level   string    // zerolog level name; empty means info
	File    string    // JSON log file; empty disables file logging
	Verbose bool      // Also log to Console in human-readable form
	Console io.Writer // Default: os.Stderr
}

// Setup configures the global logger and returns a function that closes the
// log file. When the file cannot be opened, logging continues without it and
// the error is returned alongside a usable close function.
func Setup(opts Options) (func() error, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	var writers []io.Writer
	if opts.Verbose {
		console := opts.Console
		if console == nil {
			console = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen})
	}

	closeFn := func() error { return nil }
	var fileErr error
	if opts.File != "" {
		f, err := openLogFile(opts.File)
		if err != nil {
			fileErr = err
		} else {
			writers = append(writers, f)
			closeFn = f.Close
		}
	}

	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", opts.File).Msg("Failed to open log file")
	}
	log.Debug().Str("level", level.String()).Str("file", opts.File).Msg("Logger initialized")

	return closeFn, fileErr
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// TimeOperation logs that operation began and returns a function that logs
// how long it took and, when it failed, the error.
func TimeOperation(logger *zerolog.Logger, operation string) func(error) {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("operation started")

	return func(err error) {
		ev := logger.Debug()
		if err != nil {
			ev = logger.Warn().Err(err)
		}
		ev.Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("operation finished")
	}
}

// openLogFile creates the log file and its parent directories
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
