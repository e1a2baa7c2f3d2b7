// Package logging provides structured logging configuration using log/slog.
//
// Every conversion gets a logger carrying a run_id and the file name, so the
// skip warnings and the completion line of one run can be grepped together
// from a shared log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Options selects the log level, format and destination.
type Options struct {
	// Level is "debug", "info", "warn" or "error" (default: "info").
	Level string

	// Format is "text" or "json" (default: "text").
	Format string

	// File is a path to append to. Empty writes to Output.
	File string

	// Output is used when File is empty. Nil means os.Stderr.
	Output io.Writer
}

// Setup builds a logger from opts and installs it as the slog default.
// The returned closer releases the log file, if one was opened.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	if opts.Output != nil {
		out = opts.Output
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	}

	logger := New(out, opts.Level, opts.Format)
	slog.SetDefault(logger)
	return logger, closer, nil
}

// New returns a logger writing to w without touching the slog default.
func New(w io.Writer, level, format string) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ForRun returns a logger tagged with a fresh run_id and the file being
// converted, plus the run_id itself.
//
// Usage:
//
//	log, runID := logging.ForRun(base, path)
//	log.Info("conversion started")
func ForRun(base *slog.Logger, file string) (*slog.Logger, string) {
	if base == nil {
		base = slog.Default()
	}
	runID := uuid.New().String()
	return base.With("run_id", runID, "file", filepath.Base(file)), runID
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
