// Package logging holds the process-wide structured logger.
//
// Call Init once at startup with the configured level and format. Packages
// that log before Init (or in tests) get a default text logger on stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// ParseLevel converts a config level name (debug, info, warn, error) to a
// slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New builds a logger writing to w. format is "json" or "text".
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init replaces the global logger. A nil w means stderr.
func Init(level, format string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	if format != "" && format != "json" && format != "text" {
		return fmt.Errorf("unknown log format %q", format)
	}
	if w == nil {
		w = os.Stderr
	}

	mu.Lock()
	logger = New(w, lvl, format)
	mu.Unlock()
	return nil
}

// GetLogger returns the global logger, creating a default one on first use.
func GetLogger() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = New(os.Stderr, slog.LevelInfo, "text")
	}
	return logger
}

// WithTable tags base with a table name. A nil base uses the global logger.
func WithTable(base *slog.Logger, name string) *slog.Logger {
	if base == nil {
		base = GetLogger()
	}
	return base.With("table", name)
}

// WithComponent returns a logger tagged with a subsystem name.
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithError returns a logger carrying err as a structured field.
func WithError(err error) *slog.Logger {
	if err == nil {
		return GetLogger()
	}
	return GetLogger().With("error", err.Error())
}
