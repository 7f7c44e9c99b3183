// Package logger sets up the process-wide slog logger. The terminal belongs
// to the TUI, so records go to a file unless LOG_FILE is "-" (stderr).
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// DefaultFile is used when LOG_FILE is unset.
const DefaultFile = "geoquiz.log"

var (
	mu            sync.Mutex
	defaultLogger *slog.Logger
	out           io.Closer
)

// Options mirrors the LOG_* environment variables.
type Options struct {
	Level  string
	Format string
	File   string
}

// OptionsFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_FILE.
func OptionsFromEnv() Options {
	file := os.Getenv("LOG_FILE")
	if file == "" {
		file = DefaultFile
	}
	return Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
		File:   file,
	}
}

// Setup builds the default logger from the environment.
func Setup() *slog.Logger {
	return SetupWith(OptionsFromEnv())
}

// SetupWith builds the default logger from opts. If the log file cannot be
// opened it falls back to discarding output rather than writing into the UI.
func SetupWith(opts Options) *slog.Logger {
	var w io.Writer = io.Discard
	var closer io.Closer
	switch opts.File {
	case "-":
		w = os.Stderr
	case "":
	default:
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			w, closer = f, f
		}
	}
	l := New(w, opts.Level, opts.Format)

	mu.Lock()
	if out != nil {
		_ = out.Close()
	}
	out = closer
	defaultLogger = l
	mu.Unlock()
	return l
}

// New returns a logger writing to w with the given level and format names.
func New(w io.Writer, level, format string) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h)
}

// ParseLevel maps debug/warn/error to slog levels; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// L returns the default logger, setting it up on first use.
func L() *slog.Logger {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l == nil {
		return Setup()
	}
	return l
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		return nil
	}
	err := out.Close()
	out = nil
	return err
}
