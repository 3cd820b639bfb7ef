package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zimka1/grid-path-visualizer/config"
)

// maxLogSize is the size above which an existing log file is rotated on open
const maxLogSize = 10 * 1024 * 1024

// NewLogger builds an isolated slog.Logger; unknown levels fall back to info
func NewLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// SetupLogging returns the logger described by cfg and the file behind it.
// The terminal belongs to the UI, so a disabled log discards everything and
// the returned file is nil.
func SetupLogging(cfg config.LogConfig) (*slog.Logger, *os.File, error) {
	if !cfg.Enabled {
		return NewLogger(cfg.Level, cfg.Format, io.Discard), nil, nil
	}

	f, err := openLogFile(cfg.File)
	if err != nil {
		return nil, nil, err
	}
	logger := NewLogger(cfg.Level, cfg.Format, f)
	logger.Debug("logging configured", "file", cfg.File, "level", cfg.Level)
	return logger, f, nil
}

// openLogFile creates the directory, rotates an oversized file to a
// timestamped name and opens path for appending
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		rotated := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(path, ext), time.Now().Format("20060102-150405"), ext)
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotating log file: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
