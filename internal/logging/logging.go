// Package logging builds the slog logger used by the quill program.
//
// The TUI owns stdout, so logs go to a file or are discarded.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format is a log output format.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Options configures New.
type Options struct {
	Level  slog.Level
	Format Format
}

// ParseLevel maps debug, info, warn and error to slog levels. Empty means
// info.
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
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// ParseFormat maps text and json to a Format. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unknown log format %q", s)
	}
}

// New returns a logger writing to w. A nil w discards every record.
func New(w io.Writer, opt Options) *slog.Logger {
	if w == nil {
		return slog.New(slog.DiscardHandler)
	}
	hopts := &slog.HandlerOptions{
		Level: opt.Level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}
	if opt.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// OpenFile opens path for appending, creating its directory when needed.
func OpenFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
