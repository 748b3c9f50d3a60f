// Package logging builds the JSON-lines loggers the daemon writes: one for
// errors, one for request/response traffic.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Open returns a JSON logger appending to path. Records below Info are
// dropped unless debug is set. When path is empty or cannot be opened the
// logger writes to stdout instead. The returned closer releases the file.
func Open(path string, debug bool) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if path != "" {
		if f, err := openAppend(path); err == nil {
			w, closer = f, f
		}
	}

	return New(w, level), closer
}

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "date"
			case slog.LevelKey:
				a.Key = "type"
			}
			return a
		},
	}))
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
