package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Supported values for the log format setting.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatZerolog = "zerolog"
	FormatConsole = "console"
)

// New builds a Logger writing to w. "json" and "text" use log/slog,
// "zerolog" and "console" use zerolog. Unknown formats fall back to json and
// unknown levels to info.
func New(format, level string, w io.Writer) Logger {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText:
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel(level)})
		return NewSlogLogger(slog.New(h))
	case FormatZerolog:
		return NewZerologLogger(zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger())
	case FormatConsole:
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		return NewZerologLogger(zerolog.New(cw).Level(zerologLevel(level)).With().Timestamp().Logger())
	default:
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel(level)})
		return NewSlogLogger(slog.New(h))
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
