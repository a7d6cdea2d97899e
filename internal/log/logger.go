package log

import (
	"io"
	"log/slog"
)

// NewLogger creates a text logger that redacts contact details.
// Verbose enables debug output; otherwise only warnings and errors are written.
func NewLogger(w io.Writer, verbose bool, opts ...RedactOption) *slog.Logger {
	return slog.New(NewRedactHandler(slog.NewTextHandler(w, handlerOptions(verbose)), opts...))
}

// NewJSONLogger creates a JSON logger that redacts contact details.
func NewJSONLogger(w io.Writer, verbose bool, opts ...RedactOption) *slog.Logger {
	return slog.New(NewRedactHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), opts...))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
