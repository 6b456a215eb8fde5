package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// events receives structured run events. It discards everything until
// SetupEventLog or SetEventLogger installs a real logger.
var events = slog.New(slog.DiscardHandler)

// SetEventLogger replaces the structured event logger.
func SetEventLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	events = l
}

// EventLogger returns the current structured event logger.
func EventLogger() *slog.Logger {
	return events
}

// Event records a structured run event (item started, attempt failed, ...).
func Event(msg string, args ...any) {
	events.Info(msg, args...)
}

// SetupEventLog opens path for appending and installs an event logger that
// writes JSON lines to it. In verbose mode events are also mirrored to stderr
// as text. The returned cleanup function closes the file.
func SetupEventLog(path string, verbose bool) (func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	var mirror io.Writer
	if verbose {
		mirror = os.Stderr
	}
	SetEventLogger(NewEventLogger(file, mirror))

	return func() error {
		SetEventLogger(nil)
		return file.Close()
	}, nil
}

// NewEventLogger builds a logger that fans out to a JSON handler on file and,
// when mirror is non-nil, a text handler on mirror.
func NewEventLogger(file io.Writer, mirror io.Writer) *slog.Logger {
	handlers := []slog.Handler{
		slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	if mirror != nil {
		handlers = append(handlers, slog.NewTextHandler(mirror, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}
