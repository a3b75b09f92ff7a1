// Package logging builds the slog logger the pipeline components receive.
// There is no package-level logger: the returned *slog.Logger is passed
// explicitly to every component that logs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the log sink and format.
type Options struct {
	Format  string    // "text" or "json"
	Level   string    // "debug", "info", "warn", "error"
	File    string    // appended log file path; empty disables the file sink
	Console io.Writer // defaults to os.Stderr
}

// New creates a logger writing to the console and, when Options.File is
// set, to that file as well. The returned closer releases the file handle;
// it is safe to call when no file sink was opened.
func New(opts Options) (*slog.Logger, func() error, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	sink := console
	closer := func() error { return nil }

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640) // #nosec G304 -- path comes from settings
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", opts.File, err)
		}
		sink = io.MultiWriter(console, f)
		closer = f.Close
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(sink, handlerOpts)
	} else {
		handler = slog.NewTextHandler(sink, handlerOpts)
	}

	return slog.New(handler), closer, nil
}

// parseLevel maps a level name to a slog.Level, defaulting to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
