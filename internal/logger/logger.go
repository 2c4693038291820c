package logger

import (
	"io"
	"log/slog"
	"os"
)

// Init builds the process logger: text output for development, JSON otherwise.
// format overrides that choice when set to "text" or "json".
func Init(env, level, format string) *slog.Logger {
	return initWithWriter(os.Stdout, env, level, format)
}

func initWithWriter(w io.Writer, env, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch {
	case format == "json":
		handler = slog.NewJSONHandler(w, opts)
	case format == "text" || env == "development":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops everything, for tests
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch level {
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
