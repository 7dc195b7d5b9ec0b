package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

func NewLogger(env, level string) *slog.Logger {
	return NewLoggerTo(os.Stdout, env, level)
}

// NewLoggerTo writes JSON records to w. Records logged with a context that
// carries a span get trace_id and span_id attached.
//
// level overrides the env default (debug in dev, info elsewhere).
func NewLoggerTo(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(env, level)}

	if env == "dev" {
		opts.AddSource = true
	}

	return slog.New(NewTraceHandler(slog.NewJSONHandler(w, opts))).
		With("service", ServiceName, "env", env)
}

func parseLevel(env, level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if env == "dev" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
