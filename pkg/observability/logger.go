package observability

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog with the service attribute every binary sets.
type Logger struct {
	*slog.Logger
}

// NewLogger builds a JSON structured logger tagged with the service name,
// writing to stdout at info level.
func NewLogger(serviceName string) *Logger {
	return NewLoggerTo(os.Stdout, serviceName, slog.LevelInfo)
}

// NewLoggerTo is NewLogger with an explicit sink and level. The CLI routes
// its logs to stderr so they never interleave with interactive prompts.
func NewLoggerTo(w io.Writer, serviceName string, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{slog.New(handler).With("service", serviceName)}
}
