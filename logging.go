package bit

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the field names used consistently
// across the host and device kernel diagnostics.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler
// defaults to a text handler on stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that emits JSON to stderr at the
// given minimum level.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NewTextLogger creates a Logger that emits human-readable text to
// stderr at the given minimum level.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger discards all log output. Passed as kernel.HostOptions.Logger
// or kernel.DeviceOptions.Logger to silence diagnostics explicitly,
// though leaving Logger nil has the same effect.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithDevice adds a device_id field, for tagging device-backend
// diagnostics with which accelerator they came from.
func (l *Logger) WithDevice(deviceID int) *Logger {
	return &Logger{Logger: l.Logger.With("device_id", deviceID)}
}
