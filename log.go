package evroute

import "log/slog"

// Logger is the logging interface used by the router, the default error
// handler, and the worker pool. It matches the log/slog method set so
// *slog.Logger satisfies it directly; adapters for other loggers are a few
// lines.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, args ...any)
	// Info logs a message at info level.
	Info(msg string, args ...any)
	// Warn logs a message at warning level.
	Warn(msg string, args ...any)
	// Error logs a message at error level.
	Error(msg string, args ...any)
}

func defaultLogger() Logger { return slog.Default() }
