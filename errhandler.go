package evroute

import "context"

// ErrorHandler receives failures from asynchronous rule executions. It is
// never invoked for synchronous failures, which propagate out of Route to
// the caller.
//
// Implementations must not panic; there is nothing above them to catch it.
// Install a custom handler with WithErrorHandler before routing begins.
type ErrorHandler interface {
	Handle(ctx context.Context, evt *Event, vals Values, err error)
}

// ErrorHandlerFunc is a function adapter for ErrorHandler.
type ErrorHandlerFunc func(ctx context.Context, evt *Event, vals Values, err error)

// Handle implements the ErrorHandler interface.
func (f ErrorHandlerFunc) Handle(ctx context.Context, evt *Event, vals Values, err error) {
	f(ctx, evt, vals, err)
}

// logErrorHandler is the default: record the failure and move on.
type logErrorHandler struct {
	logger Logger
}

func (h *logErrorHandler) Handle(_ context.Context, evt *Event, _ Values, err error) {
	h.logger.Error("evroute: async rule failed",
		"event_type", evt.Type,
		"event_id", evt.ID,
		"error", err,
	)
}
