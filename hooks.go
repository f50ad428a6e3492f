package evroute

import (
	"context"
	"time"
)

// OnMatchFunc is called once per Route call after rule matching, with the
// number of rules that matched. The returned context is used for the rest
// of the call, so hooks can attach logging fields or trace spans.
type OnMatchFunc func(ctx context.Context, evt *Event, matched int) context.Context

// OnDispatchFunc is called just before a rule executes, synchronously or on
// the pool. The rule name is empty unless set via Builder.Name.
type OnDispatchFunc func(ctx context.Context, evt *Event, rule string, async bool)

// OnSuccessFunc is called after a rule's chain completes without error.
type OnSuccessFunc func(ctx context.Context, evt *Event, rule string, duration time.Duration)

// OnFailureFunc is called after a rule's chain returns an error, for both
// sync rules (before the error propagates) and async rules (before the
// error goes to the ErrorHandler).
type OnFailureFunc func(ctx context.Context, evt *Event, rule string, err error, duration time.Duration)

// hooks holds all configured hook functions.
type hooks struct {
	onMatch    []OnMatchFunc
	onDispatch []OnDispatchFunc
	onSuccess  []OnSuccessFunc
	onFailure  []OnFailureFunc
}

// WithOnMatch adds a hook called after rule matching. Multiple hooks are
// called in order, with context chaining through each.
//
// Example:
//
//	evroute.WithOnMatch(func(ctx context.Context, evt *evroute.Event, n int) context.Context {
//	    return logx.WithCtx(ctx, slog.String("event_type", evt.Type))
//	})
func WithOnMatch(fn OnMatchFunc) Option {
	return func(r *Router) {
		r.hooks.onMatch = append(r.hooks.onMatch, fn)
	}
}

// WithOnDispatch adds a hook called before each matched rule executes.
// Multiple hooks are called in order.
//
// Example:
//
//	evroute.WithOnDispatch(func(ctx context.Context, evt *evroute.Event, rule string, async bool) {
//	    logger.Info("dispatching", "rule", rule, "async", async)
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(r *Router) {
		r.hooks.onDispatch = append(r.hooks.onDispatch, fn)
	}
}

// WithOnSuccess adds a hook called after a rule completes without error.
// Multiple hooks are called in order.
//
// Example:
//
//	evroute.WithOnSuccess(func(ctx context.Context, evt *evroute.Event, rule string, d time.Duration) {
//	    metrics.Timing("evroute.success", d, "rule:"+rule)
//	})
func WithOnSuccess(fn OnSuccessFunc) Option {
	return func(r *Router) {
		r.hooks.onSuccess = append(r.hooks.onSuccess, fn)
	}
}

// WithOnFailure adds a hook called after a rule fails. For async rules the
// hook fires on the pool worker, concurrently with the caller.
//
// Example:
//
//	evroute.WithOnFailure(func(ctx context.Context, evt *evroute.Event, rule string, err error, d time.Duration) {
//	    metrics.Incr("evroute.failure", "rule:"+rule)
//	})
func WithOnFailure(fn OnFailureFunc) Option {
	return func(r *Router) {
		r.hooks.onFailure = append(r.hooks.onFailure, fn)
	}
}

// callOnMatch calls OnMatch hooks, chaining the context.
func (r *Router) callOnMatch(ctx context.Context, evt *Event, matched int) context.Context {
	for _, fn := range r.hooks.onMatch {
		ctx = fn(ctx, evt, matched)
	}
	return ctx
}

// callOnDispatch calls OnDispatch hooks.
func (r *Router) callOnDispatch(ctx context.Context, evt *Event, rule *Rule) {
	for _, fn := range r.hooks.onDispatch {
		fn(ctx, evt, rule.name, rule.async)
	}
}

// callOnSuccess calls OnSuccess hooks.
func (r *Router) callOnSuccess(ctx context.Context, evt *Event, rule *Rule, duration time.Duration) {
	for _, fn := range r.hooks.onSuccess {
		fn(ctx, evt, rule.name, duration)
	}
}

// callOnFailure calls OnFailure hooks.
func (r *Router) callOnFailure(ctx context.Context, evt *Event, rule *Rule, err error, duration time.Duration) {
	for _, fn := range r.hooks.onFailure {
		fn(ctx, evt, rule.name, err, duration)
	}
}
