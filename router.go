package evroute

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Option configures a Router.
type Option func(*Router)

// Router matches inbound events against an ordered rule set and dispatches
// them to the matched rules' chains, inline or on a worker pool.
//
// Usage:
//  1. Create a router with New
//  2. Declare rules with Rule()...End() / Next()
//  3. Feed events with Route or RouteEvent
//
// Router is safe for concurrent Route calls after configuration. Do not
// declare rules or swap collaborators after routing has begun.
type Router struct {
	rules      []*Rule
	pool       Pool
	errHandler ErrorHandler
	logger     Logger
	hooks      hooks
}

// New creates a Router with the given options.
//
// Without options the router uses a WorkerPool of DefaultPoolSize workers,
// a log-and-continue error handler, and slog.Default().
//
// Example:
//
//	r := evroute.New(
//	    evroute.WithLogger(logger),
//	    evroute.WithOnFailure(func(ctx context.Context, evt *evroute.Event, rule string, err error, d time.Duration) {
//	        metrics.Incr("router.failure", "rule:"+rule)
//	    }),
//	)
func New(opts ...Option) *Router {
	r := &Router{
		logger: defaultLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.pool == nil {
		r.pool = NewWorkerPool(DefaultPoolSize, r.logger)
	}
	if r.errHandler == nil {
		r.errHandler = &logErrorHandler{logger: r.logger}
	}
	return r
}

// WithPool sets the pool that runs async rules and join tasks.
func WithPool(p Pool) Option {
	return func(r *Router) {
		r.pool = p
	}
}

// WithErrorHandler sets the handler for async rule failures.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Router) {
		r.errHandler = h
	}
}

// WithLogger sets the logger used by the router, the default error handler,
// and the default pool.
func WithLogger(l Logger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// Rule starts a new rule declaration. The rule joins the router's rule set
// only when the builder is terminated with End or Next; registration order
// is evaluation order, so declare specific rules before general ones.
func (r *Router) Rule() *Builder {
	return &Builder{router: r, rule: &Rule{}}
}

// AddRule registers an already built rule. The rule must have been closed
// by its builder; partially built rules are rejected with ErrUnclosedRule.
func (r *Router) AddRule(rule *Rule) error {
	if rule == nil || !rule.closed {
		return fmt.Errorf("add rule: %w", ErrUnclosedRule)
	}
	r.rules = append(r.rules, rule)
	return nil
}

// RouteEvent is Route with a fresh empty Values.
func (r *Router) RouteEvent(ctx context.Context, evt *Event) (bool, error) {
	return r.Route(ctx, evt, make(Values, 2))
}

// Route matches evt against the rule set and executes the matched rules.
//
// Sync rules run inline, in registration order, and the result of the last
// one is returned; its error, if any, propagates immediately. Async rules
// are handed to the pool and never affect the return value: their failures
// go to the ErrorHandler, and a join task on the pool waits for them and
// logs the outcome. Route returns without waiting for async work.
//
// No matching rule is not an error: the event is considered handled and
// Route returns true.
func (r *Router) Route(ctx context.Context, evt *Event, vals Values) (bool, error) {
	// A nil event means the upstream transport is broken; nothing to match.
	if evt == nil {
		return false, fmt.Errorf("route: %w", ErrNilEvent)
	}
	if vals == nil {
		vals = make(Values, 2)
	}

	matched := r.matchRules(evt)
	ctx = r.callOnMatch(ctx, evt, len(matched))
	if len(matched) == 0 {
		return true, nil
	}

	// Async rules keep running after Route returns, and often after the
	// caller's request scope ends; detach them from its cancellation.
	asyncCtx := context.WithoutCancel(ctx)

	res := true
	var pending []*execution
	for _, rule := range matched {
		if rule.async {
			pending = append(pending, r.submit(asyncCtx, rule, evt, vals))
			continue
		}

		r.callOnDispatch(ctx, evt, rule)
		start := time.Now()
		ok, err := rule.execute(ctx, evt, vals)
		if err != nil {
			r.callOnFailure(ctx, evt, rule, err, time.Since(start))
			return false, err
		}
		r.callOnSuccess(ctx, evt, rule, time.Since(start))
		res = ok
	}

	if len(pending) > 0 {
		id := uuid.NewString()
		r.logger.Debug("evroute: scheduled async rules",
			"dispatch_id", id,
			"event_type", evt.Type,
			"count", len(pending),
		)
		// The join never runs on the caller's goroutine; Route must not
		// block on async work.
		r.pool.Submit(func() {
			r.join(ctx, id, evt, pending)
		})
	}

	return res, nil
}

// matchRules collects the rules applying to evt, in registration order.
// A matching rule without reEnter ends the scan: rules after it are not
// even tested.
func (r *Router) matchRules(evt *Event) []*Rule {
	var matched []*Rule
	for _, rule := range r.rules {
		if !rule.Test(evt) {
			continue
		}
		matched = append(matched, rule)
		if !rule.reEnter {
			break
		}
	}
	return matched
}

// execution tracks one async rule submission. err is written before done is
// closed and read only after it, so no further synchronization is needed.
type execution struct {
	rule *Rule
	done chan struct{}
	err  error
}

// submit schedules one async rule on the pool. Failures, whether returned
// errors or panics, are captured and delivered to the ErrorHandler; they
// must never take down the worker or reach the Route caller.
func (r *Router) submit(ctx context.Context, rule *Rule, evt *Event, vals Values) *execution {
	ex := &execution{rule: rule, done: make(chan struct{})}
	r.pool.Submit(func() {
		start := time.Now()
		defer close(ex.done)
		defer func() {
			if rec := recover(); rec != nil {
				ex.err = fmt.Errorf("rule panicked: %v", rec)
				r.callOnFailure(ctx, evt, rule, ex.err, time.Since(start))
				r.errHandler.Handle(ctx, evt, vals, ex.err)
			}
		}()

		r.callOnDispatch(ctx, evt, rule)
		if _, err := rule.execute(ctx, evt, vals); err != nil {
			ex.err = err
			r.callOnFailure(ctx, evt, rule, err, time.Since(start))
			r.errHandler.Handle(ctx, evt, vals, err)
			return
		}
		r.callOnSuccess(ctx, evt, rule, time.Since(start))
	})
	return ex
}

// join waits for every async execution of one Route call and logs captured
// failures. Cancellation of the routing context during the wait is logged
// and ends the wait; it must not crash the pool or block other work.
func (r *Router) join(ctx context.Context, id string, evt *Event, pending []*execution) {
	for _, ex := range pending {
		select {
		case <-ex.done:
			if ex.err != nil {
				r.logger.Error("evroute: async rule failed",
					"dispatch_id", id,
					"event_type", evt.Type,
					"rule", ex.rule.name,
					"error", ex.err,
				)
			}
		case <-ctx.Done():
			r.logger.Error("evroute: canceled while waiting for async rules",
				"dispatch_id", id,
				"event_type", evt.Type,
				"error", ctx.Err(),
			)
			return
		}
	}
	r.logger.Debug("evroute: async rules finished",
		"dispatch_id", id,
		"event_type", evt.Type,
	)
}
