package evroute

import "context"

// Interceptor runs before a rule's handlers. It may enrich the shared
// Values or veto the rest of the chain.
//
// Return proceed=false to stop the chain: remaining interceptors and all
// handlers are skipped and the rule's result is false. Return an error to
// abort with that error; the router decides whether it propagates (sync
// rules) or goes to the ErrorHandler (async rules).
//
// Example:
//
//	type authInterceptor struct {
//	    tokens TokenStore
//	}
//
//	func (i *authInterceptor) Intercept(ctx context.Context, evt *evroute.Event, vals evroute.Values) (bool, error) {
//	    ok, err := i.tokens.Valid(ctx, evt.ID)
//	    if err != nil {
//	        return false, err
//	    }
//	    return ok, nil
//	}
type Interceptor interface {
	Intercept(ctx context.Context, evt *Event, vals Values) (bool, error)
}

// InterceptorFunc is a function adapter for Interceptor.
type InterceptorFunc func(ctx context.Context, evt *Event, vals Values) (bool, error)

// Intercept implements the Interceptor interface.
func (f InterceptorFunc) Intercept(ctx context.Context, evt *Event, vals Values) (bool, error) {
	return f(ctx, evt, vals)
}

// Handler is the terminal processing step of a rule. The boolean result of
// the last handler in the chain becomes the rule's result; for sync rules
// that of the last sync rule becomes the Route return value.
//
// Example:
//
//	type orgMemberHandler struct {
//	    db *sql.DB
//	}
//
//	func (h *orgMemberHandler) Handle(ctx context.Context, evt *evroute.Event, vals evroute.Values) (bool, error) {
//	    _, err := h.db.ExecContext(ctx, "INSERT INTO members ...", evt.ID)
//	    return err == nil, err
//	}
type Handler interface {
	Handle(ctx context.Context, evt *Event, vals Values) (bool, error)
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, evt *Event, vals Values) (bool, error)

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, evt *Event, vals Values) (bool, error) {
	return f(ctx, evt, vals)
}

// Rule is one configured routing rule: predicates deciding whether it
// applies, an interceptor chain, a handler chain, and the reEnter/async
// flags. Rules are built with Builder and are immutable once closed; only
// closed rules may join a router's rule set.
type Rule struct {
	name         string
	predicates   []Predicate
	interceptors []Interceptor
	handlers     []Handler
	reEnter      bool
	async        bool
	closed       bool
}

// Test reports whether every predicate matches the event. It is pure and
// computed fresh per call.
func (r *Rule) Test(evt *Event) bool {
	for _, p := range r.predicates {
		if !p.Match(evt) {
			return false
		}
	}
	return true
}

// Name returns the rule's diagnostic name, if one was set.
func (r *Rule) Name() string { return r.name }

// ReEnter reports whether rule matching continues past this rule.
func (r *Rule) ReEnter() bool { return r.reEnter }

// Async reports whether this rule executes on the worker pool.
func (r *Rule) Async() bool { return r.async }

// execute runs the interceptor chain, then the handler chain. Errors are
// returned as-is; failure isolation is the router's job, not the rule's.
func (r *Rule) execute(ctx context.Context, evt *Event, vals Values) (bool, error) {
	for _, ic := range r.interceptors {
		proceed, err := ic.Intercept(ctx, evt, vals)
		if err != nil {
			return false, err
		}
		if !proceed {
			return false, nil
		}
	}

	res := true
	for _, h := range r.handlers {
		ok, err := h.Handle(ctx, evt, vals)
		if err != nil {
			return false, err
		}
		res = ok
	}
	return res, nil
}
