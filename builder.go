package evroute

// Builder assembles one Rule with a fluent chain. Obtain one from
// Router.Rule, configure it, and terminate with End or Next; a builder that
// is never terminated leaves no trace in the router.
//
// Example:
//
//	router.Rule().
//	    EventType("user_add_org").
//	    Intercept(auth).
//	    Handle(addMember).
//	    Next().                     // keep matching subsequent rules
//	    Rule().
//	    EventType("user_add_org").
//	    Handle(audit).
//	    Async(true).
//	    End()
type Builder struct {
	router *Router
	rule   *Rule
}

// Name sets a diagnostic name for the rule, surfaced in hooks and in the
// default error handler's log output. Optional.
func (b *Builder) Name(name string) *Builder {
	b.rule.name = name
	return b
}

// EventType adds a predicate matching events whose Type equals t.
func (b *Builder) EventType(t string) *Builder {
	b.rule.predicates = append(b.rule.predicates, TypeIs(t))
	return b
}

// Match adds an arbitrary predicate. All predicates on a rule must pass for
// the rule to match.
func (b *Builder) Match(p Predicate) *Builder {
	b.rule.predicates = append(b.rule.predicates, p)
	return b
}

// Intercept appends interceptors to the rule's chain, in order.
func (b *Builder) Intercept(ics ...Interceptor) *Builder {
	b.rule.interceptors = append(b.rule.interceptors, ics...)
	return b
}

// Handle appends handlers to the rule's chain, in order.
func (b *Builder) Handle(hs ...Handler) *Builder {
	b.rule.handlers = append(b.rule.handlers, hs...)
	return b
}

// Async marks the rule for execution on the worker pool. Async rules never
// block Route and never contribute to its return value.
func (b *Builder) Async(enabled bool) *Builder {
	b.rule.async = enabled
	return b
}

// ReEnter controls whether rule matching continues past this rule when it
// matches. The default is false: the first matching rule wins.
func (b *Builder) ReEnter(enabled bool) *Builder {
	b.rule.reEnter = enabled
	return b
}

// End closes the rule and registers it with the router, returning the
// router for further chaining.
func (b *Builder) End() *Router {
	b.rule.closed = true
	b.router.rules = append(b.router.rules, b.rule)
	return b.router
}

// Next is shorthand for ReEnter(true) followed by End: the rule matches
// without stopping evaluation of the rules registered after it.
func (b *Builder) Next() *Router {
	return b.ReEnter(true).End()
}
