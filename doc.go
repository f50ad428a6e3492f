// Package evroute routes in-process events to declaratively configured rule
// chains.
//
// An inbound event carries a type discriminator and an opaque payload. The
// router evaluates an ordered list of rules against it; each matching rule
// runs its interceptor and handler chains either inline or on a shared
// worker pool. Registering independent rules replaces the branching logic
// that otherwise accumulates around "what kind of event arrived".
//
// # Quick Start
//
// Declare rules with the fluent builder and feed events to Route:
//
//	r := evroute.New()
//
//	r.Rule().
//	    Name("add-member").
//	    EventType("user_add_org").
//	    Handle(addMember).
//	    End()
//
//	ok, err := r.Route(ctx, &evroute.Event{Type: "user_add_org", Data: raw}, evroute.Values{})
//
// A rule declaration is inert until terminated with End or Next; the
// required terminator is what keeps half-built rules out of the rule set.
//
// # Matching Semantics
//
// Rules are tested in registration order. A matching rule normally stops
// the scan, so declaring rules from most specific to most general yields
// first-specific-match-wins. A rule closed with Next (or ReEnter(true))
// lets the scan continue, allowing deliberate fan-out of one event to
// several rules. No match at all is a normal outcome: Route returns true.
//
// # Sync and Async Execution
//
// By default a matched rule runs inline on the caller's goroutine, in
// match order, and the result of the last such rule becomes the Route
// return value. A rule marked Async(true) is handed to the worker pool
// instead: it never blocks Route, never affects the return value, and its
// failures (returned errors and panics alike) are delivered to the
// router's ErrorHandler rather than the caller. One join task per Route
// call, also on the pool, waits for that call's async work and logs the
// outcome.
//
// Failure asymmetry is deliberate: sync failures are loud and propagate
// out of Route, async failures are quiet and only observable through the
// ErrorHandler and logs.
//
// # Shared Values
//
// Every chain invoked for one event shares a single Values map. It is the
// sanctioned channel between independent rules handling the same event,
// and it is not synchronized: async rules racing sync ones on the same
// keys is a caller bug, typically avoided by namespacing keys per rule.
//
// # Payload Predicates
//
// Beyond event-type equality, rules can match on payload fields with gjson
// paths:
//
//	r.Rule().
//	    EventType("user_add_org").
//	    Match(evroute.DataEquals("corp.source", "sync")).
//	    Handle(syncMember).
//	    End()
//
// # Rule Manifests
//
// Rule wiring can live in configuration instead of code. LoadRules reads a
// YAML manifest and resolves interceptor and handler names through a
// Registry supplied by the caller:
//
//	reg := evroute.MapRegistry{
//	    Handlers: map[string]evroute.Handler{"add-member": addMember},
//	}
//	if err := evroute.LoadRules(r, manifest, reg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Collaborators
//
// The worker pool and the error handler are process-wide collaborators,
// replaceable via WithPool and WithErrorHandler. Configure them before the
// first Route call; swapping them under in-flight routes is undefined
// behavior. The router is not a job queue: dispatch is fire-and-forget per
// process lifetime, with no durability or retry.
package evroute
