package evroute

import "errors"

// ErrNilEvent is returned by Route when the event is nil. A nil event means
// the upstream callback or transport is misconfigured, so no rule is
// evaluated.
var ErrNilEvent = errors.New("nil event")

// ErrUnclosedRule is returned when a rule that was never terminated with
// End or Next is added to a router. Partially built rules must never be
// evaluated.
var ErrUnclosedRule = errors.New("rule not closed")
