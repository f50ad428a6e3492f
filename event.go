package evroute

import "encoding/json"

// Event is the inbound message to be routed. The router treats it as
// opaque: it only reads Type for type predicates and Data for payload-field
// predicates. Producing an Event from a transport (webhook body, queue
// message, ...) is the caller's concern.
type Event struct {
	// Type is the event type discriminator, e.g. "user_add_org".
	Type string

	// ID identifies the event instance, if the transport provides one.
	// Used only for logging.
	ID string

	// Data is the raw payload. Predicates query it with gjson paths.
	Data json.RawMessage
}

// Values is the mutable state shared by every interceptor, handler, and
// error handler invoked for one Route call. It is passed by reference and
// never reset or copied by the router; callers may pre-seed it.
//
// Values is not synchronized. When async rules run concurrently with sync
// rules (or with each other) for the same event, concurrent writes are the
// caller's responsibility to avoid; namespacing keys per rule is the usual
// approach.
type Values map[string]any
