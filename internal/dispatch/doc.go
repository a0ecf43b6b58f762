// Package dispatch routes verified GitHub webhook deliveries to their
// formatter+publish handlers.
//
// The handler table is a static map from event type to handler, built once
// at startup from the per-event hook flags in configuration. A delivery is
// dispatched to at most one handler, chosen solely by the X-GitHub-Event
// value; unknown or disabled event types are a no-op, not an error.
//
// Handlers run fire-and-forget: Dispatch spawns the handler and returns
// before any outbound call is made, so the HTTP front door can acknowledge
// the delivery immediately. Handler errors (parse failures, publish
// failures, status lookup failures already downgraded by the formatter) are
// logged at the dispatch boundary and swallowed. Each invocation carries the
// GitHub delivery id for log correlation, or a generated one when the
// header was absent.
package dispatch
