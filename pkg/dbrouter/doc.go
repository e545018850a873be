// Package dbrouter routes data access to the right database for a
// resolved request: one shared system handle, plus lazily created,
// process-cached handles for each trust's isolated database.
//
// The Registry is the concurrency-critical piece. Per trust key it
// holds either a ready handle or an in-flight creation marker; the
// first caller creates, concurrent callers wait and share the outcome,
// and a failed creation clears the slot so the next request retries.
// Creation runs detached from the triggering request's cancellation.
//
// Collaborators obtain data access only through the scope-driven
// accessors:
//
//	db, err := registry.QueryFor(r.Context())
//	...
//	err = registry.TransactionFor(r.Context(), func(tx pgx.Tx) error {
//		...
//		return nil
//	})
//
// Both resolve the scope exactly once from the trust context bound by
// the resolution middleware; no handler ever constructs a handle or
// picks a database itself.
package dbrouter
