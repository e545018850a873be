package dbrouter

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/edusuite/schoolms/pkg/trust"
)

// QueryFor returns the data-access handle for the scope bound to the
// request context: the system handle for system scope, the trust's
// isolated handle for trust scope. Scope-less requests are rejected:
// a handler that reaches for data without a bound scope is a routing
// bug, not a default to system data.
func (r *Registry) QueryFor(ctx context.Context) (DB, error) {
	tc, ok := trust.FromContext(ctx)
	if !ok || tc == nil {
		return nil, trust.ErrNoContext
	}

	switch tc.Scope {
	case trust.ScopeSystem:
		return r.system, nil
	case trust.ScopeTrust:
		return r.Acquire(ctx, tc.Trust)
	default:
		return nil, trust.ErrScopeViolation
	}
}

// TransactionFor runs fn inside a transaction on the handle for the
// bound scope. The transaction commits when fn returns nil and rolls
// back otherwise, matching pgx.BeginFunc semantics.
func (r *Registry) TransactionFor(ctx context.Context, fn func(tx pgx.Tx) error) error {
	db, err := r.QueryFor(ctx)
	if err != nil {
		return err
	}
	return pgx.BeginFunc(ctx, db, fn)
}
