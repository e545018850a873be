// Package trust binds every inbound request to a tenant (a school
// "trust") or to the shared system scope, and nothing else.
//
// The package is built around four pieces, run in strict order per
// request:
//
//  1. Resolver: a pure, ordered strategy chain that inspects host,
//     path, headers and query for a candidate key. System-only path
//     prefixes short-circuit the chain.
//  2. Validator: format and reserved-word checks plus a cached lookup
//     against the system dataset; only active trusts resolve.
//  3. Middleware: glues the two together and binds an immutable
//     resolution Context to the request. A candidate that fails
//     validation stops the pipeline; it never degrades to system scope.
//  4. Guards: RequireSystemScope / RequireTrustScope, which consult
//     only the bound Context.
//
// # Usage
//
//	resolver := trust.NewResolverFromConfig(cfg)
//	validator := trust.NewValidator(trust.NewPGDirectory(systemPool))
//
//	router.Use(trust.Middleware(resolver, validator,
//		trust.WithWarmup(func(ctx context.Context, t *trust.Trust) error {
//			_, err := registry.Acquire(ctx, t)
//			return err
//		}),
//	))
//
//	router.Route("/platform", func(r chi.Router) {
//		r.Use(trust.RequireSystemScope(nil))
//		...
//	})
//
// Handlers read the outcome with trust.FromContext and obtain data
// access exclusively through the dbrouter accessors; connection
// plumbing never leaks past this package and dbrouter.
//
// # Error taxonomy
//
// ErrTrustNotFound (404), ErrResolution (500), ErrScopeViolation (403)
// and ErrUnavailable (503) are the only outcomes crossing the boundary;
// the default error handler renders them as machine-readable JSON.
// Malformed and nonexistent keys are deliberately indistinguishable.
package trust
