package trust

import "net/http"

// IsSystemScope reports whether the request was bound to system scope.
// It reads only the resolution outcome; scope is never re-derived from
// raw request fields.
func IsSystemScope(r *http.Request) bool {
	tc, ok := FromContext(r.Context())
	return ok && tc != nil && tc.Scope == ScopeSystem
}

// IsTrustScope reports whether the request was bound to a validated
// trust.
func IsTrustScope(r *http.Request) bool {
	tc, ok := FromContext(r.Context())
	return ok && tc != nil && tc.Scope == ScopeTrust
}

// RequireSystemScope rejects every request that was not bound to
// system scope. Pass nil to use the default error handler.
func RequireSystemScope(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsSystemScope(r) {
				errorHandler(w, r, ErrScopeViolation)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireTrustScope rejects every request that was not bound to a
// validated trust, including scope-less requests to the bare domain.
func RequireTrustScope(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsTrustScope(r) {
				errorHandler(w, r, ErrScopeViolation)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
