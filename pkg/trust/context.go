package trust

import (
	"context"
	"log/slog"
)

// Scope classifies a bound request. It is decided exactly once by the
// resolution middleware; everything downstream, guards included, treats
// it as the single source of truth and never re-derives it from raw
// request fields.
type Scope string

const (
	// ScopeNone means no tenant signal was found and the request is not
	// on a system path. Routes requiring a scope must reject it.
	ScopeNone Scope = ""
	// ScopeSystem is the cross-tenant administrative context.
	ScopeSystem Scope = "system"
	// ScopeTrust is a request bound to one validated trust.
	ScopeTrust Scope = "trust"
)

// Context is the per-request resolution outcome. It is created once by
// the middleware and never mutated afterwards. Trust is nil unless
// Scope is ScopeTrust.
type Context struct {
	Trust *Trust
	Scope Scope
}

// Key returns the bound trust key, or "" outside trust scope.
func (c *Context) Key() string {
	if c == nil || c.Trust == nil {
		return ""
	}
	return c.Trust.Key
}

// contextKey is a private type to prevent collisions with other
// packages' context values.
type contextKey struct{}

// WithContext binds a resolution outcome to the request context.
func WithContext(ctx context.Context, tc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// FromContext retrieves the bound resolution outcome.
func FromContext(ctx context.Context) (*Context, bool) {
	tc, ok := ctx.Value(contextKey{}).(*Context)
	return tc, ok
}

// MustFromContext panics when no resolution outcome is bound. Use only
// behind the resolution middleware.
func MustFromContext(ctx context.Context) *Context {
	tc, ok := FromContext(ctx)
	if !ok || tc == nil {
		panic("trust: no resolution context bound to request")
	}
	return tc
}

// KeyFromContext returns the bound trust key without exposing the full
// record.
func KeyFromContext(ctx context.Context) (string, bool) {
	tc, ok := FromContext(ctx)
	if !ok || tc == nil || tc.Trust == nil {
		return "", false
	}
	return tc.Trust.Key, true
}

// LoggerExtractor enriches log records with the bound scope and trust
// key. Wire it into the logger factory's context extractors.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		tc, ok := FromContext(ctx)
		if !ok || tc == nil || tc.Scope == ScopeNone {
			return slog.Attr{}, false
		}
		if tc.Trust != nil {
			return slog.Group("trust",
				slog.String("scope", string(tc.Scope)),
				slog.String("key", tc.Trust.Key),
			), true
		}
		return slog.String("scope", string(tc.Scope)), true
	}
}
