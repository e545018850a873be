package trust

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// ErrorHandler converts a resolution failure into an HTTP response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Warmup runs after a trust has been validated, before the request is
// handed downstream. Wiring the connection registry's Acquire here
// provisions the tenant's handle eagerly so the first data access in a
// handler cannot fail late.
type Warmup func(ctx context.Context, t *Trust) error

// config holds middleware configuration.
type config struct {
	errorHandler ErrorHandler
	warmup       Warmup
	logger       *slog.Logger
}

// Option configures the resolution middleware.
type Option func(*config)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithWarmup registers a hook invoked with every validated trust.
func WithWarmup(warmup Warmup) Option {
	return func(c *config) {
		c.warmup = warmup
	}
}

// WithLogger sets the logger used for resolution failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	WriteError(w, err)
}

// WriteError maps the error taxonomy onto machine-readable JSON
// responses: not-found 404, scope violation 403, unavailable 503,
// anything else 500. Handlers use it for data-access failures so the
// whole boundary speaks one vocabulary.
func WriteError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	outcome := "trust_resolution_error"

	switch {
	case errors.Is(err, ErrTrustNotFound):
		code = http.StatusNotFound
		outcome = "trust_not_found"
	case errors.Is(err, ErrScopeViolation), errors.Is(err, ErrNoContext):
		code = http.StatusForbidden
		outcome = "scope_violation"
	case errors.Is(err, ErrUnavailable):
		code = http.StatusServiceUnavailable
		outcome = "trust_unavailable"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": outcome})
}
