package trust

import (
	"log/slog"
	"net/http"
)

// Middleware binds a resolution outcome to every request. The chain of
// checks is strict: identification runs first and is pure; a candidate
// key then must pass validation; a validated trust may be warmed up in
// the connection registry. A candidate that fails validation
// short-circuits the pipeline. It never falls through to system
// scope, since that would hand a mistyped subdomain the shared
// administrative dataset.
func Middleware(resolver Resolver, validator *Validator, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := resolver(r)

			if res.SystemPath {
				ctx := WithContext(r.Context(), &Context{Scope: ScopeSystem})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if res.Key == "" {
				// No tenant signal at all. Bind an explicit scope-less
				// outcome so guards have one source of truth to reject.
				ctx := WithContext(r.Context(), &Context{Scope: ScopeNone})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			t, err := validator.Validate(r.Context(), res.Key)
			if err != nil {
				if cfg.logger != nil {
					cfg.logger.WarnContext(r.Context(), "trust resolution rejected",
						slog.String("candidate", NormalizeKey(res.Key)),
						slog.Any("error", err),
					)
				}
				cfg.errorHandler(w, r, err)
				return
			}

			if cfg.warmup != nil {
				if err := cfg.warmup(r.Context(), t); err != nil {
					if cfg.logger != nil {
						cfg.logger.ErrorContext(r.Context(), "trust handle warmup failed",
							slog.String("trust_key", t.Key),
							slog.Any("error", err),
						)
					}
					cfg.errorHandler(w, r, err)
					return
				}
			}

			ctx := WithContext(r.Context(), &Context{Trust: t, Scope: ScopeTrust})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
