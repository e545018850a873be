package trust

import "errors"

var (
	// ErrTrustNotFound covers every validation failure: malformed keys,
	// reserved words, missing records and non-active records all collapse
	// into this one error so callers cannot probe which keys are real.
	ErrTrustNotFound = errors.New("trust not found")

	// ErrResolution is an unexpected infrastructure failure during
	// identification or the system-dataset lookup.
	ErrResolution = errors.New("trust resolution failed")

	// ErrScopeViolation is returned when a guard rejects the request's
	// bound scope.
	ErrScopeViolation = errors.New("request scope not allowed")

	// ErrUnavailable indicates the trust's isolated database could not be
	// reached. It is always transient: the registry never caches it.
	ErrUnavailable = errors.New("trust database unavailable")

	// ErrNoContext is returned when no trust context was bound to the
	// request, typically because the resolution middleware did not run.
	ErrNoContext = errors.New("no trust context in request")
)
