package trust

import (
	"context"
	"errors"
	"time"
)

// Validator turns a raw candidate key into a validated active Trust.
// Checks run in order: normalization, length and pattern, reserved
// words, then a (cached) system-dataset lookup. Every check failure
// collapses into ErrTrustNotFound so the outcome never reveals whether
// a key was merely malformed or genuinely absent.
type Validator struct {
	directory Directory
	cache     Cache
	ttl       time.Duration
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithCache sets the record cache consulted before the directory.
func WithCache(cache Cache) ValidatorOption {
	return func(v *Validator) {
		if cache != nil {
			v.cache = cache
		}
	}
}

// WithCacheTTL bounds how long validated records are served from cache.
func WithCacheTTL(ttl time.Duration) ValidatorOption {
	return func(v *Validator) {
		if ttl > 0 {
			v.ttl = ttl
		}
	}
}

// NewValidator creates a Validator backed by the given directory.
// Without options it caches records in memory for five minutes.
func NewValidator(directory Directory, opts ...ValidatorOption) *Validator {
	v := &Validator{
		directory: directory,
		cache:     NewInMemoryCache(),
		ttl:       5 * time.Minute,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate resolves a candidate key to an active Trust.
// The directory lookup is the only suspension point; infrastructure
// failures there surface as ErrResolution, everything else as
// ErrTrustNotFound.
func (v *Validator) Validate(ctx context.Context, candidate string) (*Trust, error) {
	key := NormalizeKey(candidate)

	if !IsValidKey(key) || IsReservedKey(key) {
		return nil, ErrTrustNotFound
	}

	if cached, ok := v.cache.Get(ctx, key); ok {
		if !cached.IsActive() {
			return nil, ErrTrustNotFound
		}
		return cached, nil
	}

	t, err := v.directory.Lookup(ctx, key)
	if err != nil {
		if errors.Is(err, ErrTrustNotFound) {
			return nil, ErrTrustNotFound
		}
		return nil, errors.Join(ErrResolution, err)
	}
	if !t.IsActive() {
		return nil, ErrTrustNotFound
	}

	v.cache.Set(ctx, key, t, v.ttl)
	return t, nil
}

// Close releases the validator's cache resources.
func (v *Validator) Close() error {
	return v.cache.Close()
}
