package trust_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/schoolms/pkg/trust"
)

// fakeDirectory serves a fixed set of records and counts lookups.
type fakeDirectory struct {
	records map[string]*trust.Trust
	err     error
	lookups atomic.Int64
}

func (d *fakeDirectory) Lookup(ctx context.Context, key string) (*trust.Trust, error) {
	d.lookups.Add(1)
	if d.err != nil {
		return nil, d.err
	}
	t, ok := d.records[key]
	if !ok {
		return nil, trust.ErrTrustNotFound
	}
	return t, nil
}

func activeTrust(key string) *trust.Trust {
	return &trust.Trust{
		ID:           uuid.New(),
		Key:          key,
		Name:         key,
		Status:       trust.StatusActive,
		DatabaseName: "trust_" + key,
		CreatedAt:    time.Now(),
	}
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("resolves an active trust", func(t *testing.T) {
		t.Parallel()

		dir := &fakeDirectory{records: map[string]*trust.Trust{"acme": activeTrust("acme")}}
		v := trust.NewValidator(dir, trust.WithCache(trust.NewNoOpCache()))

		got, err := v.Validate(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, "acme", got.Key)
	})

	t.Run("normalizes before lookup", func(t *testing.T) {
		t.Parallel()

		dir := &fakeDirectory{records: map[string]*trust.Trust{"acme": activeTrust("acme")}}
		v := trust.NewValidator(dir, trust.WithCache(trust.NewNoOpCache()))

		got, err := v.Validate(context.Background(), "  ACME ")
		require.NoError(t, err)
		assert.Equal(t, "acme", got.Key)
	})

	t.Run("malformed keys are not found, never a resolution error", func(t *testing.T) {
		t.Parallel()

		dir := &fakeDirectory{records: map[string]*trust.Trust{}}
		v := trust.NewValidator(dir, trust.WithCache(trust.NewNoOpCache()))

		for _, candidate := range []string{"", "-bad", "has space", "has.dot"} {
			_, err := v.Validate(context.Background(), candidate)
			assert.ErrorIs(t, err, trust.ErrTrustNotFound, candidate)
			assert.NotErrorIs(t, err, trust.ErrResolution, candidate)
		}
		// Malformed candidates never reach the directory.
		assert.Zero(t, dir.lookups.Load())
	})

	t.Run("reserved words are not found", func(t *testing.T) {
		t.Parallel()

		dir := &fakeDirectory{records: map[string]*trust.Trust{"admin": activeTrust("admin")}}
		v := trust.NewValidator(dir, trust.WithCache(trust.NewNoOpCache()))

		_, err := v.Validate(context.Background(), "admin")
		assert.ErrorIs(t, err, trust.ErrTrustNotFound)
		assert.Zero(t, dir.lookups.Load())
	})

	t.Run("non-active records are not found", func(t *testing.T) {
		t.Parallel()

		suspended := activeTrust("acme")
		suspended.Status = trust.StatusSuspended
		inactive := activeTrust("beta")
		inactive.Status = trust.StatusInactive

		dir := &fakeDirectory{records: map[string]*trust.Trust{"acme": suspended, "beta": inactive}}
		v := trust.NewValidator(dir, trust.WithCache(trust.NewNoOpCache()))

		for _, key := range []string{"acme", "beta"} {
			_, err := v.Validate(context.Background(), key)
			assert.ErrorIs(t, err, trust.ErrTrustNotFound, key)
		}
	})

	t.Run("directory failure is a resolution error", func(t *testing.T) {
		t.Parallel()

		dir := &fakeDirectory{err: errors.New("connection refused")}
		v := trust.NewValidator(dir, trust.WithCache(trust.NewNoOpCache()))

		_, err := v.Validate(context.Background(), "acme")
		assert.ErrorIs(t, err, trust.ErrResolution)
		assert.NotErrorIs(t, err, trust.ErrTrustNotFound)
	})

	t.Run("second validation is served from cache", func(t *testing.T) {
		t.Parallel()

		dir := &fakeDirectory{records: map[string]*trust.Trust{"acme": activeTrust("acme")}}
		v := trust.NewValidator(dir, trust.WithCacheTTL(time.Minute))
		t.Cleanup(func() { _ = v.Close() })

		_, err := v.Validate(context.Background(), "acme")
		require.NoError(t, err)
		_, err = v.Validate(context.Background(), "ACME")
		require.NoError(t, err)

		assert.Equal(t, int64(1), dir.lookups.Load())
	})
}
