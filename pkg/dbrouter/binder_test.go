package dbrouter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/schoolms/pkg/dbrouter"
	"github.com/edusuite/schoolms/pkg/trust"
)

// fakeTx stubs the pgx transaction surface BeginFunc touches.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func systemScopedCtx() context.Context {
	return trust.WithContext(context.Background(), &trust.Context{Scope: trust.ScopeSystem})
}

func trustScopedCtx(key string) context.Context {
	return trust.WithContext(context.Background(),
		&trust.Context{Trust: demoTrust(key), Scope: trust.ScopeTrust})
}

func TestRegistry_QueryFor(t *testing.T) {
	t.Parallel()

	t.Run("system scope gets the system handle", func(t *testing.T) {
		t.Parallel()

		system := &fakeHandle{name: "system"}
		registry := dbrouter.New(system, (&countingOpener{}).open)

		db, err := registry.QueryFor(systemScopedCtx())
		require.NoError(t, err)
		assert.Same(t, dbrouter.DB(system), db)
	})

	t.Run("trust scope acquires the trust handle", func(t *testing.T) {
		t.Parallel()

		opener := &countingOpener{}
		registry := dbrouter.New(&fakeHandle{name: "system"}, opener.open)

		db, err := registry.QueryFor(trustScopedCtx("acme"))
		require.NoError(t, err)
		assert.Equal(t, "trust_acme", db.(*fakeHandle).name)
		assert.Equal(t, int64(1), opener.calls.Load())

		// Scope is resolved from the binding on every call, but the
		// handle is served from the registry cache.
		again, err := registry.QueryFor(trustScopedCtx("acme"))
		require.NoError(t, err)
		assert.Same(t, db, again)
		assert.Equal(t, int64(1), opener.calls.Load())
	})

	t.Run("missing binding is rejected", func(t *testing.T) {
		t.Parallel()

		registry := dbrouter.New(&fakeHandle{name: "system"}, (&countingOpener{}).open)

		_, err := registry.QueryFor(context.Background())
		assert.ErrorIs(t, err, trust.ErrNoContext)
	})

	t.Run("scope-less binding is rejected, not defaulted to system", func(t *testing.T) {
		t.Parallel()

		registry := dbrouter.New(&fakeHandle{name: "system"}, (&countingOpener{}).open)

		ctx := trust.WithContext(context.Background(), &trust.Context{Scope: trust.ScopeNone})
		_, err := registry.QueryFor(ctx)
		assert.ErrorIs(t, err, trust.ErrScopeViolation)
	})
}

func TestRegistry_TransactionFor(t *testing.T) {
	t.Parallel()

	t.Run("commits when the unit of work succeeds", func(t *testing.T) {
		t.Parallel()

		tx := &fakeTx{}
		system := &fakeHandle{name: "system", beginTx: tx}
		registry := dbrouter.New(system, (&countingOpener{}).open)

		var ran bool
		err := registry.TransactionFor(systemScopedCtx(), func(got pgx.Tx) error {
			ran = true
			assert.Same(t, pgx.Tx(tx), got)
			return nil
		})
		require.NoError(t, err)
		assert.True(t, ran)
		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)
	})

	t.Run("rolls back when the unit of work fails", func(t *testing.T) {
		t.Parallel()

		tx := &fakeTx{}
		system := &fakeHandle{name: "system", beginTx: tx}
		registry := dbrouter.New(system, (&countingOpener{}).open)

		boom := errors.New("constraint violation")
		err := registry.TransactionFor(systemScopedCtx(), func(pgx.Tx) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.False(t, tx.committed)
		assert.True(t, tx.rolledBack)
	})

	t.Run("begin failure propagates", func(t *testing.T) {
		t.Parallel()

		system := &fakeHandle{name: "system", begin: errors.New("too many connections")}
		registry := dbrouter.New(system, (&countingOpener{}).open)

		err := registry.TransactionFor(systemScopedCtx(), func(pgx.Tx) error {
			t.Fatal("unit of work must not run without a transaction")
			return nil
		})
		assert.Error(t, err)
	})

	t.Run("scope errors surface before any transaction starts", func(t *testing.T) {
		t.Parallel()

		registry := dbrouter.New(&fakeHandle{name: "system"}, (&countingOpener{}).open)

		err := registry.TransactionFor(context.Background(), func(pgx.Tx) error {
			t.Fatal("unit of work must not run without a scope")
			return nil
		})
		assert.ErrorIs(t, err, trust.ErrNoContext)
	})
}
