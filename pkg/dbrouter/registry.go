package dbrouter

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/edusuite/schoolms/pkg/trust"
)

// ErrRegistryClosed is returned by Acquire after Close has begun.
var ErrRegistryClosed = errors.New("connection registry is closed")

// Opener creates the data-access handle for one trust's isolated
// database. Injectable so tests can count invocations and production
// can bind pool sizing configuration.
type Opener func(ctx context.Context, databaseName string) (Handle, error)

// entry is one registry slot: a creation in flight until ready closes,
// then either a handle or an error, immutable afterwards.
type entry struct {
	ready  chan struct{}
	handle Handle
	err    error
}

// Registry owns every tenant data-access handle plus the process-wide
// system handle. Handles are created lazily, exactly once per trust
// key: concurrent first requests share a single creation attempt and
// observe the same outcome. Failed creations are never cached: the
// slot is cleared so a later request retries, since unreachable
// databases are usually a transient condition.
type Registry struct {
	system Handle
	open   Opener
	log    *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	closed  bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger for handle lifecycle events.
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a Registry around an already established system handle.
// The system handle is mandatory: a process that cannot reach the
// system dataset must not start, so callers connect it before wiring
// the registry.
func New(system Handle, open Opener, opts ...RegistryOption) *Registry {
	r := &Registry{
		system:  system,
		open:    open,
		log:     slog.New(slog.DiscardHandler),
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// System returns the process-wide handle to the system dataset.
func (r *Registry) System() Handle {
	return r.system
}

// Acquire returns the handle for the trust's isolated database,
// creating it on first use. If N callers race on an uncached key,
// exactly one creation runs and all N share its outcome. The waiting
// caller's cancellation aborts only its own wait; the shared creation
// continues so the handle benefits every future request.
func (r *Registry) Acquire(ctx context.Context, t *trust.Trust) (Handle, error) {
	key := trust.NormalizeKey(t.Key)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, errors.Join(trust.ErrUnavailable, ErrRegistryClosed)
	}
	if e, ok := r.entries[key]; ok {
		r.mu.Unlock()
		return r.await(ctx, e)
	}
	e := &entry{ready: make(chan struct{})}
	r.entries[key] = e
	r.mu.Unlock()

	// Creation is detached from the triggering request: an aborted
	// caller must not tear down the handle its peers are waiting on.
	handle, err := r.open(context.WithoutCancel(ctx), t.DatabaseName)
	if err != nil {
		e.err = errors.Join(trust.ErrUnavailable, err)
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
		close(e.ready)
		r.log.ErrorContext(ctx, "trust handle creation failed",
			slog.String("trust_key", key), slog.Any("error", err))
		return nil, e.err
	}

	e.handle = handle
	close(e.ready)
	r.log.InfoContext(ctx, "trust handle created",
		slog.String("trust_key", key), slog.String("database", t.DatabaseName))
	return handle, nil
}

// await blocks on an in-flight or completed entry. Ready entries
// return immediately without touching the creation path again.
func (r *Registry) await(ctx context.Context, e *entry) (Handle, error) {
	select {
	case <-e.ready:
		if e.err != nil {
			return nil, e.err
		}
		return e.handle, nil
	case <-ctx.Done():
		return nil, errors.Join(trust.ErrUnavailable, ctx.Err())
	}
}

// Evict removes and closes the handle for one trust. Safe when no
// handle exists; an in-flight creation is closed as soon as it
// completes.
func (r *Registry) Evict(key string) {
	key = trust.NormalizeKey(key)

	r.mu.Lock()
	e, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	go func() {
		<-e.ready
		if e.handle != nil {
			e.handle.Close()
		}
	}()
}

// Close tears down every tenant handle and finally the system handle,
// draining in-flight operations. Further Acquire calls fail with
// ErrRegistryClosed. Call it from the server's shutdown path and let
// it finish before process exit.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	for key, e := range entries {
		<-e.ready
		if e.handle != nil {
			e.handle.Close()
			r.log.Info("trust handle closed", slog.String("trust_key", key))
		}
	}
	r.system.Close()
}
