package dbrouter

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the minimal query surface handed to collaborators. It is
// satisfied by *pgxpool.Pool; handlers never see pool construction or
// routing.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Handle is a routable data-access handle: the full query surface plus
// teardown. *pgxpool.Pool satisfies it; Close drains in-flight
// operations before releasing the underlying connections.
type Handle interface {
	DB
	Close()
}
