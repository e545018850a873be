// Package pg bootstraps the PostgreSQL layer: the system-dataset pool
// with retrying startup, goose migrations bridged over pgx, a
// readiness probe and error helpers shared by repositories and the
// per-trust pool opener in dbrouter.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		// fatal: the process must not start without the system dataset
//	}
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil { ... }
package pg
